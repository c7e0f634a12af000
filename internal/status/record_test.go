package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []StatusRecord
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			input:    "   \n\t\n",
			expected: nil,
		},
		{
			name:  "staged and unstaged codes",
			input: "M  staged.go\n M unstaged.go",
			expected: []StatusRecord{
				{Code: "M ", Path: "staged.go", Raw: "M  staged.go"},
				{Code: " M", Path: "unstaged.go", Raw: " M unstaged.go"},
			},
		},
		{
			name:  "untracked entry",
			input: "?? notes.txt",
			expected: []StatusRecord{
				{Code: "??", Path: "notes.txt", Raw: "?? notes.txt"},
			},
		},
		{
			name:  "rename keeps arrow in path",
			input: "R  cmd/old.go -> cmd/new.go",
			expected: []StatusRecord{
				{Code: "R ", Path: "cmd/old.go -> cmd/new.go", Raw: "R  cmd/old.go -> cmd/new.go"},
			},
		},
		{
			name:  "two letter code without path",
			input: "??",
			expected: []StatusRecord{
				{Code: "??", Path: "", Raw: "??"},
			},
		},
		{
			name:  "line shorter than a code",
			input: "M",
			expected: []StatusRecord{
				{Code: "M", Path: "", Raw: "M"},
			},
		},
		{
			name:  "blank lines between entries are skipped",
			input: "M  a.go\n\n\n?? b.go\n",
			expected: []StatusRecord{
				{Code: "M ", Path: "a.go", Raw: "M  a.go"},
				{Code: "??", Path: "b.go", Raw: "?? b.go"},
			},
		},
		{
			name:  "path with spaces",
			input: " M docs/release notes.md",
			expected: []StatusRecord{
				{Code: " M", Path: "docs/release notes.md", Raw: " M docs/release notes.md"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestStatusRecordUntracked(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		untracked bool
	}{
		{"question marks", "??", true},
		{"unstaged modification", " M", false},
		{"staged addition", "A ", false},
		{"both modified conflict", "UU", false},
		{"both added conflict", "AA", false},
		{"both deleted conflict", "DD", false},
		{"added by us conflict", "AU", false},
		{"added by them conflict", "UA", false},
		{"deleted by us conflict", "DU", false},
		{"deleted by them conflict", "UD", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := StatusRecord{Code: tt.code, Path: "some/path"}
			assert.Equal(t, tt.untracked, rec.Untracked())
		})
	}
}

func TestParsePreservesRawLines(t *testing.T) {
	input := " M src/app.go\n?? weird   spacing.txt"
	records := Parse(input)
	assert.Len(t, records, 2)
	assert.Equal(t, " M src/app.go", records[0].Raw)
	assert.Equal(t, "?? weird   spacing.txt", records[1].Raw)
}
