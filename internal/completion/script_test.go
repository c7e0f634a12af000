package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagByName(t *testing.T, name string) FlagInfo {
	t.Helper()

	for _, flag := range GetFlags() {
		if flag.Name == name {
			return flag
		}
	}
	t.Fatalf("flag %q not in metadata", name)
	return FlagInfo{}
}

func TestGetFlags(t *testing.T) {
	themeFlag := flagByName(t, "theme")
	assert.True(t, themeFlag.HasValue)
	assert.Equal(t, []string{"dark", "light"}, themeFlag.Values)

	dirFlag := flagByName(t, "working-dir")
	assert.True(t, dirFlag.HasValue)
	assert.Equal(t, "DIR", dirFlag.ValueHint)

	plainFlag := flagByName(t, "plain")
	assert.False(t, plainFlag.HasValue)
	assert.Empty(t, plainFlag.Values)
}

func TestGetCommands(t *testing.T) {
	names := make([]string, 0, len(GetCommands()))
	for _, cmd := range GetCommands() {
		require.NotEmpty(t, cmd.Description)
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"status", "watch", "completion"}, names)
}

func TestBashScript(t *testing.T) {
	script := BashScript("slimstatus")

	assert.Contains(t, script, "_slimstatus() {")
	assert.Contains(t, script, "complete -F _slimstatus slimstatus")

	// Enumerated values complete in place, paths via compgen.
	assert.Contains(t, script, "--theme)")
	assert.Contains(t, script, `compgen -W "dark light"`)
	assert.Contains(t, script, "--working-dir)")
	assert.Contains(t, script, "compgen -d")
	assert.Contains(t, script, "--config-file)")
	assert.Contains(t, script, "compgen -f")

	// Boolean flags appear only in the flag word list.
	assert.Contains(t, script, "--no-git")
	assert.NotContains(t, script, "--no-git)")

	assert.Contains(t, script, `"status watch completion"`)
}

func TestZshScript(t *testing.T) {
	script := ZshScript("slimstatus")

	assert.True(t, strings.HasPrefix(script, "#compdef slimstatus\n"))
	assert.Contains(t, script, "_slimstatus() {")
	assert.Contains(t, script, "'status:Print only the budgeted git status report'")
	assert.Contains(t, script, "_describe 'command' commands")

	assert.Contains(t, script, "'--theme=[Override the UI theme]:name:(dark light)'")
	assert.Contains(t, script, ":dir:_files -/'")
	assert.Contains(t, script, "'--plain[Print the context block without the system-reminder envelope]'")

	// Specs are built from single-quoted words; an odd quote count
	// means a description broke the quoting.
	assert.Equal(t, 0, strings.Count(script, "'")%2)
}

func TestZshFlagSpec(t *testing.T) {
	tests := []struct {
		name string
		flag FlagInfo
		want string
	}{
		{
			name: "bool flag",
			flag: FlagInfo{Name: "plain", Description: "Plain output"},
			want: "'--plain[Plain output]'",
		},
		{
			name: "enumerated values",
			flag: FlagInfo{Name: "theme", Description: "Theme", HasValue: true, ValueHint: "NAME", Values: []string{"dark", "light"}},
			want: "'--theme=[Theme]:name:(dark light)'",
		},
		{
			name: "directory hint",
			flag: FlagInfo{Name: "working-dir", Description: "Directory", HasValue: true, ValueHint: "DIR"},
			want: "'--working-dir=[Directory]:dir:_files -/'",
		},
		{
			name: "file hint",
			flag: FlagInfo{Name: "config-file", Description: "Config", HasValue: true, ValueHint: "FILE"},
			want: "'--config-file=[Config]:file:_files'",
		},
		{
			name: "free-form value",
			flag: FlagInfo{Name: "config", Description: "Override", HasValue: true, ValueHint: "KEY=VALUE"},
			want: "'--config=[Override]:key=value:'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zshFlagSpec(tt.flag))
		})
	}
}
