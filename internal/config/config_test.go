package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/slimstatus/internal/status"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ".", cfg.WorkingDir)
	assert.True(t, cfg.IncludeGit)
	assert.True(t, cfg.GitIncludeBranch)
	assert.True(t, cfg.GitIncludeMainBranch)
	assert.True(t, cfg.GitIncludeStatus)
	assert.Equal(t, 5, cfg.GitIncludeCommits)
	assert.True(t, cfg.StatusIncludeUntracked)
	assert.Equal(t, 20, cfg.StatusMaxUntracked)
	assert.Equal(t, 50, cfg.StatusMaxTracked)
	assert.Equal(t, 10, cfg.StatusTier2Limit)
	assert.Equal(t, 0, cfg.StatusMaxLines)
	assert.True(t, cfg.StatusEnablePathFiltering)
	assert.True(t, cfg.StatusShowFilterSummary)
	assert.Empty(t, cfg.StatusTier1PatternsExtend)
	assert.True(t, cfg.IncludeSession)
	assert.True(t, cfg.IncludeDatetime)
	assert.False(t, cfg.DatetimeIncludeTimezone)
	assert.Equal(t, 1000, cfg.GitTimeoutMS)
	assert.Equal(t, 0, cfg.RefreshInterval)
	assert.True(t, cfg.ShowIcons)
	assert.Empty(t, cfg.Theme)
	assert.Empty(t, cfg.DebugLog)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal bool
		expected   bool
	}{
		{"nil keeps default true", nil, true, true},
		{"nil keeps default false", nil, false, false},
		{"bool true", true, false, true},
		{"bool false", false, true, false},
		{"int nonzero", 1, false, true},
		{"int zero", 0, true, false},
		{"string yes", "yes", false, true},
		{"string on", "on", false, true},
		{"string one", "1", false, true},
		{"string no", "no", true, false},
		{"string off", "off", true, false},
		{"string zero", "0", true, false},
		{"string mixed case", "  TRUE ", false, true},
		{"unrecognized string keeps default", "maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal))
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal int
		expected   int
	}{
		{"nil keeps default", nil, 7, 7},
		{"int passes through", 42, 0, 42},
		{"negative int passes through", -3, 0, -3},
		{"numeric string", " 15 ", 0, 15},
		{"empty string keeps default", "", 9, 9},
		{"garbage string keeps default", "abc", 9, 9},
		{"bool keeps default", true, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceInt(tt.input, tt.defaultVal))
		})
	}
}

func TestNormalizeStringList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{"nil input", nil, []string{}},
		{"empty string", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"single string", "vendor/**", []string{"vendor/**"}},
		{"trimmed string", "  *.tmp  ", []string{"*.tmp"}},
		{"empty list", []any{}, []string{}},
		{"list of strings", []any{"vendor/**", "*.tmp"}, []string{"vendor/**", "*.tmp"}},
		{"list with empty elements", []any{"a/**", "", nil, "b/**"}, []string{"a/**", "b/**"}},
		{"unsupported type", 12, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeStringList(tt.input))
		})
	}
}

func TestParseConfig(t *testing.T) {
	data := map[string]any{
		"working_dir":                      "  /work ",
		"include_git":                      "no",
		"git_include_branch":               false,
		"git_include_commits":              "12",
		"git_status_include_untracked":     0,
		"git_status_max_untracked":         "40",
		"git_status_enable_path_filtering": "off",
		"git_status_show_filter_summary":   "yes",
		"git_status_tier1_patterns_extend": []any{"vendor/**", "*.gen.go"},
		"include_datetime":                 false,
		"datetime_include_timezone":        "on",
		"git_timeout_ms":                   2500,
		"refresh_interval":                 "3",
		"debug_log":                        "/tmp/ss.log",
		"theme":                            "DARK",
		"unknown_key":                      "ignored",
	}

	cfg := parseConfig(data)

	assert.Equal(t, "/work", cfg.WorkingDir)
	assert.False(t, cfg.IncludeGit)
	assert.False(t, cfg.GitIncludeBranch)
	assert.True(t, cfg.GitIncludeMainBranch)
	assert.Equal(t, 12, cfg.GitIncludeCommits)
	assert.False(t, cfg.StatusIncludeUntracked)
	assert.Equal(t, 40, cfg.StatusMaxUntracked)
	assert.False(t, cfg.StatusEnablePathFiltering)
	assert.True(t, cfg.StatusShowFilterSummary)
	assert.Equal(t, []string{"vendor/**", "*.gen.go"}, cfg.StatusTier1PatternsExtend)
	assert.False(t, cfg.IncludeDatetime)
	assert.True(t, cfg.DatetimeIncludeTimezone)
	assert.Equal(t, 2500, cfg.GitTimeoutMS)
	assert.Equal(t, 3, cfg.RefreshInterval)
	assert.Equal(t, "/tmp/ss.log", cfg.DebugLog)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestParseConfigClampsNegatives(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"git_include_commits":      -1,
		"git_status_max_untracked": -5,
		"git_status_max_tracked":   "-50",
		"git_status_tier2_limit":   -2,
		"git_status_max_lines":     -100,
		"git_timeout_ms":           -1,
		"refresh_interval":         -9,
	})

	assert.Equal(t, 0, cfg.GitIncludeCommits)
	assert.Equal(t, 0, cfg.StatusMaxUntracked)
	assert.Equal(t, 0, cfg.StatusMaxTracked)
	assert.Equal(t, 0, cfg.StatusTier2Limit)
	assert.Equal(t, 0, cfg.StatusMaxLines)
	assert.Equal(t, 0, cfg.GitTimeoutMS)
	assert.Equal(t, 0, cfg.RefreshInterval)
}

func TestParseConfigInvalidTheme(t *testing.T) {
	cfg := parseConfig(map[string]any{"theme": "dracula"})
	assert.Empty(t, cfg.Theme)
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	xdg := t.TempDir()
	dir := filepath.Join(xdg, "slimstatus")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	writeConfigFile(t, "config.yaml", `
working_dir: /srv/project
git_status_max_tracked: 15
git_status_tier1_patterns_extend:
  - vendor/**
  - "*.gen.go"
show_icons: false
theme: light
`)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/project", cfg.WorkingDir)
	assert.Equal(t, 15, cfg.StatusMaxTracked)
	assert.Equal(t, []string{"vendor/**", "*.gen.go"}, cfg.StatusTier1PatternsExtend)
	assert.False(t, cfg.ShowIcons)
	assert.Equal(t, "light", cfg.Theme)
}

func TestLoadConfigYmlFallback(t *testing.T) {
	writeConfigFile(t, "config.yml", "git_status_tier2_limit: 4\n")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.StatusTier2Limit)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	writeConfigFile(t, "config.yaml", "working_dir: [unclosed\n")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := writeConfigFile(t, "alt.yaml", "git_timeout_ms: 250\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.GitTimeoutMS)
}

func TestLoadConfigRejectsOutsidePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	outside := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("theme: dark\n"), 0o600))

	_, err := LoadConfig(outside)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must reside inside")
}

func TestLoad(t *testing.T) {
	defer func() { gitConfigMock = nil }()

	writeConfigFile(t, "config.yaml", `
working_dir: /from/yaml
git_status_max_tracked: 15
theme: light
`)

	gitConfigMock = func(args []string, repoPath string) (string, error) {
		if slices.Contains(args, "--global") {
			return "ss.git_status_max_tracked 25\nss.git_status_tier2_limit 4\n", nil
		}
		return "", nil
	}

	cfg, err := Load("", "/from/flag", []string{"ss.git_status_tier2_limit=6"})
	require.NoError(t, err)

	// Later sources win: git config over YAML, CLI overrides over git
	// config, the working-dir flag over everything.
	assert.Equal(t, 25, cfg.StatusMaxTracked)
	assert.Equal(t, 6, cfg.StatusTier2Limit)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "/from/flag", cfg.WorkingDir)
}

func TestLoadFlagDirBeatsOverride(t *testing.T) {
	defer func() { gitConfigMock = nil }()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	gitConfigMock = func(args []string, repoPath string) (string, error) {
		return "", nil
	}

	cfg, err := Load("", "/flag/dir", []string{"ss.working_dir=/override/dir"})
	require.NoError(t, err)
	assert.Equal(t, "/flag/dir", cfg.WorkingDir)
}

func TestLoadOverrideError(t *testing.T) {
	defer func() { gitConfigMock = nil }()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	gitConfigMock = func(args []string, repoPath string) (string, error) {
		return "", nil
	}

	_, err := Load("", "", []string{"bogus"})
	require.Error(t, err)
}

func TestStatusPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StatusMaxTracked = 9
	cfg.StatusIncludeUntracked = false
	cfg.StatusTier1PatternsExtend = []string{"tmp/**"}

	assert.Equal(t, status.Policy{
		IncludeUntracked:    false,
		MaxUntracked:        20,
		MaxTracked:          9,
		Tier2Limit:          10,
		MaxLines:            0,
		EnableTierFiltering: true,
		Tier1PatternsExtend: []string{"tmp/**"},
		ShowFilterSummary:   true,
	}, cfg.StatusPolicy())
}

func TestStatusPolicyDefaultsMatchReporter(t *testing.T) {
	assert.Equal(t, status.DefaultPolicy(), DefaultConfig().StatusPolicy())
}

func TestGitTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Second, cfg.GitTimeout())

	cfg.GitTimeoutMS = 0
	assert.Equal(t, time.Duration(0), cfg.GitTimeout())
}

func TestNormalizeThemeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dark", "dark", "dark"},
		{"light padded", "  Light ", "light"},
		{"auto is not canonical", "auto", ""},
		{"unsupported", "dracula", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeThemeName(tt.input))
		})
	}
}

func TestIsPathWithin(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		target   string
		expected bool
	}{
		{"same path", "/a/b", "/a/b", true},
		{"direct child", "/a/b", "/a/b/c.yaml", true},
		{"nested child", "/a/b", "/a/b/c/d", true},
		{"sibling", "/a/b", "/a/x", false},
		{"parent", "/a/b", "/a", false},
		{"traversal escape", "/a/b", "/a/b/../x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isPathWithin(tt.base, tt.target))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), got)

	t.Setenv("SS_TEST_DIR", "/opt/ss")
	got, err = expandPath("$SS_TEST_DIR/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/opt/ss/config.yaml", got)
}
