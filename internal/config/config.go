// Package config assembles the slimstatus configuration from YAML,
// git config keys and CLI overrides, later sources winning.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chmouel/slimstatus/internal/status"
	"github.com/chmouel/slimstatus/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global slimstatus configuration options.
type AppConfig struct {
	WorkingDir string // repository to inspect, "." by default

	IncludeGit           bool // master switch for the whole git context block
	GitIncludeBranch     bool
	GitIncludeMainBranch bool
	GitIncludeStatus     bool
	GitIncludeCommits    int // recent commits to list, 0 disables

	StatusIncludeUntracked    bool
	StatusMaxUntracked        int // 0 = unlimited
	StatusMaxTracked          int // 0 = unlimited
	StatusTier2Limit          int // 0 = unlimited
	StatusMaxLines            int // 0 = no ceiling
	StatusEnablePathFiltering bool
	StatusShowFilterSummary   bool
	StatusTier1PatternsExtend []string

	IncludeSession          bool
	IncludeDatetime         bool
	DatetimeIncludeTimezone bool

	GitTimeoutMS    int    // per git invocation, 0 = no timeout
	RefreshInterval int    // watch mode polling seconds, 0 = events only
	ShowIcons       bool   // render Nerd Font icons in the watch view
	Theme           string // "dark", "light" or empty for terminal detection
	DebugLog        string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		WorkingDir:                ".",
		IncludeGit:                true,
		GitIncludeBranch:          true,
		GitIncludeMainBranch:      true,
		GitIncludeStatus:          true,
		GitIncludeCommits:         5,
		StatusIncludeUntracked:    true,
		StatusMaxUntracked:        20,
		StatusMaxTracked:          50,
		StatusTier2Limit:          10,
		StatusMaxLines:            0,
		StatusEnablePathFiltering: true,
		StatusShowFilterSummary:   true,
		IncludeSession:            true,
		IncludeDatetime:           true,
		DatetimeIncludeTimezone:   false,
		GitTimeoutMS:              1000,
		RefreshInterval:           0,
		ShowIcons:                 true,
		Theme:                     "",
		DebugLog:                  "",
	}
}

// StatusPolicy builds the truncation policy consumed by the status
// reporter. The policy is constructed once here so the reporter never
// reads configuration itself.
func (c *AppConfig) StatusPolicy() status.Policy {
	return status.Policy{
		IncludeUntracked:    c.StatusIncludeUntracked,
		MaxUntracked:        c.StatusMaxUntracked,
		MaxTracked:          c.StatusMaxTracked,
		Tier2Limit:          c.StatusTier2Limit,
		MaxLines:            c.StatusMaxLines,
		EnableTierFiltering: c.StatusEnablePathFiltering,
		Tier1PatternsExtend: c.StatusTier1PatternsExtend,
		ShowFilterSummary:   c.StatusShowFilterSummary,
	}
}

// GitTimeout returns the per-invocation git timeout. Zero disables it.
func (c *AppConfig) GitTimeout() time.Duration {
	return time.Duration(c.GitTimeoutMS) * time.Millisecond
}

// normalizeStringList converts various input shapes to a list of
// trimmed non-empty strings.
func normalizeStringList(value any) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return []string{}
		}
		return []string{text}
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return []string{}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

// applyConfigData merges one source of raw key/value data onto cfg.
// Keys absent from data leave the current value untouched, which is
// what lets sources stack.
func applyConfigData(cfg *AppConfig, data map[string]any) {
	if workingDir, ok := data["working_dir"].(string); ok {
		workingDir = strings.TrimSpace(workingDir)
		if workingDir != "" {
			cfg.WorkingDir = workingDir
		}
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	cfg.IncludeGit = coerceBool(data["include_git"], cfg.IncludeGit)
	cfg.GitIncludeBranch = coerceBool(data["git_include_branch"], cfg.GitIncludeBranch)
	cfg.GitIncludeMainBranch = coerceBool(data["git_include_main_branch"], cfg.GitIncludeMainBranch)
	cfg.GitIncludeStatus = coerceBool(data["git_include_status"], cfg.GitIncludeStatus)
	cfg.GitIncludeCommits = coerceInt(data["git_include_commits"], cfg.GitIncludeCommits)

	cfg.StatusIncludeUntracked = coerceBool(data["git_status_include_untracked"], cfg.StatusIncludeUntracked)
	cfg.StatusMaxUntracked = coerceInt(data["git_status_max_untracked"], cfg.StatusMaxUntracked)
	cfg.StatusMaxTracked = coerceInt(data["git_status_max_tracked"], cfg.StatusMaxTracked)
	cfg.StatusTier2Limit = coerceInt(data["git_status_tier2_limit"], cfg.StatusTier2Limit)
	cfg.StatusMaxLines = coerceInt(data["git_status_max_lines"], cfg.StatusMaxLines)
	cfg.StatusEnablePathFiltering = coerceBool(data["git_status_enable_path_filtering"], cfg.StatusEnablePathFiltering)
	cfg.StatusShowFilterSummary = coerceBool(data["git_status_show_filter_summary"], cfg.StatusShowFilterSummary)
	if _, ok := data["git_status_tier1_patterns_extend"]; ok {
		cfg.StatusTier1PatternsExtend = normalizeStringList(data["git_status_tier1_patterns_extend"])
	}

	cfg.IncludeSession = coerceBool(data["include_session"], cfg.IncludeSession)
	cfg.IncludeDatetime = coerceBool(data["include_datetime"], cfg.IncludeDatetime)
	cfg.DatetimeIncludeTimezone = coerceBool(data["datetime_include_timezone"], cfg.DatetimeIncludeTimezone)

	cfg.GitTimeoutMS = coerceInt(data["git_timeout_ms"], cfg.GitTimeoutMS)
	cfg.RefreshInterval = coerceInt(data["refresh_interval"], cfg.RefreshInterval)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}
}

// clamp normalizes out-of-range values after a source is applied.
func (c *AppConfig) clamp() {
	if c.GitIncludeCommits < 0 {
		c.GitIncludeCommits = 0
	}
	if c.StatusMaxUntracked < 0 {
		c.StatusMaxUntracked = 0
	}
	if c.StatusMaxTracked < 0 {
		c.StatusMaxTracked = 0
	}
	if c.StatusTier2Limit < 0 {
		c.StatusTier2Limit = 0
	}
	if c.StatusMaxLines < 0 {
		c.StatusMaxLines = 0
	}
	if c.GitTimeoutMS < 0 {
		c.GitTimeoutMS = 0
	}
	if c.RefreshInterval < 0 {
		c.RefreshInterval = 0
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyConfigData(cfg, data)
	cfg.clamp()
	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file.
// A missing file and a file that fails to parse both fall back to
// defaults; only a --config-file path outside the config directory is
// an error.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Join(getConfigDir(), "slimstatus")
	configBase = filepath.Clean(configBase)

	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		if !isPathWithin(configBase, absPath) {
			return DefaultConfig(), fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	var cfg *AppConfig

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), nil
		}

		cfg = parseConfig(yamlData)
		break
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	return cfg, nil
}

// Load assembles the effective configuration: defaults, then the YAML
// file, then git config keys, then CLI overrides. A non-empty
// workingDir comes from the command line: it directs the repo-local
// git config lookup and wins over every other source.
func Load(configPath, workingDir string, overrides []string) (*AppConfig, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}

	if workingDir != "" {
		cfg.WorkingDir = workingDir
	}

	ApplyGitConfig(cfg)

	if err := ApplyCLIOverrides(cfg, overrides); err != nil {
		return cfg, err
	}

	if workingDir != "" {
		cfg.WorkingDir = workingDir
	}
	return cfg, nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

// NormalizeThemeName returns the canonical theme name if it is
// supported, empty otherwise.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case theme.DarkName, theme.LightName:
		return name
	default:
		return ""
	}
}
