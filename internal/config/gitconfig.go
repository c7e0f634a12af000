package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// keyPrefix namespaces slimstatus keys inside git config.
const keyPrefix = "ss."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes a git config command and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config exits 1 when no key matches, which is not an error
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into a multi-value
// map. Input format: "ss.working_dir /path\nss.show_icons true\n".
func parseGitConfigOutput(output string) map[string][]string {
	configMap := make(map[string][]string)
	if output == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// SplitN keeps values containing spaces intact.
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], keyPrefix)
		configMap[key] = append(configMap[key], parts[1])
	}

	return configMap
}

// convertGitConfigToParseConfig converts to the shape applyConfigData
// expects: multi-value keys become []any, single values stay strings
// for coerceBool and coerceInt to interpret.
func convertGitConfigToParseConfig(gitCfg map[string][]string) map[string]any {
	result := make(map[string]any)

	for key, values := range gitCfg {
		if len(values) == 0 {
			continue
		}

		if len(values) > 1 {
			anySlice := make([]any, len(values))
			for i, v := range values {
				anySlice[i] = v
			}
			result[key] = anySlice
			continue
		}

		result[key] = values[0]
	}

	return result
}

// loadGitConfig reads ss.* git config values from one scope.
func loadGitConfig(globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config", "--get-regexp", "^ss\\."}

	if globalOnly {
		args = append(args, "--global")
	} else {
		args = append(args, "--local")
	}

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return nil, err
	}

	if output == "" {
		return make(map[string]any), nil
	}

	return convertGitConfigToParseConfig(parseGitConfigOutput(output)), nil
}

// isInGitRepo checks if path is inside a git repository.
func isInGitRepo(path string) bool {
	if path == "" {
		return false
	}
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = path
	return cmd.Run() == nil
}

// determineRepoPath returns the repo path for local git config lookup.
func determineRepoPath(workingDir string) string {
	if workingDir != "" && isInGitRepo(workingDir) {
		return workingDir
	}

	if wd, err := os.Getwd(); err == nil && isInGitRepo(wd) {
		return wd
	}

	return ""
}

// ApplyGitConfig layers ss.* keys from git config onto cfg, global
// scope first so repository-local values win. Lookup failures leave
// cfg untouched.
func ApplyGitConfig(cfg *AppConfig) {
	if global, err := loadGitConfig(true, ""); err == nil && len(global) > 0 {
		applyConfigData(cfg, global)
	}

	if repoPath := determineRepoPath(cfg.WorkingDir); repoPath != "" {
		if local, err := loadGitConfig(false, repoPath); err == nil && len(local) > 0 {
			applyConfigData(cfg, local)
		}
	}

	cfg.clamp()
}

// ApplyCLIOverrides applies repeatable --config ss.key=value flags,
// the highest-priority configuration source.
func ApplyCLIOverrides(cfg *AppConfig, overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}

	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}

	applyConfigData(cfg, data)
	cfg.clamp()
	return nil
}

// parseCLIConfigOverrides parses the --config=ss.key=value format
// into a map suitable for applyConfigData.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	keyCount := make(map[string]int)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override: %q, expected format: ss.key=value (note: use = not space)", override)
		}

		fullKey := parts[0]
		value := parts[1]

		if !strings.HasPrefix(fullKey, keyPrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", keyPrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, keyPrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		// A repeated key turns into a multi-value list, matching how
		// git config reports repeated keys.
		keyCount[key]++
		if keyCount[key] > 1 {
			if keyCount[key] == 2 {
				firstValue := result[key].(string)
				result[key] = []any{firstValue, value}
			} else {
				result[key] = append(result[key].([]any), value)
			}
		} else {
			result[key] = value
		}
	}

	return result, nil
}
