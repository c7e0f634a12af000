// Package envinfo renders the environment preamble that precedes the
// git context in a report.
package envinfo

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/chmouel/slimstatus/internal/config"
	"github.com/chmouel/slimstatus/internal/session"
)

// Info is a gathered environment snapshot.
type Info struct {
	WorkingDir string
	IsGitRepo  bool
	Platform   string
	OSVersion  string
	Date       string
	Session    session.Info
	HasSession bool
}

// Gather assembles the environment snapshot. Repo detection is done
// once per run by the caller and passed in.
func Gather(cfg *config.AppConfig, isGitRepo bool, now time.Time) Info {
	info := Info{
		WorkingDir: resolveWorkingDir(cfg.WorkingDir),
		IsGitRepo:  isGitRepo,
		Platform:   runtime.GOOS,
		OSVersion:  runtime.GOOS + "/" + runtime.GOARCH,
		Date:       formatDate(cfg, now),
	}

	if v := osVersion(); v != "" {
		info.OSVersion = v
	}

	if cfg.IncludeSession {
		info.Session = session.Current()
		info.HasSession = info.Session.ID != ""
	}
	return info
}

// Format renders the <env> block.
func (i Info) Format() string {
	lines := []string{
		"Here is useful information about the environment you are running in:",
		"<env>",
		"Working directory: " + i.WorkingDir,
	}

	if i.HasSession {
		lines = append(lines, "Session ID: "+i.Session.ID)
		if i.Session.IsSub() {
			lines = append(lines, "Parent Session ID: "+i.Session.ParentID)
			lines = append(lines, "Is sub-session: Yes")
		} else {
			lines = append(lines, "Is sub-session: No")
		}
	}

	lines = append(lines,
		"Is directory a git repo: "+yesNo(i.IsGitRepo),
		"Platform: "+i.Platform,
		"OS Version: "+i.OSVersion,
		"Today's date: "+i.Date,
		"</env>",
	)
	return strings.Join(lines, "\n")
}

func formatDate(cfg *config.AppConfig, now time.Time) string {
	if !cfg.IncludeDatetime {
		return now.Format("2006-01-02")
	}
	if cfg.DatetimeIncludeTimezone {
		return now.Format("2006-01-02 15:04:05 MST")
	}
	return now.Format("2006-01-02 15:04:05")
}

// resolveWorkingDir makes the configured directory absolute so the
// rendered block is unambiguous wherever the process was started.
func resolveWorkingDir(dir string) string {
	if dir == "" {
		dir = "."
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return dir
	}
	return filepath.Join(cwd, dir)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
