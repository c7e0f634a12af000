// Package git wraps the git commands slimstatus shells out to.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chmouel/slimstatus/internal/config"
	log "github.com/chmouel/slimstatus/internal/log"
	"github.com/chmouel/slimstatus/internal/models"
	"github.com/chmouel/slimstatus/internal/status"
)

// NotifyOnceFn reports failure messages. The key lets receivers
// deduplicate repeated reports of the same problem.
type NotifyOnceFn func(key string, message string, severity string)

// Service runs git commands against one working directory. Every
// lookup degrades to an empty result on failure; the snapshot must
// never break the caller.
type Service struct {
	workDir    string
	timeout    time.Duration
	notifyOnce NotifyOnceFn

	mu         sync.Mutex
	mainBranch string
	probedMain bool
}

// NewService constructs a Service for workDir. A timeout of zero
// disables the per-invocation deadline.
func NewService(workDir string, timeout time.Duration, notifyOnce NotifyOnceFn) *Service {
	if notifyOnce == nil {
		notifyOnce = func(string, string, string) {}
	}
	return &Service{
		workDir:    workDir,
		timeout:    timeout,
		notifyOnce: notifyOnce,
	}
}

// WorkDir returns the directory the service operates on.
func (s *Service) WorkDir() string {
	return s.workDir
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func prepareAllowedCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}
	if args[0] != "git" {
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
	// #nosec G204 -- arguments come from internal call sites and are not shell interpolated
	return exec.CommandContext(ctx, "git", args[1:]...), nil
}

// RunGit executes a git command and optionally trims its output.
// Exit codes listed in okReturncodes are treated as success with
// whatever output was produced; other failures return "" and, unless
// silent is set, are reported through the notify callback.
func (s *Service) RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string {
	command := strings.Join(args, " ")
	if command == "" {
		command = "<empty>"
	}
	s.debugf("run: %s (cwd=%s)", command, cwd)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		key := fmt.Sprintf("unsupported_cmd:%s", command)
		s.notifyOnce(key, fmt.Sprintf("Unsupported command: %s", command), "error")
		s.debugf("error: %s (unsupported command)", command)
		return ""
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.debugf("abandoned: %s (%v)", command, ctxErr)
			return ""
		}
		if exitError, ok := err.(*exec.ExitError); ok {
			returnCode := exitError.ExitCode()
			allowed := slices.Contains(okReturncodes, returnCode)
			if !allowed {
				if silent {
					s.debugf("error: %s (exit %d, silenced)", command, returnCode)
					return ""
				}
				stderr := string(exitError.Stderr)
				suffix := ""
				if stderr != "" {
					suffix = ": " + strings.TrimSpace(stderr)
				} else {
					suffix = fmt.Sprintf(" (exit %d)", returnCode)
				}
				key := fmt.Sprintf("git_fail:%s:%s", cwd, command)
				s.notifyOnce(key, fmt.Sprintf("Command failed: %s%s", command, suffix), "error")
				s.debugf("error: %s%s", command, suffix)
				return ""
			}
		} else {
			if !silent {
				name := "<unknown>"
				if len(args) > 0 {
					name = args[0]
				}
				key := fmt.Sprintf("cmd_missing:%s", name)
				s.notifyOnce(key, fmt.Sprintf("Command not found: %s", name), "error")
				s.debugf("error: command not found: %s", name)
			}
			return ""
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	s.debugf("ok: %s", command)
	return out
}

// IsRepo reports whether the working directory is inside a git work
// tree.
func (s *Service) IsRepo(ctx context.Context) bool {
	out := s.RunGit(ctx, []string{"git", "rev-parse", "--is-inside-work-tree"}, s.workDir, []int{0, 128}, true, true)
	return out == "true"
}

// CurrentBranch returns the checked out branch, empty on detached
// HEAD or failure.
func (s *Service) CurrentBranch(ctx context.Context) string {
	return s.RunGit(ctx, []string{"git", "branch", "--show-current"}, s.workDir, []int{0}, true, true)
}

// MainBranch returns the long-lived integration branch, probing main
// before master. The result, including "neither exists", is cached
// for the life of the service.
func (s *Service) MainBranch(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.probedMain {
		return s.mainBranch
	}
	s.probedMain = true

	for _, name := range []string{"main", "master"} {
		if s.verifyRef(ctx, "refs/heads/"+name) {
			s.mainBranch = name
			break
		}
	}
	return s.mainBranch
}

func (s *Service) verifyRef(ctx context.Context, ref string) bool {
	// With --quiet a missing ref exits 1 without output.
	out := s.RunGit(ctx, []string{"git", "rev-parse", "--verify", "--quiet", ref}, s.workDir, []int{0, 1}, true, true)
	return out != ""
}

// RecentCommits returns up to n one-line commit summaries, newest
// first. Empty on a repository without commits.
func (s *Service) RecentCommits(ctx context.Context, n int) string {
	if n <= 0 {
		return ""
	}
	return s.RunGit(ctx, []string{"git", "log", "--oneline", "-" + strconv.Itoa(n)}, s.workDir, []int{0, 128}, true, true)
}

// RawStatus returns porcelain status output with the trailing newline
// removed but everything else untouched. The two leading columns of
// each line are significant, so the output is never space-trimmed.
func (s *Service) RawStatus(ctx context.Context) string {
	out := s.RunGit(ctx, []string{"git", "status", "--porcelain"}, s.workDir, []int{0}, false, true)
	return strings.TrimRight(out, "\n")
}

// CommonDir returns the absolute git common directory, shared by all
// worktrees of the repository.
func (s *Service) CommonDir(ctx context.Context) string {
	return s.RunGit(ctx, []string{"git", "rev-parse", "--path-format=absolute", "--git-common-dir"}, s.workDir, []int{0, 128}, true, true)
}

// Snapshot gathers the repository context the configuration asks for.
// The status field carries the rendered report, so a clean repository
// still reads "Working directory clean". Outside a repository, or
// with the git block disabled, Snapshot returns the zero value.
func (s *Service) Snapshot(ctx context.Context, cfg *config.AppConfig) models.RepoContext {
	var snap models.RepoContext

	if !cfg.IncludeGit || !s.IsRepo(ctx) {
		return snap
	}

	if cfg.GitIncludeBranch {
		snap.Branch = s.CurrentBranch(ctx)
	}
	if cfg.GitIncludeMainBranch {
		snap.MainBranch = s.MainBranch(ctx)
	}
	if cfg.GitIncludeStatus {
		snap.Status = status.BuildReport(s.RawStatus(ctx), cfg.StatusPolicy())
	}
	if cfg.GitIncludeCommits > 0 {
		snap.RecentCommits = s.RecentCommits(ctx, cfg.GitIncludeCommits)
	}
	return snap
}
