// Package models defines the data objects shared across slimstatus packages.
package models

// RepoContext is a point-in-time snapshot of the repository gathered
// once at startup. Fields are left empty when the underlying lookup
// failed; consumers render what is present and skip the rest.
type RepoContext struct {
	Branch        string // currently checked out branch, empty on detached HEAD
	MainBranch    string // long-lived integration branch, "main" or "master"
	Status        string // rendered status report, "Working directory clean" when nothing changed
	RecentCommits string // one line per commit, newest first
}

// Empty reports whether nothing could be gathered at all.
func (c RepoContext) Empty() bool {
	return c.Branch == "" && c.MainBranch == "" && c.Status == "" && c.RecentCommits == ""
}
