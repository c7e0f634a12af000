// Package status turns raw porcelain status text into a compact,
// budgeted report safe to embed in a size-constrained prompt window.
// Everything in this package is pure string transformation: no I/O,
// no errors, no shared state between invocations.
package status

import "strings"

// untrackedCode is the porcelain XY code for paths unknown to git.
const untrackedCode = "??"

// CleanMessage is the report emitted when there is nothing to show.
const CleanMessage = "Working directory clean"

// StatusRecord is one parsed status line. Raw keeps the original line
// untouched; the reporter always prints Raw so codes and spacing
// round-trip exactly.
type StatusRecord struct {
	Code string // two-character XY status code
	Path string // path portion, may contain a rename arrow "old -> new"
	Raw  string // the unmodified input line
}

// Untracked reports whether the record is unknown to version control.
// Every other code, including the two-sided conflict codes (UU, AA,
// DD, AU, UA, DU, UD), counts as tracked.
func (r StatusRecord) Untracked() bool {
	return r.Code == untrackedCode
}

// Parse splits raw status output into records. Input is LF-separated,
// as porcelain output always is. Blank lines are skipped; lines are
// never trimmed because a leading space is part of the status code. A
// line shorter than two characters becomes a record whose Code is the
// whole line and whose Path is empty. Parse never fails.
func Parse(raw string) []StatusRecord {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var records []StatusRecord
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := StatusRecord{Raw: line}
		if len(line) < 2 {
			rec.Code = line
		} else {
			rec.Code = line[:2]
			rec.Path = strings.TrimPrefix(line[2:], " ")
		}
		records = append(records, rec)
	}
	return records
}
