package status

import (
	"fmt"
	"strings"
)

// Policy is the complete truncation configuration for one report.
// Callers build it once at the configuration boundary and treat it as
// immutable; BuildReport never mutates it.
type Policy struct {
	// IncludeUntracked controls whether untracked paths appear inline.
	// When false they are still counted and reported as a single
	// omission line.
	IncludeUntracked bool
	// MaxUntracked caps inline untracked paths. 0 means unlimited.
	MaxUntracked int
	// MaxTracked caps inline tracked source paths. 0 means unlimited.
	MaxTracked int
	// Tier2Limit caps inline support paths. 0 means unlimited.
	Tier2Limit int
	// MaxLines is the absolute ceiling on report lines. 0 disables
	// the ceiling. When it fires the report is cut to exactly
	// MaxLines lines plus one truncation notice.
	MaxLines int
	// EnableTierFiltering toggles classification. When false every
	// record is treated as TierSource and only the tracked and
	// untracked caps apply.
	EnableTierFiltering bool
	// Tier1PatternsExtend adds patterns to the ignored tier.
	Tier1PatternsExtend []string
	// ShowFilterSummary toggles the accounting lines for ignored
	// paths, both the filtered count and the tracked-in-ignored
	// warning block.
	ShowFilterSummary bool
}

// DefaultPolicy returns the stock limits used when no configuration
// overrides them.
func DefaultPolicy() Policy {
	return Policy{
		IncludeUntracked:    true,
		MaxUntracked:        20,
		MaxTracked:          50,
		Tier2Limit:          10,
		MaxLines:            0,
		EnableTierFiltering: true,
		ShowFilterSummary:   true,
	}
}

// warningExampleLimit is how many offending paths the tracked-in-
// ignored warning block lists before collapsing the rest.
const warningExampleLimit = 3

// BuildReport runs the full pipeline over raw status output: parse,
// classify, budget each tier, then apply the hard line ceiling. The
// result is a newline-joined report with no trailing newline. Empty
// input, whitespace-only input, and input whose every line is
// filtered away all yield CleanMessage. BuildReport performs no I/O
// and cannot fail.
func BuildReport(raw string, pol Policy) string {
	records := Parse(raw)
	if len(records) == 0 {
		return CleanMessage
	}

	var classifier *Classifier
	if pol.EnableTierFiltering {
		classifier = NewClassifier(pol.Tier1PatternsExtend)
	}

	var (
		tracked          []StatusRecord
		support          []StatusRecord
		untracked        []StatusRecord
		ignoredTracked   []StatusRecord
		ignoredUntracked int
	)
	for _, rec := range records {
		tier := TierSource
		if classifier != nil {
			tier = classifier.Classify(rec.Path)
		}
		switch {
		case tier == TierIgnored && rec.Untracked():
			ignoredUntracked++
		case tier == TierIgnored:
			ignoredTracked = append(ignoredTracked, rec)
		case tier == TierSupport:
			support = append(support, rec)
		case rec.Untracked():
			untracked = append(untracked, rec)
		default:
			tracked = append(tracked, rec)
		}
	}

	var lines []string
	lines = appendBudgeted(lines, tracked, pol.MaxTracked, "... (%d more tracked files omitted)")

	shown, omitted := applyLimit(len(support), pol.Tier2Limit)
	for _, rec := range support[:shown] {
		lines = append(lines, rec.Raw)
	}
	if omitted > 0 {
		lines = append(lines, fmt.Sprintf("%d more support files omitted", omitted))
	}

	if pol.IncludeUntracked {
		lines = appendBudgeted(lines, untracked, pol.MaxUntracked, "... (%d more untracked files omitted)")
	} else if len(untracked) > 0 {
		lines = append(lines, fmt.Sprintf("... (%d untracked files omitted)", len(untracked)))
	}

	if pol.ShowFilterSummary {
		if ignoredUntracked > 0 {
			lines = append(lines, fmt.Sprintf("[Filtered: %d untracked files in ignored paths]", ignoredUntracked))
		}
		lines = append(lines, warningBlock(ignoredTracked)...)
	}

	if pol.MaxLines > 0 && len(lines) > pol.MaxLines {
		lines = append(lines[:pol.MaxLines],
			fmt.Sprintf("[Hard limit reached: output truncated to %d lines]", pol.MaxLines))
	}

	if len(lines) == 0 {
		return CleanMessage
	}
	return strings.Join(lines, "\n")
}

// applyLimit splits total into the shown and omitted counts under
// limit, where limit <= 0 means unlimited.
func applyLimit(total, limit int) (shown, omitted int) {
	if limit <= 0 || total <= limit {
		return total, 0
	}
	return limit, total - limit
}

// appendBudgeted emits up to limit raw record lines followed by a
// formatted omission line carrying the overflow count.
func appendBudgeted(lines []string, records []StatusRecord, limit int, format string) []string {
	shown, omitted := applyLimit(len(records), limit)
	for _, rec := range records[:shown] {
		lines = append(lines, rec.Raw)
	}
	if omitted > 0 {
		lines = append(lines, fmt.Sprintf(format, omitted))
	}
	return lines
}

// warningBlock renders the misconfiguration callout for tracked paths
// living inside ignored directories. Empty input yields no lines.
func warningBlock(tracked []StatusRecord) []string {
	if len(tracked) == 0 {
		return nil
	}
	block := []string{fmt.Sprintf("[WARNING: %d tracked files in ignored paths]", len(tracked))}
	shown, extra := applyLimit(len(tracked), warningExampleLimit)
	for _, rec := range tracked[:shown] {
		block = append(block, "  "+rec.Path)
	}
	if extra > 0 {
		block = append(block, fmt.Sprintf("  and %d more", extra))
	}
	block = append(block, "[Suggestion: These directories should not be tracked]")
	return block
}
