package status

import "strings"

// Tier buckets a path by how much space it deserves in the report.
type Tier int

const (
	// TierIgnored marks dependency caches and build artifacts. These
	// are never shown inline, only counted.
	TierIgnored Tier = iota + 1
	// TierSupport marks lockfiles, editor configuration and logs.
	// Shown after source files, under a small cap.
	TierSupport
	// TierSource is everything else. Source changes show first and
	// get the largest budget.
	TierSource
)

// tier1Patterns match generated noise that should never spend report
// budget. Extendable per report via Policy.Tier1PatternsExtend.
var tier1Patterns = []string{
	"node_modules/**",
	".venv/**",
	"__pycache__/**",
	"build/**",
	"dist/**",
	"*.pyc",
	"*.pyo",
}

// tier2Patterns match support files worth a mention but not budget.
var tier2Patterns = []string{
	"package-lock.json",
	"yarn.lock",
	"Gemfile.lock",
	".vscode/**",
	".idea/**",
	"*.log",
}

type patternKind int

const (
	patternDir    patternKind = iota // "name/**": anything under name at any depth
	patternSuffix                    // "*.ext": path suffix match
	patternBase                      // plain name: exact final path component
)

// pattern is one pre-compiled classification rule. Matching is pure
// string comparison against slash-separated relative paths, never a
// filesystem lookup.
type pattern struct {
	kind  patternKind
	value string
}

func compilePattern(raw string) (pattern, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return pattern{}, false
	case strings.HasSuffix(raw, "/**"):
		dir := strings.TrimSuffix(raw, "/**")
		if dir == "" {
			return pattern{}, false
		}
		return pattern{kind: patternDir, value: dir + "/"}, true
	case strings.HasPrefix(raw, "*"):
		suffix := strings.TrimPrefix(raw, "*")
		if suffix == "" {
			return pattern{}, false
		}
		return pattern{kind: patternSuffix, value: suffix}, true
	default:
		return pattern{kind: patternBase, value: raw}, true
	}
}

func (p pattern) matches(path string) bool {
	switch p.kind {
	case patternDir:
		return strings.HasPrefix(path, p.value) || strings.Contains(path, "/"+p.value)
	case patternSuffix:
		return strings.HasSuffix(path, p.value)
	default:
		return path == p.value || strings.HasSuffix(path, "/"+p.value)
	}
}

func compilePatterns(raws []string) []pattern {
	compiled := make([]pattern, 0, len(raws))
	for _, raw := range raws {
		if p, ok := compilePattern(raw); ok {
			compiled = append(compiled, p)
		}
	}
	return compiled
}

// Classifier assigns paths to tiers. The zero value is unusable;
// construct with NewClassifier.
type Classifier struct {
	ignored []pattern
	support []pattern
}

// NewClassifier compiles the built-in pattern sets plus any extra
// tier-1 patterns. Extra patterns only ever widen the ignored tier;
// the support tier is fixed.
func NewClassifier(tier1Extend []string) *Classifier {
	ignored := compilePatterns(tier1Patterns)
	ignored = append(ignored, compilePatterns(tier1Extend)...)
	return &Classifier{
		ignored: ignored,
		support: compilePatterns(tier2Patterns),
	}
}

// Classify returns the tier for a path. First match wins, ignored
// before support; unmatched paths fall through to TierSource. Rename
// entries are classified against the full "old -> new" string.
// Matching is case-sensitive.
func (c *Classifier) Classify(path string) Tier {
	for _, p := range c.ignored {
		if p.matches(path) {
			return TierIgnored
		}
	}
	for _, p := range c.support {
		if p.matches(path) {
			return TierSupport
		}
	}
	return TierSource
}
