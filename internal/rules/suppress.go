package rules

import (
	"path/filepath"
	"strings"

	"github.com/codewithboateng/codegate/internal/gate"
	"github.com/codewithboateng/codegate/internal/storage"
)

// ApplySuppressions filters out findings that match any active
// suppression. Returns (kept, suppressedCount).
func ApplySuppressions(in []gate.Finding, sups []storage.Suppression) ([]gate.Finding, int) {
	if len(sups) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []gate.Finding
	suppressed := 0
nextFinding:
	for _, f := range in {
		for _, s := range sups {
			if !eqCI(f.RuleID, s.RuleID) {
				continue
			}
			if s.PathGlob != "" && !globMatch(s.PathGlob, f.Path) {
				continue
			}
			if s.PatternSub != "" {
				sub := strings.ToLower(s.PatternSub)
				if !strings.Contains(strings.ToLower(f.Snippet), sub) &&
					!strings.Contains(strings.ToLower(f.Message), sub) {
					continue
				}
			}
			suppressed++
			continue nextFinding
		}
		out = append(out, f)
	}
	return out, suppressed
}

// globMatch matches the glob against both the full path and its base
// name, so "vendor/*" and "*.gen.go" both behave as operators expect.
func globMatch(glob, path string) bool {
	if ok, err := filepath.Match(glob, path); err == nil && ok {
		return true
	}
	ok, err := filepath.Match(glob, filepath.Base(path))
	return err == nil && ok
}

func eqCI(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
