package rules

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/codewithboateng/codegate/internal/gate"
)

// Diagnostics carries evaluation side notes that are not findings:
// whether the run was cut short, and rules whose matcher failed against
// this input and were skipped rather than aborting the batch.
type Diagnostics struct {
	Partial      bool
	SkippedRules []string
}

const (
	maxSnippet    = 120
	ctxCheckEvery = 128
)

// Evaluate applies the universal and language-scoped rules to candidate
// text. Text is treated as newline-delimited lines with no assumption of
// valid syntax; line numbers in findings are 1-based. On context
// cancellation the findings gathered so far are returned with
// Diagnostics.Partial set; the resolver fails closed on that flag.
func (r *Registry) Evaluate(ctx context.Context, lang gate.Language, text string) ([]gate.Finding, Diagnostics) {
	applicable := r.ForLanguage(lang)
	if len(applicable) == 0 || text == "" {
		return nil, Diagnostics{}
	}

	lines := splitLines(text)
	var (
		findings []gate.Finding
		diags    Diagnostics
		skipped  map[string]bool
		seen     = map[lineKey]struct{}{}
	)

	for i := range lines {
		if i%ctxCheckEvery == 0 && ctx.Err() != nil {
			diags.Partial = true
			return findings, diags
		}
		for ri := range applicable {
			rule := &applicable[ri]
			window := lines[i]
			if rule.Window > 1 && i+1 < len(lines) {
				window = lines[i] + "\n" + lines[i+1]
			}
			matched, snippet, ok := matchRule(rule, window, len(lines[i]))
			if !ok {
				if skipped == nil {
					skipped = map[string]bool{}
				}
				if !skipped[rule.ID] {
					skipped[rule.ID] = true
					diags.SkippedRules = append(diags.SkippedRules, rule.ID)
				}
				continue
			}
			if !matched {
				continue
			}
			key := lineKey{rule.ID, i + 1}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			findings = append(findings, gate.Finding{
				Language: lang,
				RuleID:   rule.ID,
				Severity: rule.Severity,
				Line:     i + 1,
				Snippet:  snippet,
				Message:  rule.Message,
			})
		}
	}
	return findings, diags
}

type lineKey struct {
	rule string
	line int
}

// matchRule runs one rule against one window. The match must start
// within the window's first line: a hit that begins on the second line
// belongs to the next anchor and would otherwise be reported twice, on
// the wrong line, past the unless veto. The veto itself still scans the
// whole window so a remedy on the following line counts. A matcher that
// panics on pathological input downgrades to a recoverable no-match
// (ok=false) so one bad rule never blocks unrelated detections.
func matchRule(rule *Rule, window string, firstLen int) (matched bool, snippet string, ok bool) {
	defer func() {
		if recover() != nil {
			matched, snippet, ok = false, "", false
		}
	}()
	if rule.re == nil {
		return false, "", true
	}
	loc := rule.re.FindStringIndex(window)
	if loc == nil || loc[0] > firstLen {
		return false, "", true
	}
	if rule.unless != nil && rule.unless.MatchString(window) {
		return false, "", true
	}
	return true, snippetOf(window[loc[0]:loc[1]]), true
}

// snippetOf collapses the matched substring so the report cites the
// offending token, not the whole line. Truncation backs up to a rune
// boundary so the JSON report never carries invalid UTF-8.
func snippetOf(match string) string {
	s := strings.Join(strings.Fields(match), " ")
	if len(s) > maxSnippet {
		cut := maxSnippet
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
