package gate

import (
	"sort"
	"strings"
	"time"
)

const Version = "1.0"

// Severity classes a rule. Ordering matters: block dominates warn,
// warn dominates inform.
type Severity int

const (
	SeverityInform Severity = iota + 1
	SeverityWarn
	SeverityBlock
)

func (s Severity) String() string {
	switch s {
	case SeverityBlock:
		return "block"
	case SeverityWarn:
		return "warn"
	case SeverityInform:
		return "inform"
	}
	return "unknown"
}

// ParseSeverity maps a severity name to its class. Unknown names rank
// as inform so a sloppy config never silently escalates.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return SeverityBlock, true
	case "warn":
		return SeverityWarn, true
	case "inform":
		return SeverityInform, true
	}
	return SeverityInform, false
}

// MarshalJSON/YAML friendliness: severities travel as their names.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	v, _ := ParseSeverity(string(b))
	*s = v
	return nil
}

// Language is the closed set of classifier outputs.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangUnknown    Language = "unknown"
)

// Scope is the language a rule applies to, or "universal".
type Scope string

const ScopeUniversal Scope = "universal"

func ScopeFor(lang Language) Scope { return Scope(lang) }

// Matches reports whether a rule with this scope applies to files
// classified as lang. Universal rules apply everywhere, including unknown.
func (s Scope) Matches(lang Language) bool {
	return s == ScopeUniversal || s == Scope(lang)
}

// ValidScope reports whether s is "universal" or a member of the closed
// language set. "unknown" is not a scope: unclassified files receive the
// universal rules and nothing else.
func ValidScope(s Scope) bool {
	if s == ScopeUniversal {
		return true
	}
	switch Language(s) {
	case LangJavaScript, LangTypeScript, LangPython, LangGo, LangRust, LangJava, LangC, LangCPP:
		return true
	}
	return false
}

// Finding is one rule match at one location in the candidate text.
type Finding struct {
	ID       string   `json:"id,omitempty"`
	Path     string   `json:"path,omitempty"`
	Language Language `json:"language,omitempty"`
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"` // 1-based
	Snippet  string   `json:"snippet,omitempty"`
	Message  string   `json:"message"`
}

// Outcome is the aggregate of all findings for one evaluation.
type Outcome int

const (
	OutcomeClean Outcome = iota
	OutcomeInform
	OutcomeWarn
	OutcomeBlock
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBlock:
		return "block"
	case OutcomeWarn:
		return "warn"
	case OutcomeInform:
		return "inform"
	}
	return "clean"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "block":
		*o = OutcomeBlock
	case "warn":
		*o = OutcomeWarn
	case "inform":
		*o = OutcomeInform
	default:
		*o = OutcomeClean
	}
	return nil
}

// Decision is the caller-facing signal. Deny and Advisory must never
// collapse into the same exit status.
type Decision int

const (
	Proceed Decision = iota
	Advisory
	Deny
)

func (d Decision) String() string {
	switch d {
	case Deny:
		return "deny"
	case Advisory:
		return "advisory"
	}
	return "proceed"
}

func (d Decision) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Decision) UnmarshalText(b []byte) error {
	switch string(b) {
	case "deny":
		*d = Deny
	case "advisory":
		*d = Advisory
	default:
		*d = Proceed
	}
	return nil
}

// ExitCode maps a decision onto the process exit contract:
// proceed 0, advisory 1, deny 2.
func (d Decision) ExitCode() int {
	switch d {
	case Deny:
		return 2
	case Advisory:
		return 1
	}
	return 0
}

// Verdict is the only artifact the caller observes structurally.
type Verdict struct {
	Outcome  Outcome   `json:"outcome"`
	Decision Decision  `json:"decision"`
	Partial  bool      `json:"partial,omitempty"`
	Findings []Finding `json:"findings"`
}

// Resolve reduces findings to a single verdict. Outcome is the maximum
// severity present, or clean. A partial evaluation (timeout, cancellation)
// fails closed: never below warn, and block stays block if one already
// landed before the cutoff.
func Resolve(findings []Finding, partial bool) Verdict {
	out := OutcomeClean
	for _, f := range findings {
		if o := outcomeFor(f.Severity); o > out {
			out = o
		}
	}
	if partial && out < OutcomeWarn {
		out = OutcomeWarn
	}
	SortFindings(findings)
	return Verdict{
		Outcome:  out,
		Decision: decisionFor(out),
		Partial:  partial,
		Findings: findings,
	}
}

func outcomeFor(s Severity) Outcome {
	switch s {
	case SeverityBlock:
		return OutcomeBlock
	case SeverityWarn:
		return OutcomeWarn
	case SeverityInform:
		return OutcomeInform
	}
	return OutcomeClean
}

func decisionFor(o Outcome) Decision {
	switch o {
	case OutcomeBlock:
		return Deny
	case OutcomeWarn:
		return Advisory
	}
	return Proceed
}

// SortFindings orders findings deterministically: severity descending,
// then path, ascending line, rule id.
func SortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Severity != fs[j].Severity {
			return fs[i].Severity > fs[j].Severity
		}
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].RuleID < fs[j].RuleID
	})
}

// Run aggregates one batch scan over many files.
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Source      string    `json:"source,omitempty"`
	GateVersion string    `json:"gate_version,omitempty"`

	Context  Context       `json:"context"`
	Files    []FileSummary `json:"files"`
	Findings []Finding     `json:"findings,omitempty"`
}

type Context struct {
	SeverityThreshold string   `json:"severity_threshold,omitempty"`
	DisabledRules     []string `json:"disabled_rules,omitempty"`
	RulePacks         []string `json:"rule_packs,omitempty"`
}

type FileSummary struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	Lines    int      `json:"lines"`
	Outcome  Outcome  `json:"outcome"`
	Skipped  bool     `json:"skipped,omitempty"`
}
