package rules

import (
	"regexp"

	"github.com/codewithboateng/codegate/internal/gate"
)

// Rule is the atomic unit of detection. Scope and severity are pure
// data; the evaluator never branches on a rule's identity.
type Rule struct {
	ID       string
	Scope    gate.Scope
	Severity gate.Severity
	Summary  string
	Message  string

	// Pattern is matched per logical line (RE2; case-insensitivity is
	// the pattern's own business via (?i)). Window > 1 joins that many
	// consecutive lines before matching, for constructs like an empty
	// exception block that spans two lines. Unless vetoes a match when
	// it also matches the same window.
	Pattern string
	Unless  string
	Window  int

	re     *regexp.Regexp
	unless *regexp.Regexp
}

// maxWindow bounds multi-line lookahead so worst-case evaluation cost
// stays linear in text size.
const maxWindow = 2
