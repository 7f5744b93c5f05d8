package rules

import "github.com/codewithboateng/codegate/internal/gate"

func pythonRules() []Rule {
	scope := gate.ScopeFor(gate.LangPython)
	return []Rule{
		{
			ID:       "PY-SEC-OS-SYSTEM",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "Shell execution via os.system.",
			Pattern:  `(?i)os\.system\s*\(`,
			Message:  "Command injection risk - use subprocess with a list of arguments.",
		},
		{
			ID:       "PY-SEC-IMPORT-SYSTEM",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "Direct import of os.system.",
			Pattern:  `(?i)from\s+os\s+import\s+system`,
			Message:  "Command injection risk - use subprocess instead of os.system.",
		},
		{
			ID:       "PY-SEC-PICKLE-LOAD",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "Deserialization via pickle.load(s).",
			Pattern:  `(?i)pickle\.loads?\s*\(`,
			Message:  "Arbitrary code execution risk - use JSON for untrusted data.",
		},
		{
			ID:       "PY-SEC-IMPORT-PICKLE",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "pickle imported at module top.",
			Pattern:  `(?im)^\s*import\s+pickle\b`,
			Message:  "Unsafe deserialization - avoid pickle with untrusted data.",
		},
		{
			ID:       "PY-SEC-OPEN-CONCAT",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "File opened on a concatenated path.",
			Pattern:  `(?i)open\s*\([^)]*\+[^)]*\)`,
			Message:  "Path traversal risk - validate and sanitize file paths before opening.",
		},
		{
			ID:       "PY-QUAL-MUTABLE-DEFAULT",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Mutable default argument.",
			Pattern:  `(?i)def\s+\w+\s*\([^)]*=\s*(?:\[|\{|set\()`,
			Message:  "Mutable default argument - default to None and initialize inside the function.",
		},
		{
			ID:       "PY-QUAL-OPEN-NO-WITH",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "File handle assigned outside a with block.",
			Pattern:  `(?i)=\s*open\s*\(`,
			Unless:   `(?i)\bwith\b`,
			Message:  "File opened without a context manager - use \"with open(...) as f:\".",
		},
		{
			ID:       "PY-QUAL-BARE-EXCEPT",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Bare except clause.",
			Pattern:  `(?i)except\s*:`,
			Message:  "Bare except clause - catch specific exceptions.",
		},
		{
			ID:       "PY-QUAL-BROAD-EXCEPT",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "except Exception / BaseException.",
			Pattern:  `(?i)except\s+(?:Exception|BaseException)\b`,
			Message:  "Catching Exception is too broad - catch specific exception types.",
		},
		{
			ID:       "PY-QUAL-DEBUG-PRINT",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "print() statement left in place.",
			Pattern:  `(?m)^\s*print\s*\(`,
			Message:  "print() in production code - use the logging module.",
		},
		{
			ID:       "PY-QUAL-LIST-RANGE",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "list() wrapped around range().",
			Pattern:  `(?i)list\s*\(\s*range\s*\(`,
			Unless:   `(?i)\bfor\b`,
			Message:  "Unnecessary list() around range() - iterate the range directly.",
		},
	}
}
