package rules

import "github.com/codewithboateng/codegate/internal/gate"

// Universal security rules. A match here means a near-certain
// exploitable defect if written verbatim, so every rule blocks.
func securityRules() []Rule {
	return []Rule{
		{
			ID:       "SEC-SQL-INTERP",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "SQL statement built with template interpolation.",
			Pattern:  `(?i)\b(?:SELECT|INSERT|UPDATE|DELETE)\b[^\n]*\$\{`,
			Message:  "SQL injection risk - use parameterized queries instead of string interpolation.",
		},
		{
			ID:       "SEC-SQL-FORMAT",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "SQL statement built with %-style string formatting.",
			Pattern:  `(?i)\b(?:SELECT|INSERT|UPDATE|DELETE)\b[^\n]*%s[^\n]*%`,
			Message:  "SQL injection risk - use parameterized queries, not %-formatting.",
		},
		{
			ID:       "SEC-SQL-FSTRING",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "execute() called with an f-string.",
			Pattern:  `(?i)execute\s*\(\s*f["']`,
			Message:  "SQL injection risk - use parameterized queries, not f-strings.",
		},
		{
			ID:       "SEC-EVAL",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "Dynamic code evaluation via eval().",
			Pattern:  `(?i)\beval\s*\(`,
			Message:  "eval() executes arbitrary code - parse the input instead.",
		},
		{
			ID:       "SEC-EXEC",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "Dynamic code execution via exec().",
			Pattern:  `(?i)(?:^|[^.\w])exec\s*\(`,
			Message:  "exec() executes arbitrary code - remove it or isolate the input.",
		},
		{
			ID:       "SEC-NEW-FUNCTION",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "Code built at runtime with new Function().",
			Pattern:  `new\s+Function\s*\(`,
			Message:  "new Function() is code injection - construct behavior statically.",
		},
		{
			ID:       "SEC-HARDCODED-PASSWORD",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "Password literal assigned in source.",
			Pattern:  `(?i)password\s*=\s*["'][^"']+["']`,
			Message:  "Hardcoded password - load credentials from the environment or a secret store.",
		},
		{
			ID:       "SEC-HARDCODED-APIKEY",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "API key literal assigned in source.",
			Pattern:  `(?i)api[_-]?key\s*=\s*["'][^"']{10,}["']`,
			Message:  "Hardcoded API key - load credentials from the environment or a secret store.",
		},
		{
			ID:       "SEC-HARDCODED-SECRET",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "Secret literal assigned in source.",
			Pattern:  `(?i)secret\s*=\s*["'][^"']{10,}["']`,
			Message:  "Hardcoded secret - load credentials from the environment or a secret store.",
		},
		{
			ID:       "SEC-HARDCODED-TOKEN",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityBlock,
			Summary:  "Token literal assigned in source.",
			Pattern:  `(?i)token\s*=\s*["'][^"']{20,}["']`,
			Message:  "Hardcoded token - load credentials from the environment or a secret store.",
		},
	}
}
