package rules

import "github.com/codewithboateng/codegate/internal/gate"

func rustRules() []Rule {
	scope := gate.ScopeFor(gate.LangRust)
	return []Rule{
		{
			ID:       "RS-QUAL-UNWRAP",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "unwrap() on a Result/Option.",
			Pattern:  `\.unwrap\s*\(\s*\)`,
			Message:  "unwrap() can panic - use expect() with a message or propagate the error.",
		},
		{
			ID:       "RS-QUAL-EMPTY-EXPECT",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "expect() with an empty message.",
			Pattern:  `\.expect\s*\(\s*["']\s*["']\s*\)`,
			Message:  "Empty expect message - say what failed.",
		},
		{
			ID:       "RS-QUAL-UNSAFE-BLOCK",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "unsafe block.",
			Pattern:  `\bunsafe\s*\{`,
			Message:  "Unsafe block - document the invariant that makes it sound.",
		},
		{
			ID:       "RS-QUAL-GET-UNCHECKED",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Unchecked slice access.",
			Pattern:  `\.get_unchecked(?:_mut)?\s*\(`,
			Message:  "get_unchecked() skips bounds checks - verify bounds and document safety.",
		},
		{
			ID:       "RS-QUAL-DOUBLE-CLONE",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Repeated clone() on one line.",
			Pattern:  `\.clone\(\)[^\n]*\.clone\(\)`,
			Message:  "Multiple clones - review ownership and borrowing.",
		},
		{
			ID:       "RS-QUAL-DEBUG-PRINTLN",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "println! left in place.",
			Pattern:  `\bprintln!\s*\(`,
			Message:  "println! in production code - use the log/tracing crates.",
		},
	}
}
