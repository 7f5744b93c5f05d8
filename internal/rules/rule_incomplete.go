package rules

import "github.com/codewithboateng/codegate/internal/gate"

// Universal incompleteness rules: textual markers of unfinished work.
// These warn - the write proceeds, but the caller must surface them.
func incompleteRules() []Rule {
	return []Rule{
		{
			ID:       "INC-TODO",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "TODO marker left in a comment.",
			Pattern:  `(?i)(?://|#|/\*)\s*TODO\b`,
			Message:  "TODO comment found - implementation incomplete.",
		},
		{
			ID:       "INC-FIXME",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "FIXME marker left in a comment.",
			Pattern:  `(?i)(?://|#|/\*)\s*FIXME\b`,
			Message:  "FIXME comment found - known issue not resolved.",
		},
		{
			ID:       "INC-HACK",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "HACK marker left in a comment.",
			Pattern:  `(?i)(?://|#|/\*)\s*HACK\b`,
			Message:  "HACK comment found - needs a proper solution.",
		},
		{
			ID:       "INC-FOR-NOW",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "Deferred-work phrasing: \"for now\".",
			Pattern:  `(?i)\bfor now\b`,
			Message:  "\"For now\" solution detected - not production ready.",
		},
		{
			ID:       "INC-TEMPORARY",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "Deferred-work phrasing: temporary fix/workaround.",
			Pattern:  `(?i)\btemporary (?:fix|hack|workaround|solution)\b`,
			Message:  "Temporary solution detected - needs completion.",
		},
		{
			ID:       "INC-ADD-LATER",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "Deferred-work phrasing: \"add this later\".",
			Pattern:  `(?i)\badd (?:this |it )?later\b`,
			Message:  "Deferred implementation detected.",
		},
		{
			ID:       "INC-PLACEHOLDER",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "Placeholder left in source.",
			Pattern:  `(?i)\bplaceholder\b`,
			Message:  "Placeholder detected - needs a real implementation.",
		},
		{
			ID:       "INC-EMPTY-FUNC",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "Function declared with an empty body.",
			Pattern:  `(?i)function\s+\w+\s*\([^)]*\)\s*\{\s*\}`,
			Window:   2,
			Message:  "Empty function body - implement or remove the stub.",
		},
		{
			ID:       "INC-EMPTY-CATCH",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "catch block with no error handling.",
			Pattern:  `(?i)catch\s*\([^)]*\)\s*\{\s*\}`,
			Window:   2,
			Message:  "Empty catch block - handle or rethrow the error.",
		},
		{
			ID:       "INC-EMPTY-EXCEPT",
			Scope:    gate.ScopeUniversal,
			Severity: gate.SeverityWarn,
			Summary:  "except clause that only passes.",
			Pattern:  `(?i)except[^:\n]*:\s*\n\s*pass\b`,
			Window:   2,
			Message:  "Empty except block - log the error or re-raise.",
		},
	}
}
