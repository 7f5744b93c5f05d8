package rules

import "github.com/codewithboateng/codegate/internal/gate"

func goRules() []Rule {
	scope := gate.ScopeFor(gate.LangGo)
	return []Rule{
		{
			ID:       "GO-SEC-SHELL-EXEC",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "Shell spawned through exec.Command.",
			Pattern:  `exec\.Command\s*\(\s*["'](?:sh|bash)["']`,
			Message:  "Command injection risk - invoke the target binary directly with argument slices.",
		},
		{
			ID:       "GO-SEC-SQL-SPRINTF",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "SQL query built with fmt.Sprintf.",
			Pattern:  `db\.(?:Query|Exec)(?:Context)?\s*\([^)]*fmt\.Sprintf`,
			Message:  "SQL injection risk - use prepared statements with placeholders.",
		},
		{
			ID:       "GO-QUAL-EMPTY-ERR",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "err checked, then nothing.",
			Pattern:  `if\s+err\s*!=\s*nil\s*\{\s*\}`,
			Window:   2,
			Message:  "Empty error handler - handle the error or drop the check.",
		},
		{
			ID:       "GO-QUAL-BARE-RETURN-ERR",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "err checked, then returned without the error.",
			Pattern:  `if\s+err\s*!=\s*nil\s*\{\s*return\s*\}`,
			Window:   2,
			Message:  "Error dropped at return - return or wrap the error with context.",
		},
		{
			ID:       "GO-QUAL-BLANK-ASSIGN",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Value assigned solely to the blank identifier.",
			Pattern:  `(?m)^\s*_\s*=\s*\S`,
			Message:  "Ignored value - handle it or document why discarding is safe.",
		},
		{
			ID:       "GO-QUAL-DEBUG-PRINT",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "fmt.Print* call left in place.",
			Pattern:  `fmt\.Print(?:ln|f)?\s*\(`,
			Message:  "fmt.Print in production code - use structured logging.",
		},
		{
			ID:       "GO-QUAL-PANIC",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "panic() outside init-time invariants.",
			Pattern:  `(?m)^\s*panic\s*\(`,
			Message:  "panic() in library code - return an error instead.",
		},
	}
}
