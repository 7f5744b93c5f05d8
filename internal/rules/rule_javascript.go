package rules

import "github.com/codewithboateng/codegate/internal/gate"

// JavaScript and TypeScript share the same DOM/async hazards, but each
// language owns its findings: scoped rule sets never bleed across
// languages, so the shared definitions are stamped out once per scope
// with scope-prefixed ids.
func scriptRules(prefix string, scope gate.Scope) []Rule {
	return []Rule{
		{
			ID:       prefix + "-SEC-CHILD-PROCESS-EXEC",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "Shell execution via child_process.exec / execSync.",
			Pattern:  `(?:child_process\.exec|\bexecSync)\s*\(`,
			Message:  "Command injection risk - use execFile/execFileSync with an argument list.",
		},
		{
			ID:       prefix + "-SEC-DANGEROUS-HTML",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "React dangerouslySetInnerHTML usage.",
			Pattern:  `dangerouslySetInnerHTML`,
			Message:  "XSS risk - sanitize the content or render it as text.",
		},
		{
			ID:       prefix + "-SEC-DOCUMENT-WRITE",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "document.write call.",
			Pattern:  `document\.write\s*\(`,
			Message:  "XSS and performance risk - use safer DOM methods.",
		},
		{
			ID:       prefix + "-SEC-INNERHTML",
			Scope:    scope,
			Severity: gate.SeverityBlock,
			Summary:  "Assignment to innerHTML.",
			Pattern:  `\.innerHTML\s*=`,
			Message:  "XSS risk - use textContent or sanitize the content.",
		},
		{
			ID:       prefix + "-QUAL-THEN-NO-CATCH",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Promise chain with no .catch in sight.",
			Pattern:  `\.then\s*\(`,
			Unless:   `\.catch\s*\(`,
			Window:   2,
			Message:  "Promise without .catch() - unhandled rejection risk.",
		},
		{
			ID:       prefix + "-QUAL-LISTENER-LEAK",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Event listener added without matching cleanup.",
			Pattern:  `addEventListener\s*\(`,
			Unless:   `removeEventListener`,
			Window:   2,
			Message:  "Event listener added without cleanup - potential memory leak.",
		},
		{
			ID:       prefix + "-QUAL-SETINTERVAL",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "setInterval without a clearInterval nearby.",
			Pattern:  `\bsetInterval\s*\(`,
			Unless:   `clearInterval`,
			Window:   2,
			Message:  "setInterval without clearInterval - potential memory leak.",
		},
		{
			ID:       prefix + "-QUAL-CONSOLE-LOG",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "console.log/debug left in place.",
			Pattern:  `console\.(?:log|debug)\s*\(`,
			Message:  "console.log in production code - use the project logger.",
		},
	}
}

func javascriptRules() []Rule {
	return scriptRules("JS", gate.ScopeFor(gate.LangJavaScript))
}

func typescriptRules() []Rule {
	scope := gate.ScopeFor(gate.LangTypeScript)
	out := scriptRules("TS", scope)
	out = append(out,
		Rule{
			ID:       "TS-QUAL-ANY",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Parameter or variable typed as any.",
			Pattern:  `:\s*any\b`,
			Message:  "TypeScript \"any\" reduces type safety - narrow the type.",
		},
		Rule{
			ID:       "TS-QUAL-AS-ANY",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Assertion to any.",
			Pattern:  `\bas\s+any\b`,
			Message:  "Assertion to \"any\" bypasses type checking - assert a concrete type.",
		},
		Rule{
			ID:       "TS-QUAL-TS-SUPPRESS",
			Scope:    scope,
			Severity: gate.SeverityInform,
			Summary:  "Compiler suppression directive.",
			Pattern:  `@ts-(?:ignore|nocheck|expect-error)`,
			Message:  "Type-error suppression directive - fix the underlying type error.",
		},
	)
	return out
}
