package rules

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/codewithboateng/codegate/internal/gate"
)

func evalText(t *testing.T, lang gate.Language, text string) ([]gate.Finding, Diagnostics) {
	t.Helper()
	return NewDefault().Evaluate(context.Background(), lang, text)
}

func hasRule(fs []gate.Finding, id string) bool {
	for _, f := range fs {
		if f.RuleID == id {
			return true
		}
	}
	return false
}

func TestPythonShellExecutionBlocks(t *testing.T) {
	findings, diags := evalText(t, gate.LangPython, `os.system(f"rm -rf {path}")`)
	if !hasRule(findings, "PY-SEC-OS-SYSTEM") {
		t.Fatalf("expected PY-SEC-OS-SYSTEM, got %v", findings)
	}
	if findings[0].Line != 1 {
		t.Fatalf("line = %d, want 1", findings[0].Line)
	}
	v := gate.Resolve(findings, diags.Partial)
	if v.Decision != gate.Deny {
		t.Fatalf("decision = %v, want deny", v.Decision)
	}
}

func TestTodoCommentIsAdvisory(t *testing.T) {
	findings, diags := evalText(t, gate.LangGo, "// TODO: add validation\n")
	if len(findings) != 1 || findings[0].RuleID != "INC-TODO" {
		t.Fatalf("expected exactly one INC-TODO, got %v", findings)
	}
	v := gate.Resolve(findings, diags.Partial)
	if v.Decision != gate.Advisory {
		t.Fatalf("decision = %v, want advisory", v.Decision)
	}
}

func TestEmptyExceptIsAdvisory(t *testing.T) {
	text := "try:\n    risky()\nexcept:\n    pass\n"
	findings, diags := evalText(t, gate.LangPython, text)
	if !hasRule(findings, "INC-EMPTY-EXCEPT") {
		t.Fatalf("expected INC-EMPTY-EXCEPT, got %v", findings)
	}
	v := gate.Resolve(findings, diags.Partial)
	if v.Decision != gate.Advisory {
		t.Fatalf("decision = %v, want advisory (warn dominates the inform bare-except)", v.Decision)
	}
}

func TestDebugPrintProceeds(t *testing.T) {
	findings, diags := evalText(t, gate.LangPython, `print("debug value", x)`)
	if len(findings) != 1 || findings[0].RuleID != "PY-QUAL-DEBUG-PRINT" {
		t.Fatalf("expected exactly one PY-QUAL-DEBUG-PRINT, got %v", findings)
	}
	v := gate.Resolve(findings, diags.Partial)
	if v.Decision != gate.Proceed {
		t.Fatalf("decision = %v, want proceed (inform never gates)", v.Decision)
	}
}

func TestCleanFileIsClean(t *testing.T) {
	text := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	findings, diags := evalText(t, gate.LangGo, text)
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
	v := gate.Resolve(findings, diags.Partial)
	if v.Outcome != gate.OutcomeClean || v.Decision != gate.Proceed {
		t.Fatalf("got %v/%v, want clean/proceed", v.Outcome, v.Decision)
	}
}

func TestLineNumbersAreOneBased(t *testing.T) {
	text := "const a = 1;\nconst b = 2;\neval(userInput);\n"
	findings, _ := evalText(t, gate.LangJavaScript, text)
	if !hasRule(findings, "SEC-EVAL") {
		t.Fatalf("expected SEC-EVAL, got %v", findings)
	}
	for _, f := range findings {
		if f.RuleID == "SEC-EVAL" && f.Line != 3 {
			t.Fatalf("SEC-EVAL line = %d, want 3", f.Line)
		}
	}
}

func TestWindowRuleMatchesAcrossTwoLines(t *testing.T) {
	text := "try { risky(); }\ncatch (e) {\n}\n"
	findings, _ := evalText(t, gate.LangJavaScript, text)
	count := 0
	for _, f := range findings {
		if f.RuleID == "INC-EMPTY-CATCH" {
			count++
			if f.Line != 2 {
				t.Fatalf("INC-EMPTY-CATCH line = %d, want 2 (window anchor)", f.Line)
			}
		}
	}
	if count != 1 {
		t.Fatalf("INC-EMPTY-CATCH count = %d, want exactly 1", count)
	}
}

func TestWindowRuleSingleLineMatchFiresOnce(t *testing.T) {
	// The empty-handler match sits entirely on line 2; the window
	// starting at line 1 also contains it and must not report it again.
	text := "x := compute()\nif err != nil {}\n"
	findings, _ := evalText(t, gate.LangGo, text)
	var lines []int
	for _, f := range findings {
		if f.RuleID == "GO-QUAL-EMPTY-ERR" {
			lines = append(lines, f.Line)
		}
	}
	if len(lines) != 1 || lines[0] != 2 {
		t.Fatalf("GO-QUAL-EMPTY-ERR fired at lines %v, want exactly [2]", lines)
	}
}

func TestUnlessHoldsFromPrecedingLine(t *testing.T) {
	// The window starting at line 1 sees the .then but not the .catch;
	// only the window anchored at the .then line decides, and it sees
	// the remedy.
	text := "load();\np.then(render)\n  .catch(showError);\n"
	findings, _ := evalText(t, gate.LangJavaScript, text)
	if hasRule(findings, "JS-QUAL-THEN-NO-CATCH") {
		t.Fatalf("handled promise chain warned: %v", findings)
	}
}

func TestUnlessVetoesMatchInWindow(t *testing.T) {
	// .then with a .catch within the two-line window: no finding.
	handled := "fetchUser(id).then(render)\n  .catch(showError);\n"
	findings, _ := evalText(t, gate.LangJavaScript, handled)
	if hasRule(findings, "JS-QUAL-THEN-NO-CATCH") {
		t.Fatalf("handled promise chain must not warn, got %v", findings)
	}

	unhandled := "fetchUser(id).then(render);\nrender();\n"
	findings, _ = evalText(t, gate.LangJavaScript, unhandled)
	if !hasRule(findings, "JS-QUAL-THEN-NO-CATCH") {
		t.Fatalf("unhandled promise chain must warn, got %v", findings)
	}
}

func TestScopedRulesStayInTheirLanguage(t *testing.T) {
	// document.write in a Go file: the JS rule must not fire, and the
	// universal set still applies.
	text := "s := \"document.write(x)\"\n"
	findings, _ := evalText(t, gate.LangGo, text)
	if hasRule(findings, "JS-SEC-DOCUMENT-WRITE") {
		t.Fatalf("javascript-scoped rule fired on go input: %v", findings)
	}
}

func TestUnknownLanguageGetsUniversalDetections(t *testing.T) {
	findings, _ := evalText(t, gate.LangUnknown, "eval(data)\n# TODO: remove\n")
	if !hasRule(findings, "SEC-EVAL") || !hasRule(findings, "INC-TODO") {
		t.Fatalf("universal rules must apply to unknown files, got %v", findings)
	}
}

func TestCancelledContextYieldsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reg := NewDefault()
	findings, diags := reg.Evaluate(ctx, gate.LangPython, "os.system(cmd)\n")
	if !diags.Partial {
		t.Fatal("cancelled context must mark the evaluation partial")
	}
	v := gate.Resolve(findings, diags.Partial)
	if v.Decision == gate.Proceed {
		t.Fatal("partial evaluation must never proceed silently")
	}
}

func TestSnippetIsTruncated(t *testing.T) {
	long := "SELECT " + strings.Repeat("col_name, ", 30) + "${table}"
	findings, _ := evalText(t, gate.LangJavaScript, long)
	if !hasRule(findings, "SEC-SQL-INTERP") {
		t.Fatalf("expected SEC-SQL-INTERP, got %v", findings)
	}
	for _, f := range findings {
		if len(f.Snippet) > 123 { // 120 + "..."
			t.Fatalf("snippet not truncated: %d bytes", len(f.Snippet))
		}
	}
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	long := `password = "x` + strings.Repeat("日", 60) + `"`
	findings, _ := evalText(t, gate.LangPython, long)
	if !hasRule(findings, "SEC-HARDCODED-PASSWORD") {
		t.Fatalf("expected SEC-HARDCODED-PASSWORD, got %v", findings)
	}
	for _, f := range findings {
		if !utf8.ValidString(f.Snippet) {
			t.Fatalf("snippet contains invalid UTF-8: %q", f.Snippet)
		}
		if len(f.Snippet) > 123 {
			t.Fatalf("snippet not truncated: %d bytes", len(f.Snippet))
		}
	}
}

func TestEvaluateEmptyText(t *testing.T) {
	findings, diags := evalText(t, gate.LangPython, "")
	if len(findings) != 0 || diags.Partial {
		t.Fatalf("empty text: got %v partial=%v", findings, diags.Partial)
	}
}

func TestRegexExecIsNotFlagged(t *testing.T) {
	// JS regex.exec() is not dynamic code execution.
	findings, _ := evalText(t, gate.LangJavaScript, "const m = pattern.exec(line);\n")
	if hasRule(findings, "SEC-EXEC") {
		t.Fatalf("regex .exec() misflagged: %v", findings)
	}
	findings, _ = evalText(t, gate.LangPython, "exec(compiled)\n")
	if !hasRule(findings, "SEC-EXEC") {
		t.Fatalf("bare exec() must block, got %v", findings)
	}
}

func TestDisabledRuleProducesNoFindings(t *testing.T) {
	reg := NewDefault()
	reg.Disable([]string{"INC-TODO"})
	findings, _ := reg.Evaluate(context.Background(), gate.LangGo, "// TODO: later\n")
	if hasRule(findings, "INC-TODO") {
		t.Fatalf("disabled rule fired: %v", findings)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	text := "eval(x)\n// TODO: fix\nconsole.log(y)\npassword = \"hunter2\"\n"
	a, _ := evalText(t, gate.LangJavaScript, text)
	b, _ := evalText(t, gate.LangJavaScript, text)
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("finding %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
