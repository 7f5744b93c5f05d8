package rulesdsl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/codegate/internal/gate"
	"github.com/codewithboateng/codegate/internal/rules"
)

func writePack(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pack.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadPackRegistersAndEvaluates(t *testing.T) {
	p := writePack(t, `
rules:
  - id: TEAM-NO-XXX
    scope: universal
    severity: warn
    summary: XXX marker
    message: Remove XXX markers before committing
    pattern: '(?i)\bXXX\b'
`)
	reg := rules.NewRegistry()
	n, err := LoadPack(p, reg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 1 {
		t.Fatalf("registered %d rules, want 1", n)
	}
	findings, _ := reg.Evaluate(context.Background(), gate.LangGo, "// XXX fix this\n")
	if len(findings) != 1 || findings[0].RuleID != "TEAM-NO-XXX" {
		t.Fatalf("pack rule did not fire: %v", findings)
	}
}

func TestLoadPackScopedRule(t *testing.T) {
	p := writePack(t, `
rules:
  - id: TEAM-PY-ASSERT
    scope: python
    severity: inform
    summary: assert in production path
    message: Asserts vanish under -O
    pattern: '(?m)^\s*assert\b'
`)
	reg := rules.NewRegistry()
	if _, err := LoadPack(p, reg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := len(reg.ForLanguage(gate.LangPython)); n != 1 {
		t.Fatalf("python set = %d, want 1", n)
	}
	if n := len(reg.ForLanguage(gate.LangGo)); n != 0 {
		t.Fatalf("go set = %d, want 0 (scoped pack rule leaked)", n)
	}
}

func TestLoadPackRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"missing pattern": `
rules:
  - id: BAD-1
    scope: universal
    severity: warn
    message: m
`,
		"bad severity": `
rules:
  - id: BAD-2
    scope: universal
    severity: catastrophic
    message: m
    pattern: x
`,
		"bad scope": `
rules:
  - id: BAD-3
    scope: cobol
    severity: warn
    message: m
    pattern: x
`,
		"bad regex": `
rules:
  - id: BAD-4
    scope: universal
    severity: warn
    message: m
    pattern: '(unclosed'
`,
		"duplicate of builtin": `
rules:
  - id: sec-eval
    scope: universal
    severity: warn
    message: m
    pattern: x
`,
		"not yaml": `{{{{`,
	}
	for name, content := range cases {
		p := writePack(t, content)
		reg := rules.NewDefault()
		if _, err := LoadPack(p, reg); err == nil {
			t.Errorf("%s: load accepted a malformed pack", name)
		}
	}
}

func TestLoadPacksStopsAtFirstError(t *testing.T) {
	good := writePack(t, `
rules:
  - id: OK-1
    scope: universal
    severity: inform
    summary: s
    message: m
    pattern: ok
`)
	if _, err := LoadPacks([]string{good, filepath.Join(t.TempDir(), "absent.yaml")}, rules.NewRegistry()); err == nil {
		t.Fatal("missing pack file must fail the load")
	}
}
