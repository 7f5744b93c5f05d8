package reporting

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/codewithboateng/codegate/internal/gate"
)

func sampleVerdict() gate.Verdict {
	return gate.Resolve([]gate.Finding{
		{RuleID: "SEC-EVAL", Severity: gate.SeverityBlock, Line: 3, Snippet: "eval(", Message: "eval() executes arbitrary code - parse the input instead."},
		{RuleID: "INC-TODO", Severity: gate.SeverityWarn, Line: 1, Snippet: "// TODO", Message: "TODO comment found - implementation incomplete."},
	}, false)
}

func TestRenderVerdictDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	RenderVerdict(&a, "app.js", gate.LangJavaScript, sampleVerdict())
	RenderVerdict(&b, "app.js", gate.LangJavaScript, sampleVerdict())
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("identical verdicts must render identically")
	}
}

func TestRenderVerdictContent(t *testing.T) {
	var buf bytes.Buffer
	RenderVerdict(&buf, "app.js", gate.LangJavaScript, sampleVerdict())
	out := buf.String()
	for _, want := range []string{"BLOCKED", "app.js", "javascript", "SEC-EVAL", "INC-TODO", "Line 3", "Line 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderVerdictClean(t *testing.T) {
	var buf bytes.Buffer
	RenderVerdict(&buf, "ok.go", gate.LangGo, gate.Resolve(nil, false))
	if !strings.Contains(buf.String(), "OK") {
		t.Fatalf("clean verdict report: %q", buf.String())
	}
}

func TestWriteVerdictJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVerdictJSON(&buf, "app.js", gate.LangJavaScript, sampleVerdict()); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Path    string `json:"path"`
		Verdict struct {
			Outcome  string `json:"outcome"`
			Decision string `json:"decision"`
			Findings []struct {
				RuleID string `json:"rule_id"`
				Line   int    `json:"line"`
			} `json:"findings"`
		} `json:"verdict"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Path != "app.js" || doc.Verdict.Outcome != "block" || doc.Verdict.Decision != "deny" {
		t.Fatalf("doc = %+v", doc)
	}
	if len(doc.Verdict.Findings) != 2 || doc.Verdict.Findings[0].RuleID != "SEC-EVAL" {
		t.Fatalf("findings = %+v (block must sort first)", doc.Verdict.Findings)
	}
}

func sampleRun(id string, findings []gate.Finding) *gate.Run {
	return &gate.Run{
		ID:          id,
		StartedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Source:      "./src",
		GateVersion: gate.Version,
		Context:     gate.Context{SeverityThreshold: "inform"},
		Files: []gate.FileSummary{
			{Path: "src/app.js", Language: gate.LangJavaScript, Lines: 40, Outcome: gate.OutcomeBlock},
		},
		Findings: findings,
	}
}

func TestWriteJSONAndHTML(t *testing.T) {
	dir := t.TempDir()
	run := sampleRun("run-x", sampleVerdict().Findings)

	jp, err := WriteJSON(run.ID, dir, run)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(jp)
	if err != nil {
		t.Fatal(err)
	}
	var back gate.Run
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("run json does not parse: %v", err)
	}
	if back.ID != "run-x" || len(back.Findings) != 2 {
		t.Fatalf("round trip lost data: %+v", back)
	}

	hp, err := WriteHTML(run.ID, dir, run)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := os.ReadFile(hp)
	if err != nil {
		t.Fatal(err)
	}
	html := string(hb)
	for _, want := range []string{"run-x", "src/app.js", "SEC-EVAL"} {
		if !strings.Contains(html, want) {
			t.Errorf("html report missing %q", want)
		}
	}
}

func TestWriteDiffJSON(t *testing.T) {
	dir := t.TempDir()
	base := sampleRun("run-a", []gate.Finding{
		{RuleID: "INC-TODO", Path: "a.go", Line: 1, Severity: gate.SeverityWarn, Snippet: "// TODO", Message: "m"},
		{RuleID: "SEC-EVAL", Path: "a.go", Line: 9, Severity: gate.SeverityBlock, Snippet: "eval(", Message: "m"},
	})
	head := sampleRun("run-b", []gate.Finding{
		// same logical finding, shifted line -> "changed", not new
		{RuleID: "SEC-EVAL", Path: "a.go", Line: 12, Severity: gate.SeverityBlock, Snippet: "eval(", Message: "m"},
		{RuleID: "PY-QUAL-BARE-EXCEPT", Path: "b.py", Line: 2, Severity: gate.SeverityInform, Snippet: "except:", Message: "m"},
	})

	p, err := WriteDiffJSON("run-a", "run-b", dir, base, head)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Summary struct {
			New     int `json:"new"`
			Removed int `json:"removed"`
			Changed int `json:"changed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Summary.New != 1 || doc.Summary.Removed != 1 || doc.Summary.Changed != 1 {
		t.Fatalf("summary = %+v, want new=1 removed=1 changed=1", doc.Summary)
	}
}
