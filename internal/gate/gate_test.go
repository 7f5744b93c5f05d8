package gate

import "testing"

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityInform < SeverityWarn && SeverityWarn < SeverityBlock) {
		t.Fatal("severity classes must be totally ordered: inform < warn < block")
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"block", SeverityBlock, true},
		{"WARN", SeverityWarn, true},
		{" inform ", SeverityInform, true},
		{"critical", SeverityInform, false},
		{"", SeverityInform, false},
	}
	for _, c := range cases {
		got, ok := ParseSeverity(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseSeverity(%q) = %v,%v; want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestResolveMaxSeverityWins(t *testing.T) {
	v := Resolve([]Finding{
		{RuleID: "A", Severity: SeverityInform, Line: 1},
		{RuleID: "B", Severity: SeverityBlock, Line: 2},
		{RuleID: "C", Severity: SeverityWarn, Line: 3},
	}, false)
	if v.Outcome != OutcomeBlock {
		t.Fatalf("outcome = %v, want block", v.Outcome)
	}
	if v.Decision != Deny {
		t.Fatalf("decision = %v, want deny", v.Decision)
	}
	if len(v.Findings) != 3 {
		t.Fatalf("verdict must carry every finding, got %d", len(v.Findings))
	}
}

func TestResolveSingleWarnIsAdvisory(t *testing.T) {
	v := Resolve([]Finding{{RuleID: "W", Severity: SeverityWarn, Line: 4}}, false)
	if v.Outcome != OutcomeWarn || v.Decision != Advisory {
		t.Fatalf("got outcome=%v decision=%v, want warn/advisory", v.Outcome, v.Decision)
	}
}

func TestResolveInformNeverBlocks(t *testing.T) {
	v := Resolve([]Finding{
		{RuleID: "I1", Severity: SeverityInform, Line: 1},
		{RuleID: "I2", Severity: SeverityInform, Line: 2},
	}, false)
	if v.Decision != Proceed {
		t.Fatalf("inform-only findings must proceed, got %v", v.Decision)
	}
	if v.Outcome != OutcomeInform {
		t.Fatalf("outcome = %v, want inform", v.Outcome)
	}
}

func TestResolveCleanInput(t *testing.T) {
	v := Resolve(nil, false)
	if v.Outcome != OutcomeClean || v.Decision != Proceed {
		t.Fatalf("got outcome=%v decision=%v, want clean/proceed", v.Outcome, v.Decision)
	}
}

func TestResolvePartialFailsClosed(t *testing.T) {
	// Nothing found before the cutoff still yields at least a warning.
	v := Resolve(nil, true)
	if v.Outcome != OutcomeWarn || v.Decision != Advisory {
		t.Fatalf("partial clean must escalate to warn/advisory, got %v/%v", v.Outcome, v.Decision)
	}
	if !v.Partial {
		t.Fatal("verdict must flag partial evaluation")
	}

	// A block found before the cutoff stays a block.
	v = Resolve([]Finding{{RuleID: "B", Severity: SeverityBlock, Line: 1}}, true)
	if v.Outcome != OutcomeBlock || v.Decision != Deny {
		t.Fatalf("partial with block must stay deny, got %v/%v", v.Outcome, v.Decision)
	}
}

func TestExitCodes(t *testing.T) {
	if Proceed.ExitCode() != 0 || Advisory.ExitCode() != 1 || Deny.ExitCode() != 2 {
		t.Fatalf("exit contract violated: proceed=%d advisory=%d deny=%d",
			Proceed.ExitCode(), Advisory.ExitCode(), Deny.ExitCode())
	}
}

func TestSortFindingsDeterministic(t *testing.T) {
	fs := []Finding{
		{RuleID: "B", Severity: SeverityWarn, Path: "a.go", Line: 9},
		{RuleID: "A", Severity: SeverityBlock, Path: "b.go", Line: 2},
		{RuleID: "C", Severity: SeverityWarn, Path: "a.go", Line: 3},
		{RuleID: "A", Severity: SeverityWarn, Path: "a.go", Line: 3},
	}
	SortFindings(fs)
	if fs[0].RuleID != "A" || fs[0].Severity != SeverityBlock {
		t.Fatalf("block must sort first, got %+v", fs[0])
	}
	if fs[1].RuleID != "A" || fs[1].Line != 3 {
		t.Fatalf("same severity sorts by path, line, rule id; got %+v", fs[1])
	}
	if fs[2].RuleID != "C" || fs[3].RuleID != "B" {
		t.Fatalf("unexpected tail order: %v then %v", fs[2].RuleID, fs[3].RuleID)
	}
}

func TestScopeMatches(t *testing.T) {
	if !ScopeUniversal.Matches(LangUnknown) {
		t.Fatal("universal rules must apply to unknown files")
	}
	if !ScopeFor(LangPython).Matches(LangPython) {
		t.Fatal("python scope must match python files")
	}
	if ScopeFor(LangPython).Matches(LangGo) {
		t.Fatal("python scope must not match go files")
	}
	if ValidScope(Scope("unknown")) {
		t.Fatal("unknown is not a registrable scope")
	}
	if !ValidScope(ScopeUniversal) || !ValidScope(ScopeFor(LangRust)) {
		t.Fatal("universal and language scopes must validate")
	}
}
