package reporting

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/codewithboateng/codegate/internal/gate"
)

var (
	colorBlock  = color.New(color.FgRed, color.Bold)
	colorWarn   = color.New(color.FgYellow, color.Bold)
	colorInform = color.New(color.FgCyan)
	colorClean  = color.New(color.FgGreen, color.Bold)
	colorDim    = color.New(color.Faint)
)

// RenderVerdict writes the human-readable report for one evaluation.
// Findings are grouped by severity; every warn finding is enumerated,
// inform findings are included but never block. Output is deterministic
// for identical verdicts.
func RenderVerdict(w io.Writer, path string, language gate.Language, v gate.Verdict) {
	switch v.Decision {
	case gate.Deny:
		colorBlock.Fprintln(w, "BLOCKED: security findings detected")
	case gate.Advisory:
		colorWarn.Fprintln(w, "WARNING: incomplete implementation detected")
	default:
		if len(v.Findings) == 0 {
			colorClean.Fprintln(w, "OK: no findings")
			return
		}
		colorInform.Fprintln(w, "INFO: quality findings (write proceeds)")
	}

	fmt.Fprintf(w, "\nFile: %s\n", path)
	fmt.Fprintf(w, "Language: %s\n", language)
	if v.Partial {
		colorWarn.Fprintln(w, "Note: evaluation was cut short; verdict is conservative")
	}

	writeGroup(w, colorBlock, "block", v.Findings, gate.SeverityBlock)
	writeGroup(w, colorWarn, "warn", v.Findings, gate.SeverityWarn)
	writeGroup(w, colorInform, "inform", v.Findings, gate.SeverityInform)

	switch v.Decision {
	case gate.Deny:
		fmt.Fprintln(w, "\nFix the security findings before writing this file.")
	case gate.Advisory:
		fmt.Fprintln(w, "\nComplete the implementation before committing.")
	}
}

func writeGroup(w io.Writer, c *color.Color, label string, findings []gate.Finding, sev gate.Severity) {
	first := true
	for _, f := range findings {
		if f.Severity != sev {
			continue
		}
		if first {
			fmt.Fprintln(w)
			c.Fprintf(w, "[%s]\n", label)
			first = false
		}
		fmt.Fprintf(w, "  Line %d: %s (%s)\n", f.Line, f.Message, f.RuleID)
		if f.Snippet != "" {
			colorDim.Fprintf(w, "    > %s\n", f.Snippet)
		}
	}
}

// RenderRunSummary writes the one-screen tail of a batch scan.
func RenderRunSummary(w io.Writer, run *gate.Run, suppressed int) {
	var blocks, warns, informs int
	for _, f := range run.Findings {
		switch f.Severity {
		case gate.SeverityBlock:
			blocks++
		case gate.SeverityWarn:
			warns++
		case gate.SeverityInform:
			informs++
		}
	}
	fmt.Fprintf(w, "Scan %s: %d files, %d findings", run.ID, len(run.Files), len(run.Findings))
	if suppressed > 0 {
		fmt.Fprintf(w, " (%d suppressed)", suppressed)
	}
	fmt.Fprintln(w)
	if blocks > 0 {
		colorBlock.Fprintf(w, "  block:  %d\n", blocks)
	}
	if warns > 0 {
		colorWarn.Fprintf(w, "  warn:   %d\n", warns)
	}
	if informs > 0 {
		colorInform.Fprintf(w, "  inform: %d\n", informs)
	}
	if len(run.Findings) == 0 {
		colorClean.Fprintln(w, "  clean")
	}
}
