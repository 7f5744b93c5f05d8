package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/codewithboateng/codegate/internal/gate"
)

// WriteHTML renders a browsable scan report to <outDir>/<runID>.html.
func WriteHTML(runID, outDir string, run *gate.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var blocks, warns, informs int
	for _, fd := range run.Findings {
		switch fd.Severity {
		case gate.SeverityBlock:
			blocks++
		case gate.SeverityWarn:
			warns++
		case gate.SeverityInform:
			informs++
		}
	}

	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .block{color:#b00020;font-weight:600} .warn{color:#9a6d00;font-weight:600} .inform{color:#00629b}</style>")
	fmt.Fprint(f, "</head><body>")

	fmt.Fprintf(f, "<h1>codegate scan – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Source: <span class='mono'>%s</span></p>", html.EscapeString(run.Source))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Findings: %d (<span class='block'>%d block</span>, <span class='warn'>%d warn</span>, <span class='inform'>%d inform</span>)</p>",
		len(run.Files), len(run.Findings), blocks, warns, informs)

	fmt.Fprintf(f, "<p class='dim'>Severity threshold: %s", html.EscapeString(run.Context.SeverityThreshold))
	if n := len(run.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, " &nbsp; Disabled rules: %d", n)
	}
	if n := len(run.Context.RulePacks); n > 0 {
		fmt.Fprintf(f, " &nbsp; Rule packs: %d", n)
	}
	fmt.Fprint(f, "</p>")

	// Per-file outcomes
	fmt.Fprint(f, "<h2>Files</h2><table><tr><th>Path</th><th>Language</th><th>Lines</th><th>Outcome</th></tr>")
	for _, fs := range run.Files {
		outcome := fs.Outcome.String()
		if fs.Skipped {
			outcome = "skipped"
		}
		fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%s</td><td>%d</td><td class='%s'>%s</td></tr>",
			html.EscapeString(fs.Path),
			html.EscapeString(string(fs.Language)),
			fs.Lines,
			html.EscapeString(fs.Outcome.String()),
			html.EscapeString(outcome),
		)
	}
	fmt.Fprint(f, "</table>")

	// All findings
	if len(run.Findings) > 0 {
		fmt.Fprint(f, "<h2>Findings</h2><table><tr><th>Severity</th><th>Rule</th><th>Path</th><th>Line</th><th>Snippet</th><th>Message</th></tr>")
		for _, fd := range run.Findings {
			fmt.Fprintf(f, "<tr><td class='%s'>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%d</td><td class='mono'>%s</td><td>%s</td></tr>",
				html.EscapeString(fd.Severity.String()),
				html.EscapeString(fd.Severity.String()),
				html.EscapeString(fd.RuleID),
				html.EscapeString(fd.Path),
				fd.Line,
				html.EscapeString(fd.Snippet),
				html.EscapeString(fd.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>Findings</h2><p class='dim'>No findings at or above the configured threshold.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
