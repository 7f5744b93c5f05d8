package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/codegate/internal/gate"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffFinding `json:"new"`
	Removed []diffFinding `json:"removed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	ChangedCount int `json:"changed"`
}

type diffFinding struct {
	RuleID   string `json:"rule_id"`
	Path     string `json:"path"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

type diffChanged struct {
	Key     string      `json:"key"`
	Base    diffFinding `json:"base"`
	Head    diffFinding `json:"head"`
	Changed []string    `json:"fields_changed"`
}

// WriteDiffJSON compares two scan runs and writes the structured delta
// to <outDir>/diff_<base>__<head>.json. Findings pair on rule, path and
// snippet; line numbers shift too easily under edits to key on.
func WriteDiffJSON(baseID, headID, outDir string, base, head *gate.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	// index findings
	bm := map[string]gate.Finding{}
	hm := map[string]gate.Finding{}
	for _, f := range base.Findings {
		bm[diffKey(f)] = f
	}
	for _, f := range head.Findings {
		hm[diffKey(f)] = f
	}

	var added []diffFinding
	var removed []diffFinding
	var changed []diffChanged

	// additions & changes
	for k, hf := range hm {
		if bf, ok := bm[k]; !ok {
			added = append(added, asDiff(hf))
		} else {
			var fields []string
			if bf.Severity != hf.Severity {
				fields = append(fields, "severity")
			}
			if strings.TrimSpace(bf.Message) != strings.TrimSpace(hf.Message) {
				fields = append(fields, "message")
			}
			if bf.Line != hf.Line {
				fields = append(fields, "line")
			}
			if len(fields) > 0 {
				changed = append(changed, diffChanged{
					Key:     k,
					Base:    asDiff(bf),
					Head:    asDiff(hf),
					Changed: fields,
				})
			}
		}
	}
	// removals
	for k, bf := range bm {
		if _, ok := hm[k]; !ok {
			removed = append(removed, asDiff(bf))
		}
	}

	// stable sort
	sort.Slice(added, func(i, j int) bool { return diffLess(added[i], added[j]) })
	sort.Slice(removed, func(i, j int) bool { return diffLess(removed[i], removed[j]) })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			ChangedCount: len(changed),
		},
		New:     added,
		Removed: removed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func diffKey(f gate.Finding) string {
	sb := strings.Builder{}
	sb.WriteString(norm(f.RuleID))
	sb.WriteByte('|')
	sb.WriteString(norm(f.Path))
	sb.WriteByte('|')
	// snippet drives logical identity across line shifts
	sb.WriteString(norm(f.Snippet))
	return sb.String()
}

func asDiff(f gate.Finding) diffFinding {
	return diffFinding{
		RuleID:   f.RuleID,
		Path:     f.Path,
		Line:     f.Line,
		Severity: f.Severity.String(),
		Message:  f.Message,
		Snippet:  f.Snippet,
	}
}

func diffLess(a, b diffFinding) bool {
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	return a.Line < b.Line
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
