package reporting

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/codewithboateng/codegate/internal/gate"
)

// WriteJSON writes the full run document to <outDir>/<runID>.json.
func WriteJSON(runID, outDir string, run *gate.Run) (string, error) {
	path := filepath.Join(outDir, runID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", err
	}
	return path, nil
}

// WriteVerdictJSON emits one verdict structurally (check --format json).
type verdictDoc struct {
	Path     string        `json:"path"`
	Language gate.Language `json:"language"`
	Verdict  gate.Verdict  `json:"verdict"`
}

func WriteVerdictJSON(w io.Writer, path string, language gate.Language, v gate.Verdict) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(verdictDoc{Path: path, Language: language, Verdict: v})
}
