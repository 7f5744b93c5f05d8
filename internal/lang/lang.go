package lang

import (
	"path/filepath"
	"strings"

	"github.com/codewithboateng/codegate/internal/gate"
)

// extension -> language. Fixed table; anything else is unknown.
var byExt = map[string]gate.Language{
	".js":   gate.LangJavaScript,
	".jsx":  gate.LangJavaScript,
	".mjs":  gate.LangJavaScript,
	".cjs":  gate.LangJavaScript,
	".ts":   gate.LangTypeScript,
	".tsx":  gate.LangTypeScript,
	".py":   gate.LangPython,
	".go":   gate.LangGo,
	".rs":   gate.LangRust,
	".java": gate.LangJava,
	".c":    gate.LangC,
	".h":    gate.LangC,
	".cpp":  gate.LangCPP,
	".cc":   gate.LangCPP,
	".hpp":  gate.LangCPP,
}

// Classify maps a file path to its language. Only the final dotted
// segment counts; matching is case-insensitive; no content sniffing.
func Classify(path string) gate.Language {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := byExt[ext]; ok {
		return l
	}
	return gate.LangUnknown
}

// DefaultSkipExtensions lists documentation and config formats the gate
// passes through without evaluation.
func DefaultSkipExtensions() []string {
	return []string{".md", ".txt", ".json", ".yml", ".yaml", ".lock", ".sum"}
}

// ShouldSkip reports whether path ends in one of the given extensions.
// Extensions are matched case-insensitively against the final segment.
func ShouldSkip(path string, skipExts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, s := range skipExts {
		if ext == strings.ToLower(strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
