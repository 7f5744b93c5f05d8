// Package hook decodes the host tool's pre-write payload. The host
// pipes a JSON document on stdin describing the tool invocation it is
// about to perform; only Write and Edit carry candidate text.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

type Payload struct {
	ToolName  string    `json:"tool_name"`
	ToolInput ToolInput `json:"tool_input"`
}

type ToolInput struct {
	FilePath  string `json:"file_path"`
	Content   string `json:"content"`    // Write: full candidate text
	NewString string `json:"new_string"` // Edit: replacement text
}

// Decode reads one payload from r. A payload that is not valid JSON is
// a recoverable host error, not a gate verdict.
func Decode(r io.Reader) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decode hook payload: %w", err)
	}
	return p, nil
}

// Candidate extracts the file path and candidate text to validate.
// ok is false for tools the gate does not inspect.
func (p Payload) Candidate() (path, text string, ok bool) {
	switch p.ToolName {
	case "Write":
		return p.ToolInput.FilePath, p.ToolInput.Content, true
	case "Edit":
		return p.ToolInput.FilePath, p.ToolInput.NewString, true
	}
	return "", "", false
}
