package storage

import "time"

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Source      string    `json:"source,omitempty"`
	GateVersion string    `json:"gate_version,omitempty"`
	Findings    int       `json:"findings"`
}

// DecisionRow is one gate invocation as recorded in the decision log.
type DecisionRow struct {
	ID       int64     `json:"id"`
	TS       time.Time `json:"ts"`
	Path     string    `json:"path,omitempty"`
	Language string    `json:"language,omitempty"`
	Outcome  string    `json:"outcome"`
	Decision string    `json:"decision"`
	Findings int       `json:"findings"`
}

// DecisionStats aggregates the decision log for the scoring consumer.
type DecisionStats struct {
	Total    int `json:"total"`
	Deny     int `json:"deny"`
	Advisory int `json:"advisory"`
	Proceed  int `json:"proceed"`
}
