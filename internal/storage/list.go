package storage

import (
	"database/sql"
	"time"

	"github.com/codewithboateng/codegate/internal/gate"
)

// ListRuns returns a lightweight list of runs with finding counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.gate_version,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id) AS findings
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.GateVersion, &rr.Findings); err != nil {
			return nil, err
		}
		rr.StartedAt = parseTS(startedAtStr)
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListFindings returns findings for a run at or above a minimum severity.
func (db *DB) ListFindings(runID, minSeverity string) ([]gate.Finding, error) {
	const q = `
		SELECT id, path, language, rule_id, severity, line, snippet, message
		  FROM findings
		 WHERE run_id = ?
		   AND (CASE severity WHEN 'block' THEN 3 WHEN 'warn' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'block' THEN 3 WHEN 'warn' THEN 2 ELSE 1 END)
		 ORDER BY
		       (CASE severity WHEN 'block' THEN 3 WHEN 'warn' THEN 2 ELSE 1 END) DESC,
		       path, line, rule_id, id`
	rows, err := db.conn.Query(q, runID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []gate.Finding
	for rows.Next() {
		var (
			f        gate.Finding
			language string
			severity string
		)
		if err := rows.Scan(&f.ID, &f.Path, &language, &f.RuleID, &severity, &f.Line, &f.Snippet, &f.Message); err != nil {
			return nil, err
		}
		f.Language = gate.Language(language)
		f.Severity, _ = gate.ParseSeverity(severity)
		out = append(out, f)
	}
	return out, rows.Err()
}

// HasRun reports whether a run id exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func parseTS(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
