package storage

import (
	"time"

	"github.com/codewithboateng/codegate/internal/gate"
)

// LogDecision appends one gate invocation to the decision log.
func (db *DB) LogDecision(path string, language gate.Language, v gate.Verdict) error {
	_, err := db.conn.Exec(
		`INSERT INTO decisions(ts, path, language, outcome, decision, findings) VALUES(?,?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		path,
		string(language),
		v.Outcome.String(),
		v.Decision.String(),
		len(v.Findings),
	)
	return err
}

// ListDecisions returns the most recent decisions, newest first.
func (db *DB) ListDecisions(limit, offset int) ([]DecisionRow, error) {
	const q = `
		SELECT id, ts, path, language, outcome, decision, findings
		  FROM decisions
		 ORDER BY id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DecisionRow
	for rows.Next() {
		var (
			d  DecisionRow
			ts string
		)
		if err := rows.Scan(&d.ID, &ts, &d.Path, &d.Language, &d.Outcome, &d.Decision, &d.Findings); err != nil {
			return nil, err
		}
		d.TS = parseTS(ts)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DecisionTotals aggregates decisions since a cutoff (zero time = all).
func (db *DB) DecisionTotals(since time.Time) (DecisionStats, error) {
	const q = `
		SELECT decision, COUNT(1)
		  FROM decisions
		 WHERE ts >= ?
		 GROUP BY decision`
	cutoff := ""
	if !since.IsZero() {
		cutoff = since.UTC().Format(time.RFC3339Nano)
	}
	rows, err := db.conn.Query(q, cutoff)
	if err != nil {
		return DecisionStats{}, err
	}
	defer rows.Close()

	var st DecisionStats
	for rows.Next() {
		var (
			decision string
			n        int
		)
		if err := rows.Scan(&decision, &n); err != nil {
			return DecisionStats{}, err
		}
		st.Total += n
		switch decision {
		case "deny":
			st.Deny = n
		case "advisory":
			st.Advisory = n
		case "proceed":
			st.Proceed = n
		}
	}
	return st, rows.Err()
}
