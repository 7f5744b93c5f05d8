package storage

import (
	"database/sql"
	"time"
)

// Suppression silences a rule's findings, optionally narrowed to a path
// glob and a snippet/message substring. Suppressions expire and can be
// revoked; only active ones are applied.
type Suppression struct {
	ID         int64      `json:"id"`
	RuleID     string     `json:"rule_id"`
	PathGlob   string     `json:"path_glob,omitempty"`
	PatternSub string     `json:"pattern_sub,omitempty"`
	Reason     string     `json:"reason"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

func (db *DB) CreateSuppression(ruleID, pathGlob, pattern, reason, createdBy string, expires time.Time) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := db.conn.Exec(`
INSERT INTO suppressions(rule_id, path_glob, pattern_sub, reason, expires_at, created_by, created_at)
VALUES(?,?,?,?,?,?,?)`,
		ruleID, nz(pathGlob), nz(pattern), reason, expires.UTC().Format(time.RFC3339Nano), createdBy, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) RevokeSuppression(id int64) error {
	_, err := db.conn.Exec(`UPDATE suppressions SET revoked_at=? WHERE id=? AND revoked_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	return err
}

func (db *DB) ListSuppressions(activeOnly bool) ([]Suppression, error) {
	q := `
SELECT id, rule_id, COALESCE(path_glob,''), COALESCE(pattern_sub,''),
       reason, expires_at, created_by, created_at, revoked_at
FROM suppressions`
	args := []any{}
	if activeOnly {
		q += ` WHERE (revoked_at IS NULL) AND (expires_at > ?)`
		args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	}
	q += ` ORDER BY id DESC`
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suppression
	for rows.Next() {
		var (
			s           Suppression
			exp, ca, ra sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.RuleID, &s.PathGlob, &s.PatternSub, &s.Reason, &exp, &s.CreatedBy, &ca, &ra); err != nil {
			return nil, err
		}
		if exp.Valid {
			s.ExpiresAt = parseTS(exp.String)
		}
		if ca.Valid {
			s.CreatedAt = parseTS(ca.String)
		}
		if ra.Valid {
			t := parseTS(ra.String)
			s.RevokedAt = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nz(s string) any {
	if s == "" {
		return nil
	}
	return s
}
