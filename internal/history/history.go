package history

import (
	"database/sql"
	"time"
)

// Firing is one recorded resolution: which event fired which situation
// and which sound was chosen.
type Firing struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Event     string    `json:"event"`
	Situation string    `json:"situation"`
	Mode      string    `json:"mode"`
	Sound     string    `json:"sound"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordFiring inserts one firing row.
func RecordFiring(db *sql.DB, f Firing) error {
	return retryWithBackoff(func() error {
		_, err := db.Exec(
			`INSERT INTO firings (session_id, event, situation, mode, sound) VALUES (?, ?, ?, ?, ?)`,
			f.SessionID, f.Event, f.Situation, f.Mode, f.Sound)
		return err
	})
}

// ListFirings returns the most recent firings, newest first, optionally
// filtered to one session.
func ListFirings(db *sql.DB, limit int, sessionID string) ([]Firing, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, session_id, event, situation, mode, sound, created_at
	          FROM firings`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	var out []Firing
	err := retryWithBackoff(func() error {
		rows, err := db.Query(query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = out[:0]
		for rows.Next() {
			var f Firing
			var createdAt string
			if err := rows.Scan(&f.ID, &f.SessionID, &f.Event, &f.Situation, &f.Mode, &f.Sound, &createdAt); err != nil {
				return err
			}
			if t, err := time.Parse("2006-01-02T15:04:05.000Z", createdAt); err == nil {
				f.CreatedAt = t
			}
			out = append(out, f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountFirings returns the total number of recorded firings.
func CountFirings(db *sql.DB) (int64, error) {
	var n int64
	err := retryWithBackoff(func() error {
		return db.QueryRow(`SELECT COUNT(*) FROM firings`).Scan(&n)
	})
	return n, err
}
