package daily

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// DefaultLimit is used when Leaderboard is asked for a non-positive limit.
const DefaultLimit = 20

// Result is one player's solved daily puzzle.
type Result struct {
	UserID    string   `json:"userId"`
	Date      string   `json:"date"`
	Score     int      `json:"score"`
	Words     []string `json:"words"`
	ElapsedMs int      `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same user and date is
// ignored; inserted reports whether this call stored a row.
func (s *Store) InsertResult(ctx context.Context, r Result) (inserted bool, err error) {
	ws := r.Words
	if ws == nil {
		ws = []string{}
	}
	raw, err := json.Marshal(ws)
	if err != nil {
		return false, fmt.Errorf("encode words: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, score, words, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.Score, string(raw), r.ElapsedMs,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type LBRow struct {
	UserID    string   `json:"userId"`
	Score     int      `json:"score"`
	Words     []string `json:"words"`
	ElapsedMs int      `json:"elapsedMs"`
}

// Leaderboard returns the best results for date: highest score first, then
// fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, score, words, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY score DESC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		var raw string
		if err := rows.Scan(&r.UserID, &r.Score, &raw, &r.ElapsedMs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &r.Words); err != nil {
			return nil, fmt.Errorf("decode words for %s: %w", r.UserID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
