package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/endgame/internal/game"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Result is one finished round.
type Result struct {
	RoundID      string
	OwnerID      string
	Mode         string
	Date         string // YYYY-MM-DD (UTC) the round started
	Word         string
	Guesses      string // guessed letters in order
	WrongGuesses int
	Status       game.Status
	StartedAt    time.Time
	FinishedAt   time.Time
}

// FromRound builds the ledger entry for a finished round.
func FromRound(owner, mode string, r *game.Round, f game.Facts, finished time.Time) Result {
	return Result{
		RoundID:      r.ID,
		OwnerID:      owner,
		Mode:         mode,
		Date:         r.StartedAt.UTC().Format("2006-01-02"),
		Word:         r.HiddenWord,
		Guesses:      string(r.Guessed()),
		WrongGuesses: f.WrongGuessCount,
		Status:       f.Status,
		StartedAt:    r.StartedAt,
		FinishedAt:   finished,
	}
}

// Store reads and writes the rounds table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record appends a finished round. Recording the same round twice is a no-op,
// as is a second daily round for the same owner and date.
func (s *Store) Record(ctx context.Context, r Result) error {
	elapsed := r.FinishedAt.Sub(r.StartedAt).Milliseconds()
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO rounds
            (id, owner_id, mode, date, word, guesses, wrong_guesses, status, elapsed_ms, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RoundID, r.OwnerID, r.Mode, r.Date, r.Word, r.Guesses, r.WrongGuesses, string(r.Status), elapsed,
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// Stats summarizes an owner's finished rounds.
type Stats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Streak int `json:"streak"` // consecutive wins up to the latest round
}

// Stats computes played/wins/losses and the current win streak for owner.
func (s *Store) Stats(ctx context.Context, owner string) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status FROM rounds WHERE owner_id=? ORDER BY finished_at DESC`, owner)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	var st Stats
	streakOpen := true
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return Stats{}, err
		}
		st.Played++
		if status == string(game.StatusWon) {
			st.Wins++
			if streakOpen {
				st.Streak++
			}
		} else {
			streakOpen = false
		}
	}
	st.Losses = st.Played - st.Wins
	return st, rows.Err()
}

// RoundRow is a finished round as listed back to its owner.
type RoundRow struct {
	ID           string `json:"id"`
	Mode         string `json:"mode"`
	Word         string `json:"word"`
	Guesses      string `json:"guesses"`
	WrongGuesses int    `json:"wrongGuesses"`
	Status       string `json:"status"`
	StartedAt    string `json:"startedAt"`
	FinishedAt   string `json:"finishedAt"`
}

// Recent lists owner's latest finished rounds, newest first. Default limit is 50.
func (s *Store) Recent(ctx context.Context, owner string, limit int) ([]RoundRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, mode, word, guesses, wrong_guesses, status, started_at, finished_at
        FROM rounds WHERE owner_id=?
        ORDER BY finished_at DESC
        LIMIT ?`, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RoundRow, 0, limit)
	for rows.Next() {
		var r RoundRow
		if err := rows.Scan(&r.ID, &r.Mode, &r.Word, &r.Guesses, &r.WrongGuesses, &r.Status, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AlreadyPlayed reports whether owner has a finished daily round for date.
func (s *Store) AlreadyPlayed(ctx context.Context, owner, date string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM rounds WHERE owner_id=? AND date=? AND mode='daily'`, owner, date).Scan(&n)
	return n > 0, err
}

// LBRow is one leaderboard line.
type LBRow struct {
	OwnerID      string `json:"ownerId"`
	WrongGuesses int    `json:"wrongGuesses"`
	Guesses      int    `json:"guesses"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// Leaderboard returns the daily wins for date, one per owner (their first daily
// result of the day, so a loss is never replaced by a later win). Ranked by
// fewest wrong guesses, then fewest guesses, then fastest. Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT owner_id, wrong_guesses, n_guesses, elapsed_ms
        FROM (
            SELECT owner_id, wrong_guesses, length(guesses) AS n_guesses, elapsed_ms, status, finished_at,
                   ROW_NUMBER() OVER (PARTITION BY owner_id ORDER BY finished_at ASC) AS rn
            FROM rounds
            WHERE mode='daily' AND date=?
        )
        WHERE rn=1 AND status='won'
        ORDER BY wrong_guesses ASC, n_guesses ASC, elapsed_ms ASC, finished_at ASC
        LIMIT ?`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.WrongGuesses, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
