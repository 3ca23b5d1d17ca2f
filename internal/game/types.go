// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Status: coarse outcome of a round (in_progress/won/lost).
//   - Round: the mutable unit, a hidden word plus the ordered guessed letters.
//   - Facts: everything derived from a Round; never stored.

package game

import "time"

// Status is the outcome of a round as reported to renderers.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Round holds one playthrough. HiddenWord never changes after creation;
// guessed is append-only and free of duplicates.
type Round struct {
	ID         string    // Unique round identifier (uuid).
	HiddenWord string    // The word to guess (lowercase).
	StartedAt  time.Time // When the round was drawn.
	guessed    []rune
}

// Guessed returns a copy of the guessed letters in the order they were chosen.
func (r *Round) Guessed() []rune {
	return append([]rune(nil), r.guessed...)
}

// Facts are the derived outcome facts of a round.
type Facts struct {
	WrongGuessCount int    `json:"wrongGuessCount"`
	MaxWrongGuesses int    `json:"maxWrongGuesses"`
	Won             bool   `json:"won"`
	Lost            bool   `json:"lost"`
	Over            bool   `json:"over"`
	LastGuess       rune   `json:"-"`
	HasLastGuess    bool   `json:"hasLastGuess"`
	LastGuessWrong  bool   `json:"lastGuessWrong"`
	Farewell        bool   `json:"farewell"`
	Status          Status `json:"status"`
}
