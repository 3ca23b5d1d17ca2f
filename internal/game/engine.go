// internal/game/engine.go
//
// Game state engine for a single round of Assembly: Endgame.
// Responsibilities:
//   - Draw hidden words from an injected words.Source.
//   - Accumulate guessed letters (ordered, distinct, append-only).
//   - Derive every outcome fact from (word, guesses, catalog) on each read.
//   - Replace the round wholesale on reset.
//
// Notes:
//   - Guesses are not validated. Anything that is not in the word is a wrong guess,
//     including digits and uppercase runes.
//   - The engine keeps accepting guesses after a round is over; renderers gate input
//     on Facts().Over.
//   - The engine is not safe for concurrent use. Transports that can deliver events
//     concurrently serialize them (see internal/store).
package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/endgame/internal/words"
)

// Engine owns the current round and the static data it is judged against.
type Engine struct {
	source  words.Source
	catalog *words.Catalog
	round   *Round
}

// New constructs an engine and draws its first round from src.
func New(src words.Source, catalog *words.Catalog) *Engine {
	e := &Engine{source: src, catalog: catalog}
	e.round = e.newRound()
	return e
}

func (e *Engine) newRound() *Round {
	return &Round{
		ID:         uuid.NewString(),
		HiddenWord: e.source.PickWord(),
		StartedAt:  time.Now().UTC(),
		guessed:    []rune{},
	}
}

// SubmitGuess records letter unless it was already guessed this round.
func (e *Engine) SubmitGuess(letter rune) {
	if lo.Contains(e.round.guessed, letter) {
		return
	}
	e.round.guessed = append(e.round.guessed, letter)
}

// Reset starts a new round. The old round is dropped, never mutated.
func (e *Engine) Reset() {
	e.round = e.newRound()
}

// Round returns the current round. Callers must treat it as read-only.
func (e *Engine) Round() *Round { return e.round }

// Catalog returns the life catalog rounds are judged against.
func (e *Engine) Catalog() *words.Catalog { return e.catalog }

// Facts derives the outcome facts of the current round.
func (e *Engine) Facts() Facts {
	return Derive(e.round.HiddenWord, e.round.guessed, e.catalog.MaxWrongGuesses())
}

// FarewellMessage returns the farewell for the latest wrong guess while the round
// is in its farewell state.
func (e *Engine) FarewellMessage() (string, bool) {
	f := e.Facts()
	if !f.Farewell {
		return "", false
	}
	return e.catalog.FarewellMessage(f.WrongGuessCount - 1), true
}

// Derive computes the outcome facts of a round. It is pure: the same word,
// guesses and threshold always give the same Facts.
//
// A round at exactly maxWrong wrong guesses is lost. If a round is somehow both
// won and lost, Status reports won.
func Derive(word string, guessed []rune, maxWrong int) Facts {
	inWord := func(l rune) bool { return strings.ContainsRune(word, l) }

	wrong := lo.Filter(guessed, func(l rune, _ int) bool { return !inWord(l) })
	won := lo.EveryBy([]rune(word), func(l rune) bool { return lo.Contains(guessed, l) })

	f := Facts{
		WrongGuessCount: len(wrong),
		MaxWrongGuesses: maxWrong,
		Won:             won,
		Lost:            len(wrong) >= maxWrong,
	}
	f.Over = f.Won || f.Lost
	if n := len(guessed); n > 0 {
		f.LastGuess = guessed[n-1]
		f.HasLastGuess = true
		f.LastGuessWrong = !inWord(f.LastGuess)
	}
	f.Farewell = !f.Over && f.LastGuessWrong

	switch {
	case f.Won:
		f.Status = StatusWon
	case f.Lost:
		f.Status = StatusLost
	default:
		f.Status = StatusInProgress
	}
	return f
}
