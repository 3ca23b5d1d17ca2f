// internal/game/view.go
//
// Renderer-neutral projection of a round: what each word cell, keyboard key and
// life chip should show, plus the status message and the accessible announcement.
// Everything here is derived from the round and the catalog; nothing is cached.

package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/endgame/internal/words"
)

// Alphabet is the set of keys a renderer offers.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// LetterCell is one position of the hidden word. Letter is empty until revealed.
type LetterCell struct {
	Letter   string `json:"letter"`
	Revealed bool   `json:"revealed"`
	Missed   bool   `json:"missed"` // revealed only because the round was lost
}

// KeyState is one keyboard key.
type KeyState struct {
	Letter   string `json:"letter"`
	Guessed  bool   `json:"guessed"`
	Correct  bool   `json:"correct"`
	Wrong    bool   `json:"wrong"`
	Disabled bool   `json:"disabled"`
}

// LifeChip is one catalog entry and whether a wrong guess has cost it.
type LifeChip struct {
	words.Entry
	Lost bool `json:"lost"`
}

// MessageKind tells renderers how to style the status panel.
type MessageKind string

const (
	MessageNone     MessageKind = ""
	MessageFarewell MessageKind = "farewell"
	MessageWon      MessageKind = "won"
	MessageLost     MessageKind = "lost"
)

// Message is the status panel content.
type Message struct {
	Kind  MessageKind `json:"kind"`
	Title string      `json:"title,omitempty"`
	Text  string      `json:"text,omitempty"`
}

// View is everything a renderer needs to draw a round.
type View struct {
	Facts        Facts        `json:"facts"`
	Letters      []LetterCell `json:"letters"`
	Keys         []KeyState   `json:"keys"`
	Lives        []LifeChip   `json:"lives"`
	Message      Message      `json:"message"`
	Announcement string       `json:"announcement"`
}

// View projects the current round.
func (e *Engine) View() View {
	return Project(e.round, e.catalog)
}

// Project builds the View of r judged against catalog.
func Project(r *Round, catalog *words.Catalog) View {
	f := Derive(r.HiddenWord, r.guessed, catalog.MaxWrongGuesses())
	guessed := func(l rune) bool { return lo.Contains(r.guessed, l) }

	letters := lo.Map([]rune(r.HiddenWord), func(l rune, _ int) LetterCell {
		c := LetterCell{Revealed: f.Lost || guessed(l)}
		c.Missed = f.Lost && !guessed(l)
		if c.Revealed {
			c.Letter = string(l)
		}
		return c
	})

	keys := lo.Map([]rune(Alphabet), func(l rune, _ int) KeyState {
		g := guessed(l)
		in := strings.ContainsRune(r.HiddenWord, l)
		return KeyState{
			Letter:   string(l),
			Guessed:  g,
			Correct:  g && in,
			Wrong:    g && !in,
			Disabled: f.Over,
		}
	})

	lives := lo.Map(catalog.Entries(), func(e words.Entry, i int) LifeChip {
		return LifeChip{Entry: e, Lost: i < f.WrongGuessCount}
	})

	return View{
		Facts:        f,
		Letters:      letters,
		Keys:         keys,
		Lives:        lives,
		Message:      statusMessage(f, catalog),
		Announcement: announce(r, f),
	}
}

// statusMessage checks farewell first; it can only hold while the round is not over,
// so the win/loss branches below it keep win ahead of loss.
func statusMessage(f Facts, catalog *words.Catalog) Message {
	switch {
	case f.Farewell:
		return Message{Kind: MessageFarewell, Text: catalog.FarewellMessage(f.WrongGuessCount - 1)}
	case f.Won:
		return Message{Kind: MessageWon, Title: "You win!", Text: "Well done! 🎉"}
	case f.Lost:
		return Message{Kind: MessageLost, Title: "Game over!", Text: "You lose! Better start learning Assembly 😭"}
	}
	return Message{Kind: MessageNone}
}

func announce(r *Round, f Facts) string {
	var b strings.Builder
	if f.HasLastGuess {
		if f.LastGuessWrong {
			fmt.Fprintf(&b, "Sorry, the letter %c is not in the word. ", f.LastGuess)
		} else {
			fmt.Fprintf(&b, "Correct! The letter %c is in the word. ", f.LastGuess)
		}
	}
	fmt.Fprintf(&b, "You have %d attempts left. ", max(f.MaxWrongGuesses-f.WrongGuessCount, 0))

	// "." makes screen readers pause; an empty cell would be skipped, so say "blank".
	spoken := lo.Map([]rune(r.HiddenWord), func(l rune, _ int) string {
		if lo.Contains(r.guessed, l) {
			return string(l) + "."
		}
		return "blank"
	})
	b.WriteString("Current word: " + strings.Join(spoken, " "))
	return b.String()
}
