// Package render paints a game.View for a terminal with lipgloss.
//
// It only reads the view; input handling lives with the caller.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/endgame/internal/game"
)

const (
	colorWon      = lipgloss.Color("#10A95B")
	colorLost     = lipgloss.Color("#BA2A2A")
	colorFarewell = lipgloss.Color("#7A5EA7")
	colorKey      = lipgloss.Color("#FCBA29")
	colorWrong    = lipgloss.Color("#EC5D49")
	colorDark     = lipgloss.Color("#1E1E1E")
	colorLight    = lipgloss.Color("#F9F4DA")
)

// Terminal renders views for one output stream.
type Terminal struct {
	r *lipgloss.Renderer
}

// NewTerminal detects the color profile of w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{r: lipgloss.NewRenderer(w)}
}

// Render draws the whole board.
func (t *Terminal) Render(v game.View) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		t.header(v.Facts),
		t.status(v.Message),
		t.lives(v.Lives),
		t.word(v.Letters),
		t.keyboard(v.Keys),
		t.footer(v.Facts),
	) + "\n"
}

func (t *Terminal) header(f game.Facts) string {
	title := t.r.NewStyle().Bold(true).Foreground(colorLight).Render("Assembly: Endgame")
	sub := t.r.NewStyle().Faint(true).Render(fmt.Sprintf(
		"Guess the word in under %d attempts to keep the programming world safe from Assembly!",
		f.MaxWrongGuesses))
	return lipgloss.JoinVertical(lipgloss.Center, title, sub, "")
}

func (t *Terminal) status(m game.Message) string {
	box := t.r.NewStyle().Width(40).Align(lipgloss.Center).Padding(0, 1).Foreground(colorLight)
	switch m.Kind {
	case game.MessageWon:
		box = box.Background(colorWon)
	case game.MessageLost:
		box = box.Background(colorLost)
	case game.MessageFarewell:
		box = box.Background(colorFarewell).Italic(true)
	default:
		return "\n"
	}
	lines := []string{}
	if m.Title != "" {
		lines = append(lines, t.r.NewStyle().Bold(true).Render(m.Title))
	}
	lines = append(lines, m.Text)
	return box.Render(strings.Join(lines, "\n")) + "\n"
}

func (t *Terminal) lives(chips []game.LifeChip) string {
	out := make([]string, 0, len(chips))
	for _, c := range chips {
		st := t.r.NewStyle().Padding(0, 1).
			Background(lipgloss.Color(c.BackgroundColor)).
			Foreground(lipgloss.Color(c.Color))
		if c.Lost {
			st = st.Strikethrough(true).Faint(true)
		}
		out = append(out, st.Render(c.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...) + "\n"
}

func (t *Terminal) word(cells []game.LetterCell) string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		st := t.r.NewStyle().Padding(0, 1).Underline(true).Bold(true)
		text := "_"
		if c.Revealed {
			text = strings.ToUpper(c.Letter)
		}
		if c.Missed {
			st = st.Foreground(colorWrong)
		}
		out = append(out, st.Render(text))
	}
	return strings.Join(out, " ") + "\n"
}

func (t *Terminal) keyboard(keys []game.KeyState) string {
	var rows []string
	var row []string
	for i, k := range keys {
		st := t.r.NewStyle().Padding(0, 1).Background(colorKey).Foreground(colorDark)
		switch {
		case k.Correct:
			st = st.Background(colorWon).Foreground(colorLight)
		case k.Wrong:
			st = st.Background(colorWrong).Foreground(colorLight)
		}
		if k.Disabled {
			st = st.Faint(true)
		}
		row = append(row, st.Render(strings.ToUpper(k.Letter)))
		if (i+1)%13 == 0 || i == len(keys)-1 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	return strings.Join(rows, "\n") + "\n"
}

func (t *Terminal) footer(f game.Facts) string {
	hint := "type a letter to guess, help for commands"
	if f.Over {
		hint = "type new for a new game, quit to leave"
	}
	return t.r.NewStyle().Faint(true).Render(hint)
}
