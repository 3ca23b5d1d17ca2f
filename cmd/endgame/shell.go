package main

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/render"
)

// shell turns typed lines into engine events and redraws the board after each one.
type shell struct {
	engine *game.Engine
	term   *render.Terminal
	out    io.Writer
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<letter> - guess a letter\n")
	io.WriteString(w, "new - start a new game once this one is over\n")
	io.WriteString(w, "help - show this help\n")
	io.WriteString(w, "quit - leave\n")
}

func (s *shell) draw() {
	io.WriteString(s.out, s.term.Render(s.engine.View()))
}

// handle processes one input line and reports whether the player wants to quit.
func (s *shell) handle(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	switch {
	case line == "":
		return false
	case line == "quit" || line == "exit" || line == "bye":
		return true
	case line == "help":
		usage(s.out)
		return false
	case line == "new":
		if !s.engine.Facts().Over {
			writeln("finish this round first", s.out)
			return false
		}
		s.engine.Reset()
		log.Debug().Str("round", s.engine.Round().ID).Msg("new round")
	case utf8.RuneCountInString(line) == 1:
		if s.engine.Facts().Over {
			writeln("this round is over, type new to play again", s.out)
			return false
		}
		r, _ := utf8.DecodeRuneInString(line)
		s.engine.SubmitGuess(r)
		if f := s.engine.Facts(); f.Over {
			log.Debug().Str("round", s.engine.Round().ID).Str("status", string(f.Status)).
				Int("wrong", f.WrongGuessCount).Msg("round finished")
		}
	default:
		writeln("unknown command, type help", s.out)
		return false
	}
	s.draw()
	return false
}
