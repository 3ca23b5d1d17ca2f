// Command endgame plays Assembly: Endgame in the terminal.
package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/render"
	"github.com/robalobadob/endgame/internal/words"
)

var daily = flag.Bool("daily", false, "play today's word instead of a random one")

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	vocab, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}
	catalog, err := words.LoadCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load life catalog")
	}

	var src words.Source = words.NewRandomSource(vocab)
	if *daily {
		src = words.NewDailySource(vocab, getEnv("DAILY_SALT", "local_dev_salt"))
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34mendgame>\033[0m ",
		EOFPrompt:       "quit",
		InterruptPrompt: "^C",

		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer l.Close()

	sh := &shell{
		engine: game.New(src, catalog),
		term:   render.NewTerminal(l.Stdout()),
		out:    l.Stdout(),
	}
	sh.draw()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if sh.handle(strings.TrimSpace(line)) {
			break
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
