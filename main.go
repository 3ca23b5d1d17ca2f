package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/httpserver"
	"github.com/robalobadob/endgame/internal/ledger"
	"github.com/robalobadob/endgame/internal/session"
	"github.com/robalobadob/endgame/internal/store"
	"github.com/robalobadob/endgame/internal/words"
)

const gracefulShutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	vocab, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}
	catalog, err := words.LoadCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load life catalog")
	}

	db, err := ledger.Open(getEnv("DB_PATH", "./data/endgame.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()
	if err := ledger.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate db")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev_secret_change_me"
		log.Warn().Msg("SESSION_SECRET not set, using development secret")
	}
	days, _ := strconv.Atoi(getEnv("SESSION_DAYS", "30"))
	sm, err := session.NewManager(session.Config{
		Secret:     secret,
		TTL:        time.Duration(days) * 24 * time.Hour,
		CookieName: getEnv("COOKIE_NAME", "endgame_session"),
		Secure:     os.Getenv("APP_ENV") == "production",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session manager")
	}

	srv := httpserver.New(store.NewMemoryStore(), db, sm, httpserver.Options{
		Vocabulary:   vocab,
		Catalog:      catalog,
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	})

	port := getEnv("PORT", "5175")
	hs := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Info().Str("port", port).Int("words", vocab.Len()).Int("lives", catalog.MaxWrongGuesses()).Msg("starting endgame server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	<-idleConnsClosed
	log.Info().Msg("server stopped")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
