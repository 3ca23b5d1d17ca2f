// internal/httpserver/server.go
//
// HTTP transport for a browser renderer of Assembly: Endgame.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, sessions).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (session): POST /game/new, GET /game, POST /game/guess.
//   - History endpoints (session): GET /stats/me, GET /games/mine.
//   - Daily endpoints: mounted under /daily (see routes_daily.go).
//
// Notes:
//   - One round per session, held in the in-memory store. Finished rounds are
//     appended to the SQLite ledger, best effort.
//   - The engine accepts guesses after a round ends; this layer is the caller that
//     gates input, answering 409 game_over instead.
//   - The hidden word is never serialized. Only revealed cells carry letters.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/ledger"
	"github.com/robalobadob/endgame/internal/session"
	"github.com/robalobadob/endgame/internal/store"
	"github.com/robalobadob/endgame/internal/words"
)

const (
	modeRandom = "random"
	modeDaily  = "daily"
)

// Options carries the static game data and transport settings.
type Options struct {
	Vocabulary   *words.Vocabulary
	Catalog      *words.Catalog
	DailySalt    string
	ClientOrigin string

	// Random and Daily override the word sources built from Vocabulary.
	Random words.Source
	Daily  words.Source
}

// Server bundles router, session store, ledger and word sources.
type Server struct {
	r        *chi.Mux
	store    store.Store
	ledger   *ledger.Store
	sessions *session.Manager
	catalog  *words.Catalog
	sources  map[string]words.Source
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, sm *session.Manager, opts Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		ledger:   ledger.NewStore(db),
		sessions: sm,
		catalog:  opts.Catalog,
		sources: map[string]words.Source{
			modeRandom: opts.Random,
			modeDaily:  opts.Daily,
		},
	}
	if s.sources[modeRandom] == nil {
		s.sources[modeRandom] = words.NewRandomSource(opts.Vocabulary)
	}
	if s.sources[modeDaily] == nil {
		s.sources[modeDaily] = words.NewDailySource(opts.Vocabulary, opts.DailySalt)
	}
	origin := opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(origin))                    // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"endgame","endpoints":["/health","POST /game/new","GET /game","POST /game/guess","/stats/me","/games/mine","/daily/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game + history endpoints, one round per session
	s.r.Group(func(r chi.Router) {
		r.Use(sm.Middleware)
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game", s.handleState)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/stats/me", s.handleStats)
		r.Get("/games/mine", s.handleMine)
	})

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]string{"error": "not_found", "path": r.URL.Path})
		http.Error(w, string(body), http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests and http.Server wiring).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", "X-Session-Token")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

// stateRes is what every game endpoint returns: the round's view plus bookkeeping.
type stateRes struct {
	RoundID   string   `json:"roundId"`
	Mode      string   `json:"mode"`
	Guessed   []string `json:"guessed"`
	LastGuess string   `json:"lastGuess,omitempty"`
	game.View
}

func stateOf(sess *store.Session) stateRes {
	round := sess.Engine.Round()
	v := sess.Engine.View()
	res := stateRes{
		RoundID: round.ID,
		Mode:    sess.Mode,
		Guessed: make([]string, 0, len(round.Guessed())),
		View:    v,
	}
	for _, l := range round.Guessed() {
		res.Guessed = append(res.Guessed, string(l))
	}
	if v.Facts.HasLastGuess {
		res.LastGuess = string(v.Facts.LastGuess)
	}
	return res
}

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

// handleNewGame starts a new round for the session, replacing any current one.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	mode := req.Mode
	if mode == "" {
		mode = modeRandom
	}
	if _, ok := s.sources[mode]; !ok {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}
	s.startRound(w, r, mode)
}

var errAlreadyPlayed = errors.New("daily already played")

// startRound resets the session's engine, or builds a new one when the mode
// changes or the session has none yet.
//
// The daily word is played once per session and day: a daily round still in
// progress is handed back as is, and a finished one answers 409 already_played.
func (s *Server) startRound(w http.ResponseWriter, r *http.Request, mode string) {
	id := session.ID(r.Context())
	today := s.today()
	if mode == modeDaily {
		played, err := s.ledger.AlreadyPlayed(r.Context(), id, today)
		if err != nil {
			log.Error().Err(err).Str("session", id).Msg("daily lookup")
			http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
			return
		}
		if played {
			http.Error(w, `{"error":"already_played","played":true}`, http.StatusConflict)
			return
		}
	}

	var res stateRes
	err := s.store.Update(r.Context(), id, func(sess *store.Session) error {
		switch {
		case sess.Mode == modeDaily && mode == modeDaily && words.DateKey(sess.Engine.Round().StartedAt) == today:
			if sess.Engine.Facts().Over {
				return errAlreadyPlayed
			}
		case sess.Mode == mode:
			sess.Engine.Reset()
		default:
			sess.Mode = mode
			sess.Engine = game.New(s.sources[mode], s.catalog)
		}
		res = stateOf(sess)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		sess := &store.Session{ID: id, Mode: mode, Engine: game.New(s.sources[mode], s.catalog)}
		err = s.store.Save(r.Context(), sess)
		res = stateOf(sess)
	}
	switch {
	case errors.Is(err, errAlreadyPlayed):
		http.Error(w, `{"error":"already_played","played":true}`, http.StatusConflict)
		return
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("start round")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Debug().Str("session", id).Str("round", res.RoundID).Str("mode", mode).Msg("new round")
	_ = json.NewEncoder(w).Encode(res)
}

// today is the daily source's date key, or the UTC date when the source
// doesn't track one.
func (s *Server) today() string {
	if d, ok := s.sources[modeDaily].(interface{ Date() string }); ok {
		return d.Date()
	}
	return words.DateKey(time.Now())
}

// handleState returns the session's current round.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var res stateRes
	err := s.store.View(r.Context(), session.ID(r.Context()), func(sess *store.Session) error {
		res = stateOf(sess)
		return nil
	})
	if err != nil {
		http.Error(w, `{"error":"no_game"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	Letter string `json:"letter"`
}

var errGameOver = errors.New("game over")

// handleGuess submits one letter. The letter is not checked beyond being a single
// character: anything absent from the word is simply a wrong guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		return
	}
	letter, _ := utf8.DecodeRuneInString(req.Letter)

	id := session.ID(r.Context())
	var (
		res      stateRes
		finished *ledger.Result
	)
	err := s.store.Update(r.Context(), id, func(sess *store.Session) error {
		if sess.Engine.Facts().Over {
			return errGameOver
		}
		sess.Engine.SubmitGuess(letter)

		round := sess.Engine.Round()
		if f := sess.Engine.Facts(); f.Over && sess.Recorded != round.ID {
			entry := ledger.FromRound(sess.ID, sess.Mode, round, f, time.Now().UTC())
			finished = &entry
			sess.Recorded = round.ID
		}
		res = stateOf(sess)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"no_game"}`, http.StatusNotFound)
		return
	case errors.Is(err, errGameOver):
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist the outcome (best effort, non-fatal if it fails)
	if finished != nil {
		if err := s.ledger.Record(r.Context(), *finished); err != nil {
			log.Warn().Err(err).Str("round", finished.RoundID).Msg("record round")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------ HISTORY ------------------------------------

// handleStats returns played/wins/losses/streak for the session.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.ledger.Stats(r.Context(), session.ID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("stats")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// handleMine lists the session's recently finished rounds.
func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	rows, err := s.ledger.Recent(r.Context(), session.ID(r.Context()), 50)
	if err != nil {
		log.Error().Err(err).Msg("recent rounds")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}
