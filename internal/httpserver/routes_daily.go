// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word. Exposes two endpoints under /daily:
//   - POST /daily/new         → start a round on today's word (session)
//   - GET  /daily/leaderboard → best daily wins for today (or ?date=YYYY-MM-DD)
//
// A daily round is an ordinary round whose word comes from words.DailySource;
// guesses go through POST /game/guess like any other round. Each session gets
// one daily round per day: asking again mid-round returns that round, asking
// after it finished answers 409 already_played (see startRound).

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/ledger"
	"github.com/robalobadob/endgame/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.With(s.sessions.Middleware).Post("/new", func(w http.ResponseWriter, r *http.Request) {
			s.startRound(w, r, modeDaily)
		})
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string         `json:"date"`
	Top  []ledger.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = words.DateKey(time.Now())
	}
	rows, err := s.ledger.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
