// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle:
//   - GET /daily/today       → today's date, dice, and whether this player already solved it
//   - GET /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// A daily game itself is started with POST /game/new {"mode":"daily"} and
// finished through /game/{id}/submit, which records the result.
// Dice are SHA-256 of the date key, so every player sees the same puzzle.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dicegrid/internal/daily"
)

const maxLeaderboard = 100

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

type todayRes struct {
	Date   string   `json:"date"`
	Dice   []string `json:"dice"`
	Played bool     `json:"played"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	date := s.today()
	played, err := s.daily.AlreadyPlayed(r.Context(), s.ownerID(w, r), date)
	if err != nil {
		log.Warn().Err(err).Msg("daily already played")
	}
	writeJSON(w, http.StatusOK, todayRes{Date: date, Dice: daily.Dice(date), Played: played})
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for ?date= (default today).
// ?limit= caps the rows (default 20, max 100).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.today()
	} else if !daily.ValidDate(date) {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	limit := daily.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, maxLeaderboard)
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
