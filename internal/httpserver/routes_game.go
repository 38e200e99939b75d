// internal/httpserver/routes_game.go
//
// HTTP routes for a game session:
//   - POST /game/new          → start a free or daily game
//   - GET  /game/{id}         → current dice and board
//   - POST /game/{id}/place   → put a die on a cell (moves it if already placed)
//   - POST /game/{id}/remove  → take the die on a cell back off the board
//   - POST /game/{id}/reroll  → new random dice, cleared board (free mode)
//   - POST /game/{id}/reset   → cleared board, same dice
//   - GET  /game/{id}/check   → judge the board without finishing
//   - POST /game/{id}/submit  → judge and finish if solved
//
// Live games sit in the store; the games table keeps history for /games/mine.
// History writes are best effort: a failed write is logged, never returned.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dicegrid/internal/board"
	"github.com/robalobadob/dicegrid/internal/daily"
	"github.com/robalobadob/dicegrid/internal/game"
	"github.com/robalobadob/dicegrid/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/place", s.handlePlace)
			r.Post("/remove", s.handleRemove)
			r.Post("/reroll", s.handleReroll)
			r.Post("/reset", s.handleReset)
			r.Get("/check", s.handleCheck)
			r.Post("/submit", s.handleSubmit)
		})
	})
}

// ------------------------------ views ---------------------------------------

type placementView struct {
	Die int `json:"die"`
	board.Coord
}

type gameView struct {
	GameID     string          `json:"gameId"`
	Mode       game.Mode       `json:"mode"`
	Seed       string          `json:"seed,omitempty"`
	Dice       []string        `json:"dice"`
	Board      [][]string      `json:"board"`
	Placements []placementView `json:"placements"`
	Rerolls    int             `json:"rerolls"`
	State      string          `json:"state"` // playing | solved
}

func viewOf(g *game.Game) gameView {
	placed := g.Board.Placements()
	ps := make([]placementView, 0, len(placed))
	for die, at := range placed {
		ps = append(ps, placementView{Die: die, Coord: at})
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Die < ps[j].Die })
	return gameView{
		GameID:     g.ID,
		Mode:       g.Mode,
		Seed:       g.Seed,
		Dice:       g.Dice,
		Board:      g.Board.Rows(),
		Placements: ps,
		Rerolls:    g.Rerolls,
		State:      g.State(),
	}
}

// writeGameError maps engine and store errors to HTTP responses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "finished")
	case errors.Is(err, game.ErrRerollNotAllowed):
		writeError(w, http.StatusConflict, "reroll_not_allowed")
	case errors.Is(err, board.ErrOccupied):
		writeError(w, http.StatusConflict, "occupied")
	case errors.Is(err, board.ErrOutOfBounds):
		writeError(w, http.StatusBadRequest, "out_of_bounds")
	case errors.Is(err, game.ErrInvalidDie):
		writeError(w, http.StatusBadRequest, "invalid_die")
	case errors.Is(err, game.ErrEmptyCell):
		writeError(w, http.StatusBadRequest, "empty_cell")
	case errors.Is(err, game.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, "invalid_mode")
	default:
		log.Error().Err(err).Msg("game action")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// update runs fn on the game named in the URL and writes any error.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(g *game.Game) error) (*game.Game, bool) {
	g, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), fn)
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	return g, true
}

// ------------------------------ handlers ------------------------------------

type newGameReq struct {
	Mode game.Mode `json:"mode"` // "free" (default) | "daily"
}

// handleNewGame creates a game in the store and a history row owned by the
// user (or the anonymous cookie). A daily game can only be started once per
// player per day.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Mode == "" {
		req.Mode = game.ModeFree
	}
	var seed string
	owner := s.ownerID(w, r)
	if req.Mode == game.ModeDaily {
		seed = s.today()
		played, err := s.daily.AlreadyPlayed(r.Context(), owner, seed)
		if err != nil {
			log.Error().Err(err).Msg("daily already played")
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}
		if played {
			writeError(w, http.StatusConflict, "already_played")
			return
		}
	}
	g, err := game.New(req.Mode, seed)
	if err != nil {
		writeGameError(w, err)
		return
	}
	g.Started = s.now()
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	ownerCol := "anonymous_id"
	if me := userFrom(r.Context()); me != nil {
		ownerCol = "user_id"
		if err := bumpStats(r.Context(), s.db, me.ID, statStarted); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	if _, err := s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, `+ownerCol+`, mode, seed, dice, status, started_at) VALUES (?,?,?,?,?,?,?)`,
		g.ID, owner, string(g.Mode), g.Seed, strings.Join(g.Dice, ""), g.State(), g.Started.UTC().Format(time.RFC3339),
	); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	log.Info().Str("gameId", g.ID).Str("mode", string(g.Mode)).Str("seed", g.Seed).Msg("game started")
	writeJSON(w, http.StatusCreated, viewOf(g))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g))
}

type placeReq struct {
	Die int `json:"die"`
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.update(w, r, func(g *game.Game) error {
		return g.Place(req.Die, board.Coord{Row: req.Row, Col: req.Col})
	})
	if ok {
		writeJSON(w, http.StatusOK, viewOf(g))
	}
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var at board.Coord
	if err := json.NewDecoder(r.Body).Decode(&at); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.update(w, r, func(g *game.Game) error {
		_, err := g.RemoveAt(at)
		return err
	})
	if ok {
		writeJSON(w, http.StatusOK, viewOf(g))
	}
}

func (s *Server) handleReroll(w http.ResponseWriter, r *http.Request) {
	g, ok := s.update(w, r, (*game.Game).Reroll)
	if !ok {
		return
	}
	if _, err := s.db.ExecContext(r.Context(), `UPDATE games SET dice=? WHERE id=?`, strings.Join(g.Dice, ""), g.ID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("update dice")
	}
	if me := userFrom(r.Context()); me != nil {
		if err := bumpStats(r.Context(), s.db, me.ID, statAbandon); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	writeJSON(w, http.StatusOK, viewOf(g))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g, ok := s.update(w, r, (*game.Game).Reset)
	if ok {
		writeJSON(w, http.StatusOK, viewOf(g))
	}
}

type checkRes struct {
	Game       gameView        `json:"game"`
	Evaluation game.Evaluation `json:"evaluation"`
	Recorded   bool            `json:"recorded,omitempty"` // daily result stored
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkRes{Game: viewOf(g), Evaluation: g.Evaluate()})
}

// handleSubmit judges the board. A solved board finishes the game, updates
// history and stats, and for daily games records the leaderboard entry.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var ev game.Evaluation
	g, ok := s.update(w, r, func(g *game.Game) error {
		var err error
		ev, err = g.Submit()
		return err
	})
	if !ok {
		return
	}
	res := checkRes{Game: viewOf(g), Evaluation: ev}
	if !ev.Solved {
		writeJSON(w, http.StatusOK, res)
		return
	}

	ctx := r.Context()
	now := s.now()
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET status=?, score=?, finished_at=? WHERE id=?`,
		g.State(), ev.Score, now.UTC().Format(time.RFC3339), g.ID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("finish game")
	}
	if me := userFrom(ctx); me != nil {
		if err := bumpStats(ctx, s.db, me.ID, statSolved); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	if g.Mode == game.ModeDaily {
		found := make([]string, 0, len(ev.Words))
		for _, wc := range ev.Words {
			found = append(found, strings.ToLower(wc.Text))
		}
		inserted, err := s.daily.InsertResult(ctx, daily.Result{
			UserID:    s.ownerID(w, r),
			Date:      g.Seed,
			Score:     ev.Score,
			Words:     found,
			ElapsedMs: int(now.Sub(g.Started).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert daily result")
		}
		res.Recorded = inserted
	}
	log.Info().Str("gameId", g.ID).Int("score", ev.Score).Msg("game solved")
	writeJSON(w, http.StatusOK, res)
}
