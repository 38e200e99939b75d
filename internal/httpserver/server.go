// internal/httpserver/server.go
//
// HTTP server wiring for the dicegrid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Dice endpoints: GET /dice/roll, GET /dice/seeded.
//   - Game endpoints (optional auth): mounted under /game.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes still run for guests, who are tracked by an anonymous cookie.

package httpserver

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dicegrid/internal/auth"
	"github.com/robalobadob/dicegrid/internal/config"
	"github.com/robalobadob/dicegrid/internal/daily"
	"github.com/robalobadob/dicegrid/internal/dice"
	"github.com/robalobadob/dicegrid/internal/store"
	"github.com/robalobadob/dicegrid/internal/words"
)

// Server bundles router, in-memory game store, and DB handle.
type Server struct {
	r      *chi.Mux
	store  store.Store
	db     *sql.DB
	daily  *daily.Store
	cfg    config.Config
	signer *auth.Signer
	loc    *time.Location   // where the daily puzzle rolls over
	now    func() time.Time // swapped in tests
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg config.Config) *Server {
	loc, err := cfg.Location()
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.DailyTZ).Msg("unknown DAILY_TZ, using local time")
		loc = time.Local
	}
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		db:     db,
		daily:  daily.NewStore(db),
		cfg:    cfg,
		signer: auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL()),
		loc:    loc,
		now:    time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "dicegrid",
			"endpoints": []string{"/health", "/dice/roll", "/dice/seeded", "POST /game/new", "/daily/today", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "words": words.Stats()})
	})

	// Raw dice, no session
	s.r.Get("/dice/roll", s.handleRoll)
	s.r.Get("/dice/seeded", s.handleSeeded)

	// Games and the daily puzzle: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountGame(r)
		s.mountDaily(r)
	})

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// today is the current daily puzzle date.
func (s *Server) today() string { return daily.Today(s.now(), s.loc) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("reqId", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ------------------------------ DICE ---------------------------------------

type diceRes struct {
	Seed *string  `json:"seed,omitempty"`
	Dice []string `json:"dice"`
}

// handleRoll returns a random roll.
func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, diceRes{Dice: dice.RandomRoll()})
}

// handleSeeded returns the deterministic roll for ?seed= (empty is valid).
func (s *Server) handleSeeded(w http.ResponseWriter, r *http.Request) {
	seed := r.URL.Query().Get("seed")
	writeJSON(w, http.StatusOK, diceRes{Seed: &seed, Dice: dice.SeededRoll(seed)})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
