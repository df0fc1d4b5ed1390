// apps/go-solver/internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver endpoints: stateless narrowing and step-wise sessions (/solver/*).
//   - Daily demo: solve today's offline puzzle (/daily/solve).
//
// Notes:
//   - Sessions live in the in-memory store only; nothing is persisted.
//   - Each session gets its own engine (and random source).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Config carries the server's tunables.
type Config struct {
	ClientOrigin string        // CORS origin; default http://localhost:5173
	ExcludeUsed  bool          // default for the used-word rule
	DailySalt    string        // salt for /daily/solve
	Timeout      time.Duration // per-request handler budget; default 10s
}

// Server bundles router, session store and dictionaries.
type Server struct {
	r          *chi.Mux
	store      store.Store
	dictionary []string
	allowed    words.Set
	cfg        Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dictionary, allowed []string, cfg Config) *Server {
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	s := &Server{
		r:          chi.NewRouter(),
		store:      st,
		dictionary: dictionary,
		allowed:    words.ToSet(allowed),
		cfg:        cfg,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)            // add X-Request-ID
	s.r.Use(chimw.RealIP)               // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)            // recover from panics
	s.r.Use(chimw.Timeout(cfg.Timeout)) // bound handler time
	s.r.Use(jsonContentType)            // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /solver/narrow","POST /solver/sessions","GET /daily/solve"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"dictionary": len(s.dictionary), "allowed": len(s.allowed)})
	})

	s.mountSolver()
	s.mountDaily()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish within shutdownGrace.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Str("addr", addr).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const shutdownGrace = 5 * time.Second

// Router exposes the internal router (useful for tests).
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
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// errStatus maps solver/session errors onto a status code and error code.
func errStatus(err error) (int, string) {
	switch {
	case errors.Is(err, feedback.ErrMalformedRow):
		return http.StatusBadRequest, "malformed_row"
	case errors.Is(err, session.ErrOutOfOrder):
		return http.StatusBadRequest, "out_of_order"
	case errors.Is(err, session.ErrTerminal):
		return http.StatusConflict, "finished"
	case errors.Is(err, solver.ErrNoCandidates):
		return http.StatusUnprocessableEntity, "no_candidates"
	case errors.Is(err, game.ErrNotAllowed), errors.Is(err, game.ErrInvalidGuess):
		return http.StatusUnprocessableEntity, "rejected_guess"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}

// writeErr writes err with the status errStatus picks.
func writeErr(w http.ResponseWriter, err error) {
	status, code := errStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorRes{Error: code, Detail: err.Error()})
}

// rowView is the JSON shape of one feedback row.
type rowView struct {
	Word    string `json:"word"`
	Pattern string `json:"pattern"`
	Tiles   string `json:"tiles"`
}

func viewRows(h feedback.History) []rowView {
	out := make([]rowView, 0, h.Len())
	for _, r := range h.Rows() {
		out = append(out, rowView{Word: r.Word(), Pattern: r.Pattern(), Tiles: feedback.Render(r)})
	}
	return out
}
