// apps/go-solver/internal/httpserver/routes_solver.go
//
// HTTP routes for the solver.
//   - POST   /solver/narrow                  → candidates for a list of rows (stateless)
//   - POST   /solver/sessions                → start a session, returns the first guess
//   - GET    /solver/sessions/{id}           → current progress
//   - POST   /solver/sessions/{id}/feedback  → record a row, returns the next step
//   - DELETE /solver/sessions/{id}           → forget a session
//
// Rows are sent as {word, pattern} with pattern symbols g (correct),
// y (present), b (absent).

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

const defaultNarrowLimit = 100

// mountSolver registers all /solver routes.
func (s *Server) mountSolver() {
	s.r.Route("/solver", func(r chi.Router) {
		r.Post("/narrow", s.handleNarrow)
		r.Post("/sessions", s.handleNewSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(sessionCtx(s.store))
			r.Get("/", s.handleGetSession)
			r.Post("/feedback", s.handleFeedback)
			r.Delete("/", s.handleDeleteSession)
		})
	})
}

// rowReq is one row of client-supplied feedback.
type rowReq struct {
	Word    string `json:"word"`
	Pattern string `json:"pattern"`
}

type narrowReq struct {
	Rows        []rowReq `json:"rows"`
	ExcludeUsed *bool    `json:"excludeUsed"`
	Limit       int      `json:"limit"`
}

type constraintsView struct {
	MustContain string `json:"mustContain"`
	Excluded    string `json:"excluded"`
	Pinned      string `json:"pinned"`
}

type narrowRes struct {
	Count       int             `json:"count"`
	Candidates  []string        `json:"candidates"`
	Constraints constraintsView `json:"constraints"`
}

// handleNarrow applies rows to the dictionary without creating a session.
func (s *Server) handleNarrow(w http.ResponseWriter, r *http.Request) {
	var req narrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Detail: err.Error()})
		return
	}
	var h feedback.History
	for _, rr := range req.Rows {
		row, err := feedback.ParsePattern(rr.Word, rr.Pattern)
		if err != nil {
			writeErr(w, err)
			return
		}
		if h, err = h.Append(row); err != nil {
			writeErr(w, err)
			return
		}
	}

	engine := solver.New(nil, solver.Options{ExcludeUsedWords: s.excludeUsed(req.ExcludeUsed)})
	candidates := engine.Narrow(h, s.dictionary)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultNarrowLimit
	}
	shown := candidates
	if len(shown) > limit {
		shown = shown[:limit]
	}
	c := solver.Derive(h)
	writeJSON(w, http.StatusOK, narrowRes{
		Count:      len(candidates),
		Candidates: append([]string{}, shown...),
		Constraints: constraintsView{
			MustContain: c.MustContain.String(),
			Excluded:    c.Excluded.String(),
			Pinned:      c.PinnedPattern(),
		},
	})
}

type newSessionReq struct {
	Seed          *uint64 `json:"seed"`
	ExcludeUsed   *bool   `json:"excludeUsed"`
	AllowOverride bool    `json:"allowOverride"`
}

type sessionRes struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	Guess      string    `json:"guess,omitempty"`
	Answer     string    `json:"answer,omitempty"`
	Turn       int       `json:"turn"`
	Candidates int       `json:"candidates,omitempty"`
	Rows       []rowView `json:"rows"`
	Error      string    `json:"error,omitempty"`
}

func viewSession(id string, snap session.Snapshot) sessionRes {
	res := sessionRes{
		ID:         id,
		State:      string(snap.State),
		Guess:      snap.Pending,
		Answer:     snap.Answer,
		Turn:       snap.Turn,
		Candidates: snap.Candidates,
		Rows:       viewRows(snap.History),
	}
	if snap.Err != nil {
		res.Error = snap.Err.Error()
	}
	return res
}

// handleNewSession starts a session and returns its first guess.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Detail: err.Error()})
		return
	}

	opts := solver.Options{ExcludeUsedWords: s.excludeUsed(req.ExcludeUsed)}
	engine := solver.New(nil, opts)
	if req.Seed != nil {
		engine = solver.NewSeeded(*req.Seed, opts)
	}
	var sopts []session.Option
	if req.AllowOverride {
		sopts = append(sopts, session.AllowOverride())
	}
	sess := session.New(engine, sopts...)
	if err := sess.Load(s.dictionary); err != nil {
		writeErr(w, err)
		return
	}
	if _, err := sess.Next(); err != nil {
		writeErr(w, err)
		return
	}
	id, err := s.store.Create(r.Context(), sess)
	if err != nil {
		writeErr(w, err)
		return
	}
	log.Info().Str("session", id).Msg("solver session started")
	writeJSON(w, http.StatusCreated, viewSession(id, sess.Snapshot()))
}

// handleGetSession returns a session's progress.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ref, err := currentSession(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSession(ref.ID, ref.Session.Snapshot()))
}

// handleFeedback records one row and advances the session.
// The word defaults to the pending guess.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	ref, err := currentSession(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	id, sess := ref.ID, ref.Session
	var req rowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Detail: err.Error()})
		return
	}
	snap := sess.Snapshot()
	if snap.State.Terminal() {
		writeErr(w, session.ErrTerminal)
		return
	}
	word := req.Word
	if word == "" {
		word = snap.Pending
	}
	row, err := feedback.ParsePattern(word, req.Pattern)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := sess.Observe(row); err != nil {
		writeErr(w, err)
		return
	}
	if _, err := sess.Next(); err != nil {
		log.Warn().Err(err).Str("session", id).Msg("session aborted")
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSession(id, sess.Snapshot()))
}

// handleDeleteSession forgets a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ref, err := currentSession(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), ref.ID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) excludeUsed(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.cfg.ExcludeUsed
}
