// apps/go-solver/internal/httpserver/routes_daily.go
//
// Daily demo route:
//   - GET /daily/solve?date=YYYY-MM-DD&seed=N → play the day's offline puzzle
//
// The day's answer comes from daily.WordIndex (date + salt), so every call
// for the same date plays the same puzzle; the seed fixes the guesses.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

type dailyRes struct {
	Date   string    `json:"date"`
	State  string    `json:"state"`
	Answer string    `json:"answer,omitempty"`
	Turns  int       `json:"turns"`
	Rows   []rowView `json:"rows"`
	Error  string    `json:"error,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily() {
	s.r.Get("/daily/solve", s.handleDailySolve)
}

func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_date", Detail: err.Error()})
			return
		}
		day = t
	}
	engine := solver.New(nil, solver.Options{ExcludeUsedWords: s.cfg.ExcludeUsed})
	if q := r.URL.Query().Get("seed"); q != "" {
		seed, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_seed", Detail: err.Error()})
			return
		}
		engine = solver.NewSeeded(seed, solver.Options{ExcludeUsedWords: s.cfg.ExcludeUsed})
	}

	answer, ok := daily.Answer(day, s.cfg.DailySalt, s.dictionary)
	if !ok {
		writeErr(w, solver.ErrNoCandidates)
		return
	}
	var allowed words.Set
	if len(s.allowed) > 0 {
		allowed = s.allowed
	}
	board, err := game.New(answer, allowed)
	if err != nil {
		writeErr(w, err)
		return
	}
	d := &session.Driver{
		Dictionary: words.Static(s.dictionary),
		Feedback:   board,
		Sink:       board,
		Engine:     engine,
	}
	res, err := d.Run(r.Context())
	out := dailyRes{
		Date:   daily.DateKey(day),
		State:  string(res.State),
		Answer: res.Answer,
		Turns:  res.Turns,
		Rows:   viewRows(res.History),
	}
	status := http.StatusOK
	if err != nil {
		status, out.Error = errStatus(err)
		out.Detail = err.Error()
		log.Warn().Err(err).Str("date", out.Date).Msg("daily solve failed")
	}
	writeJSON(w, status, out)
}
