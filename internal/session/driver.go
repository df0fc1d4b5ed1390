// apps/go-solver/internal/session/driver.go
//
// Driver runs a Session end to end against its collaborators: it loads the
// dictionary once, then loops guess → submit → read feedback until the
// session is solved, exhausted, or aborted.
//
// The collaborators are strictly sequential: feedback for turn n is read
// only after the guess for turn n was submitted.

package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// DictionarySource produces the session's dictionary once.
type DictionarySource interface {
	Words(ctx context.Context) ([]string, error)
}

// FeedbackSource returns the row for the most recently submitted guess.
// It must never return a partially filled row.
type FeedbackSource interface {
	Feedback(ctx context.Context) (feedback.GuessRow, error)
}

// GuessSink submits a word as the next guess.
type GuessSink interface {
	Submit(ctx context.Context, word string) error
}

// Driver wires a Session to its collaborators.
type Driver struct {
	Dictionary DictionarySource
	Feedback   FeedbackSource
	Sink       GuessSink
	Engine     *solver.Engine
	Options    []Option
	Log        *zerolog.Logger // nil uses the global logger
}

// Result summarises a finished run.
type Result struct {
	State   State
	Answer  string
	Turns   int
	History feedback.History
}

// Run plays one puzzle. Errors (dictionary load, sink/feedback failures,
// malformed rows, no candidates) abort the session and are returned along
// with the partial result.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	lg := d.logger()
	engine := d.Engine
	if engine == nil {
		engine = solver.New(nil, solver.Options{})
	}
	s := New(engine, d.Options...)

	dict, err := d.Dictionary.Words(ctx)
	if err != nil {
		s.Abort(err)
		return result(s), fmt.Errorf("load dictionary: %w", err)
	}
	if err := s.Load(dict); err != nil {
		return result(s), err
	}
	lg.Info().Int("words", len(dict)).Msg("dictionary loaded")

	for {
		if err := ctx.Err(); err != nil {
			s.Abort(err)
			return result(s), err
		}
		action, err := s.Next()
		if err != nil {
			return result(s), err
		}
		switch action.Kind {
		case solver.ActionSolved:
			lg.Info().Str("answer", action.Word).Msg("answer is")
			return result(s), nil
		case solver.ActionExhausted:
			lg.Info().Msg("out of turns")
			return result(s), nil
		}

		turn := s.Snapshot().Turn
		lg.Info().Int("turn", turn+1).Str("guess", action.Word).Int("candidates", action.Candidates).Msg("guess")
		if err := d.Sink.Submit(ctx, action.Word); err != nil {
			s.Abort(err)
			return result(s), fmt.Errorf("submit %q: %w", action.Word, err)
		}
		row, err := d.Feedback.Feedback(ctx)
		if err != nil {
			s.Abort(err)
			return result(s), fmt.Errorf("read feedback: %w", err)
		}
		if err := s.Observe(row); err != nil {
			s.Abort(err)
			return result(s), err
		}
		lg.Info().Int("turn", turn+1).Str("word", row.Word()).Msg(feedback.Render(row))
	}
}

func (d *Driver) logger() *zerolog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return &log.Logger
}

func result(s *Session) Result {
	snap := s.Snapshot()
	return Result{State: snap.State, Answer: snap.Answer, Turns: snap.Turn, History: snap.History}
}
