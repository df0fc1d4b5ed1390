package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// EngineFactory builds a fresh engine for game i. Engines are not shared
// between goroutines.
type EngineFactory func(i int) *solver.Engine

// BenchFailure records a game that ended in an error.
type BenchFailure struct {
	Answer string
	Err    error
}

// BenchResult aggregates offline games.
type BenchResult struct {
	Games     int
	Solved    int
	Exhausted int
	Failed    int
	// Turns[n] counts games solved on guess n. It has at least
	// MaxTurns+1 entries and grows for engines allowed more turns.
	Turns    []int
	Failures []BenchFailure
}

// Average returns the mean number of guesses over solved games.
func (r BenchResult) Average() float64 {
	if r.Solved == 0 {
		return 0
	}
	total := 0
	for n, c := range r.Turns {
		total += n * c
	}
	return float64(total) / float64(r.Solved)
}

func (r *BenchResult) addSolved(turns int) {
	if turns < 0 {
		turns = 0
	}
	for len(r.Turns) <= turns {
		r.Turns = append(r.Turns, 0)
	}
	r.Solved++
	r.Turns[turns]++
}

type staticWords []string

func (w staticWords) Words(ctx context.Context) ([]string, error) { return w, nil }

// Bench plays one offline game per answer, at most concurrency at a time.
// Games that fail (e.g. an answer missing from dictionary) are counted, not
// returned as errors; only cancellation stops the run.
func Bench(ctx context.Context, newEngine EngineFactory, dictionary, answers []string, concurrency int) (BenchResult, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	quiet := zerolog.Nop()

	var mu sync.Mutex
	res := BenchResult{Turns: make([]int, feedback.MaxTurns+1)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, answer := range answers {
		g.Go(func() error {
			board, err := game.New(answer, nil)
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				res.Games++
				res.Failed++
				res.Failures = append(res.Failures, BenchFailure{Answer: answer, Err: err})
				return nil
			}
			d := &Driver{
				Dictionary: staticWords(dictionary),
				Feedback:   board,
				Sink:       board,
				Engine:     newEngine(i),
				Log:        &quiet,
			}
			out, runErr := d.Run(gctx)
			if runErr != nil && (errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded)) {
				return runErr
			}

			mu.Lock()
			defer mu.Unlock()
			res.Games++
			switch {
			case runErr != nil:
				res.Failed++
				res.Failures = append(res.Failures, BenchFailure{Answer: answer, Err: runErr})
			case out.State == StateSolved:
				res.addSolved(out.Turns)
			default:
				res.Exhausted++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}
