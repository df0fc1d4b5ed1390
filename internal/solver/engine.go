// apps/go-solver/internal/solver/engine.go
//
// Candidate engine for one puzzle-solving session.
// Responsibilities:
//   - Narrow the dictionary to the words consistent with the feedback so far.
//   - Pick the next guess (distinct-letter words preferred on early turns).
//   - Detect the terminal conditions: solved, or out of turns.
//
// Notes:
//   - The engine keeps no state between calls. The caller owns the History
//     and passes it in whole on every call.
//   - Randomness comes from an injected *rand.Rand so tests can seed it.
//     A *rand.Rand is not safe for concurrent use; give each session its own Engine.
package solver

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// ErrNoCandidates means the feedback ruled out every dictionary word.
// It points at a dictionary/feedback mismatch; callers must abort rather
// than guess blindly.
var ErrNoCandidates = errors.New("solver: no candidates left")

const defaultDistinctTurns = 2

// Options tune the engine. The zero value matches the default behaviour.
type Options struct {
	// ExcludeUsedWords drops words already submitted from the candidates.
	ExcludeUsedWords bool
	// MaxTurns is the attempt budget (default feedback.MaxTurns).
	MaxTurns int
	// DistinctTurns is how many opening turns prefer all-distinct-letter words (default 2).
	DistinctTurns int
}

func (o Options) withDefaults() Options {
	if o.MaxTurns <= 0 {
		o.MaxTurns = feedback.MaxTurns
	}
	if o.DistinctTurns <= 0 {
		o.DistinctTurns = defaultDistinctTurns
	}
	return o
}

// Engine narrows candidates and selects guesses.
type Engine struct {
	rng  *rand.Rand
	opts Options
}

// New constructs an Engine. A nil rng gets an unseeded PCG source.
func New(rng *rand.Rand, opts Options) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{rng: rng, opts: opts.withDefaults()}
}

// NewSeeded constructs an Engine whose choices are reproducible for seed.
func NewSeeded(seed uint64, opts Options) *Engine {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), opts)
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Narrow returns the candidates consistent with h, applying the used-word
// rule when it is enabled.
func (e *Engine) Narrow(h feedback.History, dictionary []string) []string {
	words := Narrow(h, dictionary)
	if e.opts.ExcludeUsedWords && h.Len() > 0 {
		words = withoutUsed(h, words)
	}
	return words
}

// SelectGuess picks one candidate for turn turnIndex (0-based).
//
// On the first DistinctTurns turns, words whose letters are pairwise
// distinct are preferred: the pick is uniform among them when any exist,
// and uniform over all candidates otherwise.
func (e *Engine) SelectGuess(candidates []string, turnIndex int) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	pool := candidates
	if turnIndex < e.opts.DistinctTurns {
		if distinct := distinctLetterWords(candidates); len(distinct) > 0 {
			pool = distinct
		}
	}
	return pool[e.rng.IntN(len(pool))], nil
}

// NextAction decides what to do on turn turnIndex given the rows so far.
//
//   - last row all correct → ActionSolved with the word (whatever the turn)
//   - turnIndex >= MaxTurns → ActionExhausted
//   - otherwise           → ActionGuess with a word from the narrowed set
func (e *Engine) NextAction(h feedback.History, dictionary []string, turnIndex int) (Action, error) {
	if last, ok := h.Last(); ok {
		if word, solved := feedback.SolvedWord(last); solved {
			return Action{Kind: ActionSolved, Word: word}, nil
		}
	}
	if turnIndex >= e.opts.MaxTurns {
		return Action{Kind: ActionExhausted}, nil
	}
	candidates := e.Narrow(h, dictionary)
	word, err := e.SelectGuess(candidates, turnIndex)
	if err != nil {
		return Action{}, fmt.Errorf("turn %d after %d rows: %w", turnIndex, h.Len(), err)
	}
	return Action{Kind: ActionGuess, Word: word, Candidates: len(candidates)}, nil
}

// distinctLetterWords keeps words with no repeated letter.
func distinctLetterWords(words []string) []string {
	var out []string
	for _, w := range words {
		if hasDistinctLetters(w) {
			out = append(out, w)
		}
	}
	return out
}

func hasDistinctLetters(w string) bool {
	var seen uint32
	for i := 0; i < len(w); i++ {
		bit := uint32(1) << (w[i] - 'a')
		if seen&bit != 0 {
			return false
		}
		seen |= bit
	}
	return true
}
