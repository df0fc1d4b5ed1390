// apps/go-solver/internal/solver/constraints.go
//
// Constraints accumulated from a History, and the four filters that apply
// them to a word list.
//
// Filter order (each is an independent set intersection, so the order only
// matters for readability of the debug log):
//   1. inclusion  – every letter seen correct/present must appear somewhere.
//   2. exclusion  – letters seen absent, minus the inclusion letters, must not appear.
//   3. pinned     – a correct tile fixes the letter in its column.
//   4. wrong-spot – a present tile rules its letter out of its column.

package solver

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// Constraints is everything a History says about the answer.
type Constraints struct {
	MustContain feedback.LetterSet                   // seen correct or present
	Excluded    feedback.LetterSet                   // seen absent and never correct/present
	Pinned      [feedback.WordLen]byte               // 0 when the column is unconstrained
	WrongAt     [feedback.WordLen]feedback.LetterSet // letters known not to be in a column
}

// Derive folds every row of h into one Constraints value.
//
// A letter marked absent in one tile and correct/present in another is the
// puzzle's way of saying "there is exactly as many of this letter as were
// marked"; it is not excluded globally.
func Derive(h feedback.History) Constraints {
	var c Constraints
	var absent feedback.LetterSet
	for _, row := range h.Rows() {
		for i := 0; i < feedback.WordLen; i++ {
			cell := row.Cell(i)
			switch cell.State {
			case feedback.StateCorrect:
				c.MustContain.Add(cell.Letter)
				c.Pinned[i] = cell.Letter
			case feedback.StatePresent:
				c.MustContain.Add(cell.Letter)
				c.WrongAt[i].Add(cell.Letter)
			case feedback.StateAbsent:
				absent.Add(cell.Letter)
			}
		}
	}
	c.Excluded = absent.Minus(c.MustContain)
	return c
}

// Allows reports whether word satisfies all four filters.
func (c Constraints) Allows(word string) bool {
	return len(word) == feedback.WordLen &&
		c.containsRequired(word) &&
		c.avoidsExcluded(word) &&
		c.matchesPinned(word) &&
		c.avoidsWrongSpots(word)
}

// PinnedPattern shows pinned columns as letters and free columns as '_'.
func (c Constraints) PinnedPattern() string {
	b := make([]byte, feedback.WordLen)
	for i, l := range c.Pinned {
		if l == 0 {
			b[i] = '_'
		} else {
			b[i] = l
		}
	}
	return string(b)
}

func (c Constraints) containsRequired(word string) bool {
	var have feedback.LetterSet
	for i := 0; i < len(word); i++ {
		have.Add(word[i])
	}
	for _, l := range c.MustContain.Letters() {
		if !have.Has(l) {
			return false
		}
	}
	return true
}

func (c Constraints) avoidsExcluded(word string) bool {
	for i := 0; i < len(word); i++ {
		if c.Excluded.Has(word[i]) {
			return false
		}
	}
	return true
}

func (c Constraints) matchesPinned(word string) bool {
	for i, l := range c.Pinned {
		if l != 0 && word[i] != l {
			return false
		}
	}
	return true
}

func (c Constraints) avoidsWrongSpots(word string) bool {
	for i := range c.WrongAt {
		if c.WrongAt[i].Has(word[i]) {
			return false
		}
	}
	return true
}

// filter keeps the words pred accepts, in their original order.
func filter(name string, words []string, pred func(string) bool) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) == feedback.WordLen && pred(w) {
			out = append(out, w)
		}
	}
	log.Debug().Str("filter", name).Int("in", len(words)).Int("out", len(out)).Msg("narrow")
	return out
}

// Narrow returns the words of dictionary consistent with every row of h.
// An empty history returns dictionary itself.
func Narrow(h feedback.History, dictionary []string) []string {
	if h.Len() == 0 {
		return dictionary
	}
	c := Derive(h)
	words := filter("inclusion", dictionary, c.containsRequired)
	words = filter("exclusion", words, c.avoidsExcluded)
	words = filter("pinned", words, c.matchesPinned)
	words = filter("wrong-spot", words, c.avoidsWrongSpots)
	return words
}

// withoutUsed drops words that were already submitted in h.
func withoutUsed(h feedback.History, words []string) []string {
	used := make(map[string]struct{}, h.Len())
	for _, w := range h.Words() {
		used[w] = struct{}{}
	}
	return filter("used", words, func(w string) bool {
		_, seen := used[w]
		return !seen
	})
}
