// apps/go-solver/internal/feedback/score.go
//
// Score produces the feedback the puzzle would show for guess against a
// known answer. The live puzzle does this on its side; the solver needs it
// for offline games, benchmarks and tests.

package feedback

import (
	"fmt"
	"strings"
)

// Score implements the standard two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non‑correct) answer letters.
//
// Pass 2:
//   - For each remaining guess letter: if the count for that letter is
//     positive, mark present and decrement; otherwise mark absent.
//
// This is what makes a repeated guess letter show up as absent next to a
// present/correct copy of itself.
func Score(answer, guess string) (GuessRow, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	guess = strings.ToLower(strings.TrimSpace(guess))
	if !IsWord(answer) || !IsWord(guess) {
		return GuessRow{}, fmt.Errorf("%w: score %q against %q", ErrMalformedRow, guess, answer)
	}

	cells := make([]Cell, WordLen)
	var counts [26]int

	// First pass: hits, and counts for the answer letters left over.
	for i := 0; i < WordLen; i++ {
		cells[i].Letter = guess[i]
		if guess[i] == answer[i] {
			cells[i].State = StateCorrect
		} else {
			counts[answer[i]-'a']++
		}
	}

	// Second pass: presents/absents for the rest.
	for i := 0; i < WordLen; i++ {
		if cells[i].State == StateCorrect {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			cells[i].State = StatePresent
			counts[j]--
		} else {
			cells[i].State = StateAbsent
		}
	}
	return NewRow(cells)
}

// IsWord reports whether s is WordLen lowercase ASCII letters.
func IsWord(s string) bool {
	if len(s) != WordLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLower(s[i]) {
			return false
		}
	}
	return true
}
