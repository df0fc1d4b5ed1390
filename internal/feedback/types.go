// apps/go-solver/internal/feedback/types.go
//
// Core type definitions for puzzle feedback.
// Defines:
//   - LetterState: per-tile result reported by the puzzle (correct/present/absent/empty).
//   - Cell: one tile (letter + state).
//   - WordLen / MaxTurns: board dimensions.
//
// The string values of LetterState match the page's `data-state` attribute,
// so scraped values convert without a lookup table.

package feedback

import (
	"errors"
	"fmt"
)

const (
	// WordLen is the number of tiles in a row.
	WordLen = 5
	// MaxTurns is the number of rows on the board.
	MaxTurns = 6
)

// ErrMalformedRow is returned when a row violates the board's structural rules.
var ErrMalformedRow = errors.New("feedback: malformed row")

// LetterState represents the evaluation of a single tile.
// Possible values:
//   - "correct": letter is in the answer at this exact position.
//   - "present": letter is in the answer at a different position.
//   - "absent":  letter is not in the answer (beyond occurrences already marked).
//   - "empty":   tile never filled; only seen on rows not yet submitted.
type LetterState string

const (
	StateCorrect LetterState = "correct"
	StatePresent LetterState = "present"
	StateAbsent  LetterState = "absent"
	StateEmpty   LetterState = "empty"
)

// ParseState maps a raw state string onto a LetterState.
func ParseState(s string) (LetterState, error) {
	switch st := LetterState(s); st {
	case StateCorrect, StatePresent, StateAbsent, StateEmpty:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown state %q", ErrMalformedRow, s)
}

// Cell is one tile of a submitted row.
type Cell struct {
	Letter byte        // lowercase a–z
	State  LetterState // evaluation shown on the tile
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
