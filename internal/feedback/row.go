// apps/go-solver/internal/feedback/row.go
//
// GuessRow is the full feedback for one submitted guess. Rows are values:
// once built by NewRow, ParsePattern or Score they cannot be changed.

package feedback

import (
	"fmt"
	"strings"
)

// GuessRow holds exactly WordLen cells, indexed by board column.
type GuessRow struct {
	cells [WordLen]Cell
}

// NewRow validates cells and builds a row.
//
// A row must have exactly WordLen cells, each with a letter a–z (upper case
// is lowered) and a known state. Rows are either fully filled or fully
// unfilled; unfilled rows are never recorded, so both an all-empty row and
// a row mixing empty with filled tiles are rejected.
func NewRow(cells []Cell) (GuessRow, error) {
	var r GuessRow
	if len(cells) != WordLen {
		return r, fmt.Errorf("%w: got %d cells, want %d", ErrMalformedRow, len(cells), WordLen)
	}
	empties := 0
	for i, c := range cells {
		if _, err := ParseState(string(c.State)); err != nil {
			return GuessRow{}, fmt.Errorf("column %d: %w", i, err)
		}
		if c.State == StateEmpty {
			empties++
			continue
		}
		l := toLower(c.Letter)
		if !isLower(l) {
			return GuessRow{}, fmt.Errorf("%w: column %d has letter %q", ErrMalformedRow, i, c.Letter)
		}
		r.cells[i] = Cell{Letter: l, State: c.State}
	}
	switch {
	case empties == WordLen:
		return GuessRow{}, fmt.Errorf("%w: row is unfilled", ErrMalformedRow)
	case empties > 0:
		return GuessRow{}, fmt.Errorf("%w: row mixes empty and filled tiles", ErrMalformedRow)
	}
	return r, nil
}

// Cell returns the tile at column i.
func (r GuessRow) Cell(i int) Cell { return r.cells[i] }

// Cells returns a copy of the row's tiles.
func (r GuessRow) Cells() []Cell {
	out := make([]Cell, WordLen)
	copy(out, r.cells[:])
	return out
}

// Word concatenates the row's letters in column order.
func (r GuessRow) Word() string {
	var b [WordLen]byte
	for i, c := range r.cells {
		b[i] = c.Letter
	}
	return string(b[:])
}

// Pattern renders the states as g (correct), y (present) and b (absent),
// the same symbols ParsePattern accepts.
func (r GuessRow) Pattern() string {
	var sb strings.Builder
	for _, c := range r.cells {
		switch c.State {
		case StateCorrect:
			sb.WriteByte('g')
		case StatePresent:
			sb.WriteByte('y')
		case StateAbsent:
			sb.WriteByte('b')
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// Solved reports whether every tile is correct.
func (r GuessRow) Solved() bool { return IsSolved(r) }

// valid reports whether r came out of a constructor (the zero GuessRow did not).
func (r GuessRow) valid() bool {
	for _, c := range r.cells {
		if !isLower(c.Letter) || c.State == StateEmpty || c.State == "" {
			return false
		}
	}
	return true
}

// IsSolved returns true if all cells are StateCorrect.
func IsSolved(r GuessRow) bool {
	for _, c := range r.cells {
		if c.State != StateCorrect {
			return false
		}
	}
	return true
}

// SolvedWord returns the row's word when the row is solved.
func SolvedWord(r GuessRow) (string, bool) {
	if !IsSolved(r) {
		return "", false
	}
	return r.Word(), true
}

// ParsePattern builds a row from a guessed word and a state pattern.
//
// Pattern symbols (one per letter):
//   g G +          correct
//   y Y ~          present
//   b B x X - . _  absent
func ParsePattern(word, pattern string) (GuessRow, error) {
	word = strings.TrimSpace(word)
	pattern = strings.TrimSpace(pattern)
	if len(word) != WordLen || len(pattern) != WordLen {
		return GuessRow{}, fmt.Errorf("%w: word %q / pattern %q must both be %d characters",
			ErrMalformedRow, word, pattern, WordLen)
	}
	cells := make([]Cell, WordLen)
	for i := 0; i < WordLen; i++ {
		var st LetterState
		switch pattern[i] {
		case 'g', 'G', '+':
			st = StateCorrect
		case 'y', 'Y', '~':
			st = StatePresent
		case 'b', 'B', 'x', 'X', '-', '.', '_':
			st = StateAbsent
		default:
			return GuessRow{}, fmt.Errorf("%w: pattern symbol %q", ErrMalformedRow, pattern[i])
		}
		cells[i] = Cell{Letter: word[i], State: st}
	}
	return NewRow(cells)
}
