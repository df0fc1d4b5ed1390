// apps/go-solver/internal/feedback/history.go

package feedback

import "fmt"

// History is the chronological, append-only log of rows for one session.
// The zero value is an empty history. Append never touches the receiver.
type History struct {
	rows []GuessRow
}

// NewHistory builds a history from rows in order.
func NewHistory(rows ...GuessRow) (History, error) {
	var h History
	for _, r := range rows {
		var err error
		if h, err = h.Append(r); err != nil {
			return History{}, err
		}
	}
	return h, nil
}

// Append returns a new History with row added at the end.
func (h History) Append(row GuessRow) (History, error) {
	if !row.valid() {
		return h, fmt.Errorf("%w: only fully filled rows can be recorded", ErrMalformedRow)
	}
	rows := make([]GuessRow, len(h.rows), len(h.rows)+1)
	copy(rows, h.rows)
	return History{rows: append(rows, row)}, nil
}

// Len returns the number of recorded rows.
func (h History) Len() int { return len(h.rows) }

// Row returns the i-th recorded row.
func (h History) Row(i int) GuessRow { return h.rows[i] }

// Rows returns a copy of the recorded rows.
func (h History) Rows() []GuessRow {
	out := make([]GuessRow, len(h.rows))
	copy(out, h.rows)
	return out
}

// Last returns the most recent row, or false if the history is empty.
func (h History) Last() (GuessRow, bool) {
	if len(h.rows) == 0 {
		return GuessRow{}, false
	}
	return h.rows[len(h.rows)-1], true
}

// Words lists the guessed words in order.
func (h History) Words() []string {
	out := make([]string, len(h.rows))
	for i, r := range h.rows {
		out[i] = r.Word()
	}
	return out
}
