package browser

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// Tile is one board tile as scraped from the page.
type Tile struct {
	Text  string `json:"text"`
	State string `json:"state"`
}

// stateTBD marks a typed but unsubmitted tile.
const stateTBD = "tbd"

// RowsFromTiles converts scraped board rows into feedback rows.
//
// Rows where every tile is empty have not been played and are skipped.
// A row holding typed but unsubmitted tiles, or mixing empty and evaluated
// tiles, is malformed.
func RowsFromTiles(board [][]Tile) ([]feedback.GuessRow, error) {
	var out []feedback.GuessRow
	for i, tiles := range board {
		if unplayed(tiles) {
			continue
		}
		cells := make([]feedback.Cell, 0, len(tiles))
		for j, t := range tiles {
			state := strings.ToLower(strings.TrimSpace(t.State))
			if state == stateTBD {
				return nil, fmt.Errorf("%w: row %d column %d not evaluated yet", feedback.ErrMalformedRow, i, j)
			}
			var letter byte
			if txt := strings.TrimSpace(t.Text); len(txt) == 1 {
				letter = txt[0]
			}
			cells = append(cells, feedback.Cell{Letter: letter, State: feedback.LetterState(state)})
		}
		row, err := feedback.NewRow(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func unplayed(tiles []Tile) bool {
	for _, t := range tiles {
		if s := strings.TrimSpace(t.State); s != "" && s != string(feedback.StateEmpty) {
			return false
		}
	}
	return true
}
