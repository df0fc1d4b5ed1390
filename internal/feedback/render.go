package feedback

import "strings"

// Tile returns the square emoji the puzzle uses when sharing results.
func Tile(s LetterState) string {
	switch s {
	case StateCorrect:
		return "🟩"
	case StatePresent:
		return "🟨"
	case StateAbsent:
		return "⬜"
	}
	return ""
}

// Render draws one row as emoji squares.
func Render(r GuessRow) string {
	var sb strings.Builder
	for _, c := range r.cells {
		sb.WriteString(Tile(c.State))
	}
	return sb.String()
}

// RenderHistory draws every row, one per line.
func RenderHistory(h History) string {
	lines := make([]string, 0, h.Len())
	for _, r := range h.rows {
		lines = append(lines, Render(r))
	}
	return strings.Join(lines, "\n")
}
