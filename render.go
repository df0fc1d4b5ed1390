package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

var (
	tileBase = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#ffffff"))

	tileStyles = map[feedback.LetterState]lipgloss.Style{
		feedback.StateCorrect: tileBase.Background(lipgloss.Color("#6aaa64")),
		feedback.StatePresent: tileBase.Background(lipgloss.Color("#c9b458")),
		feedback.StateAbsent:  tileBase.Background(lipgloss.Color("#787c7e")),
	}

	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6aaa64"))
	loseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	barStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6aaa64"))
)

// renderBoard draws one line of coloured tiles per row.
func renderBoard(h feedback.History) string {
	lines := make([]string, 0, h.Len())
	for _, r := range h.Rows() {
		tiles := make([]string, 0, feedback.WordLen)
		for _, c := range r.Cells() {
			tiles = append(tiles, tileStyles[c.State].Render(strings.ToUpper(string(c.Letter))))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(lines, "\n")
}

func renderVerdict(won bool, msg string) string {
	if won {
		return winStyle.Render("solved: " + msg)
	}
	return loseStyle.Render("not solved: " + msg)
}

// renderBench prints the summary and a guess histogram.
func renderBench(r session.BenchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "games %d  solved %d  exhausted %d  failed %d  avg %.3f\n",
		r.Games, r.Solved, r.Exhausted, r.Failed, r.Average())
	most := 0
	for _, c := range r.Turns {
		most = max(most, c)
	}
	for n := 1; n < len(r.Turns); n++ {
		width := 0
		if most > 0 {
			width = r.Turns[n] * 40 / most
		}
		fmt.Fprintf(&sb, "%d %s %d\n", n, barStyle.Render(strings.Repeat("█", width)), r.Turns[n])
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&sb, "failed %s: %v\n", f.Answer, f.Err)
	}
	return strings.TrimRight(sb.String(), "\n")
}
