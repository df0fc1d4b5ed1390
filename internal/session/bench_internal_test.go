package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

func TestBenchResult_AddSolvedBeyondBoard(t *testing.T) {
	r := BenchResult{Turns: make([]int, feedback.MaxTurns+1)}
	r.addSolved(3)
	r.addSolved(feedback.MaxTurns + 2)

	assert.Equal(t, 2, r.Solved)
	assert.Len(t, r.Turns, feedback.MaxTurns+3)
	assert.Equal(t, 1, r.Turns[3])
	assert.Equal(t, 1, r.Turns[feedback.MaxTurns+2])
	assert.InDelta(t, float64(3+feedback.MaxTurns+2)/2, r.Average(), 1e-9)

	var empty BenchResult
	empty.addSolved(1)
	assert.Equal(t, []int{0, 1}, empty.Turns)
}
