package feedback_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

func mustPattern(t *testing.T, word, pattern string) feedback.GuessRow {
	t.Helper()
	r, err := feedback.ParsePattern(word, pattern)
	require.NoError(t, err)
	return r
}

func TestNewRow_RejectsWrongLength(t *testing.T) {
	_, err := feedback.NewRow([]feedback.Cell{{Letter: 'a', State: feedback.StateAbsent}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, feedback.ErrMalformedRow))
}

func TestNewRow_RejectsMixedEmpty(t *testing.T) {
	cells := []feedback.Cell{
		{Letter: 'c', State: feedback.StateAbsent},
		{Letter: 'r', State: feedback.StateCorrect},
		{Letter: 'a', State: feedback.StatePresent},
		{State: feedback.StateEmpty},
		{State: feedback.StateEmpty},
	}
	_, err := feedback.NewRow(cells)
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)
}

func TestNewRow_RejectsUnfilledAndUnknownState(t *testing.T) {
	empty := make([]feedback.Cell, feedback.WordLen)
	for i := range empty {
		empty[i].State = feedback.StateEmpty
	}
	_, err := feedback.NewRow(empty)
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)

	bad := []feedback.Cell{
		{Letter: 'a', State: "tbd"},
		{Letter: 'b', State: feedback.StateAbsent},
		{Letter: 'c', State: feedback.StateAbsent},
		{Letter: 'd', State: feedback.StateAbsent},
		{Letter: 'e', State: feedback.StateAbsent},
	}
	_, err = feedback.NewRow(bad)
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)
}

func TestNewRow_LowersLetters(t *testing.T) {
	cells := []feedback.Cell{
		{Letter: 'C', State: feedback.StateCorrect},
		{Letter: 'R', State: feedback.StateCorrect},
		{Letter: 'A', State: feedback.StateCorrect},
		{Letter: 'N', State: feedback.StateCorrect},
		{Letter: 'E', State: feedback.StateCorrect},
	}
	r, err := feedback.NewRow(cells)
	require.NoError(t, err)
	assert.Equal(t, "crane", r.Word())
	assert.True(t, r.Solved())
}

func TestSolvedWord(t *testing.T) {
	w, ok := feedback.SolvedWord(mustPattern(t, "plane", "ggggg"))
	assert.True(t, ok)
	assert.Equal(t, "plane", w)

	_, ok = feedback.SolvedWord(mustPattern(t, "plane", "ggggy"))
	assert.False(t, ok)
}

func TestParsePattern_Symbols(t *testing.T) {
	r := mustPattern(t, "crane", "-+~.G")
	assert.Equal(t, "bgybg", r.Pattern())
	assert.Equal(t, feedback.StateAbsent, r.Cell(0).State)
	assert.Equal(t, feedback.StateCorrect, r.Cell(1).State)
	assert.Equal(t, feedback.StatePresent, r.Cell(2).State)

	_, err := feedback.ParsePattern("crane", "gg?gg")
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)
	_, err = feedback.ParsePattern("cran", "gggg")
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)
}

func TestScore(t *testing.T) {
	cases := []struct {
		answer, guess, want string
	}{
		{"crane", "crane", "ggggg"},
		{"plane", "crane", "bbggg"},
		{"train", "crane", "bggyb"},
		// Only one e in the answer: the second e is absent.
		{"crane", "geese", "bbbbg"},
		// Repeated guess letter, one present copy.
		{"abbey", "babes", "yyggb"},
		{"sassy", "esses", "bygby"},
	}
	for _, tc := range cases {
		r, err := feedback.Score(tc.answer, tc.guess)
		require.NoError(t, err)
		assert.Equal(t, tc.want, r.Pattern(), "%s vs %s", tc.guess, tc.answer)
	}

	_, err := feedback.Score("crane", "cran3")
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)
}

func TestHistory_AppendIsImmutable(t *testing.T) {
	var h0 feedback.History
	h1, err := h0.Append(mustPattern(t, "crane", "bgybg"))
	require.NoError(t, err)
	h2, err := h1.Append(mustPattern(t, "plane", "ggggg"))
	require.NoError(t, err)

	assert.Equal(t, 0, h0.Len())
	assert.Equal(t, 1, h1.Len())
	assert.Equal(t, 2, h2.Len())
	assert.Equal(t, []string{"crane", "plane"}, h2.Words())

	last, ok := h2.Last()
	require.True(t, ok)
	assert.True(t, last.Solved())

	_, ok = h0.Last()
	assert.False(t, ok)

	_, err = h0.Append(feedback.GuessRow{})
	assert.ErrorIs(t, err, feedback.ErrMalformedRow)
}

func TestLetterSet(t *testing.T) {
	s := feedback.NewLetterSet('r', 'a', 'e', 'A', '1')
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has('a'))
	assert.False(t, s.Has('z'))
	assert.Equal(t, "aer", s.String())

	d := s.Minus(feedback.NewLetterSet('a'))
	assert.Equal(t, "er", d.String())
	assert.Equal(t, "aer", s.String())

	var zero feedback.LetterSet
	assert.Equal(t, 0, zero.Len())
	assert.False(t, zero.Has('a'))
	assert.Equal(t, "", zero.Minus(s).String())
}

func TestRender(t *testing.T) {
	h, err := feedback.NewHistory(
		mustPattern(t, "crane", "bgybg"),
		mustPattern(t, "plane", "ggggg"),
	)
	require.NoError(t, err)
	assert.Equal(t, "⬜🟩🟨⬜🟩\n🟩🟩🟩🟩🟩", feedback.RenderHistory(h))
}
