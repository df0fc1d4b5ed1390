package solver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var sample = []string{
	"train", "crane", "slate", "plane", "arose", "brave", "grace", "arise",
	"sassy", "geese", "abbey", "babes", "knoll", "lolly", "point", "fjord",
	"mound", "pious", "crest", "trace", "react", "cater", "crate", "eerie",
}

func history(t *testing.T, pairs ...string) feedback.History {
	t.Helper()
	require.Equal(t, 0, len(pairs)%2, "word/pattern pairs")
	var h feedback.History
	for i := 0; i < len(pairs); i += 2 {
		r, err := feedback.ParsePattern(pairs[i], pairs[i+1])
		require.NoError(t, err)
		h, err = h.Append(r)
		require.NoError(t, err)
	}
	return h
}

func TestNarrow_EmptyHistoryReturnsDictionary(t *testing.T) {
	got := solver.Narrow(feedback.History{}, sample)
	if diff := cmp.Diff(sample, got); diff != "" {
		t.Fatalf("Narrow() mismatch (-want +got):\n%s", diff)
	}
}

func TestNarrow_CraneVector(t *testing.T) {
	// c=absent r=correct a=present n=absent e=correct
	h := history(t, "crane", "bgybg")
	dict := []string{"train", "crane", "slate", "plane", "arose", "brave", "grace"}

	got := solver.Narrow(h, dict)
	// train: no e, has n. crane/grace: c. slate/plane: no r. brave: a in column 2.
	if diff := cmp.Diff([]string{"arose"}, got); diff != "" {
		t.Fatalf("Narrow() mismatch (-want +got):\n%s", diff)
	}

	// The four-word dictionary has no consistent word at all.
	assert.Empty(t, solver.Narrow(h, []string{"train", "crane", "slate", "plane"}))
}

func TestDerive_RepeatedLetterNotExcluded(t *testing.T) {
	// Answer "crane", guess "geese": the e's in columns 1-3 are absent but
	// column 4 is correct, so e must stay allowed.
	row, err := feedback.Score("crane", "geese")
	require.NoError(t, err)
	h, err := feedback.NewHistory(row)
	require.NoError(t, err)

	c := solver.Derive(h)
	assert.Equal(t, "e", c.MustContain.String())
	assert.Equal(t, "gs", c.Excluded.String())
	assert.Equal(t, "____e", c.PinnedPattern())
	assert.True(t, c.Allows("crane"))
	assert.Contains(t, solver.Narrow(h, sample), "crane")
}

func TestDerive_PresentPositionsAcrossAllRows(t *testing.T) {
	h := history(t,
		"trace", "byyyb", // r, a, c present in columns 1,2,3
		"cater", "ybbby", // c present in 0, r present in 4
	)
	c := solver.Derive(h)
	assert.True(t, c.WrongAt[0].Has('c'))
	assert.True(t, c.WrongAt[1].Has('r'))
	assert.True(t, c.WrongAt[3].Has('c'))
	assert.True(t, c.WrongAt[4].Has('r'))
	// a is present in row 1 and absent in row 2: kept.
	assert.False(t, c.Excluded.Has('a'))
	assert.True(t, c.Excluded.Has('t'))
	assert.True(t, c.Excluded.Has('e'))
}

func TestNarrow_SoundAndIdempotent(t *testing.T) {
	for _, answer := range sample {
		for _, guess := range []string{"crane", "sassy", "knoll", "eerie"} {
			row, err := feedback.Score(answer, guess)
			require.NoError(t, err)
			h, err := feedback.NewHistory(row)
			require.NoError(t, err)

			once := solver.Narrow(h, sample)
			assert.Contains(t, once, answer, "answer %s lost after guess %s", answer, guess)

			c := solver.Derive(h)
			for _, w := range once {
				assert.True(t, c.Allows(w), "%s accepted but violates constraints", w)
			}

			twice := solver.Narrow(h, once)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("Narrow not idempotent for %s/%s (-once +twice):\n%s", answer, guess, diff)
			}
		}
	}
}

func TestEngine_UsedWordRule(t *testing.T) {
	h := history(t, "geese", "ggbgg")
	dict := []string{"geese", "gense"}

	off := solver.NewSeeded(1, solver.Options{})
	assert.Equal(t, []string{"geese", "gense"}, off.Narrow(h, dict))

	on := solver.NewSeeded(1, solver.Options{ExcludeUsedWords: true})
	assert.Equal(t, []string{"gense"}, on.Narrow(h, dict))
}

func TestSelectGuess_PrefersDistinctLetters(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		e := solver.NewSeeded(seed, solver.Options{})

		w, err := e.SelectGuess([]string{"train", "crane"}, 0)
		require.NoError(t, err)
		assert.Contains(t, []string{"train", "crane"}, w)

		w, err = e.SelectGuess([]string{"sassy", "train"}, 0)
		require.NoError(t, err)
		assert.Equal(t, "train", w)

		w, err = e.SelectGuess([]string{"sassy", "train"}, 1)
		require.NoError(t, err)
		assert.Equal(t, "train", w)

		// Only repeated-letter words: fall back to all candidates.
		w, err = e.SelectGuess([]string{"sassy", "geese"}, 0)
		require.NoError(t, err)
		assert.Contains(t, []string{"sassy", "geese"}, w)
	}
}

func TestSelectGuess_LaterTurnsUseAllCandidates(t *testing.T) {
	seen := map[string]bool{}
	for seed := uint64(0); seed < 200; seed++ {
		e := solver.NewSeeded(seed, solver.Options{})
		w, err := e.SelectGuess([]string{"sassy", "train"}, 2)
		require.NoError(t, err)
		seen[w] = true
	}
	assert.True(t, seen["sassy"])
	assert.True(t, seen["train"])
}

func TestSelectGuess_Deterministic(t *testing.T) {
	a := solver.NewSeeded(42, solver.Options{})
	b := solver.NewSeeded(42, solver.Options{})
	for turn := 0; turn < 6; turn++ {
		wa, err := a.SelectGuess(sample, turn)
		require.NoError(t, err)
		wb, err := b.SelectGuess(sample, turn)
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
	}
}

func TestSelectGuess_NoCandidates(t *testing.T) {
	_, err := solver.NewSeeded(1, solver.Options{}).SelectGuess(nil, 0)
	assert.ErrorIs(t, err, solver.ErrNoCandidates)
}

func TestNextAction(t *testing.T) {
	e := solver.NewSeeded(7, solver.Options{})

	t.Run("solved regardless of turn", func(t *testing.T) {
		h := history(t, "crane", "bgybg", "arose", "ggggg")
		for _, turn := range []int{2, 6, 9} {
			a, err := e.NextAction(h, sample, turn)
			require.NoError(t, err)
			assert.Equal(t, solver.ActionSolved, a.Kind)
			assert.Equal(t, "arose", a.Word)
		}
	})

	t.Run("exhausted at the turn budget", func(t *testing.T) {
		h := history(t, "crane", "bgybg")
		a, err := e.NextAction(h, sample, 6)
		require.NoError(t, err)
		assert.Equal(t, solver.ActionExhausted, a.Kind)
		assert.Empty(t, a.Word)
	})

	t.Run("guess from narrowed set", func(t *testing.T) {
		h := history(t, "crane", "bgybg")
		a, err := e.NextAction(h, sample, 1)
		require.NoError(t, err)
		assert.Equal(t, solver.ActionGuess, a.Kind)
		assert.Contains(t, []string{"arose", "arise"}, a.Word)
		assert.Equal(t, 2, a.Candidates)
	})

	t.Run("empty dictionary on first turn", func(t *testing.T) {
		_, err := e.NextAction(feedback.History{}, nil, 0)
		assert.ErrorIs(t, err, solver.ErrNoCandidates)
	})

	t.Run("contradictory feedback", func(t *testing.T) {
		h := history(t, "crane", "bgybg")
		_, err := e.NextAction(h, []string{"train", "crane", "slate", "plane"}, 1)
		assert.ErrorIs(t, err, solver.ErrNoCandidates)
	})
}

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "guess", solver.ActionGuess.String())
	assert.Equal(t, "solved", solver.ActionSolved.String())
	assert.Equal(t, "exhausted", solver.ActionExhausted.String())
}
