// apps/go-solver/internal/game/engine.go
//
// Offline puzzle engine.
// Responsibilities:
//   - Create boards with a fixed answer and a 6-row budget.
//   - Validate and score guesses (length, alphabetic, allowed list).
//   - Track state transitions: playing → won/lost.
//   - Stand in for the live page: *Game is both the guess sink and the
//     feedback source a session driver talks to.
//
// Scoring is feedback.Score, so duplicate letters come out exactly as the
// live puzzle reports them.
package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// New constructs a game for answer. allowed may be nil to accept any
// 5-letter word.
func New(answer string, allowed words.Set) (*Game, error) {
	ans := strings.ToLower(strings.TrimSpace(answer))
	if !feedback.IsWord(ans) {
		return nil, fmt.Errorf("%w: answer %q", ErrInvalidGuess, answer)
	}
	return &Game{
		answer:  ans,
		rows:    feedback.MaxTurns,
		allowed: allowed,
		status:  StatusPlaying,
	}, nil
}

// ApplyGuess validates and scores a guess, recording it on the board.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly 5 letters a–z.
//   - Guess must be in the allowed list, when one is set.
//
// State transitions:
//   - All tiles correct → won.
//   - Else if the board is full → lost.
func (g *Game) ApplyGuess(guess string) (feedback.GuessRow, Status, error) {
	if g.status != StatusPlaying {
		return feedback.GuessRow{}, g.status, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if !feedback.IsWord(guess) {
		return feedback.GuessRow{}, g.status, fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	if g.allowed != nil && !g.allowed.Has(guess) {
		return feedback.GuessRow{}, g.status, fmt.Errorf("%w: %q", ErrNotAllowed, guess)
	}

	row, err := feedback.Score(g.answer, guess)
	if err != nil {
		return feedback.GuessRow{}, g.status, err
	}
	if g.board, err = g.board.Append(row); err != nil {
		return feedback.GuessRow{}, g.status, err
	}

	if row.Solved() {
		g.status = StatusWon
	} else if g.board.Len() >= g.rows {
		g.status = StatusLost
	}
	return row, g.status, nil
}

// Submit implements the session's guess sink.
func (g *Game) Submit(ctx context.Context, word string) error {
	_, _, err := g.ApplyGuess(word)
	return err
}

// Feedback implements the session's feedback source: the row for the most
// recent guess.
func (g *Game) Feedback(ctx context.Context) (feedback.GuessRow, error) {
	row, ok := g.board.Last()
	if !ok {
		return feedback.GuessRow{}, ErrNoGuess
	}
	return row, nil
}

// Status reports the current state.
func (g *Game) Status() Status { return g.status }

// Board returns the scored rows so far.
func (g *Game) Board() feedback.History { return g.board }

// Answer reveals the solution.
func (g *Game) Answer() string { return g.answer }
