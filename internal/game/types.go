// apps/go-solver/internal/game/types.go
//
// Type definitions for the offline puzzle.
// Defines:
//   - Status: coarse game state (playing/won/lost).
//   - Game: a board with a known answer that scores guesses locally.

package game

import (
	"errors"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Status is the coarse state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

var (
	ErrFinished     = errors.New("game: finished")
	ErrInvalidGuess = errors.New("game: invalid guess")
	ErrNotAllowed   = errors.New("game: not in word list")
	ErrNoGuess      = errors.New("game: no guess submitted yet")
)

// Game holds the state of one offline puzzle.
type Game struct {
	answer  string           // the solution word (always lowercase)
	rows    int              // maximum number of guesses (typically 6)
	allowed words.Set        // accepted guesses; nil accepts any 5-letter word
	board   feedback.History // scored rows so far
	status  Status
}
