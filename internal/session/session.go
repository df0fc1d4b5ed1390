// apps/go-solver/internal/session/session.go
//
// Session is the step-wise state machine for one puzzle.
//
//	Idle ─Load→ Ready ─Next→ Selecting ─→ AwaitingFeedback ─Observe→ Selecting ─→ …
//	                                   └→ Solved | Exhausted | Aborted (terminal)
//
// The session owns the History; the engine only ever sees it as an argument.
// Methods are safe for concurrent use (HTTP handlers may race on one session),
// but the engine and its random source are private to the session.

package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// State is a session's position in the turn loop.
type State string

const (
	StateIdle             State = "idle"
	StateReady            State = "ready"
	StateSelecting        State = "selecting"
	StateAwaitingFeedback State = "awaiting_feedback"
	StateSolved           State = "solved"
	StateExhausted        State = "exhausted"
	StateAborted          State = "aborted"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateSolved || s == StateExhausted || s == StateAborted
}

var (
	// ErrOutOfOrder is returned when a call does not fit the current state,
	// e.g. feedback before a guess, or feedback for a different word.
	ErrOutOfOrder = errors.New("session: out of order")
	// ErrTerminal is returned by calls made after the session ended.
	ErrTerminal = errors.New("session: already finished")
)

// Option configures a Session.
type Option func(*Session)

// AllowOverride accepts feedback for a word other than the suggested guess
// (a human typed something else on the board).
func AllowOverride() Option {
	return func(s *Session) { s.allowOverride = true }
}

// Session tracks one puzzle from dictionary load to a terminal state.
type Session struct {
	mu            sync.Mutex
	engine        *solver.Engine
	allowOverride bool

	dictionary []string
	history    feedback.History
	state      State
	pending    string // guess waiting for feedback
	answer     string
	candidates int
	err        error
}

// New returns an Idle session.
func New(engine *solver.Engine, opts ...Option) *Session {
	s := &Session{engine: engine, state: StateIdle}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load installs the dictionary and moves Idle → Ready.
// The slice is not copied and must not be modified afterwards.
func (s *Session) Load(dictionary []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return fmt.Errorf("%w: load in state %s", ErrOutOfOrder, s.state)
	}
	s.dictionary = dictionary
	s.state = StateReady
	return nil
}

// Next asks the engine for the next step.
//
// A guess moves the session to AwaitingFeedback; Solved and Exhausted are
// terminal and are returned again on later calls. Engine errors (no
// candidates) abort the session.
func (s *Session) Next() (solver.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSolved:
		return solver.Action{Kind: solver.ActionSolved, Word: s.answer}, nil
	case StateExhausted:
		return solver.Action{Kind: solver.ActionExhausted}, nil
	case StateAborted:
		return solver.Action{}, fmt.Errorf("%w: %v", ErrTerminal, s.err)
	case StateReady, StateSelecting:
	default:
		return solver.Action{}, fmt.Errorf("%w: next in state %s", ErrOutOfOrder, s.state)
	}

	s.state = StateSelecting
	action, err := s.engine.NextAction(s.history, s.dictionary, s.history.Len())
	if err != nil {
		s.abortLocked(err)
		return solver.Action{}, err
	}
	switch action.Kind {
	case solver.ActionSolved:
		s.state, s.answer = StateSolved, action.Word
	case solver.ActionExhausted:
		s.state = StateExhausted
	case solver.ActionGuess:
		s.state, s.pending, s.candidates = StateAwaitingFeedback, action.Word, action.Candidates
	}
	return action, nil
}

// Observe records the feedback row for the pending guess.
//
// A malformed row is rejected without changing state, so the caller can
// retry the turn or abort.
func (s *Session) Observe(row feedback.GuessRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return ErrTerminal
	}
	if s.state != StateAwaitingFeedback {
		return fmt.Errorf("%w: feedback in state %s", ErrOutOfOrder, s.state)
	}
	h, err := s.history.Append(row)
	if err != nil {
		return err
	}
	if !s.allowOverride && row.Word() != s.pending {
		return fmt.Errorf("%w: feedback for %q, expected %q", ErrOutOfOrder, row.Word(), s.pending)
	}
	s.history, s.pending, s.state = h, "", StateSelecting
	return nil
}

// Abort ends the session with err. It is a no-op once terminal.
func (s *Session) Abort(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Terminal() {
		s.abortLocked(err)
	}
}

func (s *Session) abortLocked(err error) {
	s.state, s.err, s.pending = StateAborted, err, ""
}

// Snapshot is a read-only copy of a session's progress.
type Snapshot struct {
	State      State
	Turn       int // rows recorded so far
	History    feedback.History
	Pending    string
	Answer     string
	Candidates int // size of the set the pending guess came from
	Err        error
}

// Snapshot returns the current progress.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:      s.state,
		Turn:       s.history.Len(),
		History:    s.history,
		Pending:    s.pending,
		Answer:     s.answer,
		Candidates: s.candidates,
		Err:        s.err,
	}
}
