package solver

// ActionKind is what the engine wants the driver to do next.
type ActionKind int

const (
	ActionGuess     ActionKind = iota // submit Action.Word
	ActionSolved                      // the last row was all correct; Action.Word is the answer
	ActionExhausted                   // turn budget spent without a solve
)

func (k ActionKind) String() string {
	switch k {
	case ActionGuess:
		return "guess"
	case ActionSolved:
		return "solved"
	case ActionExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Action is the result of Engine.NextAction.
type Action struct {
	Kind       ActionKind
	Word       string
	Candidates int // size of the narrowed set the guess was drawn from
}
