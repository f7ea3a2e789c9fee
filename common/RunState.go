package common

// RunState is a state of the convergence loop.
type RunState int

const (
	StateInit RunState = iota
	StateIterating
	StateConverged
	StateExhausted
	// a round in which every elector failed normalisation
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateIterating:
		return "ITERATING"
	case StateConverged:
		return "CONVERGED"
	case StateExhausted:
		return "EXHAUSTED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether no further rounds will run.
func (s RunState) IsTerminal() bool {
	return s == StateConverged || s == StateExhausted || s == StateFailed
}

// RunResult is what the convergence loop exposes once it stops.
type RunResult struct {
	State RunState
	// index of the last round run; rounds run is Iterations+1
	Iterations       int
	VoteIntentions   []int
	WinProbabilities []float64
}
