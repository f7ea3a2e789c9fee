package common

import (
	"fmt"

	"golang.org/x/xerrors"
)

var (
	// ErrInvalidConfiguration is returned before any simulation state exists.
	ErrInvalidConfiguration = xerrors.New("invalid configuration")

	// ErrNormalizationFailure marks a utility vector that sums to zero where a
	// division by its sum is required.
	ErrNormalizationFailure = xerrors.New("normalization failure")

	// ErrNonConvergence marks a run that hit the iteration cap.
	ErrNonConvergence = xerrors.New("vote intentions did not converge")
)

// NonConvergenceError carries the diagnostic context of an exhausted run.
type NonConvergenceError struct {
	Iterations int
	LastTally  []int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations, last tally %v", ErrNonConvergence, e.Iterations, e.LastTally)
}

func (e *NonConvergenceError) Unwrap() error {
	return ErrNonConvergence
}

// NormalizationError reports which elector failed normalisation and in which
// round.
type NormalizationError struct {
	ElectorName int
	Iteration   int
	Stage       string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%v: elector %d, %s utilities, iteration %d", ErrNormalizationFailure, e.ElectorName, e.Stage, e.Iteration)
}

func (e *NormalizationError) Unwrap() error {
	return ErrNormalizationFailure
}
