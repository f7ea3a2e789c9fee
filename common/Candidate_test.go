package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinProbabilityBeforeFirstTally(t *testing.T) {
	c := NewCandidate(2)
	_, tallied := c.GetVoteIntention()
	assert.False(t, tallied)
	assert.Equal(t, 1.0, c.WinProbability(10))

	c.ResetVoteIntention()
	votes, tallied := c.GetVoteIntention()
	assert.True(t, tallied)
	assert.Equal(t, 0, votes)
	assert.Equal(t, 0.0, c.WinProbability(10))

	c.AddVote()
	c.AddVote()
	assert.Equal(t, 0.2, c.WinProbability(10))
	assert.Equal(t, "Cand 2", c.String())
}

func TestTallyHelpers(t *testing.T) {
	assert.False(t, AreIdentical(nil, []int{1, 2}))
	assert.False(t, AreIdentical([]int{1, 2}, []int{1, 2, 0}))
	assert.False(t, AreIdentical([]int{1, 2}, []int{2, 1}))
	assert.True(t, AreIdentical([]int{3, 0}, []int{3, 0}))

	tally := []int{4, 1}
	snapshot := CopyTally(tally)
	tally[0] = 0
	assert.Equal(t, []int{4, 1}, snapshot)
	assert.Nil(t, CopyTally(nil))
	assert.Equal(t, 5, SumTally(snapshot))

	assert.Equal(t, 1, ArgMax([]float64{0.2, 0.5, 0.5}))
	assert.Equal(t, 0, ArgMin([]float64{-1, 3, -1}))
}

func TestRunStates(t *testing.T) {
	assert.False(t, StateInit.IsTerminal())
	assert.False(t, StateIterating.IsTerminal())
	assert.True(t, StateConverged.IsTerminal())
	assert.True(t, StateExhausted.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
}

func TestNonConvergenceErrorUnwraps(t *testing.T) {
	var err error = &NonConvergenceError{Iterations: 3, LastTally: []int{2, 1}}
	assert.ErrorIs(t, err, ErrNonConvergence)
	assert.Contains(t, err.Error(), "after 3 iterations")

	err = &NormalizationError{ElectorName: 4, Iteration: 2, Stage: "strategic"}
	assert.ErrorIs(t, err, ErrNormalizationFailure)
}
