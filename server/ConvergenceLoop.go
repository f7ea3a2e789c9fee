package environmentServer

import (
	"fmt"
	"log"

	common "github.com/ADimoska/StrategicSNTV/common"
	gameRecorder "github.com/ADimoska/StrategicSNTV/gameRecorder"
	"github.com/ADimoska/StrategicSNTV/pivotality"

	"golang.org/x/xerrors"
)

// custom override: the base server runs a fixed number of iterations, the
// election stops as soon as the vote intentions reach a fixed point
func (cs *ElectionServer) Start() {
	for iteration := 0; !cs.state.IsTerminal(); iteration++ {
		cs.RunStartOfIteration(iteration)
		if cs.state.IsTerminal() {
			break
		}
		cs.RunTurn(iteration, 0)
		cs.RunEndOfIteration(iteration)
	}
}

// Run drives the loop to a terminal state. An exhausted run returns its
// result together with a *common.NonConvergenceError.
func (cs *ElectionServer) Run() (common.RunResult, error) {
	if len(cs.electors) == 0 {
		return cs.Result(), xerrors.Errorf("%w: no electors populated", common.ErrInvalidConfiguration)
	}
	cs.Start()
	return cs.Result(), cs.err
}

// RunStartOfIteration updates every elector's strategic utilities. Round 0
// uses sincere utilities; later rounds use the pivotality of the previous
// round's tally without the elector's own ballot.
func (cs *ElectionServer) RunStartOfIteration(iteration int) {
	if cs.state.IsTerminal() {
		return
	}
	cs.state = common.StateIterating
	cs.iteration = iteration
	cs.roundClamped = 0
	cs.roundFailures = 0

	if iteration == 0 {
		for _, elector := range cs.electors {
			elector.InitStrategicUtilities(cs.config.MinUtil)
		}
		return
	}

	// othersVotes only depends on the elector's last choice
	estimates := make(map[int]*pivotality.Estimate, len(cs.candidates))
	var lastErr error
	for _, elector := range cs.electors {
		choice := elector.GetChosenCandidate()
		est, ok := estimates[choice]
		if !ok {
			var err error
			est, err = cs.estimator.Estimate(pivotality.OthersVotes(cs.lastVoteIntentions, choice))
			if err != nil {
				cs.fail(xerrors.Errorf("iteration %d: estimating pivotality: %w", iteration, err))
				return
			}
			estimates[choice] = est
			cs.roundClamped += est.Clamped
		}

		if err := elector.UpdateStrategicUtilities(est.Pivotality, cs.config.MinUtil); err != nil {
			var normErr *common.NormalizationError
			if xerrors.As(err, &normErr) {
				normErr.Iteration = iteration
			}
			cs.roundFailures++
			lastErr = err
			if cs.config.VerboseLevel > 1 {
				log.Printf("[server] %v, keeping previous utilities\n", err)
			}
		}
	}

	if cs.roundClamped > 0 && cs.config.VerboseLevel > 0 {
		log.Printf("[server] Iteration %d: %d degenerate probabilities clamped to 0\n", iteration, cs.roundClamped)
	}
	if cs.roundFailures > 0 && cs.roundFailures == len(cs.electors) {
		cs.fail(xerrors.Errorf("iteration %d: every elector failed: %w", iteration, lastErr))
	}
}

// RunTurn tallies the vote intentions of the round.
func (cs *ElectionServer) RunTurn(iteration, turn int) {
	if cs.state != common.StateIterating {
		return
	}
	cs.currentVoteIntentions = cs.CountVoteIntentions()
}

// RunEndOfIteration records the round and moves the state machine.
func (cs *ElectionServer) RunEndOfIteration(iteration int) {
	if cs.state != common.StateIterating {
		return
	}

	record := gameRecorder.NewRoundRecord(iteration, cs.GetVoteIntentions(), cs.WinProbabilities())
	record.Switches = cs.roundSwitches
	record.Clamped = cs.roundClamped
	record.NormalizationFailures = cs.roundFailures
	cs.DataRecorder.RecordNewRound(record)

	if cs.config.VerboseLevel > 0 {
		fmt.Printf("Iteration %v, vote intentions: %v, switches: %v\n", iteration, cs.currentVoteIntentions, cs.roundSwitches)
	}
	if iteration == 0 && cs.config.VerboseLevel > 0 {
		cs.LogCandidateStatus()
	}

	// a fixed point needs two completed rounds to compare
	completed := iteration + 1
	switch {
	case completed >= 2 && common.AreIdentical(cs.lastVoteIntentions, cs.currentVoteIntentions):
		cs.state = common.StateConverged
		if cs.config.VerboseLevel > 0 {
			cs.LogCandidateStatus()
			log.Printf("[server] Converged after %d iterations.\n", iteration)
		}
	case completed >= cs.config.MaxIteration:
		cs.state = common.StateExhausted
		cs.err = &common.NonConvergenceError{
			Iterations: completed,
			LastTally:  common.CopyTally(cs.currentVoteIntentions),
		}
		if cs.config.VerboseLevel > 0 {
			cs.LogCandidateStatus()
			log.Printf("[server] %v\n", cs.err)
		}
	}

	// snapshot, never alias: the next tally must not rewrite the last one
	cs.lastVoteIntentions = common.CopyTally(cs.currentVoteIntentions)
}

// CountVoteIntentions resets every candidate's count and adds each elector's
// current choice. The result is ordered by candidate id and sums to the
// number of electors.
func (cs *ElectionServer) CountVoteIntentions() []int {
	for _, cand := range cs.candidates {
		cand.ResetVoteIntention()
	}

	cs.roundSwitches = 0
	for _, elector := range cs.electors {
		previous := elector.GetChosenCandidate()
		chosen := elector.ChooseCandidate()
		if previous != chosen {
			cs.roundSwitches++
		}
		cs.candidates[chosen].AddVote()
	}

	tally := make([]int, len(cs.candidates))
	for i, cand := range cs.candidates {
		tally[i], _ = cand.GetVoteIntention()
	}
	return tally
}

func (cs *ElectionServer) fail(err error) {
	cs.state = common.StateFailed
	cs.err = err
	log.Printf("[server] %v\n", err)
}
