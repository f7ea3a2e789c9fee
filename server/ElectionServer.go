package environmentServer

import (
	"fmt"
	"log"
	"time"

	agents "github.com/ADimoska/StrategicSNTV/agents"
	common "github.com/ADimoska/StrategicSNTV/common"
	gameRecorder "github.com/ADimoska/StrategicSNTV/gameRecorder"
	"github.com/ADimoska/StrategicSNTV/pivotality"
	"github.com/ADimoska/StrategicSNTV/utilitySource"

	"github.com/MattSScott/basePlatformSOMAS/v2/pkg/server"
	"golang.org/x/xerrors"
)

// ElectionServer owns the candidate and elector registries of one run and
// drives the rounds of strategic adaptation until the vote intentions reach a
// fixed point or the iteration cap.
type ElectionServer struct {
	*server.BaseServer[common.IElector]

	config       common.Config
	distribution utilitySource.Distribution
	estimator    *pivotality.Estimator

	candidates []*common.Candidate
	// ordered registry; the base server's agent map has no stable order
	electors []common.IElector

	state                 common.RunState
	iteration             int
	lastVoteIntentions    []int
	currentVoteIntentions []int
	roundClamped          int
	roundFailures         int
	roundSwitches         int
	err                   error

	DataRecorder *gameRecorder.ServerDataRecorder
}

// CreateElectionServer validates the configuration and builds the candidate
// registry. Nothing is created when the configuration is rejected.
func CreateElectionServer(config common.Config) (*ElectionServer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	model, err := pivotality.ParseModel(config.PivotalityModel)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", common.ErrInvalidConfiguration, err)
	}
	distribution, err := utilitySource.FromConfig(config.Distribution, config.NCandidates)
	if err != nil {
		return nil, err
	}

	serv := &ElectionServer{
		// one turn per iteration; the message bandwidth is unused
		BaseServer:   server.CreateBaseServer[common.IElector](config.MaxIteration, 1, time.Second, 1),
		config:       config,
		distribution: distribution,
		estimator:    pivotality.NewEstimator(model, config.VerboseLevel),
		candidates:   make([]*common.Candidate, config.NCandidates),
		state:        common.StateInit,
		DataRecorder: gameRecorder.CreateRecorder(),
	}
	serv.SetGameRunner(serv)

	for id := range serv.candidates {
		serv.candidates[id] = common.NewCandidate(id)
	}
	return serv, nil
}

// MakeElectionServer builds a server whose electors draw sincere utilities
// from the configured distribution.
func MakeElectionServer(config common.Config) (*ElectionServer, error) {
	serv, err := CreateElectionServer(config)
	if err != nil {
		return nil, err
	}
	if err := serv.PopulateElectors(); err != nil {
		return nil, err
	}
	return serv, nil
}

// PopulateElectors draws every elector's utilities from a source seeded with
// the configured seed.
func (cs *ElectionServer) PopulateElectors() error {
	source := utilitySource.NewUtilitySource(cs.distribution, cs.config.NCandidates, cs.config.Seed)
	raw := make([][]float64, cs.config.NElectors)
	for i := range raw {
		raw[i] = source.Generate()
	}
	return cs.PopulateElectorsWithUtilities(raw)
}

// PopulateElectorsWithUtilities creates one elector per raw utility vector.
func (cs *ElectionServer) PopulateElectorsWithUtilities(raw [][]float64) error {
	if cs.state != common.StateInit || len(cs.electors) > 0 {
		return xerrors.Errorf("electors already populated")
	}
	if len(raw) != cs.config.NElectors {
		return xerrors.Errorf("%w: %d utility vectors for %d electors", common.ErrInvalidConfiguration, len(raw), cs.config.NElectors)
	}

	electorConfig := agents.ElectorConfig{VerboseLevel: cs.config.VerboseLevel}
	leastPreferred := make([]int, cs.config.NCandidates)
	for i, utilities := range raw {
		if len(utilities) != cs.config.NCandidates {
			return xerrors.Errorf("%w: elector %d has %d utilities for %d candidates", common.ErrInvalidConfiguration, i, len(utilities), cs.config.NCandidates)
		}
		elector := agents.CreateElector(cs, electorConfig)
		elector.SetName(i)
		if err := elector.SetSincereUtilities(utilities); err != nil {
			return xerrors.Errorf("creating elector %d: %w", i, err)
		}
		leastPreferred[elector.GetLeastPreferred()]++
		cs.electors = append(cs.electors, elector)
	}
	for _, elector := range cs.electors {
		cs.AddAgent(elector)
	}
	cs.DataRecorder.RecordLeastPreferred(leastPreferred)
	if cs.config.VerboseLevel > 0 {
		log.Printf("[server] Least preferred by: %v\n", leastPreferred)
	}
	return nil
}

// ----------------------- Getters -----------------------

func (cs *ElectionServer) GetConfig() common.Config {
	return cs.config
}

func (cs *ElectionServer) GetCandidates() []*common.Candidate {
	return cs.candidates
}

func (cs *ElectionServer) GetElectors() []common.IElector {
	return cs.electors
}

func (cs *ElectionServer) GetRunState() common.RunState {
	return cs.state
}

func (cs *ElectionServer) GetCurrentIteration() int {
	return cs.iteration
}

// GetVoteIntentions returns a snapshot of the latest tally.
func (cs *ElectionServer) GetVoteIntentions() []int {
	return common.CopyTally(cs.currentVoteIntentions)
}

// WinProbabilities returns every candidate's current win probability, in id
// order.
func (cs *ElectionServer) WinProbabilities() []float64 {
	probs := make([]float64, len(cs.candidates))
	for i, cand := range cs.candidates {
		probs[i] = cand.WinProbability(cs.config.NElectors)
	}
	return probs
}

// Result exposes the outcome once the loop has stopped.
func (cs *ElectionServer) Result() common.RunResult {
	return common.RunResult{
		State:            cs.state,
		Iterations:       cs.iteration,
		VoteIntentions:   cs.GetVoteIntentions(),
		WinProbabilities: cs.WinProbabilities(),
	}
}

// Err is the error that stopped the run, if any.
func (cs *ElectionServer) Err() error {
	return cs.err
}

// ----------------------- debug log printing -----------------------

func (cs *ElectionServer) LogCandidateStatus() {
	for _, cand := range cs.candidates {
		cand.LogWinProbability(cs.config.NElectors)
	}
	fmt.Println()
}

func (cs *ElectionServer) LogElectorStatus() {
	fmt.Printf("Elector count: %v\n", len(cs.GetAgentMap()))
	for _, elector := range cs.electors {
		elector.LogSelfInfo()
	}
}
