package agents

import (
	"fmt"
	"math"

	common "github.com/ADimoska/StrategicSNTV/common"

	"github.com/MattSScott/basePlatformSOMAS/v2/pkg/agent"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type ElectorConfig struct {
	VerboseLevel int
}

// Elector holds sincere and strategic utilities over every candidate and the
// candidate it would currently vote for.
type Elector struct {
	*agent.BaseAgent[common.IElector]

	name               int
	sincereUtilities   []float64
	strategicUtilities []float64
	leastPreferred     int
	chosenCandidate    int
	verboseLevel       int
}

// constructor
func CreateElector(funcs agent.IExposedServerFunctions[common.IElector], electorConfig ElectorConfig) *Elector {
	return &Elector{
		BaseAgent:       agent.CreateBaseAgent(funcs),
		leastPreferred:  -1,
		chosenCandidate: -1,
		verboseLevel:    electorConfig.VerboseLevel,
	}
}

// ----------------------- Getters -----------------------

func (e *Elector) GetName() int {
	return e.name
}

func (e *Elector) GetSincereUtilities() []float64 {
	return e.sincereUtilities
}

func (e *Elector) GetStrategicUtilities() []float64 {
	return e.strategicUtilities
}

func (e *Elector) GetLeastPreferred() int {
	return e.leastPreferred
}

func (e *Elector) GetChosenCandidate() int {
	return e.chosenCandidate
}

// ----------------------- Setters -----------------------

func (e *Elector) SetName(name int) {
	e.name = name
}

// SetSincereUtilities normalises a raw draw into sincere utilities: the least
// preferred candidate is forced to 0 and the vector is scaled to sum to 1. A
// draw with negative values is first shifted so its minimum is 0.
func (e *Elector) SetSincereUtilities(raw []float64) error {
	if len(raw) == 0 {
		return &common.NormalizationError{ElectorName: e.name, Stage: "sincere"}
	}
	utilities := make([]float64, len(raw))
	copy(utilities, raw)
	for _, u := range utilities {
		if math.IsNaN(u) || math.IsInf(u, 0) {
			return &common.NormalizationError{ElectorName: e.name, Stage: "sincere"}
		}
	}

	least := common.ArgMin(utilities)
	if lowest := utilities[least]; lowest < 0 {
		floats.AddConst(-lowest, utilities)
	}
	utilities[least] = 0

	total := floats.Sum(utilities)
	if total == 0 {
		return &common.NormalizationError{ElectorName: e.name, Stage: "sincere"}
	}
	floats.Scale(1/total, utilities)

	e.sincereUtilities = utilities
	e.leastPreferred = least
	return nil
}

// ----------------------- Strategic decisions -----------------------

// InitStrategicUtilities starts from the sincere utilities with the least
// preferred candidate pinned to minUtil.
func (e *Elector) InitStrategicUtilities(minUtil float64) {
	e.strategicUtilities = make([]float64, len(e.sincereUtilities))
	copy(e.strategicUtilities, e.sincereUtilities)
	e.strategicUtilities[e.leastPreferred] = minUtil
	e.ChooseCandidate()
}

// UpdateStrategicUtilities recomputes strategic utilities from the previous
// round's, weighted by the pivotality of every pair:
//
//	new[c] = sum over o != c of (previous[c] - sincere[o]) * pivotality[c,o]
//
// The previous round's utilities enter as non-negative weights summing to 1.
// On failure the previous vector is kept.
func (e *Elector) UpdateStrategicUtilities(pivotality mat.Matrix, minUtil float64) error {
	previous, err := e.strategicWeights()
	if err != nil {
		return err
	}

	n := len(e.sincereUtilities)
	updated := make([]float64, n)
	for c := 0; c < n; c++ {
		sum := 0.0
		for o := 0; o < n; o++ {
			if o == c {
				continue
			}
			sum += (previous[c] - e.sincereUtilities[o]) * pivotality.At(c, o)
		}
		updated[c] = sum
	}
	updated[e.leastPreferred] = minUtil

	e.strategicUtilities = updated
	if e.verboseLevel > 2 {
		fmt.Printf("Elec %d strategic utilities: %v\n", e.name, e.strategicUtilities)
	}
	return nil
}

// previous strategic utilities as weights: the sentinel entry becomes 0,
// negative entries are lifted so the smallest is 0, then the vector is scaled
// to sum to 1
func (e *Elector) strategicWeights() ([]float64, error) {
	weights := make([]float64, len(e.strategicUtilities))
	copy(weights, e.strategicUtilities)
	weights[e.leastPreferred] = 0

	if lowest := floats.Min(weights); lowest < 0 {
		floats.AddConst(-lowest, weights)
	}
	total := floats.Sum(weights)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, &common.NormalizationError{ElectorName: e.name, Stage: "strategic"}
	}
	floats.Scale(1/total, weights)
	return weights, nil
}

// ChooseCandidate picks the arg-max of the strategic utilities; ties go to
// the lowest candidate id.
func (e *Elector) ChooseCandidate() int {
	e.chosenCandidate = common.ArgMax(e.strategicUtilities)
	return e.chosenCandidate
}

// ----------------------- Info -----------------------

func (e *Elector) LogSelfInfo() {
	fmt.Printf("Elec %d, chosenCand: %d, leastCand: %d\n", e.name, e.chosenCandidate, e.leastPreferred)
}
