package agents

import (
	"math"
	"testing"
	"time"

	common "github.com/ADimoska/StrategicSNTV/common"

	baseServer "github.com/MattSScott/basePlatformSOMAS/v2/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

const testMinUtil = -1e10

// Elector test configuration
var electorConfig = ElectorConfig{
	VerboseLevel: 0,
}

func newTestElector(t *testing.T, raw []float64) *Elector {
	t.Helper()
	serv := baseServer.CreateBaseServer[common.IElector](1, 1, 100*time.Millisecond, 1)
	e := CreateElector(serv, electorConfig)
	require.NoError(t, e.SetSincereUtilities(raw))
	return e
}

func TestSincereUtilitiesAreNormalised(t *testing.T) {
	e := newTestElector(t, []float64{30, 10, 20, 40})

	assert.Equal(t, 1, e.GetLeastPreferred())
	assert.InDeltaSlice(t, []float64{30.0 / 90, 0, 20.0 / 90, 40.0 / 90}, e.GetSincereUtilities(), 1e-12)
}

func TestNegativeUtilitiesAreShifted(t *testing.T) {
	e := newTestElector(t, []float64{-1, 1, 0})

	assert.Equal(t, 0, e.GetLeastPreferred())
	assert.InDeltaSlice(t, []float64{0, 2.0 / 3, 1.0 / 3}, e.GetSincereUtilities(), 1e-12)
}

func TestSincereInputIsNotAliased(t *testing.T) {
	raw := []float64{1, 2, 3}
	e := newTestElector(t, raw)
	raw[2] = 100
	assert.InDelta(t, 0.6, e.GetSincereUtilities()[2], 1e-12)
}

func TestDegenerateSincereUtilitiesFail(t *testing.T) {
	tests := map[string][]float64{
		"empty":     {},
		"all zero":  {0, 0, 0},
		"all equal": {-3, -3, -3},
		"nan":       {1, 2, math.NaN()},
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			serv := baseServer.CreateBaseServer[common.IElector](1, 1, 100*time.Millisecond, 1)
			e := CreateElector(serv, electorConfig)
			e.SetName(7)
			err := e.SetSincereUtilities(raw)
			require.Error(t, err)
			assert.True(t, xerrors.Is(err, common.ErrNormalizationFailure))

			var normErr *common.NormalizationError
			require.True(t, xerrors.As(err, &normErr))
			assert.Equal(t, 7, normErr.ElectorName)
			assert.Equal(t, "sincere", normErr.Stage)
		})
	}
}

func TestInitPinsLeastPreferred(t *testing.T) {
	e := newTestElector(t, []float64{0.5, 0.3, 0.2, 0})
	e.InitStrategicUtilities(testMinUtil)

	strategic := e.GetStrategicUtilities()
	assert.Equal(t, testMinUtil, strategic[3])
	assert.Equal(t, e.GetSincereUtilities()[:3], strategic[:3])
	assert.Equal(t, 0, e.GetChosenCandidate())

	// the strategic vector is a copy
	strategic[0] = 42
	assert.Equal(t, 0.5, e.GetSincereUtilities()[0])
}

func TestUpdateWithIdentityPivotality(t *testing.T) {
	e := newTestElector(t, []float64{0.5, 0.3, 0.2, 0})
	e.InitStrategicUtilities(testMinUtil)

	// no pair is ever pivotal, so every update is 0
	identity := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	require.NoError(t, e.UpdateStrategicUtilities(identity, testMinUtil))
	assert.Equal(t, []float64{0, 0, 0, testMinUtil}, e.GetStrategicUtilities())
}

func TestUpdateFollowsPairwisePivotality(t *testing.T) {
	e := newTestElector(t, []float64{0.5, 0.3, 0.2, 0})
	e.InitStrategicUtilities(testMinUtil)

	piv := mat.NewDense(4, 4, []float64{
		1, 0.5, 0, 0,
		0.5, 1, 0, 0,
		0, 0, 1, 0.25,
		0, 0, 0.25, 1,
	})
	require.NoError(t, e.UpdateStrategicUtilities(piv, testMinUtil))

	// new[c] = sum over o != c of (w[c] - sincere[o]) * piv[c][o]
	want := []float64{
		(0.5 - 0.3) * 0.5,
		(0.3 - 0.5) * 0.5,
		(0.2 - 0) * 0.25,
		testMinUtil,
	}
	assert.InDeltaSlice(t, want, e.GetStrategicUtilities(), 1e-12)
	assert.Equal(t, 0, e.ChooseCandidate())

	// negative entries are lifted before they are used as weights
	weights, err := e.strategicWeights()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.2 / 0.45, 0, 0.15 / 0.45, 0.1 / 0.45}, weights, 1e-12)
}

func TestUpdateFailsOnFlatWeights(t *testing.T) {
	e := newTestElector(t, []float64{0.5, 0.3, 0.2, 0})
	e.InitStrategicUtilities(testMinUtil)
	zero := mat.NewDense(4, 4, nil)
	require.NoError(t, e.UpdateStrategicUtilities(zero, testMinUtil))

	before := append([]float64(nil), e.GetStrategicUtilities()...)
	err := e.UpdateStrategicUtilities(zero, testMinUtil)
	assert.True(t, xerrors.Is(err, common.ErrNormalizationFailure))
	assert.Equal(t, before, e.GetStrategicUtilities())
}

func TestChooseCandidateTieGoesToLowestID(t *testing.T) {
	e := newTestElector(t, []float64{0, 0.5, 0.5})
	e.InitStrategicUtilities(testMinUtil)
	assert.Equal(t, 1, e.ChooseCandidate())
}
