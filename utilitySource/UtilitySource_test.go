package utilitySource

import (
	"math"
	"testing"

	common "github.com/ADimoska/StrategicSNTV/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     common.DistributionConfig
		want    Distribution
		wantErr bool
	}{
		{"uniform", common.DistributionConfig{Kind: "uniform", Min: 0, Max: 100}, Uniform{Min: 0, Max: 100}, false},
		{"uniform case-insensitive", common.DistributionConfig{Kind: " Uniform ", Min: 1, Max: 2}, Uniform{Min: 1, Max: 2}, false},
		{"uniform empty range", common.DistributionConfig{Kind: "uniform", Min: 5, Max: 5}, nil, true},
		{"normal", common.DistributionConfig{Kind: "normal", Mu: 1, Sigma: 2}, Normal{Mu: 1, Sigma: 2}, false},
		{"normal zero sigma", common.DistributionConfig{Kind: "normal", Mu: 1}, nil, true},
		{"stdnormal", common.DistributionConfig{Kind: "stdnormal"}, Normal{Mu: 0, Sigma: 1}, false},
		{"dirichlet", common.DistributionConfig{Kind: "dirichlet", Alphas: [][]float64{{1, 1, 1}}}, Dirichlet{Alphas: [][]float64{{1, 1, 1}}}, false},
		{"dirichlet wrong arity", common.DistributionConfig{Kind: "dirichlet", Alphas: [][]float64{{1, 1}}}, nil, true},
		{"dirichlet zero alpha", common.DistributionConfig{Kind: "dirichlet", Alphas: [][]float64{{1, 0, 1}}}, nil, true},
		{"powerlaw", common.DistributionConfig{Kind: "powerlaw", Xm: 1, Alpha: 3}, PowerLaw{Xm: 1, Alpha: 3}, false},
		{"powerlaw bad shape", common.DistributionConfig{Kind: "powerlaw", Xm: 1}, nil, true},
		{"beta", common.DistributionConfig{Kind: "beta", Alpha: 2, Beta: 5}, Beta{Alpha: 2, Beta: 5}, false},
		{"beta bad", common.DistributionConfig{Kind: "beta", Alpha: 2}, nil, true},
		{"spatial", common.DistributionConfig{Kind: "spatial", Min: -1, Max: 1}, Spatial{Min: -1, Max: 1}, false},
		{"unknown", common.DistributionConfig{Kind: "cauchy"}, nil, true},
		{"empty", common.DistributionConfig{}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromConfig(tt.cfg, 3)
			if tt.wantErr {
				assert.True(t, xerrors.Is(err, common.ErrInvalidConfiguration), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateShapes(t *testing.T) {
	dists := []Distribution{
		Uniform{Min: 0, Max: 100},
		Normal{Mu: 0, Sigma: 1},
		Dirichlet{Alphas: [][]float64{{1, 1, 1, 1}, {5, 1, 1, 1}}},
		PowerLaw{Xm: 1, Alpha: 2},
		Beta{Alpha: 2, Beta: 2},
		Spatial{Min: 0, Max: 10},
	}
	for _, dist := range dists {
		t.Run(dist.Name(), func(t *testing.T) {
			source := NewUtilitySource(dist, 4, 3)
			for i := 0; i < 50; i++ {
				utilities := source.Generate()
				require.Len(t, utilities, 4)
				for _, u := range utilities {
					assert.False(t, math.IsNaN(u) || math.IsInf(u, 0))
				}
			}
		})
	}
}

func TestGenerateBounds(t *testing.T) {
	uniform := NewUtilitySource(Uniform{Min: 10, Max: 20}, 5, 1)
	for i := 0; i < 100; i++ {
		for _, u := range uniform.Generate() {
			assert.GreaterOrEqual(t, u, 10.0)
			assert.Less(t, u, 20.0)
		}
	}

	dirichlet := NewUtilitySource(Dirichlet{Alphas: [][]float64{{2, 2, 2}}}, 3, 1)
	for i := 0; i < 100; i++ {
		total := 0.0
		for _, u := range dirichlet.Generate() {
			total += u
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestSpatialPrefersNearestCandidate(t *testing.T) {
	source := NewUtilitySource(Spatial{Min: 0, Max: 1}, 3, 5)
	positions := source.CandidatePositions()
	require.Len(t, positions, 3)

	for i := 0; i < 20; i++ {
		utilities := source.Generate()
		for a, u := range utilities {
			assert.LessOrEqual(t, u, 1.0)
			assert.GreaterOrEqual(t, u, 0.0)
			// two candidates' utilities differ by at most their distance
			for b, v := range utilities {
				assert.LessOrEqual(t, math.Abs(u-v), math.Abs(positions[a]-positions[b])+1e-12)
			}
		}
	}
}

func TestSameSeedSameDraws(t *testing.T) {
	for _, dist := range []Distribution{
		Uniform{Min: 0, Max: 1},
		Dirichlet{Alphas: [][]float64{{1, 1, 1}, {3, 1, 1}}},
		Spatial{Min: 0, Max: 1},
	} {
		a := NewUtilitySource(dist, 3, 11)
		b := NewUtilitySource(dist, 3, 11)
		c := NewUtilitySource(dist, 3, 12)
		same, different := true, false
		for i := 0; i < 10; i++ {
			x, y, z := a.Generate(), b.Generate(), c.Generate()
			if !assert.ObjectsAreEqual(x, y) {
				same = false
			}
			if !assert.ObjectsAreEqual(x, z) {
				different = true
			}
		}
		assert.True(t, same, dist.Name())
		assert.True(t, different, dist.Name())
	}
}
