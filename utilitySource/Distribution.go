package utilitySource

import (
	"strings"

	common "github.com/ADimoska/StrategicSNTV/common"

	"golang.org/x/xerrors"
)

// Distribution is the closed set of families sincere utilities are drawn
// from. Only the types in this file implement it.
type Distribution interface {
	Name() string
	isDistribution()
}

type Uniform struct {
	Min, Max float64
}

type Normal struct {
	Mu, Sigma float64
}

// Dirichlet draws from one of Alphas, picked uniformly per elector. A single
// alpha vector is a plain Dirichlet.
type Dirichlet struct {
	Alphas [][]float64
}

// PowerLaw is a Pareto distribution with scale Xm and shape Alpha.
type PowerLaw struct {
	Xm, Alpha float64
}

type Beta struct {
	Alpha, Beta float64
}

// Spatial places candidates and electors on a line between Min and Max;
// utility falls with distance.
type Spatial struct {
	Min, Max float64
}

func (Uniform) Name() string   { return "uniform" }
func (Normal) Name() string    { return "normal" }
func (Dirichlet) Name() string { return "dirichlet" }
func (PowerLaw) Name() string  { return "powerlaw" }
func (Beta) Name() string      { return "beta" }
func (Spatial) Name() string   { return "spatial" }

func (Uniform) isDistribution()   {}
func (Normal) isDistribution()    {}
func (Dirichlet) isDistribution() {}
func (PowerLaw) isDistribution()  {}
func (Beta) isDistribution()      {}
func (Spatial) isDistribution()   {}

// FromConfig turns a named family into its variant and checks its parameters
// against the number of candidates.
func FromConfig(cfg common.DistributionConfig, nCandidates int) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "uniform":
		if !(cfg.Max > cfg.Min) {
			return nil, invalid("uniform needs max > min, got [%v, %v]", cfg.Min, cfg.Max)
		}
		return Uniform{Min: cfg.Min, Max: cfg.Max}, nil

	case "normal":
		if !(cfg.Sigma > 0) {
			return nil, invalid("normal needs sigma > 0, got %v", cfg.Sigma)
		}
		return Normal{Mu: cfg.Mu, Sigma: cfg.Sigma}, nil

	case "stdnormal":
		return Normal{Mu: 0, Sigma: 1}, nil

	case "dirichlet":
		if len(cfg.Alphas) == 0 {
			return nil, invalid("dirichlet needs at least one alpha vector")
		}
		for k, alpha := range cfg.Alphas {
			if len(alpha) != nCandidates {
				return nil, invalid("dirichlet alpha vector %d has %d entries, need %d", k, len(alpha), nCandidates)
			}
			for _, a := range alpha {
				if !(a > 0) {
					return nil, invalid("dirichlet alpha vector %d has non-positive entry %v", k, a)
				}
			}
		}
		return Dirichlet{Alphas: cfg.Alphas}, nil

	case "powerlaw":
		if !(cfg.Xm > 0) || !(cfg.Alpha > 0) {
			return nil, invalid("powerlaw needs xm > 0 and alpha > 0, got xm=%v alpha=%v", cfg.Xm, cfg.Alpha)
		}
		return PowerLaw{Xm: cfg.Xm, Alpha: cfg.Alpha}, nil

	case "beta":
		if !(cfg.Alpha > 0) || !(cfg.Beta > 0) {
			return nil, invalid("beta needs alpha > 0 and beta > 0, got alpha=%v beta=%v", cfg.Alpha, cfg.Beta)
		}
		return Beta{Alpha: cfg.Alpha, Beta: cfg.Beta}, nil

	case "spatial":
		if !(cfg.Max > cfg.Min) {
			return nil, invalid("spatial needs max > min, got [%v, %v]", cfg.Min, cfg.Max)
		}
		return Spatial{Min: cfg.Min, Max: cfg.Max}, nil

	default:
		return nil, invalid("unknown distribution %q", cfg.Kind)
	}
}

func invalid(format string, args ...interface{}) error {
	return xerrors.Errorf("%w: "+format, append([]interface{}{common.ErrInvalidConfiguration}, args...)...)
}
