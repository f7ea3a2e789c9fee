package pivotality

import (
	"log"
	"math"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// Estimate holds the pairwise matrices computed from one vote vector. Every
// matrix is square with a diagonal of ones.
type Estimate struct {
	Tie        *mat.Dense
	Pivotal    *mat.Dense
	Winner     *mat.Dense
	Pivotality *mat.Dense

	// Clamped counts probabilities that evaluated to a non-number and were
	// replaced by 0.
	Clamped int
}

type Estimator struct {
	Model Model

	// VerboseLevel above 1 logs every clamp.
	VerboseLevel int
}

// constructor
func NewEstimator(model Model, verboseLevel int) *Estimator {
	return &Estimator{Model: model, VerboseLevel: verboseLevel}
}

// Estimate computes tie, pivotal, winner and pivotality matrices from the
// vote counts of every ballot except the focal elector's.
func (e *Estimator) Estimate(othersVotes []int) (*Estimate, error) {
	n := len(othersVotes)
	if n == 0 {
		return nil, xerrors.Errorf("empty vote vector")
	}
	for i, v := range othersVotes {
		if v < 0 {
			return nil, xerrors.Errorf("negative vote count %d for candidate %d", v, i)
		}
	}

	est := &Estimate{
		Tie:        identity(n),
		Pivotal:    identity(n),
		Winner:     identity(n),
		Pivotality: identity(n),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			diff := NewSkellam(othersVotes[i], othersVotes[j])
			est.Tie.Set(i, j, e.clamp(est, diff.Prob(0), "tie", i, j))
			est.Pivotal.Set(i, j, e.clamp(est, diff.Prob(-1), "pivotal", i, j))
			est.Winner.Set(i, j, e.clamp(est, 1-diff.CDF(-1), "winner", i, j))
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			decisive := est.Pivotal.At(i, j) + est.Winner.At(i, j)
			est.Pivotality.Set(i, j, e.othersLose(est.Winner, i, j)*decisive)
		}
	}
	return est, nil
}

// probability that every other match-up goes against the third candidates,
// treating match-ups as independent
func (e *Estimator) othersLose(winner *mat.Dense, i, j int) float64 {
	n, _ := winner.Dims()
	prod := 1.0
	switch e.Model {
	case MinorProduct:
		for a := 0; a < n; a++ {
			if a == i {
				continue
			}
			for b := 0; b < n; b++ {
				if b == j {
					continue
				}
				prod *= winner.At(a, b)
			}
		}
	default:
		for k := 0; k < n; k++ {
			if k == i || k == j {
				continue
			}
			prod *= winner.At(i, k) * winner.At(j, k)
		}
	}
	return prod
}

func (e *Estimator) clamp(est *Estimate, p float64, kind string, i, j int) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		est.Clamped++
		if e.VerboseLevel > 1 {
			log.Printf("[pivotality] %s probability for pair (%d,%d) is %v, clamped to 0\n", kind, i, j, p)
		}
		return 0
	}
	// summation error can leave values a hair outside [0,1]
	return math.Min(1, math.Max(0, p))
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// OthersVotes removes the focal elector's own ballot from the last tally.
func OthersVotes(tally []int, ownChoice int) []int {
	others := make([]int, len(tally))
	copy(others, tally)
	if ownChoice >= 0 && ownChoice < len(others) && others[ownChoice] > 0 {
		others[ownChoice]--
	}
	return others
}
