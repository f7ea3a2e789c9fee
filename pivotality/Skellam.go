package pivotality

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DegenerateRate replaces a zero vote count so the Poisson rate stays valid.
const DegenerateRate = 1e-100

// Skellam is the distribution of X1 - X2 for independent Poisson counts X1
// and X2 with rates Mu1 and Mu2.
type Skellam struct {
	Mu1 float64
	Mu2 float64
}

// NewSkellam builds the difference model for two vote counts, substituting
// DegenerateRate for a zero count.
func NewSkellam(votes1, votes2 int) Skellam {
	return Skellam{Mu1: rate(votes1), Mu2: rate(votes2)}
}

func rate(votes int) float64 {
	if votes == 0 {
		return DegenerateRate
	}
	return float64(votes)
}

// support bound for the outer sums; mass beyond it is negligible
func (s Skellam) upper() int {
	mu := math.Max(s.Mu1, s.Mu2)
	return int(math.Ceil(mu + 12*math.Sqrt(mu) + 30))
}

// Prob returns P(X1 - X2 = k).
func (s Skellam) Prob(k int) float64 {
	p1 := distuv.Poisson{Lambda: s.Mu1}
	p2 := distuv.Poisson{Lambda: s.Mu2}
	start := 0
	if k < 0 {
		start = -k
	}
	sum := 0.0
	for n := start; n <= s.upper(); n++ {
		sum += p1.Prob(float64(n+k)) * p2.Prob(float64(n))
	}
	return sum
}

// CDF returns P(X1 - X2 <= k).
func (s Skellam) CDF(k int) float64 {
	p1 := distuv.Poisson{Lambda: s.Mu1}
	p2 := distuv.Poisson{Lambda: s.Mu2}
	sum := 0.0
	for n := 0; n <= s.upper(); n++ {
		// P(X2 >= n-k) = P(X2 > n-k-1)
		sum += p1.Prob(float64(n)) * p2.Survival(float64(n-k-1))
	}
	return sum
}
