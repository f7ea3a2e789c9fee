package utilitySource

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// UtilitySource draws raw utility vectors for electors, one call per
// elector. All draws come from a single seeded source, so a population is
// reproducible from its seed.
type UtilitySource struct {
	dist        Distribution
	nCandidates int
	src         rand.Source
	rng         *rand.Rand

	dirichlets         []*distmv.Dirichlet
	candidatePositions []float64
}

// constructor
func NewUtilitySource(dist Distribution, nCandidates int, seed uint64) *UtilitySource {
	src := rand.NewSource(seed)
	us := &UtilitySource{
		dist:        dist,
		nCandidates: nCandidates,
		src:         src,
		rng:         rand.New(src),
	}

	switch d := dist.(type) {
	case Dirichlet:
		for _, alpha := range d.Alphas {
			us.dirichlets = append(us.dirichlets, distmv.NewDirichlet(alpha, src))
		}
	case Spatial:
		// candidate positions are drawn once, before any elector
		pos := distuv.Uniform{Min: d.Min, Max: d.Max, Src: src}
		us.candidatePositions = make([]float64, nCandidates)
		for i := range us.candidatePositions {
			us.candidatePositions[i] = pos.Rand()
		}
	}
	return us
}

func (us *UtilitySource) Distribution() Distribution {
	return us.dist
}

// CandidatePositions is only set for the spatial family.
func (us *UtilitySource) CandidatePositions() []float64 {
	return us.candidatePositions
}

// Generate returns one raw utility vector of length nCandidates.
func (us *UtilitySource) Generate() []float64 {
	switch d := us.dist.(type) {
	case Uniform:
		return us.sample(distuv.Uniform{Min: d.Min, Max: d.Max, Src: us.src})
	case Normal:
		return us.sample(distuv.Normal{Mu: d.Mu, Sigma: d.Sigma, Src: us.src})
	case PowerLaw:
		return us.sample(distuv.Pareto{Xm: d.Xm, Alpha: d.Alpha, Src: us.src})
	case Beta:
		return us.sample(distuv.Beta{Alpha: d.Alpha, Beta: d.Beta, Src: us.src})
	case Dirichlet:
		pick := 0
		if len(us.dirichlets) > 1 {
			pick = us.rng.Intn(len(us.dirichlets))
		}
		return us.dirichlets[pick].Rand(nil)
	case Spatial:
		position := distuv.Uniform{Min: d.Min, Max: d.Max, Src: us.src}.Rand()
		utilities := make([]float64, us.nCandidates)
		for i, c := range us.candidatePositions {
			utilities[i] = d.Max - d.Min - math.Abs(position-c)
		}
		return utilities
	default:
		panic("utilitySource: unsupported distribution")
	}
}

func (us *UtilitySource) sample(r distuv.Rander) []float64 {
	utilities := make([]float64, us.nCandidates)
	for i := range utilities {
		utilities[i] = r.Rand()
	}
	return utilities
}
