package gameRecorder

// RoundRecord is a record of the population state at the end of one round
type RoundRecord struct {
	// basic info fields
	IterationNumber int

	VoteIntentions   []int
	WinProbabilities []float64

	Switches              int // electors whose choice changed this round
	Clamped               int // probabilities clamped to 0 while estimating pivotality
	NormalizationFailures int // electors that kept last round's utilities
}

func NewRoundRecord(iterationNumber int, voteIntentions []int, winProbabilities []float64) RoundRecord {
	return RoundRecord{
		IterationNumber:  iterationNumber,
		VoteIntentions:   voteIntentions,
		WinProbabilities: winProbabilities,
	}
}

// RunSummary is the outcome of a whole run
type RunSummary struct {
	Seed         uint64
	NElectors    int
	NCandidates  int
	Distribution string
	Model        string
	State        string
	Iterations   int
}
