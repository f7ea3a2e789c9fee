package common

import "fmt"

// Candidate holds a candidate's identity and the number of electors currently
// intending to vote for them. The vote intention is unset until the first
// tally has run.
type Candidate struct {
	ID int

	voteIntention int
	tallied       bool
}

// constructor
func NewCandidate(id int) *Candidate {
	return &Candidate{ID: id}
}

// GetVoteIntention returns the current count and whether any tally has set it.
func (c *Candidate) GetVoteIntention() (int, bool) {
	return c.voteIntention, c.tallied
}

// ResetVoteIntention sets the count to zero at the start of a tally.
func (c *Candidate) ResetVoteIntention() {
	c.voteIntention = 0
	c.tallied = true
}

func (c *Candidate) AddVote() {
	c.voteIntention++
}

// WinProbability is the candidate's vote share. Before any tally every
// candidate is treated as a certain winner.
func (c *Candidate) WinProbability(nElectors int) float64 {
	if !c.tallied {
		return 1
	}
	return float64(c.voteIntention) / float64(nElectors)
}

func (c *Candidate) String() string {
	return fmt.Sprintf("Cand %d", c.ID)
}

// debug printing
func (c *Candidate) LogWinProbability(nElectors int) {
	fmt.Printf("Cand %d's winprob: %v\n", c.ID, c.WinProbability(nElectors))
}
