package gameRecorder

import (
	"log"
)

// --------- General External Functions ---------
func Log(message string) {
	log.Println(message)
}

// --------- Server Recording Functions ---------
type ServerDataRecorder struct {
	RoundRecords []RoundRecord // where all our info is stored!

	// electors per least-preferred candidate, set once at population time
	LeastPreferred []int

	Summary RunSummary
}

func CreateRecorder() *ServerDataRecorder {
	return &ServerDataRecorder{
		RoundRecords: []RoundRecord{},
	}
}

func (sdr *ServerDataRecorder) GetCurrentRoundRecord() *RoundRecord {
	if len(sdr.RoundRecords) == 0 {
		return nil
	}
	return &sdr.RoundRecords[len(sdr.RoundRecords)-1]
}

func (sdr *ServerDataRecorder) RecordNewRound(record RoundRecord) {
	sdr.RoundRecords = append(sdr.RoundRecords, record)
}

func (sdr *ServerDataRecorder) RecordLeastPreferred(counts []int) {
	sdr.LeastPreferred = append([]int(nil), counts...)
}

func (sdr *ServerDataRecorder) RecordSummary(summary RunSummary) {
	sdr.Summary = summary
}

func (sdr *ServerDataRecorder) GamePlaybackSummary() {
	log.Printf("\n\nGamePlaybackSummary - playing %v round records\n", len(sdr.RoundRecords))
	log.Printf("Least preferred by: %v\n", sdr.LeastPreferred)
	for _, record := range sdr.RoundRecords {
		log.Printf("Iteration %v: votes %v, switches %v, clamped %v, normalization failures %v\n",
			record.IterationNumber, record.VoteIntentions, record.Switches, record.Clamped, record.NormalizationFailures)
	}
	log.Printf("Outcome: %v after %v iterations (seed %v)\n", sdr.Summary.State, sdr.Summary.Iterations, sdr.Summary.Seed)
}
