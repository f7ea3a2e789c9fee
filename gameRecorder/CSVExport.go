package gameRecorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/xerrors"
)

// ExportToCSV writes rounds.csv (one row per round and candidate) and
// least_preferred.csv into dir.
func ExportToCSV(sdr *ServerDataRecorder, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return xerrors.Errorf("creating csv dir: %w", err)
	}

	rows := [][]string{{"iteration", "candidate", "vote_intention", "win_probability", "switches", "clamped", "normalization_failures"}}
	for _, record := range sdr.RoundRecords {
		for cand, votes := range record.VoteIntentions {
			winProb := ""
			if cand < len(record.WinProbabilities) {
				winProb = strconv.FormatFloat(record.WinProbabilities[cand], 'g', -1, 64)
			}
			rows = append(rows, []string{
				strconv.Itoa(record.IterationNumber),
				strconv.Itoa(cand),
				strconv.Itoa(votes),
				winProb,
				strconv.Itoa(record.Switches),
				strconv.Itoa(record.Clamped),
				strconv.Itoa(record.NormalizationFailures),
			})
		}
	}
	if err := writeCSV(filepath.Join(dir, "rounds.csv"), rows); err != nil {
		return err
	}

	least := [][]string{{"candidate", "least_preferred_by"}}
	for cand, count := range sdr.LeastPreferred {
		least = append(least, []string{strconv.Itoa(cand), strconv.Itoa(count)})
	}
	return writeCSV(filepath.Join(dir, "least_preferred.csv"), least)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return xerrors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
