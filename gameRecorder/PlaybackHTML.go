package gameRecorder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/xerrors"
)

// CreatePlaybackHTML renders the vote-intention trajectory of every candidate
// and the least-preferred histogram into a single HTML page.
func CreatePlaybackHTML(sdr *ServerDataRecorder, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return xerrors.Errorf("creating html dir: %w", err)
		}
	}

	page := components.NewPage()
	page.SetPageTitle("Strategic voting playback")
	page.AddCharts(voteIntentionChart(sdr), leastPreferredChart(sdr))

	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return xerrors.Errorf("rendering playback: %w", err)
	}
	return nil
}

func voteIntentionChart(sdr *ServerDataRecorder) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Vote intentions (%s after %d iterations)", sdr.Summary.State, sdr.Summary.Iterations),
		}),
	)

	iterations := make([]string, len(sdr.RoundRecords))
	for i, record := range sdr.RoundRecords {
		iterations[i] = strconv.Itoa(record.IterationNumber)
	}
	line.SetXAxis(iterations)

	nCandidates := 0
	if len(sdr.RoundRecords) > 0 {
		nCandidates = len(sdr.RoundRecords[0].VoteIntentions)
	}
	for cand := 0; cand < nCandidates; cand++ {
		data := make([]opts.LineData, len(sdr.RoundRecords))
		for i, record := range sdr.RoundRecords {
			data[i] = opts.LineData{Value: record.VoteIntentions[cand]}
		}
		line.AddSeries(fmt.Sprintf("Cand %d", cand), data)
	}
	return line
}

func leastPreferredChart(sdr *ServerDataRecorder) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Least preferred by"}),
	)

	labels := make([]string, len(sdr.LeastPreferred))
	data := make([]opts.BarData, len(sdr.LeastPreferred))
	for cand, count := range sdr.LeastPreferred {
		labels[cand] = fmt.Sprintf("Cand %d", cand)
		data[cand] = opts.BarData{Value: count}
	}
	bar.SetXAxis(labels).AddSeries("electors", data)
	return bar
}
