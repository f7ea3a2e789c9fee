package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	common "github.com/ADimoska/StrategicSNTV/common"
	envServer "github.com/ADimoska/StrategicSNTV/server"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the same election over a range of seeds",
		Long: `Run one election per seed and report how many candidates stay viable.

Examples:
  strategicsntv sweep --from 1 --runs 20
  strategicsntv sweep --runs 50 --db sweeps.db --csv visualization_output/csv_data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetUint64("from")
			runs, _ := cmd.Flags().GetInt("runs")
			csvRoot, _ := cmd.Flags().GetString("csv")
			dbPath, _ := cmd.Flags().GetString("db")
			if runs <= 0 {
				return xerrors.Errorf("%w: --runs must be positive, got %d", common.ErrInvalidConfiguration, runs)
			}

			closeLog, err := setupLogging(cfg.Output.LogDir)
			if err != nil {
				return err
			}
			defer closeLog()

			// per-run chatter drowns the summary
			if !cmd.Flags().Changed("verbose") {
				cfg.VerboseLevel = 0
			}

			states := make(map[common.RunState]int)
			viableTotal := 0
			for i := 0; i < runs; i++ {
				cfg.Seed = from + uint64(i)
				serv, err := envServer.MakeElectionServer(cfg)
				if err != nil {
					return err
				}
				result, runErr := serv.Run()
				if runErr != nil && !xerrors.Is(runErr, common.ErrNonConvergence) {
					log.Printf("Seed %v: %v\n", cfg.Seed, runErr)
				}

				viable := viableCandidates(result.VoteIntentions)
				states[result.State]++
				viableTotal += viable
				log.Printf("Seed %v: %v at iteration %v, vote intentions %v, viable %v\n",
					cfg.Seed, result.State, result.Iterations, result.VoteIntentions, viable)

				serv.DataRecorder.RecordSummary(summarise(cfg, result))
				out := common.OutputConfig{DBPath: dbPath}
				if csvRoot != "" {
					out.CSVDir = filepath.Join(csvRoot, "seed_"+strconv.FormatUint(cfg.Seed, 10))
				}
				if err := writeOutputs(cmd.Context(), out, serv.DataRecorder); err != nil {
					return err
				}
			}

			fmt.Printf("\n%d runs: %d converged, %d exhausted, %d failed; %.2f viable candidates on average\n",
				runs, states[common.StateConverged], states[common.StateExhausted], states[common.StateFailed],
				float64(viableTotal)/float64(runs))
			return nil
		},
	}

	cmd.Flags().Uint64("from", 1, "First seed")
	cmd.Flags().Int("runs", 10, "Number of seeds")
	cmd.Flags().String("csv", "", "Root directory for per-seed CSV output")
	cmd.Flags().String("db", "", "SQLite database to append every run to")
	return cmd
}

// viableCandidates counts candidates that kept at least one vote.
func viableCandidates(tally []int) int {
	viable := 0
	for _, votes := range tally {
		if votes > 0 {
			viable++
		}
	}
	return viable
}
