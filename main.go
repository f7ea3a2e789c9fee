package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	common "github.com/ADimoska/StrategicSNTV/common"
	gameRecorder "github.com/ADimoska/StrategicSNTV/gameRecorder"
	envServer "github.com/ADimoska/StrategicSNTV/server"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "strategicsntv",
		Short: "Agent-based model of strategic voting under SNTV",
		Long: `strategicsntv simulates a population of electors who each cast one vote
for one of several candidates and adapt their choice to how pivotal each
pair of candidates looks in the previous round's tally.

Runs stop once the tally repeats or the iteration cap is reached.`,
		SilenceUsage: true,
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addGlobalFlags declares the flags every subcommand reads through
// loadConfig.
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "YAML config file; flags override its values")
	flags.Int("electors", 0, "Number of electors")
	flags.Int("candidates", 0, "Number of candidates")
	flags.String("distribution", "", "Utility distribution (uniform, normal, stdnormal, dirichlet, powerlaw, beta, spatial)")
	flags.Int("max-iteration", 0, "Iteration cap")
	flags.String("model", "", "Pivotality model (rival, minor)")
	flags.Int("verbose", 0, "Verbose level (0-3)")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one election until it converges or hits the iteration cap",
		Long: `Run a single election.

Examples:
  strategicsntv run --seed 7
  strategicsntv run --config run.yaml --html visualization_output/playback.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			if cmd.Flags().Changed("csv") {
				cfg.Output.CSVDir, _ = cmd.Flags().GetString("csv")
			}
			if cmd.Flags().Changed("html") {
				cfg.Output.HTMLPath, _ = cmd.Flags().GetString("html")
			}
			if cmd.Flags().Changed("db") {
				cfg.Output.DBPath, _ = cmd.Flags().GetString("db")
			}

			closeLog, err := setupLogging(cfg.Output.LogDir)
			if err != nil {
				return err
			}
			defer closeLog()

			log.Println("main function started.")
			log.Printf("Seed: %v\n", cfg.Seed)

			serv, err := envServer.MakeElectionServer(cfg)
			if err != nil {
				return err
			}
			if cfg.VerboseLevel > 1 {
				serv.LogElectorStatus()
			}

			result, runErr := serv.Run()
			if runErr != nil && !xerrors.Is(runErr, common.ErrNonConvergence) {
				return runErr
			}

			// custom function to see candidate result
			serv.LogCandidateStatus()
			log.Printf("Outcome: %v at iteration %v, vote intentions %v\n", result.State, result.Iterations, result.VoteIntentions)

			// record data
			serv.DataRecorder.RecordSummary(summarise(cfg, result))
			if cfg.VerboseLevel > 0 {
				serv.DataRecorder.GamePlaybackSummary()
			}
			if err := writeOutputs(cmd.Context(), cfg.Output, serv.DataRecorder); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().Uint64("seed", 0, "Seed of the utility draw (default from config)")
	cmd.Flags().String("csv", "", "Directory for rounds.csv and least_preferred.csv")
	cmd.Flags().String("html", "", "Path of the playback HTML page")
	cmd.Flags().String("db", "", "SQLite database to append the run to")
	return cmd
}

// loadConfig reads the optional config file and applies the global flags.
func loadConfig(cmd *cobra.Command) (common.Config, error) {
	cfg := common.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = common.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("electors") {
		cfg.NElectors, _ = flags.GetInt("electors")
	}
	if flags.Changed("candidates") {
		cfg.NCandidates, _ = flags.GetInt("candidates")
	}
	if flags.Changed("distribution") {
		cfg.Distribution.Kind, _ = flags.GetString("distribution")
	}
	if flags.Changed("max-iteration") {
		cfg.MaxIteration, _ = flags.GetInt("max-iteration")
	}
	if flags.Changed("model") {
		cfg.PivotalityModel, _ = flags.GetString("model")
	}
	if flags.Changed("verbose") {
		cfg.VerboseLevel, _ = flags.GetInt("verbose")
	}
	return cfg, nil
}

// setupLogging writes the log to stdout and to a timestamped file in dir.
func setupLogging(dir string) (func(), error) {
	if dir == "" {
		log.SetFlags(0)
		return func() {}, nil
	}

	// Create logs directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, xerrors.Errorf("failed to create logs directory: %w", err)
	}

	// Create log file with timestamp in name
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFile, err := os.OpenFile(filepath.Join(dir, "log_"+timestamp+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, xerrors.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, logFile))

	// Remove date and time prefix from log entries
	log.SetFlags(0)
	return func() { logFile.Close() }, nil
}

func summarise(cfg common.Config, result common.RunResult) gameRecorder.RunSummary {
	return gameRecorder.RunSummary{
		Seed:         cfg.Seed,
		NElectors:    cfg.NElectors,
		NCandidates:  cfg.NCandidates,
		Distribution: cfg.Distribution.Kind,
		Model:        cfg.PivotalityModel,
		State:        result.State.String(),
		Iterations:   result.Iterations,
	}
}

func writeOutputs(ctx context.Context, out common.OutputConfig, sdr *gameRecorder.ServerDataRecorder) error {
	if out.CSVDir != "" {
		if err := gameRecorder.ExportToCSV(sdr, out.CSVDir); err != nil {
			return err
		}
	}
	if out.HTMLPath != "" {
		if err := gameRecorder.CreatePlaybackHTML(sdr, out.HTMLPath); err != nil {
			return err
		}
	}
	if out.DBPath != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		store, err := gameRecorder.OpenSQLiteStore(ctx, out.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.SaveRun(ctx, sdr)
		if err != nil {
			return err
		}
		log.Printf("Stored run %v in %v\n", runID, out.DBPath)
	}
	return nil
}
