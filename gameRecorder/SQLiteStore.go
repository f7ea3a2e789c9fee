package gameRecorder

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	seed          INTEGER NOT NULL,
	n_electors    INTEGER NOT NULL,
	n_candidates  INTEGER NOT NULL,
	distribution  TEXT NOT NULL,
	model         TEXT NOT NULL,
	state         TEXT NOT NULL,
	iterations    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rounds (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	iteration       INTEGER NOT NULL,
	candidate       INTEGER NOT NULL,
	vote_intention  INTEGER NOT NULL,
	win_probability REAL NOT NULL,
	PRIMARY KEY (run_id, iteration, candidate)
);
`

// SQLiteStore keeps finished runs so sweeps can be compared afterwards.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, xerrors.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, xerrors.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun stores the summary and every round of a run under a new id.
func (s *SQLiteStore) SaveRun(ctx context.Context, sdr *ServerDataRecorder) (uuid.UUID, error) {
	runID := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, xerrors.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	sum := sdr.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, seed, n_electors, n_candidates, distribution, model, state, iterations) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), int64(sum.Seed), sum.NElectors, sum.NCandidates, sum.Distribution, sum.Model, sum.State, sum.Iterations,
	); err != nil {
		return uuid.Nil, xerrors.Errorf("inserting run: %w", err)
	}

	for _, record := range sdr.RoundRecords {
		for cand, votes := range record.VoteIntentions {
			winProb := 0.0
			if cand < len(record.WinProbabilities) {
				winProb = record.WinProbabilities[cand]
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rounds (run_id, iteration, candidate, vote_intention, win_probability) VALUES (?, ?, ?, ?, ?)`,
				runID.String(), record.IterationNumber, cand, votes, winProb,
			); err != nil {
				return uuid.Nil, xerrors.Errorf("inserting round %d: %w", record.IterationNumber, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, xerrors.Errorf("commit: %w", err)
	}
	return runID, nil
}

// FinalTally returns the vote intentions of a stored run's last round.
func (s *SQLiteStore) FinalTally(ctx context.Context, runID uuid.UUID) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vote_intention FROM rounds
		WHERE run_id = ? AND iteration = (SELECT MAX(iteration) FROM rounds WHERE run_id = ?)
		ORDER BY candidate`, runID.String(), runID.String())
	if err != nil {
		return nil, xerrors.Errorf("querying run %s: %w", runID, err)
	}
	defer rows.Close()

	var tally []int
	for rows.Next() {
		var votes int
		if err := rows.Scan(&votes); err != nil {
			return nil, err
		}
		tally = append(tally, votes)
	}
	return tally, rows.Err()
}
