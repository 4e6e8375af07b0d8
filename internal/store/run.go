package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal condition a run ended in.
type Outcome string

const (
	// OutcomeAccepted means the machine halted in a final state.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeErrorState means the machine entered a declared error state.
	OutcomeErrorState Outcome = "error_state"

	// OutcomeUndefined means no transition matched and the run stopped.
	OutcomeUndefined Outcome = "undefined"
)

// ErrRunNotFound is returned by ReadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one journaled machine run.
type Run struct {
	ID          string    `json:"id"`
	ProgramHash string    `json:"program_hash"` // sha256 of the program text, hex
	Input       string    `json:"input"`        // initial tape text
	Output      string    `json:"output"`       // final tape text
	HaltState   uint64    `json:"halt_state"`   // state the run stopped in
	Outcome     Outcome   `json:"outcome"`
	ErrorCode   string    `json:"error_code,omitempty"` // runtime error code, "" when accepted
	CreatedAt   time.Time `json:"created_at"`
}

// NewRunID generates a UUIDv7 run identifier. V7 IDs sort by creation
// time, which keeps journal listings in insertion order.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}

// WriteRun inserts a run record into the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, program_hash, input_tape, output_tape, halt_state, outcome, error_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.ProgramHash,
		run.Input,
		run.Output,
		int64(run.HaltState),
		string(run.Outcome),
		run.ErrorCode,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}

// ReadRun returns the journaled run with the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, program_hash, input_tape, output_tape, halt_state, outcome, error_code, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns up to limit journaled runs, newest first.
// A non-positive limit lists everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, program_hash, input_tape, output_tape, halt_state, outcome, error_code, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		haltState int64
		outcome   string
		createdAt string
	)

	if err := sc.Scan(
		&run.ID,
		&run.ProgramHash,
		&run.Input,
		&run.Output,
		&haltState,
		&outcome,
		&run.ErrorCode,
		&createdAt,
	); err != nil {
		return Run{}, err
	}

	run.HaltState = uint64(haltState)
	run.Outcome = Outcome(outcome)

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts

	return run, nil
}
