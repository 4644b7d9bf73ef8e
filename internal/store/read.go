package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ir"
)

// ErrNoRuns is returned by LatestRun on an empty store.
var ErrNoRuns = errors.New("no runs recorded")

// LatestRun returns the run with the highest seq.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, label, ir_version, generator_version
		FROM runs
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Seq, &run.Label, &run.IRVersion, &run.GeneratorVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, errors.Wrap(err, "latest run")
	}
	return run, nil
}

// ReadStatements returns the statements stored for one unit of a run in
// the order they were written.
//
// Returns an empty slice (not nil) when the unit has no statements.
func (s *Store) ReadStatements(ctx context.Context, runID, library, file string) ([]ir.Stmt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload, hash
		FROM statements
		WHERE run_id = ? AND library = ? AND file = ?
		ORDER BY seq ASC
	`, runID, library, file)
	if err != nil {
		return nil, errors.Wrap(err, "query statements")
	}
	defer rows.Close()

	stmts := []ir.Stmt{}
	for rows.Next() {
		var payload, hash string
		if err := rows.Scan(&payload, &hash); err != nil {
			return nil, errors.Wrap(err, "scan statement")
		}
		stmt, err := decodeStatement(payload, hash)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate statements")
	}

	return stmts, nil
}

// Units lists the units recorded for a run, sorted by library then file.
func (s *Store) Units(ctx context.Context, runID string) ([]Unit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT library, file
		FROM statements
		WHERE run_id = ?
		ORDER BY library COLLATE BINARY ASC, file COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query units")
	}
	defer rows.Close()

	units := []Unit{}
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.Library, &u.File); err != nil {
			return nil, errors.Wrap(err, "scan unit")
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate units")
	}

	return units, nil
}
