package store

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ir"
)

// Run is one recorded generator invocation.
type Run struct {
	ID               string
	Seq              int64
	Label            string
	IRVersion        string
	GeneratorVersion string
}

// Unit names the translation unit a statement was generated for.
type Unit struct {
	Library string
	File    string
}

// BeginRun records a new run stamped with the current IR and generator
// versions.
func (s *Store) BeginRun(ctx context.Context, label string) (Run, error) {
	run := Run{
		ID:               s.ids.NewID(),
		Seq:              s.seq.Next(),
		Label:            label,
		IRVersion:        ir.IRVersion,
		GeneratorVersion: ir.GeneratorVersion,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, label, ir_version, generator_version)
		VALUES (?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Label,
		run.IRVersion,
		run.GeneratorVersion,
	)
	if err != nil {
		return Run{}, errors.Wrap(err, "begin run")
	}

	return run, nil
}

// WriteStatements stores the statements of one unit in a single
// transaction, in the order given. Either all of them are written or none.
func (s *Store) WriteStatements(ctx context.Context, run Run, unit Unit, stmts []ir.Stmt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "write statements: begin tx")
	}
	defer tx.Rollback() // No-op if committed

	for _, stmt := range stmts {
		payload, hash, err := encodeStatement(stmt)
		if err != nil {
			return errors.Wrapf(err, "write statements: %s/%s", unit.Library, unit.File)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO statements
			(run_id, seq, library, file, kind, symbol, hash, payload)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			s.seq.Next(),
			unit.Library,
			unit.File,
			string(stmt.StmtKind()),
			stmt.Symbol(),
			hash,
			payload,
		)
		if err != nil {
			return errors.Wrapf(err, "write statements: insert %s %s", stmt.StmtKind(), stmt.Symbol())
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "write statements: commit")
	}

	return nil
}
