package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/testutil"
)

// Error paths that a real SQLite file cannot easily produce.

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := newStore(db,
		WithSequencer(testutil.NewClock(0)),
		WithIDGenerator(testutil.NewSeededIDs(t.Name())),
	)
	require.NoError(t, err)
	return s, mock
}

func TestNewStore_SeedsClockFromMaxSeq(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT MAX`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(41))

	s, err := newStore(db)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.seq.Next())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_MaxSeqError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT MAX`).WillReturnError(errors.New("disk I/O error"))

	_, err = newStore(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read last seq")
}

func TestBeginRun_InsertError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(sqlmock.AnyArg(), int64(1), "label", ir.IRVersion, ir.GeneratorVersion).
		WillReturnError(errors.New("database is locked"))

	_, err := s.BeginRun(context.Background(), "label")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteStatements_RollsBackOnInsertError(t *testing.T) {
	s, mock := newMockStore(t)
	stmts := sampleStatements()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO statements`).
		WithArgs("run-1", int64(1), "Foundation", "NSThread", "class_decl", "NSThread", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO statements`).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := s.WriteStatements(context.Background(), Run{ID: "run-1"}, foundationThread, stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert methods NSThread")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteStatements_CommitError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO statements`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := s.WriteStatements(context.Background(), Run{ID: "run-1"}, foundationThread, sampleStatements()[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteStatements_BeginError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	err := s.WriteStatements(context.Background(), Run{ID: "run-1"}, foundationThread, sampleStatements())
	require.ErrorIs(t, err, sql.ErrConnDone)
}

func TestLatestRun_QueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM runs`).WillReturnError(errors.New("no such table: runs"))

	_, err := s.LatestRun(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRuns)
}

func TestReadStatements_ScanError(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"payload", "hash"}).
		AddRow("{not json", "h")
	mock.ExpectQuery(`FROM statements`).
		WithArgs("run-1", "Foundation", "NSThread").
		WillReturnRows(rows)

	_, err := s.ReadStatements(context.Background(), "run-1", "Foundation", "NSThread")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal statement")
}

func TestReadStatements_RowError(t *testing.T) {
	s, mock := newMockStore(t)

	payload, hash, err := encodeStatement(sampleStatements()[0])
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"payload", "hash"}).
		AddRow(payload, hash).
		RowError(0, errors.New("interrupted"))
	mock.ExpectQuery(`FROM statements`).WillReturnRows(rows)

	_, err = s.ReadStatements(context.Background(), "run-1", "Foundation", "NSThread")
	require.Error(t, err)
}
