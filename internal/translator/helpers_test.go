package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/config"
	"github.com/roach88/headergen/internal/ir"
)

// newTestTranslator returns a translator whose diagnostics are recorded.
func newTestTranslator(t *testing.T, cfg *config.Config) (*Translator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return New(cfg, WithLogger(zap.New(core))), logs
}

// parseOne parses e and fails the test on a fatal error.
func parseOne(t *testing.T, tr *Translator, e ast.Entity) []ir.Stmt {
	t.Helper()
	stmts, err := tr.Parse(e)
	require.NoError(t, err)
	return stmts
}

// requireFatal asserts err is a fatal error with the given code.
func requireFatal(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, IsFatal(err), "not a fatal error: %v", err)
	assert.Equal(t, code, FatalCode(err), "error: %v", err)
}

// kinds returns the statement kinds in order.
func kinds(stmts []ir.Stmt) []ir.StmtKind {
	out := make([]ir.StmtKind, len(stmts))
	for i, s := range stmts {
		out[i] = s.StmtKind()
	}
	return out
}

// onlyMethods returns the single Methods statement in stmts.
func onlyMethods(t *testing.T, stmts []ir.Stmt) *ir.Methods {
	t.Helper()
	var found *ir.Methods
	for _, s := range stmts {
		if m, ok := s.(*ir.Methods); ok {
			require.Nil(t, found, "more than one Methods statement")
			found = m
		}
	}
	require.NotNil(t, found, "no Methods statement")
	return found
}

func selectors(methods []ir.Method) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.Selector
	}
	return out
}
