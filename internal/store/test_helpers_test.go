package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/testutil"
)

var foundationThread = Unit{Library: "Foundation", File: "NSThread"}

// createTestStore opens a store in a temp dir with the default clock and ids.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createDeterministicStore pins seqs and run ids.
func createDeterministicStore(t *testing.T) (*Store, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(0)
	s := createTestStore(t,
		WithSequencer(clock),
		WithIDGenerator(testutil.NewSeededIDs(t.Name())),
	)
	return s, clock
}

func sampleStatements() []ir.Stmt {
	thread := ir.GenericType{Name: "NSThread"}
	return []ir.Stmt{
		&ir.ClassDecl{
			Type:       thread,
			Superclass: &ir.GenericType{Name: "NSObject"},
			Derives:    ir.DefaultDerives,
		},
		&ir.Methods{
			Type: thread,
			Methods: []ir.Method{
				{
					Selector: "currentThread",
					FnName:   "currentThread",
					IsClass:  true,
					Kind:     ir.MethodKindMethod,
					Result:   "Id<NSThread, Shared>",
					Unsafe:   true,
				},
			},
		},
		&ir.EnumDecl{
			Name: "NSQualityOfService",
			Ty:   "NSInteger",
			Kind: ir.EnumKindEnum,
			Variants: []ir.Variant{
				{Name: "NSQualityOfServiceUserInteractive", Expr: "0x21"},
				{Name: "NSQualityOfServiceDefault", Expr: "-1"},
			},
		},
	}
}
