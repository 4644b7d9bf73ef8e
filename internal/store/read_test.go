package store

import (
	"context"
	"errors"
	"testing"

	"github.com/roach88/headergen/internal/ir"
)

func TestLatestRun_Empty(t *testing.T) {
	s := createTestStore(t)

	_, err := s.LatestRun(context.Background())
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("LatestRun() error = %v, want ErrNoRuns", err)
	}
}

func TestLatestRun_HighestSeq(t *testing.T) {
	s, _ := createDeterministicStore(t)
	ctx := context.Background()

	var last Run
	for _, label := range []string{"a", "b", "c"} {
		run, err := s.BeginRun(ctx, label)
		if err != nil {
			t.Fatalf("BeginRun(%q) failed: %v", label, err)
		}
		last = run
	}

	got, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if got != last {
		t.Errorf("LatestRun() = %+v, want %+v", got, last)
	}
}

func TestReadStatements_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	want := sampleStatements()
	if err := s.WriteStatements(ctx, run, foundationThread, want); err != nil {
		t.Fatalf("WriteStatements() failed: %v", err)
	}

	got, err := s.ReadStatements(ctx, run.ID, "Foundation", "NSThread")
	if err != nil {
		t.Fatalf("ReadStatements() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if err := ir.Compare(got[i], want[i]); err != nil {
			t.Errorf("statement %d: %v", i, err)
		}
	}
}

func TestReadStatements_Empty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadStatements(context.Background(), "missing", "Foundation", "NSThread")
	if err != nil {
		t.Fatalf("ReadStatements() failed: %v", err)
	}
	if got == nil {
		t.Error("statements is nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestReadStatements_FiltersByUnit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	other := Unit{Library: "Foundation", File: "NSString"}
	if err := s.WriteStatements(ctx, run, foundationThread, sampleStatements()[:1]); err != nil {
		t.Fatalf("WriteStatements() failed: %v", err)
	}
	str := &ir.ClassDecl{Type: ir.GenericType{Name: "NSString"}, Derives: ir.DefaultDerives}
	if err := s.WriteStatements(ctx, run, other, []ir.Stmt{str}); err != nil {
		t.Fatalf("WriteStatements() failed: %v", err)
	}

	got, err := s.ReadStatements(ctx, run.ID, other.Library, other.File)
	if err != nil {
		t.Fatalf("ReadStatements() failed: %v", err)
	}
	if len(got) != 1 || got[0].Symbol() != "NSString" {
		t.Errorf("ReadStatements() = %v, want only NSString", got)
	}
}

func TestReadStatements_DetectsTamperedPayload(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	if err := s.WriteStatements(ctx, run, foundationThread, sampleStatements()[:1]); err != nil {
		t.Fatalf("WriteStatements() failed: %v", err)
	}

	tampered := &ir.ClassDecl{Type: ir.GenericType{Name: "NSThread"}, Derives: "Debug"}
	payload, err := ir.MarshalStmt(tampered)
	if err != nil {
		t.Fatalf("MarshalStmt() failed: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE statements SET payload = ?`, string(payload)); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	_, err = s.ReadStatements(ctx, run.ID, "Foundation", "NSThread")
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("ReadStatements() error = %v, want ErrHashMismatch", err)
	}
}

func TestUnits_Sorted(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	units := []Unit{
		{Library: "Foundation", File: "NSThread"},
		{Library: "AppKit", File: "NSView"},
		{Library: "Foundation", File: "NSArray"},
	}
	for _, u := range units {
		if err := s.WriteStatements(ctx, run, u, sampleStatements()[:1]); err != nil {
			t.Fatalf("WriteStatements(%v) failed: %v", u, err)
		}
	}

	got, err := s.Units(ctx, run.ID)
	if err != nil {
		t.Fatalf("Units() failed: %v", err)
	}
	want := []Unit{
		{Library: "AppKit", File: "NSView"},
		{Library: "Foundation", File: "NSArray"},
		{Library: "Foundation", File: "NSThread"},
	}
	if len(got) != len(want) {
		t.Fatalf("Units() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Units()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
