package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/store"
	"github.com/roach88/headergen/internal/translator"
)

type generateResponse struct {
	Status string         `json:"status"`
	Data   GenerateResult `json:"data"`
	Error  *CLIError      `json:"error"`
}

func TestGenerate_Stdout(t *testing.T) {
	out, errOut, err := execute(t, "generate", "testdata/dumps")
	require.NoError(t, err)

	assert.Contains(t, out, "// Foundation/NSThread")
	assert.Contains(t, out, "pub struct NSThread;")
	assert.Contains(t, out, "#[method(setName:)]")
	assert.Contains(t, out, "ns_enum!(")

	// The summary goes to stderr so stdout stays source only.
	assert.Contains(t, errOut, "Foundation")
	assert.Contains(t, errOut, "✓ Generated 3 statement(s) in 1 unit(s)")
	assert.NotContains(t, out, "✓ Generated")
}

func TestGenerate_OutputDir(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "generate", "-o", dir, "testdata/dumps/Foundation/NSThread.yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Foundation", "NSThread.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "extern_class!(")
	assert.Contains(t, out, "✓ Generated 3 statement(s) in 1 unit(s)")
}

func TestGenerate_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "generate", "testdata/dumps")
	require.NoError(t, err)

	var resp generateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Units, 1)

	unit := resp.Data.Units[0]
	assert.Equal(t, "Foundation", unit.Library)
	assert.Equal(t, "NSThread", unit.File)
	assert.Equal(t, 3, unit.Statements)
	assert.Equal(t, []string{"Foundation_NSThread"}, unit.Features)
	assert.Contains(t, unit.Source, "extern_methods!(")

	require.Len(t, resp.Data.Libraries, 1)
	assert.Equal(t, LibrarySummary{
		Library:    "Foundation",
		Units:      1,
		Statements: 3,
		Features:   []string{"Foundation_NSThread"},
	}, resp.Data.Libraries[0])
}

func TestGenerate_FatalUnitIsReported(t *testing.T) {
	out, errOut, err := execute(t, "generate", "testdata/dumps", "testdata/broken")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// The healthy unit is still generated.
	assert.Contains(t, out, "pub struct NSThread;")
	assert.Contains(t, errOut, "✗ Foundation/NSBroken")
	assert.Contains(t, errOut, translator.ErrConflictingEnumKinds)
	assert.Contains(t, errOut, "hint: add `skipped = true` under [enum.NSBrokenOptions]")
}

func TestGenerate_FatalUnitJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "generate", "testdata/broken")
	require.Error(t, err)

	var resp generateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, translator.ErrConflictingEnumKinds, resp.Error.Code)
	require.Len(t, resp.Data.Libraries, 1)
	assert.Equal(t, 1, resp.Data.Libraries[0].Fatal)
}

func TestGenerate_ConfigSkipsFatalDecl(t *testing.T) {
	_, errOut, err := execute(t, "--config", "testdata/skip_broken.toml", "generate", "testdata/broken")
	require.NoError(t, err)
	assert.Contains(t, errOut, "✓ Generated 0 statement(s) in 1 unit(s)")
}

func TestGenerate_RecordsSnapshot(t *testing.T) {
	db := filepath.Join(t.TempDir(), "snap.db")

	_, errOut, err := execute(t, "generate", "--store", db, "--label", "first", "testdata/dumps")
	require.NoError(t, err)
	assert.Contains(t, errOut, "snapshot run")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", run.Label)

	stmts, err := st.ReadStatements(context.Background(), run.ID, "Foundation", "NSThread")
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, ir.KindClassDecl, stmts[0].StmtKind())
}

func TestGenerate_MissingDump(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNotFound+"]")
}

func TestGenerate_EmptyDirectory(t *testing.T) {
	out, _, err := execute(t, "generate", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "Error ["+ErrCodeNoFiles+"]")
}

func TestSummarize(t *testing.T) {
	units := []UnitResult{
		{Library: "Foundation", File: "NSThread", Statements: 3, Features: []string{"Foundation_NSThread"}},
		{Library: "AppKit", File: "NSView", Statements: 2, Features: []string{"AppKit_NSView"}},
		{Library: "Foundation", File: "NSArray", Statements: 4, Features: []string{"Foundation_NSArray"}},
		{Library: "Foundation", File: "NSBroken", Error: &CLIError{Code: "E205"}},
	}

	got := summarize(units)

	assert.Equal(t, []LibrarySummary{
		{Library: "AppKit", Units: 1, Statements: 2, Features: []string{"AppKit_NSView"}},
		{Library: "Foundation", Units: 3, Statements: 7, Fatal: 1, Features: []string{"Foundation_NSArray", "Foundation_NSThread"}},
	}, got)
}
