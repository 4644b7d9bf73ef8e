package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/logger"
	"github.com/roach88/headergen/internal/render"
	"github.com/roach88/headergen/internal/store"
	"github.com/roach88/headergen/internal/translator"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Output string // directory for <Library>/<File>.rs; empty prints to stdout
	Store  string // snapshot database; empty records nothing
	Label  string // snapshot run label
}

// UnitResult is the outcome of one translation unit.
type UnitResult struct {
	Library    string    `json:"library"`
	File       string    `json:"file"`
	Statements int       `json:"statements"`
	Path       string    `json:"path,omitempty"`
	Source     string    `json:"source,omitempty"` // only without --output
	Features   []string  `json:"features,omitempty"`
	Error      *CLIError `json:"error,omitempty"`
}

// LibrarySummary aggregates the units of one library.
type LibrarySummary struct {
	Library    string   `json:"library"`
	Units      int      `json:"units"`
	Statements int      `json:"statements"`
	Fatal      int      `json:"fatal"`
	Features   []string `json:"features,omitempty"`
}

// GenerateResult is the generate command's response payload.
type GenerateResult struct {
	RunID     string           `json:"run_id,omitempty"`
	Libraries []LibrarySummary `json:"libraries"`
	Units     []UnitResult     `json:"units"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <dump>...",
		Short: "Generate bindings from declaration dumps",
		Long: `Translate every declaration of the given dumps and render one source
file per translation unit.

Arguments are dump files or directories searched for .yaml, .yml and .json
dumps. A unit with a fatal translation error is reported and not written;
the other units are still generated. With --store the generated IR is
recorded as a snapshot run for later checks.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output directory (default: stdout)")
	cmd.Flags().StringVar(&opts.Store, "store", "", "record a snapshot in this SQLite database")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the snapshot run")

	return cmd
}

func runGenerate(ctx context.Context, rootOpts *RootOptions, opts *GenerateOptions, paths []string, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := rootOpts.logger(cmd)
	defer func() { _ = log.Sync() }()

	cfg, err := rootOpts.loadConfig(formatter)
	if err != nil {
		return err
	}

	units, err := LoadDumps(paths)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d translation unit(s)", len(units))

	var (
		st  *store.Store
		run store.Run
	)
	if opts.Store != "" {
		st, err = store.Open(opts.Store)
		if err != nil {
			return outputStoreError(formatter, err)
		}
		defer st.Close()

		run, err = st.BeginRun(ctx, opts.Label)
		if err != nil {
			return outputStoreError(formatter, err)
		}
		formatter.VerboseLog("Recording snapshot run %s", run.ID)
	}

	tr := translator.New(cfg, translator.WithLogger(log))
	result := GenerateResult{RunID: run.ID, Units: make([]UnitResult, 0, len(units))}

	for _, u := range units {
		res := UnitResult{Library: u.Library, File: u.File}

		stmts, err := translateUnit(tr, log, u)
		if err != nil {
			res.Error = fatalCLIError(err)
			result.Units = append(result.Units, res)
			continue
		}
		res.Statements = len(stmts)
		res.Features = features(u, stmts)

		source := render.Stmts(stmts)
		if opts.Output == "" {
			if formatter.Format == "json" {
				res.Source = source
			} else {
				fmt.Fprintf(formatter.Writer, "// %s/%s\n%s", u.Library, u.File, source)
			}
		} else {
			res.Path, err = writeSource(opts.Output, u, source)
			if err != nil {
				_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
			}
			formatter.VerboseLog("Wrote %s", res.Path)
		}

		if st != nil {
			unit := store.Unit{Library: u.Library, File: u.File}
			if err := st.WriteStatements(ctx, run, unit, stmts); err != nil {
				return outputStoreError(formatter, err)
			}
		}

		result.Units = append(result.Units, res)
	}

	result.Libraries = summarize(result.Units)
	return outputGenerateResult(formatter, opts, result)
}

// translateUnit translates the declarations of one unit, stopping at the
// first fatal error.
func translateUnit(tr *translator.Translator, log *zap.Logger, u *ast.Unit) ([]ir.Stmt, error) {
	log.Debug("translating",
		zap.String(logger.FieldLibrary, u.Library),
		zap.String(logger.FieldFile, u.File),
		zap.Int(logger.FieldCount, len(u.Decls)))

	stmts, err := tr.ParseAll(u.Entities())
	if err != nil {
		log.Error("fatal",
			zap.String(logger.FieldLibrary, u.Library),
			zap.String(logger.FieldFile, u.File),
			zap.String(logger.FieldCode, translator.FatalCode(err)),
			zap.Error(err))
		return nil, err
	}
	return stmts, nil
}

// features lists the feature tags of the classes a unit declares.
func features(u *ast.Unit, stmts []ir.Stmt) []string {
	var out []string
	for _, s := range stmts {
		class, ok := s.(*ir.ClassDecl)
		if !ok {
			continue
		}
		if tag, ok := ir.NewIdentifier(class.Type.Name, u.Library, u.File).Feature(); ok {
			out = append(out, tag)
		}
	}
	return out
}

func writeSource(dir string, u *ast.Unit, source string) (string, error) {
	path := filepath.Join(dir, u.Library, u.File+".rs")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// summarize groups unit results by library, sorted by name.
func summarize(units []UnitResult) []LibrarySummary {
	byLib := map[string]*LibrarySummary{}
	for _, u := range units {
		lib, ok := byLib[u.Library]
		if !ok {
			lib = &LibrarySummary{Library: u.Library}
			byLib[u.Library] = lib
		}
		lib.Units++
		lib.Statements += u.Statements
		lib.Features = append(lib.Features, u.Features...)
		if u.Error != nil {
			lib.Fatal++
		}
	}

	out := make([]LibrarySummary, 0, len(byLib))
	for _, lib := range byLib {
		sort.Strings(lib.Features)
		out = append(out, *lib)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Library < out[j].Library })
	return out
}

// fatalCLIError converts a translation error, keeping its skip hint.
func fatalCLIError(err error) *CLIError {
	code := translator.FatalCode(err)
	if code == "" {
		code = ErrCodeGeneric
	}
	e := &CLIError{Code: code, Message: err.Error()}
	if hint := errors.FlattenHints(err); hint != "" {
		e.Details = hint
	}
	return e
}

func outputStoreError(f *OutputFormatter, err error) error {
	_ = f.Error(ErrCodeStoreFailed, err.Error(), nil)
	return WrapExitError(ExitCommandError, ErrCodeStoreFailed, err)
}

func outputGenerateResult(f *OutputFormatter, opts *GenerateOptions, result GenerateResult) error {
	fatal, statements := 0, 0
	for _, lib := range result.Libraries {
		fatal += lib.Fatal
		statements += lib.Statements
	}

	if f.Format == "json" {
		if fatal > 0 {
			first := firstFatal(result.Units)
			if err := f.Failure(first.Code, first.Message, result); err != nil {
				return err
			}
		} else if err := f.Success(result); err != nil {
			return err
		}
	} else {
		summary := *f
		if opts.Output == "" {
			// Generated source owns stdout.
			summary.Writer = f.GetErrWriter()
		}
		if err := writeGenerateText(&summary, result, statements); err != nil {
			return err
		}
	}

	if fatal > 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("translation failed for %d unit(s)", fatal))
	}
	return nil
}

func writeGenerateText(f *OutputFormatter, result GenerateResult, statements int) error {
	rows := make([][]string, 0, len(result.Libraries))
	for _, lib := range result.Libraries {
		rows = append(rows, []string{
			lib.Library,
			strconv.Itoa(lib.Units),
			strconv.Itoa(lib.Statements),
			strconv.Itoa(lib.Fatal),
			strconv.Itoa(len(lib.Features)),
		})
	}
	if err := f.Table([]string{"Library", "Units", "Statements", "Fatal", "Features"}, rows); err != nil {
		return err
	}

	for _, u := range result.Units {
		if u.Error == nil {
			continue
		}
		fmt.Fprintf(f.Writer, "✗ %s/%s\n  %s\n", u.Library, u.File, u.Error.Message)
		if hint, ok := u.Error.Details.(string); ok {
			fmt.Fprintf(f.Writer, "  hint: %s\n", hint)
		}
	}
	if f.Verbose {
		for _, lib := range result.Libraries {
			for _, tag := range lib.Features {
				fmt.Fprintf(f.Writer, "  feature %s\n", tag)
			}
		}
	}

	fmt.Fprintf(f.Writer, "✓ Generated %d statement(s) in %d unit(s)\n", statements, len(result.Units))
	if result.RunID != "" {
		fmt.Fprintf(f.Writer, "  snapshot run %s\n", result.RunID)
	}
	return nil
}

func firstFatal(units []UnitResult) *CLIError {
	for _, u := range units {
		if u.Error != nil {
			return u.Error
		}
	}
	return &CLIError{Code: ErrCodeGeneric}
}
