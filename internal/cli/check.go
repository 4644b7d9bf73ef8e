package cli

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/store"
	"github.com/roach88/headergen/internal/translator"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	Store string
}

// Mismatch is one statement that differs from the snapshot.
type Mismatch struct {
	Library string `json:"library"`
	File    string `json:"file"`
	Index   int    `json:"index"`
	Symbol  string `json:"symbol"`
	Detail  string `json:"detail"`
}

// CheckResult is the check command's response payload.
type CheckResult struct {
	RunID      string     `json:"run_id"`
	Units      int        `json:"units"`
	Statements int        `json:"statements"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <dump>... --store <db>",
		Short: "Compare generated IR against the latest snapshot",
		Long: `Translate the given dumps again and compare every statement with the
latest snapshot run recorded by generate --store.

Exits with code 1 when any statement differs, listing the first differing
method and a diff of each mismatching statement. Units recorded in the
snapshot but missing from the given dumps are reported as no longer
generated.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "", "snapshot database (required)")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func runCheck(ctx context.Context, rootOpts *RootOptions, opts *CheckOptions, paths []string, cmd *cobra.Command) error {
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

	st, err := store.Open(opts.Store)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	defer st.Close()

	run, err := st.LatestRun(ctx)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	formatter.VerboseLog("Checking against snapshot run %s (%s)", run.ID, run.Label)

	tr := translator.New(cfg, translator.WithLogger(log))
	result := CheckResult{RunID: run.ID, Units: len(units)}
	checked := make(map[store.Unit]bool, len(units))

	for _, u := range units {
		checked[store.Unit{Library: u.Library, File: u.File}] = true

		got, err := translateUnit(tr, log, u)
		if err != nil {
			fe := fatalCLIError(err)
			_ = formatter.Error(fe.Code, fmt.Sprintf("%s/%s: %s", u.Library, u.File, fe.Message), fe.Details)
			return WrapExitError(ExitCommandError, fe.Code, err)
		}

		want, err := st.ReadStatements(ctx, run.ID, u.Library, u.File)
		if err != nil {
			return outputStoreError(formatter, err)
		}

		result.Statements += len(got)
		result.Mismatches = append(result.Mismatches, compareUnit(u.Library, u.File, got, want)...)
	}

	// Units recorded in the snapshot but absent from the dumps.
	recorded, err := st.Units(ctx, run.ID)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	for _, u := range recorded {
		if checked[u] {
			continue
		}
		want, err := st.ReadStatements(ctx, run.ID, u.Library, u.File)
		if err != nil {
			return outputStoreError(formatter, err)
		}
		result.Mismatches = append(result.Mismatches, compareUnit(u.Library, u.File, nil, want)...)
	}

	return outputCheckResult(formatter, result)
}

// compareUnit compares generated statements with snapshot statements
// position by position.
func compareUnit(library, file string, got, want []ir.Stmt) []Mismatch {
	var out []Mismatch
	for i := 0; i < max(len(got), len(want)); i++ {
		m := Mismatch{Library: library, File: file, Index: i}
		switch {
		case i >= len(want):
			m.Symbol = got[i].Symbol()
			m.Detail = fmt.Sprintf("%s %s is not in the snapshot", got[i].StmtKind(), got[i].Symbol())
		case i >= len(got):
			m.Symbol = want[i].Symbol()
			m.Detail = fmt.Sprintf("%s %s is no longer generated", want[i].StmtKind(), want[i].Symbol())
		default:
			err := ir.Compare(got[i], want[i])
			if err == nil {
				continue
			}
			m.Symbol = got[i].Symbol()
			var mismatch *ir.MismatchError
			if errors.As(err, &mismatch) {
				m.Detail = mismatch.Error()
			} else {
				m.Detail = err.Error()
			}
		}
		out = append(out, m)
	}
	return out
}

func outputCheckResult(f *OutputFormatter, result CheckResult) error {
	if len(result.Mismatches) == 0 {
		if f.Format == "json" {
			return f.Success(result)
		}
		fmt.Fprintf(f.Writer, "✓ %d statement(s) in %d unit(s) match snapshot %s\n",
			result.Statements, result.Units, result.RunID)
		return nil
	}

	message := fmt.Sprintf("%d statement(s) differ from snapshot %s", len(result.Mismatches), result.RunID)
	if err := f.Failure(ErrCodeMismatch, message, result); err != nil {
		return err
	}
	if f.Format != "json" {
		fmt.Fprintln(f.Writer)
		for _, m := range result.Mismatches {
			fmt.Fprintf(f.Writer, "%s/%s #%d %s\n%s\n\n", m.Library, m.File, m.Index, m.Symbol, m.Detail)
		}
	}

	return NewExitError(ExitFailure, message)
}
