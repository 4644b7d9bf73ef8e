package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/headergen/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                      `json:"valid"`
	Symbols int                       `json:"symbols"`
	Errors  []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateConfigCommand creates the validate-config command.
func NewValidateConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-config <file>...",
		Short: "Validate translation configs without generating",
		Long: `Load translation configs (TOML, CUE or YAML), merge them in order and
check the result for contradictory or useless entries.

Load failures exit with code 2; validation findings exit with code 1.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidateConfig(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.Load(paths...)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d configured symbol(s) from %d file(s)", cfg.Symbols(), len(paths))

	if errs := config.Validate(cfg); len(errs) > 0 {
		return outputValidationErrors(formatter, cfg, errs)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Symbols: cfg.Symbols()})
	}
	fmt.Fprintln(formatter.Writer, "✓ All configs valid")
	return nil
}

// outputValidationErrors outputs validation findings.
// Validation failures are exit code 1.
func outputValidationErrors(f *OutputFormatter, cfg *config.Config, errs []config.ValidationError) error {
	message := fmt.Sprintf("validation failed with %d error(s)", len(errs))

	if f.Format == "json" {
		result := ValidationResult{Valid: false, Symbols: cfg.Symbols(), Errors: errs}
		if err := f.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}

	fmt.Fprintln(f.Writer, "✗ Validation failed")
	fmt.Fprintln(f.Writer)
	for _, err := range errs {
		fmt.Fprintf(f.Writer, "%s\n  %s: %s\n\n", err.Field, err.Code, err.Message)
	}

	return NewExitError(ExitFailure, message)
}
