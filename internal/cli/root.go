package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/roach88/headergen/internal/config"
	"github.com/roach88/headergen/internal/logger"
)

// EnvPrefix prefixes environment overrides of the global flags,
// e.g. HEADERGEN_FORMAT=json.
const EnvPrefix = "HEADERGEN"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string   // "json" | "text"
	Configs []string // translation config files, merged in order
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the headergen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "headergen",
		Short: "headergen - Objective-C header bindings",
		Long: `Translate dumped Objective-C header declarations into binding source.

Each dump is one translation unit (a library and a header file). Translation
configs (TOML, CUE or YAML) skip symbols and override method details.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = v.GetBool("verbose")
			opts.Format = v.GetString("format")
			opts.Configs = v.GetStringSlice("config")
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", msg)
				return NewExitError(ExitCommandError, msg)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("format", "text", "output format (json|text)")
	flags.StringSlice("config", nil, "translation config file (repeatable)")
	for _, name := range []string{"verbose", "format", "config"} {
		// Flags are registered above, so binding cannot fail.
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewValidateConfigCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// logger builds the diagnostics logger. It writes to stderr so generated
// text and JSON responses on stdout stay clean.
func (o *RootOptions) logger(cmd *cobra.Command) *zap.Logger {
	return logger.New(logger.Options{
		Verbose: o.Verbose,
		JSON:    o.Format == "json",
		Writer:  cmd.ErrOrStderr(),
	})
}

// loadConfig loads the --config files, reporting failures in the
// command's output format.
func (o *RootOptions) loadConfig(f *OutputFormatter) (*config.Config, error) {
	cfg, err := config.Load(o.Configs...)
	if err != nil {
		return nil, outputLoadError(f, err)
	}
	f.VerboseLog("Loaded %d configured symbol(s) from %d file(s)", cfg.Symbols(), len(o.Configs))
	return cfg, nil
}
