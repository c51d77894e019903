package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"makedoc2rst/config"
	"makedoc2rst/internal/adapter/logging"
	"makedoc2rst/internal/adapter/rst"
	"makedoc2rst/internal/domain"
	"makedoc2rst/internal/port"
	"makedoc2rst/internal/usecase"
)

var (
	cfgFile  string
	cfg      *config.Config
	rootDir  string
	logLevel string
	logger   port.Logger
)

var rootCmd = &cobra.Command{
	Use:   "makedoc2rst",
	Short: "Convert newlib makedoc comments to reStructuredText",
	Long: `makedoc2rst reads the makedoc documentation block at the top of a C source
file and renders it as reStructuredText suitable for Sphinx.

Example usage:
  makedoc2rst convert -s abs.c -d abs.rst   # Convert one file
  makedoc2rst batch ./newlib/libc -o rst    # Convert a source tree
  makedoc2rst records abs.c                 # Show the parsed records`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger, err = logging.NewLogger(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}, "makedoc2rst")
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./makedoc.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// commandTable returns the default table extended with the configured
// commands.
func commandTable(c *config.Config) (*rst.CommandTable, error) {
	table, err := rst.DefaultTable().Extend(c.Commands)
	if err != nil {
		return nil, fmt.Errorf("invalid command table: %w", err)
	}
	return table, nil
}

// newConverter wires a convert use case for profile, reporting diagnostics
// through the CLI logger.
func newConverter(c *config.Config, profile domain.Profile) (*usecase.ConvertUseCase, error) {
	table, err := commandTable(c)
	if err != nil {
		return nil, err
	}
	return usecase.NewConvertUseCase(
		rst.NewRenderer(table),
		logging.NewDiagnosticSink(logger),
		profile,
		usecase.WithAttribution(c.Convert.Attribution),
	), nil
}
