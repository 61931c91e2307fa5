package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/edustats-cli/internal/config"
	"github.com/KaramelBytes/edustats-cli/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger; writes to stderr only.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "edustats",
	Short: "edustats: correlation report over a synthetic student-performance sample",
	Long: `edustats generates a reproducible synthetic dataset of student performance,
computes the Pearson correlation matrix across its numeric variables and prints a
ranking against the grade average, the strongest pairs, and per-group matrices.
The full matrix is optionally rendered as a heatmap image.

Running edustats without a subcommand is the same as "edustats report".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, &reportOpts)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edustats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
}

func loadConfig() {
	if l, err := logging.New(debug); err == nil {
		logger = l
	} else {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to build logger: %v\n", err)
	}

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
	logger.Debug("config loaded", zap.String("file", cfgFile), zap.Uint64("seed", cfg.Seed), zap.Int("rows", cfg.Rows))
}

// effectiveConfig returns a copy of the loaded config so command flags never leak into it.
func effectiveConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	c := *cfg
	return &c
}
