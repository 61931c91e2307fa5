package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/edustats-cli/internal/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeOpts reportFlags

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Run the correlation report over a student CSV exported by 'generate'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := effectiveConfig()
		analyzeOpts.apply(cmd.Flags(), c)
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		tbl, err := dataset.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("dataset loaded", zap.String("path", path), zap.Int("rows", tbl.Len()))
		return runPipeline(cmd.OutOrStdout(), cmd.ErrOrStderr(), tbl, filepath.Base(path), c, analyzeOpts.output)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeOpts.bind(analyzeCmd.Flags(), false)
}
