package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/edustats-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/edustats-cli/internal/config"
	"github.com/KaramelBytes/edustats-cli/internal/dataset"
	"github.com/KaramelBytes/edustats-cli/internal/logging"
	"github.com/KaramelBytes/edustats-cli/internal/render"
	"github.com/KaramelBytes/edustats-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// reportFlags are the overrides shared by report and analyze.
type reportFlags struct {
	seed     uint64
	rows     int
	topK     int
	target   string
	format   string
	output   string
	renderer string
	heatmap  string
}

var reportOpts reportFlags

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the synthetic sample and print the correlation report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, &reportOpts)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportOpts.bind(reportCmd.Flags(), true)
}

func (o *reportFlags) bind(fs *pflag.FlagSet, withDataset bool) {
	if withDataset {
		fs.Uint64Var(&o.seed, "seed", 0, "random seed (overrides config)")
		fs.IntVar(&o.rows, "rows", 0, "number of students to generate (overrides config)")
	}
	fs.IntVar(&o.topK, "top-k", 0, "number of strongest pairs to list (overrides config)")
	fs.StringVar(&o.target, "target", "", "variable ranked against all others (overrides config)")
	fs.StringVar(&o.format, "format", "", "console format: text|markdown (overrides config)")
	fs.StringVarP(&o.output, "output", "o", "", "optional path to also write the report (Markdown)")
	fs.StringVar(&o.renderer, "renderer", "", "heatmap renderer: plot|none (overrides config)")
	fs.StringVar(&o.heatmap, "heatmap", "", "heatmap image path (overrides config)")
}

// apply copies explicitly set flags over c.
func (o *reportFlags) apply(fs *pflag.FlagSet, c *cfgpkg.Global) {
	if fs.Changed("seed") {
		c.Seed = o.seed
	}
	if fs.Changed("rows") {
		c.Rows = o.rows
	}
	if fs.Changed("top-k") {
		c.TopK = o.topK
	}
	if fs.Changed("target") {
		c.Target = o.target
	}
	if fs.Changed("format") {
		c.OutputFormat = o.format
	}
	if fs.Changed("renderer") {
		c.Renderer = o.renderer
	}
	if fs.Changed("heatmap") {
		c.HeatmapPath = o.heatmap
	}
}

func runReport(cmd *cobra.Command, o *reportFlags) error {
	c := effectiveConfig()
	o.apply(cmd.Flags(), c)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tbl, err := dataset.Generate(dataset.Params{Seed: c.Seed, Size: c.Rows})
	if err != nil {
		return err
	}
	logger.Debug("dataset generated", zap.Uint64("seed", c.Seed), zap.Int("rows", tbl.Len()))
	return runPipeline(cmd.OutOrStdout(), cmd.ErrOrStderr(), tbl, "", c, o.output)
}

// analysisOptions maps configuration onto the report parameters.
func analysisOptions(c *cfgpkg.Global) analysis.Options {
	opt := analysis.DefaultOptions()
	opt.Target = c.Target
	opt.TopK = c.TopK
	opt.Thresholds = analysis.Thresholds{Strong: c.StrongThreshold, Moderate: c.ModerateThreshold}
	opt.MatrixThreshold = c.MatrixThreshold
	return opt
}

// runPipeline analyzes tbl, prints the report, writes the optional Markdown copy
// and renders the heatmap.
func runPipeline(out, errOut io.Writer, tbl *dataset.Table, name string, c *cfgpkg.Global, outputPath string) error {
	mode, err := analysis.ParseMode(c.OutputFormat)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log := logging.WithRun(logger, runID)

	rep, err := analysis.Analyze(tbl, analysisOptions(c))
	if err != nil {
		return err
	}
	rep.Name = name
	rep.RunID = runID
	log.Debug("correlations computed",
		zap.Int("variables", rep.Matrix.Len()),
		zap.Int("pairs", len(rep.TopPairs)),
		zap.String("target", rep.Target))

	fmt.Fprint(out, rep.Render(mode))

	if outputPath != "" {
		if err := utils.EnsureParentDir(outputPath); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(outputPath, []byte(rep.Markdown())); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(out, "\n✓ Informe escrito en %s\n", outputPath)
	}

	renderHeatmap(out, errOut, log, rep.Matrix, c)
	return nil
}

// renderHeatmap is best-effort: a missing renderer or a failed write never aborts the run.
func renderHeatmap(out, errOut io.Writer, log *zap.Logger, m *analysis.CorrMatrix, c *cfgpkg.Global) {
	r, err := render.Resolve(c.Renderer, render.Options{
		DPI:      c.HeatmapDPI,
		WidthIn:  c.HeatmapWidthIn,
		HeightIn: c.HeatmapHeightIn,
	})
	if err != nil {
		log.Info("heatmap skipped", zap.Error(err))
		if c.Renderer != render.NameNone {
			fmt.Fprintf(errOut, "⚠ Warning: unknown renderer %q (available: %s)\n",
				c.Renderer, strings.Join(render.Names(), ", "))
		}
		fmt.Fprintln(out, "\nRenderizador de gráficos no disponible - omitiendo visualización")
		return
	}
	path := c.HeatmapPath
	err = utils.EnsureParentDir(path)
	if err == nil {
		err = r.RenderHeatmap(m, path)
	}
	if err != nil {
		log.Warn("heatmap render failed", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(errOut, "⚠ Warning: heatmap not written: %v\n", err)
		return
	}
	log.Debug("heatmap written", zap.String("path", path), zap.String("renderer", c.Renderer))
	fmt.Fprintf(out, "\nMapa de calor guardado como '%s'\n", path)
}
