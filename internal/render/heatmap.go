package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/edustats-cli/internal/analysis"
	"github.com/KaramelBytes/edustats-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const paletteSize = 255

var nanColor = color.Gray{Y: 0xd0}

// Heatmap renders an annotated correlation heatmap as PNG using gonum/plot.
type Heatmap struct {
	opts Options
}

// NewHeatmap returns a gonum/plot renderer.
func NewHeatmap(opts Options) *Heatmap { return &Heatmap{opts: opts.withDefaults()} }

// corrGrid adapts a CorrMatrix to plotter.GridXYZ. Row 0 of the matrix is
// drawn at the top, as in a printed table.
type corrGrid struct {
	m *analysis.CorrMatrix
}

func (g corrGrid) Dims() (c, r int) { return g.m.Len(), g.m.Len() }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[g.m.Len()-1-r][c] }
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

func (g corrGrid) label(c, r int) string {
	z := g.Z(c, r)
	if math.IsNaN(z) {
		return ""
	}
	return fmt.Sprintf("%.2f", z)
}

// RenderHeatmap writes m to path. A diverging palette is pinned to [-1,1] so 0 is the midpoint.
func (h *Heatmap) RenderHeatmap(m *analysis.CorrMatrix, path string) error {
	if m == nil || m.Len() == 0 {
		return fmt.Errorf("render heatmap: empty matrix")
	}
	o := h.opts.withDefaults()
	grid := corrGrid{m: m}
	n := m.Len()

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	hm := plotter.NewHeatMap(grid, cmap.Palette(paletteSize))
	hm.Min, hm.Max = -1, 1
	hm.NaN = nanColor

	xys := make(plotter.XYs, 0, n*n)
	labels := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			labels = append(labels, grid.label(c, r))
		}
	}
	annot, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("render heatmap: labels: %w", err)
	}
	for i := range annot.TextStyle {
		annot.TextStyle[i].XAlign = text.XCenter
		annot.TextStyle[i].YAlign = text.YCenter
		annot.TextStyle[i].Font.Size = vg.Points(8)
	}

	p := plot.New()
	p.Title.Text = o.Title
	p.Add(hm, annot)
	p.NominalX(m.Columns...)
	rev := make([]string, n)
	for i, c := range m.Columns {
		rev[n-1-i] = c
	}
	p.NominalY(rev...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})

	w := vg.Length(o.WidthIn) * vg.Inch
	ht := vg.Length(o.HeightIn) * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(w, ht), vgimg.UseDPI(o.DPI))
	dc := draw.New(img)
	barW := 0.9 * vg.Inch
	p.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	bar.Draw(draw.Crop(dc, w-barW+0.2*vg.Inch, 0, 0.9*vg.Inch, -0.5*vg.Inch))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return fmt.Errorf("render heatmap: encode png: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	return nil
}
