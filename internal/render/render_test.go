package render

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/edustats-cli/internal/analysis"
	"github.com/KaramelBytes/edustats-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sampleMatrix(t *testing.T) *analysis.CorrMatrix {
	t.Helper()
	tbl, err := dataset.Generate(dataset.Params{Seed: 7, Size: 60})
	require.NoError(t, err)
	return analysis.Correlate(tbl, dataset.InterestVariables())
}

func TestRegistry(t *testing.T) {
	r, ok := Get(NamePlot, Options{})
	require.True(t, ok)
	h, isHeatmap := r.(*Heatmap)
	require.True(t, isHeatmap)
	assert.Equal(t, DefaultOptions(), h.opts)

	_, ok = Get(NameNone, DefaultOptions())
	assert.False(t, ok, "none must not resolve to a renderer")

	_, err := Resolve("matplotlib", DefaultOptions())
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, Names(), NamePlot)
	assert.NotContains(t, Names(), NameNone)
}

func TestHeatmapWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matriz.png")
	h := NewHeatmap(Options{DPI: 50, WidthIn: 6, HeightIn: 5})

	require.NoError(t, h.RenderHeatmap(sampleMatrix(t), path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic), "not a PNG")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")
}

func TestHeatmapNaNCells(t *testing.T) {
	m := &analysis.CorrMatrix{
		Columns: []string{"a", "b"},
		Values:  [][]float64{{1, math.NaN()}, {math.NaN(), math.NaN()}},
	}
	path := filepath.Join(t.TempDir(), "nan.png")
	require.NoError(t, NewHeatmap(Options{DPI: 40}).RenderHeatmap(m, path))

	g := corrGrid{m: m}
	assert.Equal(t, "", g.label(1, 1))
	// bottom row of the grid is the last matrix row
	assert.Equal(t, "1.00", g.label(0, 1))
}

func TestHeatmapEmptyMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := NewHeatmap(DefaultOptions()).RenderHeatmap(&analysis.CorrMatrix{}, path)
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestHeatmapBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.png")
	err := NewHeatmap(Options{DPI: 30, WidthIn: 3, HeightIn: 3}).RenderHeatmap(sampleMatrix(t), path)
	assert.Error(t, err)
}
