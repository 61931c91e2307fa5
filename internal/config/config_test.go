package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, 500, c.Rows)
	assert.Equal(t, "promedio_calificaciones", c.Target)
	assert.Equal(t, 10, c.TopK)
	assert.Equal(t, 0.6, c.StrongThreshold)
	assert.Equal(t, 0.3, c.ModerateThreshold)
	assert.Equal(t, "plot", c.Renderer)
	assert.Equal(t, "matriz_correlacion_estudiantil.png", c.HeatmapPath)
	assert.Equal(t, 100, c.HeatmapDPI)
	assert.NoError(t, c.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 120\ntop_k: 5\nrenderer: none\n"), 0o644))
	t.Setenv("EDUSTATS_TOP_K", "7")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, c.Rows)
	assert.Equal(t, 7, c.TopK, "env overrides file")
	assert.Equal(t, "none", c.Renderer)
	assert.Equal(t, uint64(42), c.Seed)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := Default()
	require.NoError(t, c.Set("seed", "7"))
	require.NoError(t, c.Set("output_format", "md"))
	require.NoError(t, c.Set("heatmap_width_in", "12.5"))
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, "markdown", got.OutputFormat)
}

func TestSaveDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Save(Default(), ""))
	_, err := os.Stat(filepath.Join(home, ".edustats", "config.yaml"))
	assert.NoError(t, err)
}

func TestSetAndGet(t *testing.T) {
	c := Default()
	for _, k := range Keys {
		_, err := c.Get(k)
		assert.NoError(t, err, k)
	}

	tests := []struct {
		key, val string
		wantErr  bool
	}{
		{"rows", "250", false},
		{"rows", "0", true},
		{"top_k", "abc", true},
		{"strong_threshold", "0.7", false},
		{"matrix_threshold", "-1", true},
		{"output_format", "html", true},
		{"renderer", "NONE", false},
		{"colour", "red", true},
	}
	for _, tt := range tests {
		err := c.Set(tt.key, tt.val)
		if tt.wantErr {
			assert.Error(t, err, "%s=%s", tt.key, tt.val)
		} else {
			assert.NoError(t, err, "%s=%s", tt.key, tt.val)
		}
	}
	got, _ := c.Get("rows")
	assert.Equal(t, "250", got)
	got, _ = c.Get("renderer")
	assert.Equal(t, "none", got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Global)
	}{
		{"rows", func(c *Global) { c.Rows = 0 }},
		{"top_k", func(c *Global) { c.TopK = -1 }},
		{"thresholds inverted", func(c *Global) { c.ModerateThreshold = 0.8 }},
		{"matrix threshold", func(c *Global) { c.MatrixThreshold = 1 }},
		{"dpi", func(c *Global) { c.HeatmapDPI = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
