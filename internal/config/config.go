package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Dataset
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
	Rows int    `mapstructure:"rows" yaml:"rows"`

	// Analysis
	Target            string  `mapstructure:"target" yaml:"target"`
	TopK              int     `mapstructure:"top_k" yaml:"top_k"`
	StrongThreshold   float64 `mapstructure:"strong_threshold" yaml:"strong_threshold"`
	ModerateThreshold float64 `mapstructure:"moderate_threshold" yaml:"moderate_threshold"`
	MatrixThreshold   float64 `mapstructure:"matrix_threshold" yaml:"matrix_threshold"`
	OutputFormat      string  `mapstructure:"output_format" yaml:"output_format"`

	// Heatmap
	Renderer        string  `mapstructure:"renderer" yaml:"renderer"`
	HeatmapPath     string  `mapstructure:"heatmap_path" yaml:"heatmap_path"`
	HeatmapDPI      int     `mapstructure:"heatmap_dpi" yaml:"heatmap_dpi"`
	HeatmapWidthIn  float64 `mapstructure:"heatmap_width_in" yaml:"heatmap_width_in"`
	HeatmapHeightIn float64 `mapstructure:"heatmap_height_in" yaml:"heatmap_height_in"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"seed", "rows", "target", "top_k", "strong_threshold", "moderate_threshold",
	"matrix_threshold", "output_format", "renderer", "heatmap_path", "heatmap_dpi",
	"heatmap_width_in", "heatmap_height_in",
}

const dirName = ".edustats"

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 42)
	v.SetDefault("rows", 500)
	v.SetDefault("target", "promedio_calificaciones")
	v.SetDefault("top_k", 10)
	v.SetDefault("strong_threshold", 0.6)
	v.SetDefault("moderate_threshold", 0.3)
	v.SetDefault("matrix_threshold", 0.3)
	v.SetDefault("output_format", "text")
	// Heatmap defaults
	v.SetDefault("renderer", "plot")
	v.SetDefault("heatmap_path", "matriz_correlacion_estudiantil.png")
	v.SetDefault("heatmap_dpi", 100)
	v.SetDefault("heatmap_width_in", 10.0)
	v.SetDefault("heatmap_height_in", 8.0)
}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edustats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, dirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDUSTATS")
	v.AutomaticEnv()
	setDefaults(v)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Global) Validate() error {
	switch {
	case c.Rows <= 0:
		return fmt.Errorf("rows must be positive, got %d", c.Rows)
	case c.TopK <= 0:
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	case c.ModerateThreshold < 0 || c.StrongThreshold > 1 || c.ModerateThreshold > c.StrongThreshold:
		return fmt.Errorf("thresholds must satisfy 0 <= moderate (%.2f) <= strong (%.2f) <= 1",
			c.ModerateThreshold, c.StrongThreshold)
	case c.MatrixThreshold < 0 || c.MatrixThreshold >= 1:
		return fmt.Errorf("matrix_threshold must be in [0,1), got %.2f", c.MatrixThreshold)
	case c.HeatmapDPI <= 0:
		return fmt.Errorf("heatmap_dpi must be positive, got %d", c.HeatmapDPI)
	}
	return nil
}

// Set parses val for key and assigns it.
func (c *Global) Set(key, val string) error {
	switch key {
	case "seed":
		u, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid uint for seed: %w", err)
		}
		c.Seed = u
	case "rows", "top_k", "heatmap_dpi":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		switch key {
		case "rows":
			c.Rows = i
		case "top_k":
			c.TopK = i
		default:
			c.HeatmapDPI = i
		}
	case "strong_threshold", "moderate_threshold", "matrix_threshold", "heatmap_width_in", "heatmap_height_in":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		switch key {
		case "strong_threshold":
			c.StrongThreshold = f
		case "moderate_threshold":
			c.ModerateThreshold = f
		case "matrix_threshold":
			c.MatrixThreshold = f
		case "heatmap_width_in":
			c.HeatmapWidthIn = f
		default:
			c.HeatmapHeightIn = f
		}
	case "target":
		c.Target = val
	case "output_format":
		switch strings.ToLower(val) {
		case "text", "txt":
			c.OutputFormat = "text"
		case "markdown", "md":
			c.OutputFormat = "markdown"
		default:
			return fmt.Errorf("invalid output_format: %s (use text or markdown)", val)
		}
	case "renderer":
		c.Renderer = strings.ToLower(val)
	case "heatmap_path":
		c.HeatmapPath = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the printable value of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "seed":
		return strconv.FormatUint(c.Seed, 10), nil
	case "rows":
		return strconv.Itoa(c.Rows), nil
	case "target":
		return c.Target, nil
	case "top_k":
		return strconv.Itoa(c.TopK), nil
	case "strong_threshold":
		return fmt.Sprintf("%.3f", c.StrongThreshold), nil
	case "moderate_threshold":
		return fmt.Sprintf("%.3f", c.ModerateThreshold), nil
	case "matrix_threshold":
		return fmt.Sprintf("%.3f", c.MatrixThreshold), nil
	case "output_format":
		return c.OutputFormat, nil
	case "renderer":
		return c.Renderer, nil
	case "heatmap_path":
		return c.HeatmapPath, nil
	case "heatmap_dpi":
		return strconv.Itoa(c.HeatmapDPI), nil
	case "heatmap_width_in":
		return strconv.FormatFloat(c.HeatmapWidthIn, 'g', -1, 64), nil
	case "heatmap_height_in":
		return strconv.FormatFloat(c.HeatmapHeightIn, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
