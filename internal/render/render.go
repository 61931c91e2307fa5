package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KaramelBytes/edustats-cli/internal/analysis"
)

// ErrUnavailable is returned when no renderer is registered under a name.
var ErrUnavailable = errors.New("heatmap renderer unavailable")

// Renderer names.
const (
	NamePlot = "plot"
	NameNone = "none"
)

// DefaultTitle is drawn above the heatmap.
const DefaultTitle = "Matriz de Correlación - Rendimiento Estudiantil"

// Renderer draws a correlation matrix as an image file.
type Renderer interface {
	RenderHeatmap(m *analysis.CorrMatrix, path string) error
}

// Options carries the knobs shared by renderers.
type Options struct {
	DPI      int
	WidthIn  float64
	HeightIn float64
	Title    string
}

// DefaultOptions returns a 10x8 inch figure at 100 DPI.
func DefaultOptions() Options {
	return Options{DPI: 100, WidthIn: 10, HeightIn: 8, Title: DefaultTitle}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.WidthIn <= 0 {
		o.WidthIn = d.WidthIn
	}
	if o.HeightIn <= 0 {
		o.HeightIn = d.HeightIn
	}
	if o.Title == "" {
		o.Title = d.Title
	}
	return o
}

// Factory builds a Renderer from Options.
type Factory func(Options) Renderer

var registry = map[string]Factory{}

// Register registers a renderer name with its factory.
func Register(name string, f Factory) { registry[name] = f }

// Get creates the named Renderer if registered.
func Get(name string, opts Options) (Renderer, bool) {
	if f, ok := registry[name]; ok {
		return f(opts.withDefaults()), true
	}
	return nil, false
}

// Resolve is Get with an error wrapping ErrUnavailable for unknown names.
func Resolve(name string, opts Options) (Renderer, error) {
	if r, ok := Get(name, opts); ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnavailable, name)
}

// Names lists registered renderers, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// init registers built-in renderers. "none" is deliberately absent.
func init() {
	Register(NamePlot, func(o Options) Renderer { return NewHeatmap(o) })
}
