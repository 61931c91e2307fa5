package analysis

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls how report tables are rendered.
type Mode int

const (
	Text     Mode = iota // fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// ParseMode maps "text" or "markdown" (also "md") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return Text, fmt.Errorf("unsupported output format: %s (use text|markdown)", s)
	}
}

func (m Mode) String() string {
	if m == Markdown {
		return "markdown"
	}
	return "text"
}

func newWriter(mode Mode) table.Writer {
	w := table.NewWriter()
	if mode == Text {
		w.SetStyle(table.StyleLight)
		w.Style().Format.Header = text.FormatDefault
	}
	return w
}

func render(w table.Writer, mode Mode) string {
	if mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// rightAlign right-aligns columns from..to (1-based, inclusive).
func rightAlign(w table.Writer, from, to int) {
	cfgs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	w.SetColumnConfigs(cfgs)
}

// formatR prints a coefficient with three decimals; NaN stays "NaN".
func formatR(r float64) string { return fmt.Sprintf("%.3f", r) }

// MatrixTable renders m as a square table rounded to three decimals.
func MatrixTable(m *CorrMatrix, mode Mode) string {
	w := newWriter(mode)
	header := table.Row{""}
	for _, c := range m.Columns {
		header = append(header, c)
	}
	w.AppendHeader(header)
	for i, name := range m.Columns {
		row := table.Row{name}
		for _, r := range m.Values[i] {
			row = append(row, formatR(r))
		}
		w.AppendRow(row)
	}
	rightAlign(w, 2, m.Len()+1)
	return render(w, mode)
}

func rankingTable(entries []TargetEntry) string {
	w := newWriter(Markdown)
	w.AppendHeader(table.Row{"Variable", "r", "Intensidad"})
	for _, e := range entries {
		w.AppendRow(table.Row{e.Variable, fmt.Sprintf("%+.3f", e.R), e.Strength + " " + e.Direction})
	}
	rightAlign(w, 2, 2)
	return render(w, Markdown)
}

func pairsTable(pairs []PairCorr) string {
	w := newWriter(Markdown)
	w.AppendHeader(table.Row{"Variable A", "Variable B", "r"})
	for _, p := range pairs {
		a, b := orderedNames(p)
		w.AppendRow(table.Row{a, b, fmt.Sprintf("%+.3f", p.R)})
	}
	rightAlign(w, 3, 3)
	return render(w, Markdown)
}

// orderedNames returns the pair's names in lexical order.
func orderedNames(p PairCorr) (string, string) {
	if p.B < p.A {
		return p.B, p.A
	}
	return p.A, p.B
}
