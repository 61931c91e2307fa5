package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/edustats-cli/internal/dataset"
)

// Options controls the correlation report.
type Options struct {
	// Target is the variable ranked against every other numeric column.
	Target string
	// TopK limits the global strongest-pairs list.
	TopK int
	// Thresholds labels coefficients as strong/moderate/weak.
	Thresholds Thresholds
	// MatrixThreshold blanks matrix cells with |r| at or below it.
	MatrixThreshold float64
	// Groups are analyzed independently; nil means DefaultGroups.
	Groups []Group
}

// DefaultOptions returns the fixed report parameters.
func DefaultOptions() Options {
	return Options{
		Target:          dataset.VarGradeAverage.String(),
		TopK:            10,
		Thresholds:      DefaultThresholds(),
		MatrixThreshold: 0.3,
	}
}

// Report is the full correlation analysis of one table.
type Report struct {
	// Name labels a loaded file; empty for a generated sample.
	Name        string
	RunID       string
	Rows        int
	NumericVars int
	Target      string
	Ranking     []TargetEntry
	Matrix      *CorrMatrix
	Strong      *CorrMatrix
	TopK        int
	TopPairs    []PairCorr
	Groups      []GroupResult
}

// Analyze builds every view of the report from the table.
func Analyze(t *dataset.Table, opt Options) (*Report, error) {
	if t == nil || t.Len() == 0 {
		return nil, errors.New("analyze: empty table")
	}
	if opt.TopK <= 0 {
		return nil, fmt.Errorf("analyze: top-k must be positive, got %d", opt.TopK)
	}
	groups := opt.Groups
	if groups == nil {
		groups = DefaultGroups()
	}

	numeric := dataset.NumericVariables()
	all := Correlate(t, numeric)
	ranking, err := TargetRanking(all, opt.Target, opt.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	matrix := Correlate(t, dataset.InterestVariables())

	return &Report{
		Rows:        t.Len(),
		NumericVars: len(numeric),
		Target:      opt.Target,
		Ranking:     ranking,
		Matrix:      matrix,
		Strong:      Thresholded(matrix, opt.MatrixThreshold),
		TopK:        opt.TopK,
		TopPairs:    TopPairs(matrix, opt.TopK),
		Groups:      AnalyzeGroups(t, groups),
	}, nil
}

func targetTitle(target string) string {
	if target == dataset.VarGradeAverage.String() {
		return "PROMEDIO DE CALIFICACIONES"
	}
	return strings.ToUpper(strings.ReplaceAll(target, "_", " "))
}

func section(b *strings.Builder, title string, rule int, mode Mode) {
	if mode == Markdown {
		b.WriteString("\n## " + title + "\n\n")
		return
	}
	b.WriteString("\n" + title + "\n")
	b.WriteString(strings.Repeat("=", rule) + "\n")
}

// Render writes the report in the given mode.
func (r *Report) Render(mode Mode) string {
	if mode == Markdown {
		return r.Markdown()
	}
	return r.Text()
}

// Text renders the console report.
func (r *Report) Text() string {
	var b strings.Builder
	r.writeHeader(&b, Text)

	section(&b, "CORRELACIONES CON "+targetTitle(r.Target), 50, Text)
	for _, e := range r.Ranking {
		b.WriteString(fmt.Sprintf("%-25s | %+.3f | %s %s\n", e.Variable, e.R, e.Strength, e.Direction))
	}

	section(&b, "MATRIZ DE CORRELACIÓN", 25, Text)
	b.WriteString(MatrixTable(r.Strong, Text) + "\n")

	section(&b, fmt.Sprintf("TOP %d CORRELACIONES MÁS FUERTES", r.TopK), 35, Text)
	for _, p := range r.TopPairs {
		a, c := orderedNames(p)
		b.WriteString(fmt.Sprintf("%-20s ↔ %-20s | %+.3f\n", a, c, p.R))
	}

	section(&b, "ANÁLISIS DE GRUPOS CORRELACIONADOS", 40, Text)
	r.writeGroups(&b, Text)
	return b.String()
}

// Markdown renders a document suitable for saving next to the heatmap.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Análisis de correlaciones: rendimiento estudiantil\n\n")
	if r.RunID != "" {
		b.WriteString(fmt.Sprintf("Ejecución: `%s`\n\n", r.RunID))
	}
	r.writeHeader(&b, Markdown)

	section(&b, "CORRELACIONES CON "+targetTitle(r.Target), 0, Markdown)
	b.WriteString(rankingTable(r.Ranking) + "\n")

	section(&b, "MATRIZ DE CORRELACIÓN", 0, Markdown)
	b.WriteString(MatrixTable(r.Strong, Markdown) + "\n")

	section(&b, fmt.Sprintf("TOP %d CORRELACIONES MÁS FUERTES", r.TopK), 0, Markdown)
	b.WriteString(pairsTable(r.TopPairs) + "\n")

	section(&b, "ANÁLISIS DE GRUPOS CORRELACIONADOS", 0, Markdown)
	r.writeGroups(&b, Markdown)
	return b.String()
}

func (r *Report) writeHeader(b *strings.Builder, mode Mode) {
	sep := "\n"
	if mode == Markdown {
		sep = "  \n"
	}
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("Dataset cargado desde %s: %d estudiantes%s", r.Name, r.Rows, sep))
	} else {
		b.WriteString(fmt.Sprintf("Dataset creado: %d estudiantes%s", r.Rows, sep))
	}
	b.WriteString(fmt.Sprintf("Variables numéricas: %d\n", r.NumericVars))
}

func (r *Report) writeGroups(b *strings.Builder, mode Mode) {
	for i, g := range r.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		if mode == Markdown {
			b.WriteString("### " + g.Name + "\n\n")
		} else {
			b.WriteString(g.Name + ":\n")
		}
		if g.Empty() {
			b.WriteString("(sin variables)\n")
			continue
		}
		b.WriteString(MatrixTable(g.Corr, mode) + "\n")
	}
}
