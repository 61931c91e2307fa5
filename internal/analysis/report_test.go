package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/edustats-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsMatchFullMatrix(t *testing.T) {
	tbl := defaultTable(t)
	full := Correlate(tbl, dataset.NumericVariables())

	for _, g := range AnalyzeGroups(tbl, DefaultGroups()) {
		names := g.Corr.Columns
		want, err := full.Slice(names...)
		require.NoError(t, err, g.Name)
		for i := range names {
			for j := range names {
				assert.InDelta(t, want.Values[i][j], g.Corr.Values[i][j], 1e-9,
					"%s: r(%s,%s)", g.Name, names[i], names[j])
			}
		}
	}
}

func TestDefaultGroups(t *testing.T) {
	groups := DefaultGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, "Variables académicas", groups[0].Name)
	assert.Equal(t, []dataset.Variable{
		dataset.VarStudyHours, dataset.VarAttendance, dataset.VarGradeAverage,
	}, groups[0].Vars)
	assert.Contains(t, groups[2].Vars, dataset.VarTierCode)
}

func TestEmptyGroup(t *testing.T) {
	res := AnalyzeGroups(defaultTable(t), []Group{{Name: "vacío"}})
	require.Len(t, res, 1)
	assert.True(t, res[0].Empty())
}

func TestAnalyzeDefault(t *testing.T) {
	tbl := defaultTable(t)
	rep, err := Analyze(tbl, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 500, rep.Rows)
	assert.Equal(t, 10, rep.NumericVars)
	assert.Len(t, rep.Ranking, 9)
	assert.Len(t, rep.TopPairs, 10)
	assert.Len(t, rep.Groups, 3)
	assert.Equal(t, 9, rep.Matrix.Len())
	_, hasID := rep.Matrix.Index(dataset.VarID.String())
	assert.False(t, hasID, "matrix of interest excludes the id column")

	out := rep.Text()
	for _, want := range []string{
		"Dataset creado: 500 estudiantes",
		"Variables numéricas: 10",
		"CORRELACIONES CON PROMEDIO DE CALIFICACIONES\n" + strings.Repeat("=", 50),
		"MATRIZ DE CORRELACIÓN\n" + strings.Repeat("=", 25),
		"TOP 10 CORRELACIONES MÁS FUERTES\n" + strings.Repeat("=", 35),
		"ANÁLISIS DE GRUPOS CORRELACIONADOS\n" + strings.Repeat("=", 40),
		"Variables académicas:",
		"Variables de bienestar:",
		"Variables socioeconómicas:",
		" ↔ ",
		"NaN",
	} {
		assert.Contains(t, out, want)
	}
	// sections appear in order
	assert.Less(t, strings.Index(out, "CORRELACIONES CON"), strings.Index(out, "MATRIZ DE"))
	assert.Less(t, strings.Index(out, "MATRIZ DE"), strings.Index(out, "TOP 10"))
	assert.Less(t, strings.Index(out, "TOP 10"), strings.Index(out, "ANÁLISIS DE GRUPOS"))

	first := rep.Ranking[0]
	line := first.Variable + strings.Repeat(" ", 25-len(first.Variable)) + " | "
	assert.Contains(t, out, line)
}

func TestAnalyzeMarkdown(t *testing.T) {
	rep, err := Analyze(defaultTable(t), DefaultOptions())
	require.NoError(t, err)
	rep.Name = "muestra.csv"
	rep.RunID = "run-1"

	md := rep.Render(Markdown)
	assert.True(t, strings.HasPrefix(md, "# Análisis de correlaciones"))
	assert.Contains(t, md, "Ejecución: `run-1`")
	assert.Contains(t, md, "Dataset cargado desde muestra.csv: 500 estudiantes")
	assert.Contains(t, md, "## TOP 10 CORRELACIONES MÁS FUERTES")
	assert.Contains(t, md, "| Variable A | Variable B |")
	assert.Contains(t, md, "### Variables académicas")
}

func TestAnalyzeErrors(t *testing.T) {
	tbl := defaultTable(t)

	opt := DefaultOptions()
	opt.Target = "altura"
	_, err := Analyze(tbl, opt)
	assert.True(t, errors.Is(err, ErrUnknownVariable), "err = %v", err)

	opt = DefaultOptions()
	opt.TopK = 0
	_, err = Analyze(tbl, opt)
	assert.Error(t, err)

	_, err = Analyze(dataset.NewTable(nil), DefaultOptions())
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Text, "text": Text, "MD": Markdown, "markdown": Markdown} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("html")
	assert.Error(t, err)
}
