package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/edustats-cli/internal/dataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownVariable is returned when a column name is not part of a matrix.
var ErrUnknownVariable = errors.New("unknown variable")

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

func newCorrMatrix(cols []string) *CorrMatrix {
	vals := make([][]float64, len(cols))
	for i := range vals {
		vals[i] = make([]float64, len(cols))
	}
	return &CorrMatrix{Columns: cols, Values: vals}
}

// Len returns the number of variables in the matrix.
func (m *CorrMatrix) Len() int { return len(m.Columns) }

// Index returns the position of the named column.
func (m *CorrMatrix) Index(name string) (int, bool) {
	for i, c := range m.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// At returns the coefficient between two named columns.
func (m *CorrMatrix) At(a, b string) (float64, error) {
	i, ok := m.Index(a)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, a)
	}
	j, ok := m.Index(b)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, b)
	}
	return m.Values[i][j], nil
}

// Slice extracts the sub-matrix for the named columns, in the given order.
func (m *CorrMatrix) Slice(names ...string) (*CorrMatrix, error) {
	idx := make([]int, len(names))
	for k, n := range names {
		i, ok := m.Index(n)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, n)
		}
		idx[k] = i
	}
	out := newCorrMatrix(append([]string(nil), names...))
	for a, i := range idx {
		for b, j := range idx {
			out.Values[a][b] = m.Values[i][j]
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (m *CorrMatrix) Clone() *CorrMatrix {
	out := newCorrMatrix(append([]string(nil), m.Columns...))
	for i := range m.Values {
		copy(out.Values[i], m.Values[i])
	}
	return out
}

// Pairs lists every unordered pair (i<j) once, in matrix order.
func (m *CorrMatrix) Pairs() []PairCorr {
	n := m.Len()
	pairs := make([]PairCorr, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	return pairs
}

// Correlate computes the sample Pearson correlation matrix of vars over the table.
// A zero-variance column yields NaN in its row and column, diagonal included.
// A Variable that is not Valid is treated the same way.
func Correlate(t *dataset.Table, vars []dataset.Variable) *CorrMatrix {
	cols := make([]string, len(vars))
	for i, v := range vars {
		cols[i] = v.String()
	}
	out := newCorrMatrix(cols)
	n := len(vars)
	if n == 0 {
		return out
	}
	rows := t.Len()
	if rows < 2 {
		for i := range out.Values {
			for j := range out.Values[i] {
				out.Values[i][j] = math.NaN()
			}
		}
		return out
	}

	data := mat.NewDense(rows, n, nil)
	constant := make([]bool, n)
	for j, v := range vars {
		if !v.Valid() {
			constant[j] = true
			continue
		}
		col := t.Column(v)
		data.SetCol(j, col)
		constant[j] = stat.Variance(col, nil) == 0
	}
	var sym mat.SymDense
	stat.CorrelationMatrix(&sym, data, nil)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var r float64
			switch {
			case constant[i] || constant[j]:
				r = math.NaN()
			case i == j:
				r = 1
			default:
				r = clampUnit(sym.At(i, j))
			}
			out.Values[i][j] = r
			out.Values[j][i] = r
		}
	}
	return out
}

// Pearson returns the sample correlation of x and y, NaN if either has zero variance.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}
	return clampUnit(stat.Correlation(x, y, nil))
}

func clampUnit(r float64) float64 {
	if r > 1 {
		return 1
	} else if r < -1 {
		return -1
	}
	return r
}
