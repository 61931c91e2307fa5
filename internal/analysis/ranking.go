package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Strength labels attached to a coefficient.
const (
	StrengthStrong   = "Fuerte"
	StrengthModerate = "Moderada"
	StrengthWeak     = "Débil"

	DirectionPositive = "positiva"
	DirectionNegative = "negativa"
)

// Thresholds classifies |r| into strength labels.
type Thresholds struct {
	Strong   float64
	Moderate float64
}

// DefaultThresholds returns 0.6 (strong) and 0.3 (moderate).
func DefaultThresholds() Thresholds {
	return Thresholds{Strong: 0.6, Moderate: 0.3}
}

// Strength labels r: strong above Strong, moderate above Moderate, weak otherwise.
func (t Thresholds) Strength(r float64) string {
	a := math.Abs(r)
	switch {
	case a > t.Strong:
		return StrengthStrong
	case a > t.Moderate:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Direction is positive for r > 0, negative otherwise.
func Direction(r float64) string {
	if r > 0 {
		return DirectionPositive
	}
	return DirectionNegative
}

// TargetEntry is one row of the target-relative ranking.
type TargetEntry struct {
	Variable  string
	R         float64
	Strength  string
	Direction string
}

// TargetRanking returns every other variable's coefficient with target, sorted by
// raw r descending. NaN coefficients sort last.
func TargetRanking(m *CorrMatrix, target string, th Thresholds) ([]TargetEntry, error) {
	ti, ok := m.Index(target)
	if !ok {
		return nil, fmt.Errorf("target %w: %s", ErrUnknownVariable, target)
	}
	out := make([]TargetEntry, 0, m.Len()-1)
	for j, name := range m.Columns {
		if j == ti {
			continue
		}
		r := m.Values[ti][j]
		out = append(out, TargetEntry{Variable: name, R: r, Strength: th.Strength(r), Direction: Direction(r)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].R, out[j].R
		if math.IsNaN(rj) {
			return !math.IsNaN(ri)
		}
		if math.IsNaN(ri) {
			return false
		}
		return ri > rj
	})
	return out, nil
}

// TopPairs ranks unique unordered pairs by |r| descending and returns the first k.
// Pairs are deduplicated before ranking, so the list is only short when the
// matrix has fewer than k defined pairs. NaN pairs are dropped.
func TopPairs(m *CorrMatrix, k int) []PairCorr {
	if k <= 0 {
		return nil
	}
	var pairs []PairCorr
	for _, p := range m.Pairs() {
		if math.IsNaN(p.R) {
			continue
		}
		pairs = append(pairs, p)
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if len(pairs) > k {
		pairs = pairs[:k]
	}
	return pairs
}

// Thresholded returns a copy of m where every cell with |r| <= thr is NaN.
func Thresholded(m *CorrMatrix, thr float64) *CorrMatrix {
	out := m.Clone()
	for i := range out.Values {
		for j, r := range out.Values[i] {
			if !(math.Abs(r) > thr) {
				out.Values[i][j] = math.NaN()
			}
		}
	}
	return out
}
