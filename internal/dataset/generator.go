package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidSize is returned when a non-positive row count is requested.
var ErrInvalidSize = errors.New("row count must be positive")

// Default generation parameters.
const (
	DefaultSeed uint64 = 42
	DefaultSize        = 500
)

// Params is the generation context: every draw is derived from Seed, nothing else.
type Params struct {
	Seed uint64
	Size int
}

// DefaultParams returns seed 42 and 500 rows.
func DefaultParams() Params {
	return Params{Seed: DefaultSeed, Size: DefaultSize}
}

// Bounds is an inclusive clamp range.
type Bounds struct{ Lo, Hi float64 }

// Clamp limits x to [Lo, Hi].
func (b Bounds) Clamp(x float64) float64 {
	if x < b.Lo {
		return b.Lo
	}
	if x > b.Hi {
		return b.Hi
	}
	return x
}

// Contains reports whether x lies in [Lo, Hi].
func (b Bounds) Contains(x float64) bool { return x >= b.Lo && x <= b.Hi }

// Column declarations. Integer columns are truncated toward zero after clamping.
var (
	ageDist        = distuv.Normal{Mu: 16, Sigma: 1.5}
	studyDist      = distuv.Normal{Mu: 20, Sigma: 8}
	gradeDist      = distuv.Normal{Mu: 7.5, Sigma: 1.2}
	incomeDist     = distuv.LogNormal{Mu: 9, Sigma: 0.6}
	attendanceDist = distuv.Normal{Mu: 85, Sigma: 15}
	extraDist      = distuv.Normal{Mu: 8, Sigma: 4}
	satisfDist     = distuv.Normal{Mu: 7.2, Sigma: 1.5}
	stressDist     = distuv.Normal{Mu: 6.8, Sigma: 1.8}

	AgeBounds             = Bounds{14, 19}
	StudyHoursBounds      = Bounds{5, 50}
	GradeBounds           = Bounds{1, 10}
	AttendanceBounds      = Bounds{10, 100}
	ExtracurricularBounds = Bounds{0, 20}
	SatisfactionBounds    = Bounds{1, 10}
	StressBounds          = Bounds{1, 10}

	// tierWeights follows the order of Tiers().
	tierWeights = []float64{0.3, 0.5, 0.2}
)

// Generate builds a Table deterministically from p. The same Params always
// produce bit-identical tables.
func Generate(p Params) (*Table, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("generate %d rows: %w", p.Size, ErrInvalidSize)
	}
	src := rand.NewPCG(p.Seed, p.Seed)
	n := p.Size

	// Columns are drawn one after another from the same source, so the
	// order below is part of the output contract.
	ages := drawNormal(ageDist, src, n, AgeBounds, true)
	study := drawNormal(studyDist, src, n, StudyHoursBounds, true)
	grades := drawNormal(gradeDist, src, n, GradeBounds, false)
	incomes := drawIncome(src, n)
	tiers := drawTiers(src, n)
	attendance := drawNormal(attendanceDist, src, n, AttendanceBounds, true)
	extra := drawNormal(extraDist, src, n, ExtracurricularBounds, true)
	satisf := drawNormal(satisfDist, src, n, SatisfactionBounds, false)
	stress := drawNormal(stressDist, src, n, StressBounds, false)

	rows := make([]Student, n)
	for i := range rows {
		rows[i] = Student{
			ID:                 i + 1,
			Age:                int(ages[i]),
			StudyHours:         int(study[i]),
			GradeAverage:       grades[i],
			FamilyIncome:       incomes[i],
			Tier:               tiers[i],
			Attendance:         int(attendance[i]),
			ExtracurricularHrs: int(extra[i]),
			LifeSatisfaction:   satisf[i],
			Stress:             stress[i],
		}
	}
	return &Table{rows: rows}, nil
}

func drawNormal(d distuv.Normal, src rand.Source, n int, b Bounds, integer bool) []float64 {
	d.Src = src
	out := make([]float64, n)
	for i := range out {
		x := b.Clamp(d.Rand())
		if integer {
			x = math.Trunc(x)
		}
		out[i] = x
	}
	return out
}

func drawIncome(src rand.Source, n int) []float64 {
	d := incomeDist
	d.Src = src
	out := make([]float64, n)
	for i := range out {
		out[i] = math.RoundToEven(d.Rand())
	}
	return out
}

func drawTiers(src rand.Source, n int) []Tier {
	cat := distuv.NewCategorical(tierWeights, src)
	all := Tiers()
	out := make([]Tier, n)
	for i := range out {
		out[i] = all[int(cat.Rand())]
	}
	return out
}
