package dataset

import "fmt"

// Tier is the socioeconomic level of a student's household.
type Tier string

const (
	TierLow    Tier = "Bajo"
	TierMedium Tier = "Medio"
	TierHigh   Tier = "Alto"
)

// tierCodes is the fixed categorical encoding. Every Tier maps to exactly one code.
var tierCodes = map[Tier]int{
	TierLow:    1,
	TierMedium: 2,
	TierHigh:   3,
}

// Tiers lists the categories in encoding order.
func Tiers() []Tier { return []Tier{TierLow, TierMedium, TierHigh} }

// Code returns the integer encoding of the tier (1..3), or 0 if the tier is unknown.
func (t Tier) Code() int { return tierCodes[t] }

// ParseTier maps a label back to its Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tierCodes[t]; !ok {
		return "", fmt.Errorf("unknown socioeconomic tier %q", s)
	}
	return t, nil
}

// Student is one synthetic record.
type Student struct {
	ID                 int
	Age                int
	StudyHours         int
	GradeAverage       float64
	FamilyIncome       float64
	Tier               Tier
	Attendance         int
	ExtracurricularHrs int
	LifeSatisfaction   float64
	Stress             float64
}

// Variable identifies a numeric column of the table.
type Variable int

const (
	VarID Variable = iota
	VarAge
	VarStudyHours
	VarGradeAverage
	VarFamilyIncome
	VarAttendance
	VarExtracurricular
	VarLifeSatisfaction
	VarStress
	VarTierCode
)

var variableNames = [...]string{
	VarID:               "id_estudiante",
	VarAge:              "edad",
	VarStudyHours:       "horas_estudio_semanal",
	VarGradeAverage:     "promedio_calificaciones",
	VarFamilyIncome:     "ingresos_familiares",
	VarAttendance:       "asistencia_clases",
	VarExtracurricular:  "horas_extracurriculares",
	VarLifeSatisfaction: "satisfaccion_vida",
	VarStress:           "nivel_estres",
	VarTierCode:         "nivel_socioeconomico_num",
}

// TierColumn is the name of the categorical tier column.
const TierColumn = "nivel_socioeconomico"

// Valid reports whether v names a column of the table.
func (v Variable) Valid() bool { return v >= 0 && int(v) < len(variableNames) }

func (v Variable) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variable(%d)", int(v))
	}
	return variableNames[v]
}

// ParseVariable resolves a column name to its Variable.
func ParseVariable(name string) (Variable, bool) {
	for i, n := range variableNames {
		if n == name {
			return Variable(i), true
		}
	}
	return 0, false
}

// NumericVariables returns every numeric column in table order, the tier encoding last.
func NumericVariables() []Variable {
	return []Variable{
		VarID, VarAge, VarStudyHours, VarGradeAverage, VarFamilyIncome,
		VarAttendance, VarExtracurricular, VarLifeSatisfaction, VarStress, VarTierCode,
	}
}

// InterestVariables is the set shown in the full correlation matrix (the identifier excluded).
func InterestVariables() []Variable {
	return []Variable{
		VarAge, VarStudyHours, VarGradeAverage, VarFamilyIncome, VarAttendance,
		VarExtracurricular, VarLifeSatisfaction, VarStress, VarTierCode,
	}
}

// Value returns the numeric value of v for the student. It panics if v is not Valid.
func (s Student) Value(v Variable) float64 {
	switch v {
	case VarID:
		return float64(s.ID)
	case VarAge:
		return float64(s.Age)
	case VarStudyHours:
		return float64(s.StudyHours)
	case VarGradeAverage:
		return s.GradeAverage
	case VarFamilyIncome:
		return s.FamilyIncome
	case VarAttendance:
		return float64(s.Attendance)
	case VarExtracurricular:
		return float64(s.ExtracurricularHrs)
	case VarLifeSatisfaction:
		return s.LifeSatisfaction
	case VarStress:
		return s.Stress
	case VarTierCode:
		return float64(s.Tier.Code())
	default:
		panic(fmt.Sprintf("dataset: unknown variable %d", int(v)))
	}
}

// Table is an immutable, ordered sample of students.
type Table struct {
	rows []Student
}

// NewTable copies rows into a Table.
func NewTable(rows []Student) *Table {
	cp := make([]Student, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th student.
func (t *Table) Row(i int) Student { return t.rows[i] }

// Rows returns a copy of all students.
func (t *Table) Rows() []Student {
	cp := make([]Student, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Column returns a fresh slice with the values of v for every row. It panics if v is not Valid.
func (t *Table) Column(v Variable) []float64 {
	out := make([]float64, len(t.rows))
	for i, s := range t.rows {
		out[i] = s.Value(v)
	}
	return out
}
