package dataset

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// record is the flat CSV shape of a Student, in export column order.
type record struct {
	ID                 int     `dataframe:"id_estudiante,int"`
	Age                int     `dataframe:"edad,int"`
	StudyHours         int     `dataframe:"horas_estudio_semanal,int"`
	GradeAverage       float64 `dataframe:"promedio_calificaciones,float"`
	FamilyIncome       float64 `dataframe:"ingresos_familiares,float"`
	Tier               string  `dataframe:"nivel_socioeconomico,string"`
	Attendance         int     `dataframe:"asistencia_clases,int"`
	ExtracurricularHrs int     `dataframe:"horas_extracurriculares,int"`
	LifeSatisfaction   float64 `dataframe:"satisfaccion_vida,float"`
	Stress             float64 `dataframe:"nivel_estres,float"`
	TierCode           int     `dataframe:"nivel_socioeconomico_num,int"`
}

var columnTypes = map[string]series.Type{
	"id_estudiante":            series.Int,
	"edad":                     series.Int,
	"horas_estudio_semanal":    series.Int,
	"promedio_calificaciones":  series.Float,
	"ingresos_familiares":      series.Float,
	TierColumn:                 series.String,
	"asistencia_clases":        series.Int,
	"horas_extracurriculares":  series.Int,
	"satisfaccion_vida":        series.Float,
	"nivel_estres":             series.Float,
	"nivel_socioeconomico_num": series.Int,
}

// DataFrame converts the table to a gota DataFrame with one column per field.
func (t *Table) DataFrame() dataframe.DataFrame {
	recs := make([]record, len(t.rows))
	for i, s := range t.rows {
		recs[i] = record{
			ID:                 s.ID,
			Age:                s.Age,
			StudyHours:         s.StudyHours,
			GradeAverage:       s.GradeAverage,
			FamilyIncome:       s.FamilyIncome,
			Tier:               string(s.Tier),
			Attendance:         s.Attendance,
			ExtracurricularHrs: s.ExtracurricularHrs,
			LifeSatisfaction:   s.LifeSatisfaction,
			Stress:             s.Stress,
			TierCode:           s.Tier.Code(),
		}
	}
	return dataframe.LoadStructs(recs)
}

// WriteCSV writes the table with a header row. Floats are written with six decimals.
func (t *Table) WriteCSV(w io.Writer) error {
	df := t.DataFrame()
	if df.Err != nil {
		return fmt.Errorf("build dataframe: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ReadCSV loads a table previously written by WriteCSV. Every column except
// nivel_socioeconomico_num is required; the tier code is always re-derived.
func ReadCSV(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(columnTypes))
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	present := map[string]bool{}
	for _, n := range df.Names() {
		present[n] = true
	}
	for name := range columnTypes {
		if name == VarTierCode.String() {
			continue
		}
		if !present[name] {
			return nil, fmt.Errorf("read csv: missing column %q", name)
		}
	}

	ints := map[string][]int{}
	for _, name := range []string{"id_estudiante", "edad", "horas_estudio_semanal", "asistencia_clases", "horas_extracurriculares"} {
		vals, err := df.Col(name).Int()
		if err != nil {
			return nil, fmt.Errorf("read csv: column %q: %w", name, err)
		}
		ints[name] = vals
	}
	floats := map[string][]float64{}
	for _, name := range []string{"promedio_calificaciones", "ingresos_familiares", "satisfaccion_vida", "nivel_estres"} {
		vals := df.Col(name).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("read csv: column %q row %d: not a number", name, i+1)
			}
		}
		floats[name] = vals
	}
	labels := df.Col(TierColumn).Records()

	rows := make([]Student, df.Nrow())
	for i := range rows {
		tier, err := ParseTier(labels[i])
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d: %w", i+1, err)
		}
		rows[i] = Student{
			ID:                 ints["id_estudiante"][i],
			Age:                ints["edad"][i],
			StudyHours:         ints["horas_estudio_semanal"][i],
			GradeAverage:       floats["promedio_calificaciones"][i],
			FamilyIncome:       floats["ingresos_familiares"][i],
			Tier:               tier,
			Attendance:         ints["asistencia_clases"][i],
			ExtracurricularHrs: ints["horas_extracurriculares"][i],
			LifeSatisfaction:   floats["satisfaccion_vida"][i],
			Stress:             floats["nivel_estres"][i],
		}
	}
	return &Table{rows: rows}, nil
}
