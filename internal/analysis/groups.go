package analysis

import "github.com/KaramelBytes/edustats-cli/internal/dataset"

// Group is a named set of variables analyzed together.
type Group struct {
	Name string
	Vars []dataset.Variable
}

// GroupResult is the correlation sub-matrix of one group.
type GroupResult struct {
	Name string
	Corr *CorrMatrix
}

// Empty reports whether the group had no variables.
func (g GroupResult) Empty() bool { return g.Corr == nil || g.Corr.Len() == 0 }

// DefaultGroups returns the academic, wellbeing and socioeconomic groups.
func DefaultGroups() []Group {
	return []Group{
		{Name: "Variables académicas", Vars: []dataset.Variable{
			dataset.VarStudyHours, dataset.VarAttendance, dataset.VarGradeAverage,
		}},
		{Name: "Variables de bienestar", Vars: []dataset.Variable{
			dataset.VarLifeSatisfaction, dataset.VarStress, dataset.VarExtracurricular,
		}},
		{Name: "Variables socioeconómicas", Vars: []dataset.Variable{
			dataset.VarFamilyIncome, dataset.VarTierCode, dataset.VarGradeAverage,
		}},
	}
}

// AnalyzeGroups recomputes each group's matrix from the table.
func AnalyzeGroups(t *dataset.Table, groups []Group) []GroupResult {
	out := make([]GroupResult, len(groups))
	for i, g := range groups {
		out[i] = GroupResult{Name: g.Name, Corr: Correlate(t, g.Vars)}
	}
	return out
}
