package metrics

import "github.com/ukaji3/studentperf-go/pkg/studentperf/models"

// PassMark is the lowest subject mark that counts as a pass.
const PassMark = 35

// gradeBands lists the lower bound of each band, highest first.
var gradeBands = []struct {
	min   float64
	grade models.Grade
}{
	{85, models.GradeA},
	{70, models.GradeB},
	{50, models.GradeC},
	{35, models.GradeD},
}

// AssignGrade maps an average to a letter grade. Lower bounds are inclusive.
func AssignGrade(avg float64) models.Grade {
	for _, band := range gradeBands {
		if avg >= band.min {
			return band.grade
		}
	}
	return models.GradeF
}

// StatusOf returns Pass only when every mark is present and at least
// PassMark. An empty mark list passes.
func StatusOf(marks []models.Mark) models.Status {
	for _, m := range marks {
		if !m.Present || m.Value < PassMark {
			return models.StatusFail
		}
	}
	return models.StatusPass
}
