package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

func TestAssignGrade(t *testing.T) {
	tests := []struct {
		avg      float64
		expected models.Grade
	}{
		{100, models.GradeA},
		{85, models.GradeA},
		{84.99, models.GradeB},
		{70, models.GradeB},
		{69.99, models.GradeC},
		{50, models.GradeC},
		{49.99, models.GradeD},
		{35, models.GradeD},
		{34.99, models.GradeF},
		{0, models.GradeF},
		{-5, models.GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AssignGrade(tt.avg), "AssignGrade(%v)", tt.avg)
	}
}

func TestAssignGradeBandsAreMonotonic(t *testing.T) {
	rank := map[models.Grade]int{}
	for i, g := range []models.Grade{models.GradeA, models.GradeB, models.GradeC, models.GradeD, models.GradeF} {
		rank[g] = i
	}

	prev := AssignGrade(0)
	for avg := 0.0; avg <= 100; avg += 0.25 {
		g := AssignGrade(avg)
		_, known := rank[g]
		assert.True(t, known, "unexpected grade %q for %v", g, avg)
		assert.LessOrEqual(t, rank[g], rank[prev], "grade dropped at %v", avg)
		prev = g
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		marks    []models.Mark
		expected models.Status
	}{
		{"all pass", []models.Mark{models.Score(35), models.Score(90)}, models.StatusPass},
		{"one below", []models.Mark{models.Score(34.9), models.Score(90)}, models.StatusFail},
		{"one absent", []models.Mark{models.Absent(), models.Score(90)}, models.StatusFail},
		{"empty", nil, models.StatusPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.marks))
		})
	}
}
