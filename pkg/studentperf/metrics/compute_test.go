package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/parser"
)

func TestComputeClassExample(t *testing.T) {
	headers := []string{"Name", "Math", "Science"}
	rows := [][]string{
		{"Alice", "90", "80"},
		{"Bob", "30", "40"},
	}

	m := Compute(headers, rows)

	assert.Equal(t, []string{"Math", "Science"}, m.SubjectNames)
	require.Len(t, m.Students, 2)

	alice := m.Students[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, []models.Mark{models.Score(90), models.Score(80)}, alice.Marks)
	assert.Equal(t, 170.0, alice.Total)
	assert.Equal(t, 85.0, alice.Average)
	assert.Equal(t, models.GradeA, alice.Grade)
	assert.Equal(t, models.StatusPass, alice.Status)

	bob := m.Students[1]
	assert.Equal(t, 70.0, bob.Total)
	assert.Equal(t, 35.0, bob.Average)
	assert.Equal(t, models.GradeD, bob.Grade)
	assert.Equal(t, models.StatusFail, bob.Status)

	assert.Equal(t, 60.0, m.ClassAverage)
	assert.Equal(t, 85.0, m.HighestAverage)
	assert.Equal(t, 35.0, m.LowestAverage)
	assert.Equal(t, models.GradeDistribution{
		{Grade: models.GradeA, Count: 1},
		{Grade: models.GradeD, Count: 1},
	}, m.GradeDistribution)
}

func TestComputeAbsentMark(t *testing.T) {
	m := Compute([]string{"Name", "Math", "Science"}, [][]string{{"Carol", "70", ""}})

	carol := m.Students[0]
	assert.Equal(t, []models.Mark{models.Score(70), models.Absent()}, carol.Marks)
	assert.Equal(t, 70.0, carol.Total)
	assert.Equal(t, 70.0, carol.Average, "average uses present marks only")
	assert.Equal(t, models.GradeB, carol.Grade)
	assert.Equal(t, models.StatusFail, carol.Status)
}

func TestComputeMissingTrailingCellsAreAbsent(t *testing.T) {
	m := Compute([]string{"Name", "Math", "Science", "Art"}, [][]string{{"Dan", "60"}})

	dan := m.Students[0]
	assert.Equal(t, []models.Mark{models.Score(60), models.Absent(), models.Absent()}, dan.Marks)
	assert.Equal(t, 60.0, dan.Average)
	assert.Equal(t, models.StatusFail, dan.Status)
}

func TestComputeExtraCellsIgnored(t *testing.T) {
	m := Compute([]string{"Name", "Math"}, [][]string{{"Eve", "50", "100", "x"}})

	assert.Len(t, m.Students[0].Marks, 1)
	assert.Equal(t, 50.0, m.Students[0].Total)
}

func TestComputeNoPresentMarks(t *testing.T) {
	m := Compute([]string{"Name", "Math", "Science"}, [][]string{{"Finn", "abc", "NaN"}})

	finn := m.Students[0]
	assert.Equal(t, 0.0, finn.Total)
	assert.Equal(t, 0.0, finn.Average)
	assert.Equal(t, models.GradeF, finn.Grade)
	assert.Equal(t, models.StatusFail, finn.Status)
}

func TestComputeDefaultNames(t *testing.T) {
	m := Compute([]string{"Name", "Math"}, [][]string{{"", "50"}, {"Gus", "60"}, {}})

	assert.Equal(t, "Student 1", m.Students[0].Name)
	assert.Equal(t, "Gus", m.Students[1].Name)
	assert.Equal(t, "Student 3", m.Students[2].Name)
}

func TestComputeZeroSubjectsPass(t *testing.T) {
	m := Compute([]string{"Name"}, [][]string{{"Hana", "99"}})

	hana := m.Students[0]
	assert.Empty(t, hana.Marks)
	assert.Equal(t, 0.0, hana.Average)
	assert.Equal(t, models.GradeF, hana.Grade)
	assert.Equal(t, models.StatusPass, hana.Status, "an empty mark list passes vacuously")
}

func TestComputeEmpty(t *testing.T) {
	m := Compute([]string{"Name", "Math"}, nil)

	assert.NotNil(t, m.Students)
	assert.Empty(t, m.Students)
	assert.Equal(t, 0.0, m.ClassAverage)
	assert.Equal(t, 0.0, m.HighestAverage)
	assert.Equal(t, 0.0, m.LowestAverage)
	assert.Empty(t, m.GradeDistribution)

	m = Compute(nil, nil)
	assert.Empty(t, m.SubjectNames)
}

func TestComputeGradesOnUnroundedMean(t *testing.T) {
	m := Compute([]string{"Name", "Math"}, [][]string{{"Ivy", "84.996"}})

	assert.Equal(t, 85.0, m.Students[0].Average)
	assert.Equal(t, models.GradeB, m.Students[0].Grade)
}

func TestComputeGradeDistributionOrder(t *testing.T) {
	rows := [][]string{
		{"a", "40"}, {"b", "95"}, {"c", "10"}, {"d", "41"}, {"e", "96"},
	}
	m := Compute([]string{"Name", "Math"}, rows)

	assert.Equal(t, models.GradeDistribution{
		{Grade: models.GradeD, Count: 2},
		{Grade: models.GradeA, Count: 2},
		{Grade: models.GradeF, Count: 1},
	}, m.GradeDistribution)
	counted := 0
	for _, gc := range m.GradeDistribution {
		counted += gc.Count
	}
	assert.Equal(t, len(rows), counted)
}

func TestComputeTotalsMatchPresentMarks(t *testing.T) {
	table := parser.Parse(`Name,A,B,C,D
x,1.5,2.25,,4
y,,,,
z,100,0,50,"7,5"
w,33.333,33.333,33.334,-`)
	m := ComputeTable(table)

	for _, s := range m.Students {
		sum, present := 0.0, 0
		for _, mk := range s.Marks {
			if mk.Present {
				sum += mk.Value
				present++
			}
		}
		assert.InDelta(t, sum, s.Total, 1e-9, s.Name)
		if present == 0 {
			assert.Equal(t, 0.0, s.Average, s.Name)
			assert.Equal(t, 0.0, s.Total, s.Name)
		}
	}
	assert.Equal(t, 50.0, m.Students[2].Average, "7,5 is not numeric")
	assert.Equal(t, 33.33, m.Students[3].Average)
}

func TestComputeClassAverageTolerance(t *testing.T) {
	rows := [][]string{{"a", "33"}, {"b", "67.777"}, {"c", "12.3"}}
	m := Compute([]string{"Name", "Math"}, rows)

	sum := 0.0
	for _, s := range m.Students {
		sum += s.Average
	}
	assert.InDelta(t, sum/3, m.ClassAverage, 0.005)
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	headers := []string{"Name", "Math"}
	rows := [][]string{{"", "x"}}
	Compute(headers, rows)

	assert.Equal(t, []string{"Name", "Math"}, headers)
	assert.Equal(t, [][]string{{"", "x"}}, rows)
}

func TestComputeDeterministic(t *testing.T) {
	headers := []string{"Name", "A", "B", "C"}
	rows := [][]string{{"p", "1.005", "2.675", "3"}, {"q", "", "88", "71"}}

	assert.Equal(t, Compute(headers, rows), Compute(headers, rows))
}
