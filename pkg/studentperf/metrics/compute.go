// Package metrics derives per-student and class-wide statistics from a
// parsed table.
package metrics

import (
	"strconv"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/parser"
)

// Compute builds the class metrics for headers and rows. Column 0 of each
// row is the student name and the remaining columns line up with
// headers[1:]. The inputs are not modified.
func Compute(headers []string, rows [][]string) models.ClassMetrics {
	subjects := models.RawTable{Headers: headers}.SubjectNames()

	students := make([]models.StudentRecord, 0, len(rows))
	for idx, row := range rows {
		students = append(students, computeStudent(idx, row, len(subjects)))
	}

	m := models.ClassMetrics{
		SubjectNames:      subjects,
		Students:          students,
		GradeDistribution: models.GradeDistribution{},
	}
	if len(students) == 0 {
		return m
	}

	sum := 0.0
	m.HighestAverage = students[0].Average
	m.LowestAverage = students[0].Average
	for _, s := range students {
		sum += s.Average
		m.HighestAverage = max(m.HighestAverage, s.Average)
		m.LowestAverage = min(m.LowestAverage, s.Average)
		m.GradeDistribution = m.GradeDistribution.Add(s.Grade)
	}
	m.ClassAverage = Round2(sum / float64(len(students)))
	return m
}

// ComputeTable is Compute over a RawTable.
func ComputeTable(t models.RawTable) models.ClassMetrics {
	return Compute(t.Headers, t.Rows)
}

func computeStudent(idx int, row []string, subjects int) models.StudentRecord {
	name := ""
	if len(row) > 0 {
		name = row[0]
	}
	if name == "" {
		name = "Student " + strconv.Itoa(idx+1)
	}

	marks := make([]models.Mark, subjects)
	total := 0.0
	present := 0
	for i := range marks {
		var cell string
		if i+1 < len(row) {
			cell = row[i+1]
		}
		marks[i] = parser.ParseMark(cell)
		if marks[i].Present {
			total += marks[i].Value
			present++
		}
	}

	avg := 0.0
	if present > 0 {
		avg = total / float64(present)
	}

	return models.StudentRecord{
		Name:    name,
		Marks:   marks,
		Total:   total,
		Average: Round2(avg),
		// Graded on the unrounded mean.
		Grade:  AssignGrade(avg),
		Status: StatusOf(marks),
	}
}
