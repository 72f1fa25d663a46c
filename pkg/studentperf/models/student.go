package models

// Grade is a letter grade derived from a student's average.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Status is the pass/fail outcome for a student.
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
)

// StudentRecord holds the computed result for one data row.
type StudentRecord struct {
	// Name is the student name, or "Student N" when the name cell is blank.
	Name string `json:"name"`
	// Marks is aligned positionally with ClassMetrics.SubjectNames.
	Marks []Mark `json:"marks"`
	// Total is the sum of present marks.
	Total float64 `json:"total"`
	// Average is Total over the number of present marks, rounded to 2 decimals.
	Average float64 `json:"avg"`
	Grade   Grade   `json:"grade"`
	Status  Status  `json:"status"`
}
