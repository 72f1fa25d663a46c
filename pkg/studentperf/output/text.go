package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

// FormatText writes m as an aligned results table followed by the class
// summary. Absent marks print as "-".
func FormatText(w io.Writer, m models.ClassMetrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Subjects: %s\n\n", strings.Join(m.SubjectNames, ", "))
	fmt.Fprintln(tw, "#\tName\tMarks\tTotal\tAvg\tGrade\tStatus")
	for i, s := range m.Students {
		marks := make([]string, len(s.Marks))
		for j, mk := range s.Marks {
			marks[j] = mk.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, s.Name, strings.Join(marks, ", "), formatNumber(s.Total), formatNumber(s.Average), s.Grade, s.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal students: %d\n", len(m.Students))
	fmt.Fprintf(w, "Class average: %s  Highest: %s  Lowest: %s\n",
		formatNumber(m.ClassAverage), formatNumber(m.HighestAverage), formatNumber(m.LowestAverage))

	dist := make([]string, len(m.GradeDistribution))
	for i, gc := range m.GradeDistribution {
		dist[i] = fmt.Sprintf("%s (%d)", gc.Grade, gc.Count)
	}
	fmt.Fprintf(w, "Grades: %s\n", strings.Join(dist, ", "))

	if len(m.Students) == 0 {
		return nil
	}
	avgs := metrics.SubjectAverages(m)
	parts := make([]string, len(avgs))
	for i, sa := range avgs {
		parts[i] = fmt.Sprintf("%s %.1f", sa.Subject, sa.Average)
	}
	_, err := fmt.Fprintf(w, "Subject averages: %s\n", strings.Join(parts, ", "))
	return err
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
