package metrics

import "github.com/ukaji3/studentperf-go/pkg/studentperf/models"

// SubjectAverages returns the mean of present marks per subject over the
// students in m. A subject with no present marks averages 0.
func SubjectAverages(m models.ClassMetrics) []models.SubjectAverage {
	out := make([]models.SubjectAverage, len(m.SubjectNames))
	for si, subject := range m.SubjectNames {
		sum := 0.0
		count := 0
		for _, s := range m.Students {
			if si >= len(s.Marks) || !s.Marks[si].Present {
				continue
			}
			sum += s.Marks[si].Value
			count++
		}
		out[si] = models.SubjectAverage{Subject: subject, Count: count}
		if count > 0 {
			out[si].Average = sum / float64(count)
		}
	}
	return out
}
