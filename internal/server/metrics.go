package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	Parses        *prometheus.CounterVec
	StudentsAdded prometheus.Counter
	Students      prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Parses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studentperf",
			Name:      "parses_total",
			Help:      "CSV parse requests by result (ok, rejected).",
		}, []string{"result"}),
		StudentsAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "studentperf",
			Name:      "students_added_total",
			Help:      "Students added by manual entry.",
		}),
		Students: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "studentperf",
			Name:      "students",
			Help:      "Students in the current dataset.",
		}),
	}
}
