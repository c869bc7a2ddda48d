package mailer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hrportal"

var (
	mailSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "sent_total",
			Help:      "Total mail send attempts by status",
		},
		[]string{"status"},
	)

	mailSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "send_duration_seconds",
			Help:      "Time to deliver a message via SMTP",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)

// recordMailSent records a mail send attempt outcome.
func recordMailSent(err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	mailSent.WithLabelValues(status).Inc()
}

// recordMailDuration records how long a delivery took.
func recordMailDuration(d time.Duration) {
	mailSendDuration.Observe(d.Seconds())
}
