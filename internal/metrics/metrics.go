// Package metrics exposes Prometheus counters for the contact form.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "apexdrive"

// Submission outcomes used as the "outcome" label.
const (
	OutcomeSent      = "sent"
	OutcomeHoneypot  = "honeypot"
	OutcomeCooldown  = "cooldown"
	OutcomeInvalid   = "invalid"
	OutcomeConfig    = "config_error"
	OutcomeSendError = "send_error"
)

type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	mailSend    *prometheus.HistogramVec
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return
		}
	}
}

// New creates the collectors on a fresh registry that also carries the
// process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	registerCollector(reg, collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registerCollector(reg, collectors.NewGoCollector())

	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		mailSend: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mail_send_seconds",
			Help:      "Duration of outgoing mail delivery",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"result"}),
	}
	registerCollector(reg, m.submissions)
	registerCollector(reg, m.mailSend)
	return m
}

// IncSubmission counts one submission with the given outcome.
func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// ObserveMailSend records a delivery attempt.
func (m *Metrics) ObserveMailSend(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mailSend.WithLabelValues(result).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
