// Package metrics exposes Prometheus counters for phone operations.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// PhoneMetrics counts validation and normalization outcomes.
type PhoneMetrics struct {
	validationsTotal *prometheus.CounterVec
	normalizeTotal   *prometheus.CounterVec
	cacheTotal       *prometheus.CounterVec
}

func NewPhoneMetrics(reg prometheus.Registerer) *PhoneMetrics {
	m := &PhoneMetrics{
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phone",
			Subsystem: "validation",
			Name:      "total",
			Help:      "Phone number validations by constraint and outcome",
		}, []string{"constraint", "outcome"}),
		normalizeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phone",
			Subsystem: "normalize",
			Name:      "total",
			Help:      "Phone number normalizations by outcome",
		}, []string{"outcome"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phone",
			Subsystem: "normalize",
			Name:      "cache_total",
			Help:      "Normalize cache lookups by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.validationsTotal, m.normalizeTotal, m.cacheTotal)
	return m
}

func (m *PhoneMetrics) ObserveValidation(constraint string, valid bool) {
	if m == nil {
		return
	}
	if constraint == "" {
		constraint = "adhoc"
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.validationsTotal.WithLabelValues(constraint, outcome).Inc()
}

func (m *PhoneMetrics) ObserveNormalize(outcome string) {
	if m == nil {
		return
	}
	m.normalizeTotal.WithLabelValues(outcome).Inc()
}

func (m *PhoneMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(result).Inc()
}
