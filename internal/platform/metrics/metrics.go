// Package metrics holds the Prometheus collectors of the workflow service.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "iwa"

const (
	EntityInvoice  = "invoice"
	EntityPayment  = "payment"
	EntityApproval = "approval"

	ReasonForbidden    = "forbidden"
	ReasonInvalidState = "invalid_state"
	ReasonValidation   = "validation"
	ReasonUnknown      = "unknown"
)

// Metrics captures workflow transitions, refused transitions and HTTP latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	transitions     *prometheus.CounterVec
	guardViolations *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg when it is non-nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_transitions_total",
			Help:      "Successful workflow transitions by entity, trigger and target status.",
		}, []string{"entity", "trigger", "to"}),
		guardViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_guard_violations_total",
			Help:      "Refused workflow transitions by entity, trigger and reason.",
		}, []string{"entity", "trigger", "reason"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.transitions, m.guardViolations, m.httpDuration)
	}
	return m
}

// RecordTransition counts a completed transition.
func (m *Metrics) RecordTransition(entity, trigger, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(entity, trigger, to).Inc()
}

// RecordRefusal counts a refused transition, classifying err.
func (m *Metrics) RecordRefusal(entity, trigger string, err error) {
	if m == nil {
		return
	}
	m.guardViolations.WithLabelValues(entity, trigger, ClassifyRefusal(err)).Inc()
}

// ObserveHTTP records one request's latency.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ClassifyRefusal maps a workflow error onto a reason label.
func ClassifyRefusal(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		return ReasonForbidden
	case errors.Is(err, apperrors.ErrInvalidState):
		return ReasonInvalidState
	case errors.Is(err, apperrors.ErrValidation):
		return ReasonValidation
	}
	return ReasonUnknown
}
