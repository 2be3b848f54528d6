package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/project-sync-web/auth"
	"github.com/jrsteele09/project-sync-web/guard"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters for routing and auth
type Metrics struct {
	registry *prometheus.Registry

	GuardDecisions *prometheus.CounterVec
	AuthOperations *prometheus.CounterVec
}

var _ auth.Recorder = (*Metrics)(nil)

// NewMetrics creates a Metrics instance on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		GuardDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectsync_guard_decisions_total",
				Help: "Route guard decisions by outcome",
			},
			[]string{"outcome"},
		),
		AuthOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectsync_auth_operations_total",
				Help: "Auth gateway operations by result",
			},
			[]string{"op", "result"},
		),
	}
}

// GuardDecision counts one guard or resolver decision
func (m *Metrics) GuardDecision(outcome guard.Outcome) {
	m.GuardDecisions.WithLabelValues(outcome.String()).Inc()
}

// AuthOutcome implements auth.Recorder
func (m *Metrics) AuthOutcome(op string, err error) {
	m.AuthOperations.WithLabelValues(op, resultLabel(err)).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func resultLabel(err error) string {
	var fe *auth.FormError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &fe):
		return "invalid_form"
	case errors.Is(err, apperrors.ErrOperationInFlight):
		return "in_flight"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, apperrors.ErrUnknownRole):
		return "unknown_role"
	case errors.Is(err, apperrors.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, apperrors.ErrTransportFailure):
		return "transport_failure"
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return "rejected"
	default:
		return "error"
	}
}
