package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	ClaimsStarted       *prometheus.CounterVec
	PagesSubmitted      *prometheus.CounterVec
	ClaimsSubmitted     *prometheus.CounterVec
	EligibilityOutcomes *prometheus.CounterVec
	StaleSubmissions    prometheus.Counter
	IdentityChecks      *prometheus.CounterVec
}

// New creates all Prometheus metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ClaimsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claimflow_claims_started_total",
			Help: "Claims started, by policy",
		}, []string{"policy"}),
		PagesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claimflow_pages_submitted_total",
			Help: "Journey pages successfully submitted, by policy",
		}, []string{"policy"}),
		ClaimsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claimflow_claims_submitted_total",
			Help: "Claims that reached final submission, by policy",
		}, []string{"policy"}),
		EligibilityOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claimflow_eligibility_evaluations_total",
			Help: "Eligibility evaluation outcomes, by policy and status",
		}, []string{"policy", "status"}),
		StaleSubmissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "claimflow_stale_submissions_total",
			Help: "Page submissions lost to the optimistic version check",
		}),
		IdentityChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claimflow_identity_checks_total",
			Help: "Identity verification outcomes, by match classification",
		}, []string{"match"}),
	}
}
