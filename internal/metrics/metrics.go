package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Claim outcomes.
const (
	ClaimWon  = "won"
	ClaimLost = "lost"
)

// Metrics provides observability for registrations and the donation lifecycle.
type Metrics struct {
	// Registrations by role and outcome
	Registrations *prometheus.CounterVec

	// Donations posted
	DonationsCreated prometheus.Counter

	// Claim attempts by outcome; lost is a routine race loss
	ClaimAttempts *prometheus.CounterVec

	// Successful transitions by target status
	Transitions *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodshare_registrations_total",
			Help: "Registration attempts by role and outcome",
		}, []string{"role", "outcome"}),

		DonationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodshare_donations_created_total",
			Help: "Donations posted by restaurants",
		}),

		ClaimAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodshare_claim_attempts_total",
			Help: "Claim attempts by outcome",
		}, []string{"outcome"}),

		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodshare_donation_transitions_total",
			Help: "Successful donation status transitions by target status",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.Registrations, m.DonationsCreated, m.ClaimAttempts, m.Transitions)
	}
	return m
}

// IncrementRegistration records a registration attempt.
func (m *Metrics) IncrementRegistration(role, outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(role, outcome).Inc()
	}
}

// IncrementDonationsCreated records a posted donation.
func (m *Metrics) IncrementDonationsCreated() {
	if m != nil {
		m.DonationsCreated.Inc()
	}
}

// IncrementClaim records a claim attempt outcome.
func (m *Metrics) IncrementClaim(outcome string) {
	if m != nil {
		m.ClaimAttempts.WithLabelValues(outcome).Inc()
	}
}

// IncrementTransition records a successful move into status.
func (m *Metrics) IncrementTransition(status string) {
	if m != nil {
		m.Transitions.WithLabelValues(status).Inc()
	}
}
