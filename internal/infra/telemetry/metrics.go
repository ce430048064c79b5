package telemetry

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Amlan029/FeedFormly/internal/core/port"
)

const namespace = "feedformly"

// DomainMetrics counts registration, verification, inbox and suggestion outcomes.
type DomainMetrics struct {
	registrations *prometheus.CounterVec
	verifications *prometheus.CounterVec
	received      prometheus.Counter
	rejected      *prometheus.CounterVec
	deleted       prometheus.Counter
	suggestions   *prometheus.CounterVec
}

// NewDomainMetrics registers the collectors on reg, reusing any already registered.
func NewDomainMetrics(reg prometheus.Registerer) (*DomainMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &DomainMetrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_registered_total",
			Help:      "Accounts registered, split by whether an unverified account was overwritten.",
		}, []string{"reregistered"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_attempts_total",
			Help:      "Verification code submissions by outcome.",
		}, []string{"outcome"}),
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Anonymous messages appended to an inbox.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_rejected_total",
			Help:      "Anonymous messages refused by reason.",
		}, []string{"reason"}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_deleted_total",
			Help:      "Messages deleted by their owner.",
		}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_requested_total",
			Help:      "Suggestion requests by outcome.",
		}, []string{"outcome"}),
	}

	var err error
	if m.registrations, err = registerCollector(reg, m.registrations); err != nil {
		return nil, err
	}
	if m.verifications, err = registerCollector(reg, m.verifications); err != nil {
		return nil, err
	}
	if m.received, err = registerCollector(reg, m.received); err != nil {
		return nil, err
	}
	if m.rejected, err = registerCollector(reg, m.rejected); err != nil {
		return nil, err
	}
	if m.deleted, err = registerCollector(reg, m.deleted); err != nil {
		return nil, err
	}
	if m.suggestions, err = registerCollector(reg, m.suggestions); err != nil {
		return nil, err
	}

	return m, nil
}

func registerCollector[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *DomainMetrics) AccountRegistered(reregistered bool) {
	m.registrations.WithLabelValues(strconv.FormatBool(reregistered)).Inc()
}

func (m *DomainMetrics) VerificationAttempt(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

func (m *DomainMetrics) MessageReceived() {
	m.received.Inc()
}

func (m *DomainMetrics) MessageRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *DomainMetrics) MessageDeleted() {
	m.deleted.Inc()
}

func (m *DomainMetrics) SuggestionRequested(outcome string) {
	m.suggestions.WithLabelValues(outcome).Inc()
}

var _ port.MetricsRecorder = (*DomainMetrics)(nil)
