package application

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds counters for the poll loops and the notification pipeline.
// A nil *Metrics records nothing.
type Metrics struct {
	transitions   *prometheus.CounterVec
	pollErrors    prometheus.Counter
	matchFetches  *prometheus.CounterVec
	notifications *prometheus.CounterVec
	pendingEvents prometheus.Gauge
	loopRestarts  prometheus.Counter
}

// Metric label values.
const (
	FetchOutcomeFound     = "found"
	FetchOutcomeExhausted = "exhausted"
	FetchOutcomeError     = "error"

	DeliveryStatusSuccess = "success"
	DeliveryStatusFailed  = "failed"
	DeliveryStatusDropped = "dropped"
)

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riftwatch",
			Name:      "transitions_total",
			Help:      "Game state transitions detected per kind.",
		}, []string{"kind"}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riftwatch",
			Name:      "poll_errors_total",
			Help:      "Summoner polls that returned an error.",
		}),
		matchFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riftwatch",
			Name:      "match_fetch_total",
			Help:      "Finished-match lookups by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riftwatch",
			Name:      "notifications_total",
			Help:      "Grouped notifications by event kind and delivery status.",
		}, []string{"kind", "status"}),
		pendingEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riftwatch",
			Name:      "pending_events",
			Help:      "Unprocessed events seen by the last aggregation cycle.",
		}),
		loopRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riftwatch",
			Name:      "poll_loop_restarts_total",
			Help:      "Summoner poll loops restarted after a panic.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{
			m.transitions, m.pollErrors, m.matchFetches, m.notifications, m.pendingEvents, m.loopRestarts,
		} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) recordTransition(kind string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind).Inc()
}

func (m *Metrics) recordPollError() {
	if m == nil {
		return
	}
	m.pollErrors.Inc()
}

func (m *Metrics) recordMatchFetch(outcome string) {
	if m == nil {
		return
	}
	m.matchFetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordNotification(kind, status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) setPending(n int) {
	if m == nil {
		return
	}
	m.pendingEvents.Set(float64(n))
}

func (m *Metrics) recordLoopRestart() {
	if m == nil {
		return
	}
	m.loopRestarts.Inc()
}
