package node

import "github.com/prometheus/client_golang/prometheus"

const (
	InterestsSentCounter       = "interests_sent_total"
	DataMatchedCounter         = "data_matched_total"
	DataUnmatchedCounter       = "data_unmatched_total"
	InterestTimeoutsCounter    = "interest_timeouts_total"
	InterestsDispatchedCounter = "interests_dispatched_total"
	InterestsUnhandledCounter  = "interests_unhandled_total"
	DecodeErrorsCounter        = "decode_errors_total"
	HubIdFetchesCounter        = "hub_id_fetches_total"
	RegistrationsCounter       = "prefix_registrations_total"
	RegisterFailuresCounter    = "prefix_register_failures_total"
)

// Metrics counts node events. It implements prometheus.Collector and can be
// registered with any registry.
type Metrics struct {
	InterestsSent       prometheus.Counter
	DataMatched         prometheus.Counter
	DataUnmatched       prometheus.Counter
	InterestTimeouts    prometheus.Counter
	InterestsDispatched prometheus.Counter
	InterestsUnhandled  prometheus.Counter
	DecodeErrors        prometheus.Counter
	HubIdFetches        prometheus.Counter
	Registrations       prometheus.Counter
	RegisterFailures    prometheus.Counter
}

func newCounter(name string, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ndnode",
		Subsystem: "node",
		Name:      name,
		Help:      help,
	})
}

func NewMetrics() *Metrics {
	return &Metrics{
		InterestsSent:       newCounter(InterestsSentCounter, "The total number of Interests sent through the PIT"),
		DataMatched:         newCounter(DataMatchedCounter, "The total number of Data packets delivered to a pending Interest"),
		DataUnmatched:       newCounter(DataUnmatchedCounter, "The total number of Data packets dropped without a pending Interest"),
		InterestTimeouts:    newCounter(InterestTimeoutsCounter, "The total number of pending Interests that timed out"),
		InterestsDispatched: newCounter(InterestsDispatchedCounter, "The total number of inbound Interests delivered to a handler"),
		InterestsUnhandled:  newCounter(InterestsUnhandledCounter, "The total number of inbound Interests dropped without a handler"),
		DecodeErrors:        newCounter(DecodeErrorsCounter, "The total number of frames that failed to decode"),
		HubIdFetches:        newCounter(HubIdFetchesCounter, "The total number of hub id fetch Interests sent"),
		Registrations:       newCounter(RegistrationsCounter, "The total number of self-registration Interests sent"),
		RegisterFailures:    newCounter(RegisterFailuresCounter, "The total number of failed prefix registrations"),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.InterestsSent,
		m.DataMatched,
		m.DataUnmatched,
		m.InterestTimeouts,
		m.InterestsDispatched,
		m.InterestsUnhandled,
		m.DecodeErrors,
		m.HubIdFetches,
		m.Registrations,
		m.RegisterFailures,
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}
