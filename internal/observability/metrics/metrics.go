package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking page flows.
type BookingMetrics struct {
	pageRenders   *prometheus.CounterVec
	resourceLoads *prometheus.CounterVec
	loadFailures  prometheus.Counter
	submissions   *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "booking",
			Name:      "page_renders_total",
			Help:      "Total booking page renders",
		}, []string{"status"}),
		resourceLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "booking",
			Name:      "resource_loads_total",
			Help:      "Total reference data loads by resource and source",
		}, []string{"resource", "source"}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "booking",
			Name:      "load_failures_total",
			Help:      "Total reference data loads where the fallback itself failed",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Total booking form submissions by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.pageRenders, m.resourceLoads, m.loadFailures, m.submissions)
	return m
}

func (m *BookingMetrics) ObservePageRender(status string) {
	if m == nil {
		return
	}
	m.pageRenders.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveResourceLoad(resource, source string) {
	if m == nil {
		return
	}
	m.resourceLoads.WithLabelValues(resource, source).Inc()
}

func (m *BookingMetrics) ObserveLoadFailure() {
	if m == nil {
		return
	}
	m.loadFailures.Inc()
}

func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
