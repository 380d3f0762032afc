package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObservePageRender("ok")
	m.ObserveResourceLoad("services", "api")
	m.ObserveResourceLoad("appointments", "mock")
	m.ObserveLoadFailure()
	m.ObserveSubmission("recorded_local")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(families))
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObservePageRender("ok")
	m.ObserveResourceLoad("services", "api")
	m.ObserveLoadFailure()
	m.ObserveSubmission("invalid")
}
