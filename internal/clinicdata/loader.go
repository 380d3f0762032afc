// Package clinicdata loads the booking page's reference data (services,
// dentists, appointments) with an API-first, mock-file-fallback policy.
package clinicdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
	"github.com/brightsmile-dental/booking-portal/internal/clinicapi"
	"github.com/brightsmile-dental/booking-portal/internal/observability/metrics"
	"github.com/brightsmile-dental/booking-portal/pkg/logging"
)

// API is the upstream surface the loader consumes.
type API interface {
	Configured() bool
	Services(ctx context.Context) ([]booking.Service, error)
	Dentists(ctx context.Context) ([]booking.Dentist, error)
	Appointments(ctx context.Context) ([]booking.Appointment, error)
}

// Bundle is the result of a full page load.
type Bundle struct {
	Services     []booking.Service
	Dentists     []booking.Dentist
	Appointments []booking.Appointment
}

// Loader resolves each resource from the API when possible and otherwise from
// the mock-data file. Upstream failures are swallowed here (logged and
// substituted); only a failure to read or parse the fallback file itself
// propagates to the caller.
type Loader struct {
	api       API
	mockPath  string
	forceMock bool
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
}

// NewLoader constructs a loader. api may be nil when no backend exists.
func NewLoader(api API, mockPath string, forceMock bool, m *metrics.BookingMetrics, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		api:       api,
		mockPath:  mockPath,
		forceMock: forceMock,
		metrics:   m,
		logger:    logger,
	}
}

// mockDocument is the shape of the fallback file. Absent keys decode to nil
// slices, which normalize to empty results rather than errors.
type mockDocument struct {
	Services     []clinicapi.ServiceRecord     `json:"services"`
	Dentists     []clinicapi.DentistRecord     `json:"dentists"`
	Appointments []clinicapi.AppointmentRecord `json:"appointments"`
}

func (l *Loader) useAPI() bool {
	return !l.forceMock && l.api != nil && l.api.Configured()
}

// Services returns the service list, API first.
func (l *Loader) Services(ctx context.Context) ([]booking.Service, error) {
	if l.useAPI() {
		out, err := l.api.Services(ctx)
		if err == nil {
			l.metrics.ObserveResourceLoad("services", "api")
			return out, nil
		}
		l.logger.Warn("services load failed, using mock data", "error", err)
	}
	doc, err := l.readMockFile()
	if err != nil {
		return nil, err
	}
	out := make([]booking.Service, 0, len(doc.Services))
	for _, r := range doc.Services {
		out = append(out, r.Normalize())
	}
	l.metrics.ObserveResourceLoad("services", "mock")
	return out, nil
}

// Dentists returns the dentist list, API first.
func (l *Loader) Dentists(ctx context.Context) ([]booking.Dentist, error) {
	if l.useAPI() {
		out, err := l.api.Dentists(ctx)
		if err == nil {
			l.metrics.ObserveResourceLoad("dentists", "api")
			return out, nil
		}
		l.logger.Warn("dentists load failed, using mock data", "error", err)
	}
	doc, err := l.readMockFile()
	if err != nil {
		return nil, err
	}
	out := make([]booking.Dentist, 0, len(doc.Dentists))
	for _, r := range doc.Dentists {
		out = append(out, r.Normalize())
	}
	l.metrics.ObserveResourceLoad("dentists", "mock")
	return out, nil
}

// Appointments returns the appointment list, API first.
func (l *Loader) Appointments(ctx context.Context) ([]booking.Appointment, error) {
	if l.useAPI() {
		out, err := l.api.Appointments(ctx)
		if err == nil {
			l.metrics.ObserveResourceLoad("appointments", "api")
			return out, nil
		}
		l.logger.Warn("appointments load failed, using mock data", "error", err)
	}
	doc, err := l.readMockFile()
	if err != nil {
		return nil, err
	}
	out := make([]booking.Appointment, 0, len(doc.Appointments))
	for _, r := range doc.Appointments {
		out = append(out, r.Normalize())
	}
	l.metrics.ObserveResourceLoad("appointments", "mock")
	return out, nil
}

// LoadAll fetches the three resources concurrently. Any single failure fails
// the whole bundle; the page shows its load-error state rather than a partial
// render.
func (l *Loader) LoadAll(ctx context.Context) (*Bundle, error) {
	var (
		bundle   Bundle
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		out, err := l.Services(ctx)
		if err != nil {
			fail(err)
			return
		}
		bundle.Services = out
	}()
	go func() {
		defer wg.Done()
		out, err := l.Dentists(ctx)
		if err != nil {
			fail(err)
			return
		}
		bundle.Dentists = out
	}()
	go func() {
		defer wg.Done()
		out, err := l.Appointments(ctx)
		if err != nil {
			fail(err)
			return
		}
		bundle.Appointments = out
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &bundle, nil
}

func (l *Loader) readMockFile() (*mockDocument, error) {
	raw, err := os.ReadFile(l.mockPath)
	if err != nil {
		l.metrics.ObserveLoadFailure()
		return nil, fmt.Errorf("clinicdata: read mock data: %w", err)
	}
	var doc mockDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		l.metrics.ObserveLoadFailure()
		return nil, fmt.Errorf("clinicdata: parse mock data: %w", err)
	}
	return &doc, nil
}
