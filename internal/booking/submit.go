package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brightsmile-dental/booking-portal/internal/observability/metrics"
	"github.com/brightsmile-dental/booking-portal/pkg/logging"
)

// Creator posts a booking request to the upstream backend.
type Creator interface {
	CreateAppointment(ctx context.Context, req Request) error
	Configured() bool
}

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeInvalid         Outcome = "invalid"
	OutcomeSubmitted       Outcome = "submitted"
	OutcomeRecordedLocally Outcome = "recorded_local"
	OutcomeFailed          Outcome = "failed"
)

// Result carries the submission outcome plus the validated payload, which the
// page uses to synthesize the optimistic appointment entry.
type Result struct {
	Outcome Outcome
	Request Request
	Start   time.Time
}

// Submitter applies the submission policy: validate first, then either POST
// upstream or record the booking locally when mock mode is on (or no backend
// is configured).
type Submitter struct {
	api      Creator
	mockMode bool
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewSubmitter constructs a submitter. api may be nil when no backend exists.
func NewSubmitter(api Creator, mockMode bool, m *metrics.BookingMetrics, logger *logging.Logger) *Submitter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Submitter{
		api:      api,
		mockMode: mockMode,
		metrics:  m,
		logger:   logger,
	}
}

// Submit validates the form and applies the submission policy. Validation
// failure short-circuits before any upstream call. A failed upstream POST is
// reported in the outcome but does not prevent the optimistic update.
func (s *Submitter) Submit(ctx context.Context, form Form) Result {
	req, start, err := form.BuildRequest()
	if err != nil {
		s.metrics.ObserveSubmission(string(OutcomeInvalid))
		return Result{Outcome: OutcomeInvalid}
	}

	res := Result{Request: req, Start: start}

	if s.api != nil && s.api.Configured() && !s.mockMode {
		if err := s.api.CreateAppointment(ctx, req); err != nil {
			s.logger.Error("booking submission failed", "error", err,
				"service_id", req.ServiceID, "dentist_id", req.DentistID)
			res.Outcome = OutcomeFailed
		} else {
			s.logger.Info("booking submitted",
				"service_id", req.ServiceID, "dentist_id", req.DentistID,
				"scheduled_start", req.ScheduledStart)
			res.Outcome = OutcomeSubmitted
		}
	} else {
		s.logger.Info("booking recorded locally",
			"service_id", req.ServiceID, "dentist_id", req.DentistID,
			"scheduled_start", req.ScheduledStart, "scheduled_end", req.ScheduledEnd)
		res.Outcome = OutcomeRecordedLocally
	}

	s.metrics.ObserveSubmission(string(res.Outcome))
	return res
}

// OptimisticAppointment synthesizes the tentative list entry shown before any
// backend confirmation. The dentist name is resolved from the loaded dentist
// list when possible.
func (r Result) OptimisticAppointment(dentists []Dentist) Appointment {
	dentistName := "Your dentist"
	for _, d := range dentists {
		if d.ID == r.Request.DentistID {
			dentistName = d.DisplayName()
			break
		}
	}
	return Appointment{
		ID:             uuid.NewString(),
		PatientName:    r.Request.PatientFirstName + " " + r.Request.PatientLastName,
		DentistName:    dentistName,
		ScheduledStart: r.Start,
		Status:         StatusPending,
	}
}
