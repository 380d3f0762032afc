// Package portal serves the clinic booking page: one GET that renders the
// page from freshly loaded reference data and one POST that handles the
// booking form.
package portal

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
	"github.com/brightsmile-dental/booking-portal/internal/clinicdata"
	"github.com/brightsmile-dental/booking-portal/internal/observability/metrics"
	"github.com/brightsmile-dental/booking-portal/pkg/logging"
)

// Handler is the booking page controller.
type Handler struct {
	loader     *clinicdata.Loader
	submitter  *booking.Submitter
	clinicName string
	metrics    *metrics.BookingMetrics
	logger     *logging.Logger
}

// NewHandler creates the booking page handler.
func NewHandler(loader *clinicdata.Loader, submitter *booking.Submitter, clinicName string, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		loader:     loader,
		submitter:  submitter,
		clinicName: clinicName,
		metrics:    m,
		logger:     logger,
	}
}

// Routes returns a chi router with the booking page routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.BookingPage)
	r.Post("/book", h.SubmitBooking)
	return r
}

// HealthCheck reports liveness.
// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// BookingPage renders the booking page from freshly loaded reference data.
// GET /
func (h *Handler) BookingPage(w http.ResponseWriter, r *http.Request) {
	data := h.loadPageData(r)
	h.render(w, data)
}

// SubmitBooking handles the booking form: validate, submit (or record
// locally), then re-render with the new appointment prepended to the loaded
// list and the form cleared. Validation failures re-render with the entered
// values kept and issue no upstream call.
// POST /book
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	form := booking.ParseForm(r.PostForm)
	res := h.submitter.Submit(r.Context(), form)

	data := h.loadPageData(r)

	switch res.Outcome {
	case booking.OutcomeInvalid:
		data.Message = MsgValidation
		data.MessageKind = "error"
		data.Form = form
	case booking.OutcomeSubmitted:
		data.Message = MsgSubmitted
		data.MessageKind = "success"
	case booking.OutcomeFailed:
		data.Message = MsgSubmitFailed
		data.MessageKind = "error"
	case booking.OutcomeRecordedLocally:
		data.Message = MsgRecordedLocally
		data.MessageKind = "info"
	}

	if res.Outcome != booking.OutcomeInvalid && !data.LoadError {
		appt := res.OptimisticAppointment(data.Dentists)
		data.Appointments = append([]booking.Appointment{appt}, data.Appointments...)
	}

	h.render(w, data)
}

func (h *Handler) loadPageData(r *http.Request) pageData {
	data := pageData{
		ClinicName: h.clinicName,
		Year:       time.Now().Year(),
	}
	bundle, err := h.loader.LoadAll(r.Context())
	if err != nil {
		h.logger.Error("reference data load failed", "error", err)
		data.LoadError = true
		return data
	}
	data.Services = bundle.Services
	data.Dentists = bundle.Dentists
	data.Appointments = bundle.Appointments
	return data
}

func (h *Handler) render(w http.ResponseWriter, data pageData) {
	status := "ok"
	if data.LoadError {
		status = "load_error"
	}
	h.metrics.ObservePageRender(status)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, data); err != nil {
		h.logger.Error("failed to render booking page", "error", err)
	}
}
