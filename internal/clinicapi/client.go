package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
	"github.com/brightsmile-dental/booking-portal/pkg/logging"
)

const defaultTimeout = 10 * time.Second

var tracer = otel.Tracer("portal.internal.clinicapi")

// Client is a lightweight REST client for the clinic backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// New creates a clinic API client. An empty baseURL yields an unconfigured
// client whose calls fail immediately, which the loader treats as a fallback
// trigger.
func New(baseURL string, timeout time.Duration, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether a backend base URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Services returns the bookable services.
func (c *Client) Services(ctx context.Context) ([]booking.Service, error) {
	ctx, span := tracer.Start(ctx, "clinicapi.services")
	defer span.End()

	var records []ServiceRecord
	if err := c.get(ctx, "/api/services", &records); err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := make([]booking.Service, 0, len(records))
	for _, r := range records {
		out = append(out, r.Normalize())
	}
	span.SetAttributes(attribute.Int("portal.record_count", len(out)))
	return out, nil
}

// Dentists returns the practitioners.
func (c *Client) Dentists(ctx context.Context) ([]booking.Dentist, error) {
	ctx, span := tracer.Start(ctx, "clinicapi.dentists")
	defer span.End()

	var records []DentistRecord
	if err := c.get(ctx, "/api/dentists", &records); err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := make([]booking.Dentist, 0, len(records))
	for _, r := range records {
		out = append(out, r.Normalize())
	}
	span.SetAttributes(attribute.Int("portal.record_count", len(out)))
	return out, nil
}

// Appointments returns the scheduled appointments.
func (c *Client) Appointments(ctx context.Context) ([]booking.Appointment, error) {
	ctx, span := tracer.Start(ctx, "clinicapi.appointments")
	defer span.End()

	var records []AppointmentRecord
	if err := c.get(ctx, "/api/appointments", &records); err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := make([]booking.Appointment, 0, len(records))
	for _, r := range records {
		out = append(out, r.Normalize())
	}
	span.SetAttributes(attribute.Int("portal.record_count", len(out)))
	return out, nil
}

// CreateAppointment posts a booking request. Any non-2xx response is an error.
func (c *Client) CreateAppointment(ctx context.Context, req booking.Request) error {
	ctx, span := tracer.Start(ctx, "clinicapi.create_appointment")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("portal.service_id", req.ServiceID),
		attribute.Int64("portal.dentist_id", req.DentistID),
	)

	if err := c.post(ctx, "/api/appointments", req); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if !c.Configured() {
		return fmt.Errorf("clinicapi: no base URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("clinicapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clinicapi: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("clinicapi: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("clinicapi: %s: status %d: %s", path, resp.StatusCode, excerpt(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("clinicapi: %s: unmarshal response: %w", path, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	if !c.Configured() {
		return fmt.Errorf("clinicapi: no base URL configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("clinicapi: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("clinicapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clinicapi: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("clinicapi: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("clinicapi: %s: status %d: %s", path, resp.StatusCode, excerpt(respBody))
	}
	return nil
}

func excerpt(body []byte) string {
	msg := string(body)
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}
