// Package booking holds the canonical view models for the booking page and
// the form-to-payload pipeline behind the booking form. Upstream records with
// inconsistent field naming are normalized into these types at the API client
// boundary, so everything past that point works with one shape.
package booking

import (
	"fmt"
	"strings"
	"time"
)

// StatusPending is the default appointment status when upstream omits one and
// the initial status of every new booking request.
const StatusPending = "Pending"

// SlotDuration is the fixed appointment length used to compute scheduledEnd.
// The selected service's own duration is intentionally not consulted.
const SlotDuration = 30 * time.Minute

// Service is a bookable treatment, used for selector display only.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
}

// Label returns the selector option text for the service.
func (s Service) Label() string {
	return fmt.Sprintf("%s (%d min, $%.2f)", s.Name, s.DurationMinutes, s.Price)
}

// Dentist is a practitioner, used for selector display only.
type Dentist struct {
	ID             int64
	FirstName      string
	LastName       string
	Specialization string
}

// DisplayName returns "Dr. First Last", tolerating partially filled names.
func (d Dentist) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
	if name == "" {
		return "Dr. (unnamed)"
	}
	return "Dr. " + name
}

// Label returns the selector option text for the dentist.
func (d Dentist) Label() string {
	if spec := strings.TrimSpace(d.Specialization); spec != "" {
		return d.DisplayName() + " (" + spec + ")"
	}
	return d.DisplayName()
}

// Appointment is a single entry in the rendered appointment list.
type Appointment struct {
	ID             string
	PatientName    string
	DentistName    string
	ScheduledStart time.Time
	Status         string
}

// PatientInitial returns the uppercased first letter of the patient name for
// the card avatar, or "?" when the name is empty.
func (a Appointment) PatientInitial() string {
	name := strings.TrimSpace(a.PatientName)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(name[:1])
}

// Request is the JSON payload posted to the upstream booking endpoint.
// Timestamps are local ISO-8601 without a zone offset, matching what the
// backend expects (e.g. "2024-06-01T09:00:00").
type Request struct {
	PatientFirstName string `json:"patientFirstName"`
	PatientLastName  string `json:"patientLastName"`
	PatientEmail     string `json:"patientEmail"`
	PatientPhone     string `json:"patientPhone"`
	ServiceID        int64  `json:"serviceId"`
	DentistID        int64  `json:"dentistId"`
	ScheduledStart   string `json:"scheduledStart"`
	ScheduledEnd     string `json:"scheduledEnd"`
	Notes            string `json:"notes"`
	Status           string `json:"status"`
}
