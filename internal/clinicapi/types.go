package clinicapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
)

// The upstream API and the mock-data file are inconsistent about field
// naming: ids arrive as "serviceId" or "id" (sometimes as strings), names as
// flat fields or nested objects, start times under several keys. The record
// types below accept every variant seen upstream and Normalize collapses them
// into one canonical shape, so nothing past this boundary branches on naming.

// flexInt64 unmarshals from a JSON number or a numeric string, degrading to
// zero instead of failing on anything else.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt64(v)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexInt64(int64(v))
		return nil
	}
	*f = 0
	return nil
}

// flexFloat unmarshals from a JSON number or a numeric string, degrading to
// zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexFloat(v)
		return nil
	}
	*f = 0
	return nil
}

// flexString unmarshals from a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = ""
			return nil
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// ServiceRecord is one element of the upstream services array.
type ServiceRecord struct {
	ServiceID       flexInt64 `json:"serviceId"`
	ID              flexInt64 `json:"id"`
	Name            string    `json:"name"`
	ServiceName     string    `json:"serviceName"`
	DurationMinutes flexInt64 `json:"durationMinutes"`
	Duration        flexInt64 `json:"duration"`
	Price           flexFloat `json:"price"`
}

// Normalize collapses the record into the canonical Service shape.
func (r ServiceRecord) Normalize() booking.Service {
	id := int64(r.ServiceID)
	if id == 0 {
		id = int64(r.ID)
	}
	name := firstNonEmpty(r.Name, r.ServiceName)
	duration := int(r.DurationMinutes)
	if duration == 0 {
		duration = int(r.Duration)
	}
	return booking.Service{
		ID:              id,
		Name:            name,
		DurationMinutes: duration,
		Price:           float64(r.Price),
	}
}

// DentistRecord is one element of the upstream dentists array.
type DentistRecord struct {
	DentistID      flexInt64 `json:"dentistId"`
	ID             flexInt64 `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"name"`
	Specialization string    `json:"specialization"`
	Specialty      string    `json:"specialty"`
}

// Normalize collapses the record into the canonical Dentist shape. A combined
// "name" field is split on the first space when the flat fields are absent.
func (r DentistRecord) Normalize() booking.Dentist {
	id := int64(r.DentistID)
	if id == 0 {
		id = int64(r.ID)
	}
	first, last := r.FirstName, r.LastName
	if first == "" && last == "" && r.FullName != "" {
		parts := strings.SplitN(strings.TrimSpace(r.FullName), " ", 2)
		first = parts[0]
		if len(parts) > 1 {
			last = parts[1]
		}
	}
	return booking.Dentist{
		ID:             id,
		FirstName:      first,
		LastName:       last,
		Specialization: firstNonEmpty(r.Specialization, r.Specialty),
	}
}

// dentistRef accepts either a nested dentist object or a plain name string.
type dentistRef struct {
	Name string
}

func (d *dentistRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		d.Name = strings.TrimSpace(s)
		return nil
	}
	var obj struct {
		Name      string `json:"name"`
		FullName  string `json:"fullName"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	name := firstNonEmpty(obj.Name, obj.FullName)
	if name == "" {
		name = strings.TrimSpace(obj.FirstName + " " + obj.LastName)
	}
	d.Name = name
	return nil
}

// nameRecord is a nested patient object.
type nameRecord struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
}

// AppointmentRecord is one element of the upstream appointments array.
type AppointmentRecord struct {
	ID               flexString  `json:"id"`
	Patient          *nameRecord `json:"patient"`
	PatientName      string      `json:"patientName"`
	PatientFirstName string      `json:"patientFirstName"`
	PatientLastName  string      `json:"patientLastName"`
	Dentist          dentistRef  `json:"dentist"`
	DentistName      string      `json:"dentistName"`
	ScheduledStart   string      `json:"scheduledStart"`
	StartTime        string      `json:"startTime"`
	AppointmentDate  string      `json:"appointmentDate"`
	Status           string      `json:"status"`
}

// Normalize collapses the record into the canonical Appointment shape. An
// unparseable start time normalizes to the zero time, which sorts first and
// renders as unscheduled. Status defaults to Pending.
func (r AppointmentRecord) Normalize() booking.Appointment {
	patient := ""
	if r.Patient != nil {
		patient = firstNonEmpty(
			strings.TrimSpace(r.Patient.FirstName+" "+r.Patient.LastName),
			r.Patient.Name,
		)
	}
	if patient == "" {
		patient = firstNonEmpty(
			r.PatientName,
			strings.TrimSpace(r.PatientFirstName+" "+r.PatientLastName),
		)
	}

	dentist := firstNonEmpty(r.Dentist.Name, r.DentistName)
	if dentist == "" {
		dentist = "Not assigned"
	}

	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = booking.StatusPending
	}

	return booking.Appointment{
		ID:             string(r.ID),
		PatientName:    strings.TrimSpace(patient),
		DentistName:    dentist,
		ScheduledStart: parseWhen(firstNonEmpty(r.ScheduledStart, r.StartTime, r.AppointmentDate)),
		Status:         status,
	}
}

// parseWhen parses the handful of timestamp layouts upstream produces.
// Zone-less layouts are interpreted in local time, matching how the page
// displays them.
func parseWhen(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
