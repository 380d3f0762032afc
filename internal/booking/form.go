package booking

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidForm is returned when any required field is missing or a numeric
// field does not parse. The page shows a single validation message, so the
// individual offending field is not reported.
var ErrInvalidForm = errors.New("booking: missing or invalid required fields")

// isoLocal is the zone-less ISO-8601 layout used for payload timestamps.
const isoLocal = "2006-01-02T15:04:05"

// Form holds the raw booking form fields as submitted, already trimmed.
// Values are kept as strings so a failed validation can re-render the form
// with whatever the patient typed.
type Form struct {
	FirstName string
	LastName  string
	Email     string
	ServiceID string
	DentistID string
	Date      string
	Time      string
	Notes     string
}

// ParseForm extracts and trims the booking form fields from posted values.
func ParseForm(values url.Values) Form {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}
	return Form{
		FirstName: get("firstName"),
		LastName:  get("lastName"),
		Email:     get("email"),
		ServiceID: get("serviceId"),
		DentistID: get("dentistId"),
		Date:      get("date"),
		Time:      get("time"),
		Notes:     get("notes"),
	}
}

// BuildRequest validates the form and assembles the upstream payload together
// with the parsed start time. scheduledEnd is always start plus SlotDuration.
func (f Form) BuildRequest() (Request, time.Time, error) {
	if f.FirstName == "" || f.LastName == "" || f.Email == "" || f.Date == "" || f.Time == "" {
		return Request{}, time.Time{}, ErrInvalidForm
	}

	serviceID, err := strconv.ParseInt(f.ServiceID, 10, 64)
	if err != nil {
		return Request{}, time.Time{}, ErrInvalidForm
	}
	dentistID, err := strconv.ParseInt(f.DentistID, 10, 64)
	if err != nil {
		return Request{}, time.Time{}, ErrInvalidForm
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", f.Date+" "+f.Time, time.Local)
	if err != nil {
		return Request{}, time.Time{}, ErrInvalidForm
	}
	end := start.Add(SlotDuration)

	req := Request{
		PatientFirstName: f.FirstName,
		PatientLastName:  f.LastName,
		PatientEmail:     f.Email,
		PatientPhone:     "",
		ServiceID:        serviceID,
		DentistID:        dentistID,
		ScheduledStart:   start.Format(isoLocal),
		ScheduledEnd:     end.Format(isoLocal),
		Notes:            f.Notes,
		Status:           StatusPending,
	}
	return req, start, nil
}
