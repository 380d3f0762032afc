package portal

import (
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
)

// User-facing page messages. Exported ones are asserted by tests and shown in
// the form message area; the list-area strings are baked into the template.
const (
	MsgValidation      = "Please fill in all required fields before booking."
	MsgSubmitted       = "Appointment request submitted!"
	MsgSubmitFailed    = "Could not submit your appointment. Please try again."
	MsgRecordedLocally = "Appointment request recorded locally."

	MsgLoadError = "Unable to load appointments right now. Please try again later."
	MsgEmptyList = "No upcoming appointments yet."
)

// pageData is everything one render of the booking page needs.
type pageData struct {
	ClinicName   string
	Year         int
	Services     []booking.Service
	Dentists     []booking.Dentist
	Appointments []booking.Appointment
	LoadError    bool
	Message      string
	MessageKind  string // "error", "success" or "info"
	Form         booking.Form
}

// sortAppointments orders the list ascending by scheduled start, in place.
// Zero (unparseable) starts sort first. The sort is stable so same-time
// entries keep their incoming order.
func sortAppointments(appts []booking.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].ScheduledStart.Before(appts[j].ScheduledStart)
	})
}

// renderPage sorts the appointment list and writes the full page. Every
// render replaces the whole page; nothing is patched incrementally.
func renderPage(w io.Writer, data pageData) error {
	sortAppointments(data.Appointments)
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return pageTemplate.Execute(w, data)
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "Unscheduled"
	}
	return t.Format("Mon, Jan 2 2006 at 3:04 PM")
}

var pageTemplate = template.Must(template.New("booking").Funcs(template.FuncMap{
	"formatWhen": formatWhen,
}).Parse(bookingPageHTML))

const bookingPageHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.ClinicName}} | Book an appointment</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    :root {
      --primary: #0e7490;
      --primary-dark: #155e75;
      --text: #1f2937;
      --muted: #6b7280;
      --border: #e5e7eb;
      --bg: #f9fafb;
      --white: #ffffff;
      --success: #10b981;
      --error: #dc2626;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
      background: var(--bg);
      color: var(--text);
      line-height: 1.5;
    }
    .header {
      background: var(--primary);
      color: var(--white);
      padding: 16px 24px;
      display: flex;
      align-items: center;
      justify-content: space-between;
    }
    .header button {
      background: var(--white);
      color: var(--primary-dark);
      border: none;
      border-radius: 8px;
      padding: 10px 16px;
      font-weight: 600;
      cursor: pointer;
    }
    main { max-width: 860px; margin: 24px auto; padding: 0 16px; display: grid; gap: 24px; }
    section { background: var(--white); border: 1px solid var(--border); border-radius: 12px; padding: 20px; }
    h2 { margin-bottom: 12px; font-size: 1.1rem; }
    .appointment-card {
      display: flex; gap: 12px; align-items: center;
      border: 1px solid var(--border); border-radius: 8px;
      padding: 12px; margin-bottom: 8px;
    }
    .avatar {
      width: 36px; height: 36px; border-radius: 50%;
      background: var(--primary); color: var(--white);
      display: flex; align-items: center; justify-content: center; font-weight: 700;
    }
    .appointment-meta { display: flex; flex-direction: column; }
    .appointment-meta .muted { color: var(--muted); font-size: 0.9rem; }
    .status { margin-left: auto; font-size: 0.8rem; color: var(--primary-dark); border: 1px solid var(--border); border-radius: 999px; padding: 2px 10px; }
    .placeholder, .load-error { color: var(--muted); padding: 12px 0; }
    .load-error { color: var(--error); }
    form { display: grid; gap: 12px; }
    label { font-size: 0.9rem; color: var(--muted); display: block; }
    input, select, textarea {
      width: 100%; padding: 10px; border: 1px solid var(--border); border-radius: 8px; font-size: 1rem;
    }
    .row { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; }
    .actions { display: flex; gap: 12px; }
    .actions button {
      border-radius: 8px; padding: 10px 16px; font-weight: 600; cursor: pointer; border: 1px solid var(--border);
    }
    .actions button[type=submit] { background: var(--primary); color: var(--white); border: none; }
    #form-message { min-height: 1.2em; font-size: 0.95rem; }
    #form-message.error { color: var(--error); }
    #form-message.success { color: var(--success); }
    #form-message.info { color: var(--muted); }
    footer { text-align: center; color: var(--muted); padding: 24px 0; font-size: 0.9rem; }
  </style>
</head>
<body>
  <header class="header">
    <h1>{{.ClinicName}}</h1>
    <button id="open-booking" type="button">Book an appointment</button>
  </header>
  <main>
    <section id="appointments-section">
      <h2>Upcoming appointments</h2>
      <div id="appointments-list">
        {{if .LoadError}}
        <p class="load-error">` + MsgLoadError + `</p>
        {{else if not .Appointments}}
        <p class="placeholder">` + MsgEmptyList + `</p>
        {{else}}
        {{range .Appointments}}
        <article class="appointment-card">
          <span class="avatar">{{.PatientInitial}}</span>
          <div class="appointment-meta">
            <strong>{{.PatientName}}</strong>
            <span class="muted">{{.DentistName}}</span>
            <span class="muted">{{formatWhen .ScheduledStart}}</span>
          </div>
          <span class="status">{{.Status}}</span>
        </article>
        {{end}}
        {{end}}
      </div>
    </section>
    <section id="booking-card">
      <h2>Book an appointment</h2>
      <form id="booking-form" method="post" action="/book">
        <p id="form-message"{{if .MessageKind}} class="{{.MessageKind}}"{{end}}>{{.Message}}</p>
        <div class="row">
          <div>
            <label for="firstName">First name</label>
            <input id="firstName" name="firstName" value="{{.Form.FirstName}}">
          </div>
          <div>
            <label for="lastName">Last name</label>
            <input id="lastName" name="lastName" value="{{.Form.LastName}}">
          </div>
        </div>
        <div>
          <label for="email">Email</label>
          <input id="email" name="email" type="email" value="{{.Form.Email}}">
        </div>
        <div>
          <label for="service-select">Service</label>
          <select id="service-select" name="serviceId">
            <option value="">Select a service</option>
            {{range .Services}}<option value="{{.ID}}"{{if eq (printf "%d" .ID) $.Form.ServiceID}} selected{{end}}>{{.Label}}</option>
            {{end}}
          </select>
        </div>
        <div>
          <label for="dentist-select">Dentist</label>
          <select id="dentist-select" name="dentistId">
            <option value="">Select a dentist</option>
            {{range .Dentists}}<option value="{{.ID}}"{{if eq (printf "%d" .ID) $.Form.DentistID}} selected{{end}}>{{.Label}}</option>
            {{end}}
          </select>
        </div>
        <div class="row">
          <div>
            <label for="date">Date</label>
            <input id="date" name="date" type="date" value="{{.Form.Date}}">
          </div>
          <div>
            <label for="time">Time</label>
            <input id="time" name="time" type="time" value="{{.Form.Time}}">
          </div>
        </div>
        <div>
          <label for="notes">Notes (optional)</label>
          <textarea id="notes" name="notes" rows="3">{{.Form.Notes}}</textarea>
        </div>
        <div class="actions">
          <button type="submit">Book appointment</button>
          <button id="reset-form" type="reset">Reset</button>
        </div>
      </form>
    </section>
  </main>
  <footer>&copy; <span id="year">{{.Year}}</span> {{.ClinicName}}</footer>
  <script>
    document.getElementById('open-booking').addEventListener('click', function () {
      document.getElementById('booking-card').scrollIntoView({ behavior: 'smooth' });
      document.getElementById('firstName').focus();
    });
  </script>
</body>
</html>
`
