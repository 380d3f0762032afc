package portal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
	"github.com/brightsmile-dental/booking-portal/internal/clinicapi"
	"github.com/brightsmile-dental/booking-portal/internal/clinicdata"
)

const testMockData = `{
	"services": [{"serviceId": 1, "name": "Cleaning", "durationMinutes": 45, "price": 90}],
	"dentists": [{"dentistId": 7, "firstName": "Maya", "lastName": "Okafor"}],
	"appointments": [{"patientName": "Ben Cole", "dentistName": "Dr. Maya Okafor", "scheduledStart": "2024-05-20T14:30:00"}]
}`

// countingUpstream is a fake clinic backend that counts POSTs.
type countingUpstream struct {
	posts atomic.Int64
	srv   *httptest.Server
}

func newCountingUpstream(t *testing.T) *countingUpstream {
	t.Helper()
	u := &countingUpstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			u.posts.Add(1)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 99}`))
			return
		}
		// Reference data endpoints.
		switch r.URL.Path {
		case "/api/services":
			_, _ = w.Write([]byte(`[{"id": 1, "name": "Cleaning", "duration": 45, "price": 90}]`))
		case "/api/dentists":
			_, _ = w.Write([]byte(`[{"id": 7, "firstName": "Maya", "lastName": "Okafor"}]`))
		case "/api/appointments":
			_, _ = w.Write([]byte(`[{"patientName": "Ben Cole", "dentistName": "Dr. Maya Okafor", "scheduledStart": "2024-05-20T14:30:00"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func newTestHandler(t *testing.T, baseURL string, mockMode bool) *Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mock-data.json")
	require.NoError(t, os.WriteFile(path, []byte(testMockData), 0o600))

	api := clinicapi.New(baseURL, time.Second, nil)
	loader := clinicdata.NewLoader(api, path, mockMode, nil, nil)
	submitter := booking.NewSubmitter(api, mockMode, nil, nil)
	return NewHandler(loader, submitter, "BrightSmile Dental", nil, nil)
}

func get(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h *Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func validBookingValues() url.Values {
	return url.Values{
		"firstName": {"Ana"},
		"lastName":  {"Silva"},
		"email":     {"ana@example.com"},
		"serviceId": {"1"},
		"dentistId": {"7"},
		"date":      {"2024-06-01"},
		"time":      {"09:00"},
	}
}

func TestBookingPageRendersMockData(t *testing.T) {
	h := newTestHandler(t, "", true)
	rec := get(t, h, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Cleaning (45 min, $90.00)")
	assert.Contains(t, body, "Dr. Maya Okafor")
	assert.Contains(t, body, "Ben Cole")
}

func TestBookingPageLoadErrorState(t *testing.T) {
	api := clinicapi.New("", time.Second, nil)
	loader := clinicdata.NewLoader(api, filepath.Join(t.TempDir(), "missing.json"), true, nil, nil)
	submitter := booking.NewSubmitter(api, true, nil, nil)
	h := NewHandler(loader, submitter, "BrightSmile Dental", nil, nil)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgLoadError)
	assert.NotContains(t, rec.Body.String(), MsgEmptyList)
}

func TestSubmitValidationFailureMakesNoUpstreamCall(t *testing.T) {
	upstream := newCountingUpstream(t)
	h := newTestHandler(t, upstream.srv.URL, false)

	values := validBookingValues()
	values.Set("email", "")
	rec := postForm(t, h, values)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, MsgValidation)
	assert.Zero(t, upstream.posts.Load(), "validation failure must not POST upstream")
	// Entered values stay in the form.
	assert.Contains(t, body, `value="Ana"`)
}

func TestSubmitMockModeRecordsLocally(t *testing.T) {
	upstream := newCountingUpstream(t)
	h := newTestHandler(t, upstream.srv.URL, true)

	rec := postForm(t, h, validBookingValues())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, MsgRecordedLocally)
	assert.Zero(t, upstream.posts.Load(), "mock mode must never POST")

	// Optimistic prepend keeps the existing appointments and adds the new one.
	assert.Contains(t, body, "Ana Silva")
	assert.Contains(t, body, "Ben Cole")

	// The form is cleared after submission.
	assert.NotContains(t, body, `value="Ana"`)
	assert.NotContains(t, body, `value="ana@example.com"`)
}

func TestSubmitPostsUpstreamOnSuccess(t *testing.T) {
	upstream := newCountingUpstream(t)
	h := newTestHandler(t, upstream.srv.URL, false)

	rec := postForm(t, h, validBookingValues())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, MsgSubmitted)
	assert.Equal(t, int64(1), upstream.posts.Load())
	assert.Contains(t, body, "Ana Silva")
}

func TestSubmitUpstreamFailureShowsMessageAndOptimisticEntry(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	h := newTestHandler(t, failing.URL, false)
	rec := postForm(t, h, validBookingValues())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, MsgSubmitFailed)
	// Reference data fell back to the mock file, so the list still renders,
	// with the tentative entry prepended.
	assert.Contains(t, body, "Ana Silva")
	assert.Contains(t, body, "Ben Cole")
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(t, "", true)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
