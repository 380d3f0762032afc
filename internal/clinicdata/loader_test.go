package clinicdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile-dental/booking-portal/internal/booking"
)

// mockAPI counts calls and returns canned results or errors.
type mockAPI struct {
	configured bool
	err        error
	calls      int

	services     []booking.Service
	dentists     []booking.Dentist
	appointments []booking.Appointment
}

func (m *mockAPI) Configured() bool { return m.configured }

func (m *mockAPI) Services(_ context.Context) ([]booking.Service, error) {
	m.calls++
	return m.services, m.err
}

func (m *mockAPI) Dentists(_ context.Context) ([]booking.Dentist, error) {
	m.calls++
	return m.dentists, m.err
}

func (m *mockAPI) Appointments(_ context.Context) ([]booking.Appointment, error) {
	m.calls++
	return m.appointments, m.err
}

func writeMockFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mock-data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleMock = `{
	"services": [{"serviceId": 1, "name": "Cleaning", "durationMinutes": 45, "price": 90}],
	"dentists": [{"dentistId": 7, "firstName": "Maya", "lastName": "Okafor"}],
	"appointments": [{"patientName": "Ben Cole", "dentistName": "Dr. Maya Okafor", "scheduledStart": "2024-05-20T14:30:00"}]
}`

func TestLoaderPrefersAPI(t *testing.T) {
	api := &mockAPI{
		configured: true,
		services:   []booking.Service{{ID: 3, Name: "Exam"}},
	}
	l := NewLoader(api, "does-not-exist.json", false, nil, nil)

	services, err := l.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Exam", services[0].Name)
	assert.Equal(t, 1, api.calls)
}

func TestLoaderFallsBackOnAPIError(t *testing.T) {
	api := &mockAPI{configured: true, err: errors.New("boom")}
	path := writeMockFile(t, sampleMock)
	l := NewLoader(api, path, false, nil, nil)

	services, err := l.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Cleaning", services[0].Name)
}

func TestLoaderForcedMockSkipsAPI(t *testing.T) {
	api := &mockAPI{configured: true, services: []booking.Service{{ID: 3}}}
	path := writeMockFile(t, sampleMock)
	l := NewLoader(api, path, true, nil, nil)

	services, err := l.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Cleaning", services[0].Name)
	assert.Zero(t, api.calls, "forced mock mode must not call the API")
}

func TestLoaderMissingKeyYieldsEmpty(t *testing.T) {
	path := writeMockFile(t, `{"services": []}`)
	l := NewLoader(nil, path, true, nil, nil)

	dentists, err := l.Dentists(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dentists)

	appts, err := l.Appointments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestLoaderFallbackUnreadable(t *testing.T) {
	l := NewLoader(nil, filepath.Join(t.TempDir(), "missing.json"), true, nil, nil)
	_, err := l.Services(context.Background())
	require.Error(t, err)
}

func TestLoaderFallbackMalformed(t *testing.T) {
	path := writeMockFile(t, `{not json`)
	l := NewLoader(nil, path, true, nil, nil)
	_, err := l.Appointments(context.Background())
	require.Error(t, err)
}

func TestLoadAllBundlesEverything(t *testing.T) {
	path := writeMockFile(t, sampleMock)
	l := NewLoader(nil, path, true, nil, nil)

	bundle, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, bundle.Services, 1)
	assert.Len(t, bundle.Dentists, 1)
	assert.Len(t, bundle.Appointments, 1)
	assert.Equal(t, "Ben Cole", bundle.Appointments[0].PatientName)
}

func TestLoadAllFailsWhole(t *testing.T) {
	l := NewLoader(nil, filepath.Join(t.TempDir(), "missing.json"), true, nil, nil)
	bundle, err := l.LoadAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, bundle, "no partial bundle on failure")
}
