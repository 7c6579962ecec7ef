package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmsas95/healthmate/internal/config"
	"github.com/gmsas95/healthmate/internal/schedule"
	"github.com/gmsas95/healthmate/internal/store"
)

// Wednesday morning, so "Wednesday" sits at the window's today index.
var testNow = time.Date(2025, 1, 15, 7, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Server.ReadTimeout = 30
	cfg.Server.WriteTimeout = 30
	cfg.Storage.SQLitePath = filepath.Join(dir, "health.db")
	cfg.Storage.BadgerPath = filepath.Join(dir, "badger")
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.TokenTTLHours = 168
	cfg.Security.AllowOrigins = []string{"*"}
	cfg.Security.LoginRPS = 100
	cfg.Security.LoginBurst = 100
	cfg.Schedule.WindowLength = 7
	cfg.Schedule.TodayIndex = 2

	st, err := store.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv, err := New(cfg, st, schedule.FixedClock(testNow), zap.NewNop())
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, srv *Server) string {
	t.Helper()

	creds := map[string]string{"username": "weiming", "password": "Passw0rd!"}
	resp := doJSON(t, srv, "POST", "/api/auth/register", "", creds)
	require.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, srv, "POST", "/api/auth/login", "", creds)
	require.Equal(t, 200, resp.StatusCode)

	var token struct {
		Value string `json:"token"`
	}
	decode(t, resp, &token)
	require.NotEmpty(t, token.Value)
	return token.Value
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer(t)

	resp := doJSON(t, srv, "GET", "/api/health", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestAuthRequired(t *testing.T) {
	srv := setupServer(t)

	resp := doJSON(t, srv, "GET", "/api/doses", "", nil)
	assert.Equal(t, 401, resp.StatusCode)

	resp = doJSON(t, srv, "GET", "/api/doses", "garbage-token", nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, "GET", "/api/window", token, nil)
	assert.Equal(t, 200, resp.StatusCode)

	// Duplicate registration conflicts.
	resp = doJSON(t, srv, "POST", "/api/auth/register", "",
		map[string]string{"username": "weiming", "password": "Another1!"})
	assert.Equal(t, 409, resp.StatusCode)

	// Wrong password is rejected.
	resp = doJSON(t, srv, "POST", "/api/auth/login", "",
		map[string]string{"username": "weiming", "password": "Wrong1!!"})
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, "GET", "/api/window", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp = doJSON(t, srv, "POST", "/api/auth/logout", token, nil)
	require.Equal(t, 204, resp.StatusCode)

	// The signature is still valid but the session is gone.
	resp = doJSON(t, srv, "GET", "/api/window", token, nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestWindowEndpoints(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, "GET", "/api/window", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	var window struct {
		Days []struct {
			Index int    `json:"index"`
			Day   string `json:"day"`
		} `json:"days"`
		TodayIndex int `json:"today_index"`
	}
	decode(t, resp, &window)
	require.Len(t, window.Days, 7)
	assert.Equal(t, 2, window.TodayIndex)
	assert.Equal(t, "Wednesday", window.Days[2].Day)
	assert.Equal(t, "Monday", window.Days[0].Day)

	// Selecting a past index fails, today succeeds.
	resp = doJSON(t, srv, "POST", "/api/window/select", token, map[string]int{"index": 0})
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, srv, "POST", "/api/window/select", token, map[string]int{"index": 2})
	require.Equal(t, 200, resp.StatusCode)

	var selected map[string]interface{}
	decode(t, resp, &selected)
	assert.Equal(t, "Wednesday", selected["day"])
	assert.Equal(t, "2025-01-15", selected["date"])
}

func TestDoseLifecycle(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	// Add a dose for today.
	resp := doJSON(t, srv, "POST", "/api/doses", token, map[string]interface{}{
		"name": "Paracetamol", "strength": "500", "unit": "mg",
		"form": "tablet", "time": "8:00 AM", "index": 2,
	})
	require.Equal(t, 201, resp.StatusCode)

	var dose struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &dose)
	assert.NotZero(t, dose.ID)
	assert.Empty(t, dose.Status)

	// It appears in the grouped listing.
	resp = doJSON(t, srv, "GET", "/api/doses?index=2", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	var listing struct {
		Day    string `json:"day"`
		Groups []struct {
			Time  string `json:"time"`
			Doses []struct {
				Name string `json:"name"`
			} `json:"doses"`
		} `json:"groups"`
	}
	decode(t, resp, &listing)
	assert.Equal(t, "Wednesday", listing.Day)
	require.Len(t, listing.Groups, 1)
	assert.Equal(t, "8:00 AM", listing.Groups[0].Time)

	// Commit a staged status.
	resp = doJSON(t, srv, "POST", "/api/doses/statuses", token, map[string]interface{}{
		"statuses": map[string]string{fmt.Sprint(dose.ID): "taken"},
	})
	assert.Equal(t, 204, resp.StatusCode)

	// Delete it; a second delete is a 404.
	resp = doJSON(t, srv, "DELETE", fmt.Sprintf("/api/doses/%d", dose.ID), token, nil)
	assert.Equal(t, 204, resp.StatusCode)
	resp = doJSON(t, srv, "DELETE", fmt.Sprintf("/api/doses/%d", dose.ID), token, nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestAddDoseValidationErrors(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	// Missing fields.
	resp := doJSON(t, srv, "POST", "/api/doses", token, map[string]interface{}{
		"name": "Paracetamol", "index": 2,
	})
	assert.Equal(t, 400, resp.StatusCode)

	// Past time for today (now is 07:00).
	resp = doJSON(t, srv, "POST", "/api/doses", token, map[string]interface{}{
		"name": "Paracetamol", "strength": "500", "unit": "mg",
		"form": "tablet", "time": "6:00 AM", "index": 2,
	})
	assert.Equal(t, 400, resp.StatusCode)

	// Same time on a future day is fine.
	resp = doJSON(t, srv, "POST", "/api/doses", token, map[string]interface{}{
		"name": "Paracetamol", "strength": "500", "unit": "mg",
		"form": "tablet", "time": "6:00 AM", "index": 3,
	})
	assert.Equal(t, 201, resp.StatusCode)
}

func TestAppointmentEndpoints(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, "GET", "/api/appointments/slots", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	var slots []string
	decode(t, resp, &slots)
	assert.Len(t, slots, 41)

	booking := map[string]string{
		"service": "Vaccination", "location": "Yishun Polyclinic",
		"date": "2025-01-20", "time": "09:15",
	}
	resp = doJSON(t, srv, "POST", "/api/appointments", token, booking)
	require.Equal(t, 201, resp.StatusCode)

	var appt struct {
		ID string `json:"id"`
	}
	decode(t, resp, &appt)
	require.NotEmpty(t, appt.ID)

	// Past date and off-grid slot are rejected.
	bad := map[string]string{
		"service": "Vaccination", "location": "Yishun Polyclinic",
		"date": "2025-01-10", "time": "09:15",
	}
	resp = doJSON(t, srv, "POST", "/api/appointments", token, bad)
	assert.Equal(t, 400, resp.StatusCode)

	bad["date"], bad["time"] = "2025-01-20", "09:10"
	resp = doJSON(t, srv, "POST", "/api/appointments", token, bad)
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, srv, "GET", "/api/appointments", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	var appts []map[string]interface{}
	decode(t, resp, &appts)
	assert.Len(t, appts, 1)

	resp = doJSON(t, srv, "DELETE", "/api/appointments/"+appt.ID, token, nil)
	assert.Equal(t, 204, resp.StatusCode)
	resp = doJSON(t, srv, "DELETE", "/api/appointments/"+appt.ID, token, nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestFacilityEndpoints(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, "GET", "/api/facilities?q=mount", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	var results []map[string]interface{}
	decode(t, resp, &results)
	assert.Len(t, results, 3)

	resp = doJSON(t, srv, "GET", "/api/facilities?kind=polyclinic", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(t, resp, &results)
	assert.Len(t, results, 19)

	resp = doJSON(t, srv, "GET", "/api/facilities?kind=spa", token, nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, srv, "GET", "/api/facilities/nearest?lat=1.4296&lon=103.8355&limit=2", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	var ranked []struct {
		Name string `json:"name"`
	}
	decode(t, resp, &ranked)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Yishun Polyclinic", ranked[0].Name)

	resp = doJSON(t, srv, "GET", "/api/facilities/services", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	var services []string
	decode(t, resp, &services)
	assert.Len(t, services, 7)
}

func TestProfileEndpoints(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, "GET", "/api/profile", token, nil)
	assert.Equal(t, 404, resp.StatusCode)

	resp = doJSON(t, srv, "PUT", "/api/profile", token, map[string]string{
		"fullName": "Tan Wei Ming", "phoneNumber": "91234567",
	})
	assert.Equal(t, 204, resp.StatusCode)

	resp = doJSON(t, srv, "PUT", "/api/profile", token, map[string]string{
		"fullName": "Tan Wei Ming", "phoneNumber": "123",
	})
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, srv, "GET", "/api/profile", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	var p map[string]interface{}
	decode(t, resp, &p)
	assert.Equal(t, "Tan Wei Ming", p["fullName"])
}

func TestLoginRateLimit(t *testing.T) {
	srv := setupServer(t)
	srv.config.Security.LoginRPS = 0.001
	srv.config.Security.LoginBurst = 2

	// Routes were built in setupServer; rebuild with the tight limit.
	srv2, err := New(srv.config, srv.store, schedule.FixedClock(testNow), zap.NewNop())
	require.NoError(t, err)

	creds := map[string]string{"username": "ghost", "password": "Passw0rd!"}
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp := doJSON(t, srv2, "POST", "/api/auth/login", "", creds)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, 429, codes[2])
}

func TestMetricsEndpoints(t *testing.T) {
	srv := setupServer(t)

	resp := doJSON(t, srv, "GET", "/api/metrics", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	var snapshot map[string]interface{}
	decode(t, resp, &snapshot)
	assert.Contains(t, snapshot, "doses_added")

	resp = doJSON(t, srv, "GET", "/metrics", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(body), "healthmate_")
}
