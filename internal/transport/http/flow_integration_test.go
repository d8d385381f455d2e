package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cimillas/guestlist/internal/app"
	"github.com/cimillas/guestlist/internal/auth"
	"github.com/cimillas/guestlist/internal/clock"
	"github.com/cimillas/guestlist/internal/render"
	"github.com/cimillas/guestlist/internal/testutil"
	transporthttp "github.com/cimillas/guestlist/internal/transport/http"
)

type flowServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (s *flowServer) do(method, path string, body any) (int, []byte) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, r)
	req.RemoteAddr = "192.0.2.10:40000"
	if s.token != "" && strings.HasPrefix(path, "/admin/") {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func (s *flowServer) login(password string) {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/admin/login", map[string]string{"password": password})
	if status != http.StatusOK {
		s.t.Fatalf("login: expected 200, got %d (%s)", status, body)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		s.t.Fatalf("decode login: %v", err)
	}
	s.token = login.Token
}

func (s *flowServer) createVenue(req map[string]any) string {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/admin/venues", req)
	if status != http.StatusCreated {
		s.t.Fatalf("create venue: expected 201, got %d (%s)", status, body)
	}
	var venue struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &venue); err != nil {
		s.t.Fatalf("decode venue: %v", err)
	}
	return venue.ID
}

func newFlowServer(t *testing.T, now time.Time) *flowServer {
	t.Helper()

	store := testutil.NewTestSQLite(t)
	clk := clock.NewFixed(now)
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	hash, err := auth.HashPassword("door-list")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := app.NewAdminService(store.Venues(), store.Registrations(), clk)

	handler := transporthttp.NewRouter(transporthttp.Routes{
		Venues:    admin,
		Registrar: app.NewRegistrationService(store.Registrations(), clk),
		Lookup:    app.NewLookupService(store.Registrations()),
		Activator: app.NewActivationService(store.Registrations(), clk, app.WithVenueTimezone(chicago)),
		Admin:     admin,
		Auth:      auth.NewAuthenticator(hash, "flow-secret", time.Hour, clk),
		Links:     render.NewLinks("https://guestlist.example"),
		Limiter:   transporthttp.NewRateLimiter(100, 100),
		Logger:    log.New(io.Discard, "", 0),
	})
	return &flowServer{t: t, handler: handler}
}

func TestGuestListFlow_SQLite(t *testing.T) {
	// 20:30 in Chicago on the event date.
	now := time.Date(2024, 6, 16, 1, 30, 0, 0, time.UTC)
	s := newFlowServer(t, now)

	s.login("door-list")

	status, body := s.do(http.MethodPost, "/admin/venues", map[string]any{
		"name":     "Berlin",
		"address":  "954 W Belmont Ave",
		"lat":      41.9399,
		"lng":      -87.6536,
		"timezone": "America/Chicago",
	})
	if status != http.StatusCreated {
		t.Fatalf("create venue: expected 201, got %d (%s)", status, body)
	}
	var venue struct {
		ID            string  `json:"id"`
		GeofenceMiles float64 `json:"geofence_miles"`
	}
	if err := json.Unmarshal(body, &venue); err != nil {
		t.Fatalf("decode venue: %v", err)
	}
	if venue.GeofenceMiles != 0.5 {
		t.Fatalf("expected default geofence 0.5, got %v", venue.GeofenceMiles)
	}

	status, body = s.do(http.MethodGet, "/venues", nil)
	if status != http.StatusOK || !strings.Contains(string(body), venue.ID) {
		t.Fatalf("list venues: got %d (%s)", status, body)
	}

	status, body = s.do(http.MethodPost, "/register", map[string]any{
		"venue_id":    venue.ID,
		"event_date":  "2024-06-15",
		"first_name":  "Ada",
		"last_name":   "Lovelace",
		"email":       "ada@example.com",
		"phone":       "312-555-0101",
		"men_count":   1,
		"women_count": 3,
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", status, body)
	}
	var reg struct {
		VoucherCode string `json:"voucher_code"`
		QRToken     string `json:"qr_token"`
		Status      string `json:"status"`
	}
	if err := json.Unmarshal(body, &reg); err != nil {
		t.Fatalf("decode registration: %v", err)
	}
	if len(reg.VoucherCode) != 6 || !strings.HasPrefix(reg.QRToken, "QR-") || reg.Status != "REGISTERED" {
		t.Fatalf("unexpected registration %+v", reg)
	}

	status, body = s.do(http.MethodGet, "/confirmation?code="+strings.ToLower(reg.VoucherCode), nil)
	if status != http.StatusOK {
		t.Fatalf("confirmation: expected 200, got %d (%s)", status, body)
	}
	if !strings.Contains(string(body), `"total_count":4`) || !strings.Contains(string(body), `"event_date":"2024-06-15"`) {
		t.Fatalf("unexpected confirmation body %s", body)
	}

	status, body = s.do(http.MethodPost, "/activate/"+reg.QRToken, map[string]any{"lat": 41.95, "lng": -87.65})
	if status != http.StatusUnprocessableEntity || !strings.Contains(string(body), "outside_geofence") {
		t.Fatalf("far activation: expected 422 outside_geofence, got %d (%s)", status, body)
	}

	status, body = s.do(http.MethodPost, "/activate/"+reg.QRToken, map[string]any{"lat": 41.9400, "lng": -87.6530})
	if status != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d (%s)", status, body)
	}
	var act struct {
		Status     string `json:"status"`
		Activation struct {
			ExpiresAt time.Time `json:"expires_at"`
		} `json:"activation"`
	}
	if err := json.Unmarshal(body, &act); err != nil {
		t.Fatalf("decode activation: %v", err)
	}
	if act.Status != "ACTIVATED" || !act.Activation.ExpiresAt.Equal(now.Add(2*time.Hour)) {
		t.Fatalf("unexpected activation %+v", act)
	}

	status, body = s.do(http.MethodPost, "/activate/"+reg.QRToken, map[string]any{"lat": 41.9400, "lng": -87.6530})
	if status != http.StatusConflict || !strings.Contains(string(body), "already_activated") {
		t.Fatalf("second activation: expected 409, got %d (%s)", status, body)
	}

	status, body = s.do(http.MethodPost, "/activate/"+reg.QRToken, map[string]any{"lat": 91})
	if status != http.StatusConflict || !strings.Contains(string(body), "already_activated") {
		t.Fatalf("activated entry with bad coordinates: expected 409, got %d (%s)", status, body)
	}

	status, body = s.do(http.MethodGet, "/admin/registrations?status=activated&q=lovelace", nil)
	if status != http.StatusOK {
		t.Fatalf("admin registrations: expected 200, got %d (%s)", status, body)
	}
	var listing struct {
		Registrations []struct {
			VoucherCode string `json:"voucher_code"`
		} `json:"registrations"`
		Stats struct {
			Total     int `json:"total"`
			Activated int `json:"activated"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Registrations) != 1 || listing.Registrations[0].VoucherCode != reg.VoucherCode {
		t.Fatalf("unexpected listing %+v", listing)
	}
	if listing.Stats.Total != 1 || listing.Stats.Activated != 1 {
		t.Fatalf("unexpected stats %+v", listing.Stats)
	}

	status, _ = s.do(http.MethodDelete, "/admin/venues/"+venue.ID, nil)
	if status != http.StatusConflict {
		t.Fatalf("delete venue in use: expected 409, got %d", status)
	}
}

func TestGuestListFlow_OutsideWindow(t *testing.T) {
	// 17:59 in Chicago on the event date.
	s := newFlowServer(t, time.Date(2024, 6, 15, 22, 59, 0, 0, time.UTC))

	s.login("door-list")
	venueID := s.createVenue(map[string]any{"name": "Berlin", "lat": 41.9399, "lng": -87.6536, "timezone": "America/Chicago"})
	status, body := s.do(http.MethodPost, "/register", map[string]any{
		"venue_id":   venueID,
		"event_date": "2024-06-15",
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"phone":      "3125550102",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", status, body)
	}
	var reg struct {
		QRToken string `json:"qr_token"`
	}
	if err := json.Unmarshal(body, &reg); err != nil {
		t.Fatalf("decode registration: %v", err)
	}

	status, body = s.do(http.MethodPost, "/activate/"+reg.QRToken, map[string]any{"lat": 41.94, "lng": -87.653})
	if status != http.StatusUnprocessableEntity || !strings.Contains(string(body), "outside_activation_window") {
		t.Fatalf("early activation: expected 422, got %d (%s)", status, body)
	}

	status, body = s.do(http.MethodPost, "/activate/QR-unknown", map[string]any{"lat": 41.94, "lng": -87.65})
	if status != http.StatusNotFound || !strings.Contains(string(body), "Invalid QR code") {
		t.Fatalf("unknown token: expected 404, got %d (%s)", status, body)
	}
}
