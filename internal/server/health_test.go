package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthWithoutRelay(t *testing.T) {
	s := newTestServer(t, nil)
	postRecording(t, s, []byte("clip"), "00:05")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("status field = %v", body["status"])
	}
	if body["recording_available"] != true {
		t.Fatalf("recording_available = %v", body["recording_available"])
	}
	if body["google_drive"] != false {
		t.Fatalf("google_drive = %v", body["google_drive"])
	}
	if body["relay"] != "none" {
		t.Fatalf("relay = %v", body["relay"])
	}
	if body["total_recordings"] != float64(1) {
		t.Fatalf("total_recordings = %v", body["total_recordings"])
	}
}

func TestHealthReportsRelayName(t *testing.T) {
	s := newTestServer(t, &fakeRelay{link: "https://provider.example/x"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["relay"] != "fake_relay" {
		t.Fatalf("relay = %v", body["relay"])
	}
	if body["google_drive"] != false {
		t.Fatalf("google_drive = %v", body["google_drive"])
	}
}

func TestInfoDescriptor(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["name"] != "screen-record-intake" {
		t.Fatalf("name = %v", body["name"])
	}
	if body["version"] != "test" {
		t.Fatalf("version = %v", body["version"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	postRecording(t, s, []byte("clip"), "00:05")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "sri_uploads_total 1") {
		t.Fatalf("metrics missing upload counter:\n%s", body)
	}
	if !strings.Contains(body, "sri_info{version=\"test\"} 1") {
		t.Fatal("metrics missing version info")
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Fatal("missing Content-Security-Policy")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("missing X-Request-Id")
	}
}
