package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"screen-record-intake/internal/store"
)

func seedRecording(s *Server, id string) store.Recording {
	rec := store.Recording{
		ID:          id,
		Filename:    recordingFilename(time.Unix(1700000000, 0), id),
		Data:        []byte("webm-bytes"),
		Duration:    "00:42",
		CreatedAt:   time.Unix(1700000000, 0).UTC(),
		SizeBytes:   10,
		ContentType: store.ContentType,
	}
	s.store.Put(rec)
	return rec
}

func TestWatchPageRendersRecording(t *testing.T) {
	s := newTestServer(t, nil)
	seedRecording(s, "ab12cd34")

	req := httptest.NewRequest(http.MethodGet, "/watch/ab12cd34", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/api/video/ab12cd34") {
		t.Fatal("page does not embed the playback route")
	}
	if !strings.Contains(body, "/api/download/ab12cd34") {
		t.Fatal("page does not link the download route")
	}
}

func TestWatchPageUnknownHandle(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/watch/doesnotex", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Recording not found") {
		t.Fatal("missing presentational not-found page")
	}
}

func TestVideoUnknownHandleIsBare404(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/video/doesnotex", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<html") {
		t.Fatal("machine route returned an HTML page")
	}
}

func TestDownloadSetsAttachmentDisposition(t *testing.T) {
	s := newTestServer(t, nil)
	stored := seedRecording(s, "ab12cd34")

	req := httptest.NewRequest(http.MethodGet, "/api/download/ab12cd34", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, stored.Filename) {
		t.Fatalf("content disposition = %q", cd)
	}
}

func TestVideoSetsInlineDisposition(t *testing.T) {
	s := newTestServer(t, nil)
	seedRecording(s, "ab12cd34")

	req := httptest.NewRequest(http.MethodGet, "/api/video/ab12cd34", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if cd := rec.Header().Get("Content-Disposition"); cd != "inline" {
		t.Fatalf("content disposition = %q, want inline", cd)
	}
}

func TestIndexRedirectsToRecordingPage(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/recording" {
		t.Fatalf("location = %q", loc)
	}
}

func TestRecordingPageServesCaptureUI(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/recording", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "getDisplayMedia") {
		t.Fatal("capture page missing screen-capture script")
	}
}
