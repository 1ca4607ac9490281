package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"screen-record-intake/internal/store"
)

// relayTimeout bounds one relay call. Uploads themselves carry no timeout;
// a stalled client simply ties up its own request.
const relayTimeout = 5 * time.Minute

// handleRemintAttempts bounds the collision re-mint loop in the upload
// handler. Past the bound the insert proceeds and overwrites, matching the
// store contract.
const handleRemintAttempts = 3

// storeRecordingResp is the JSON response for a successful upload. The URL
// is either the relay's shareable link or a local /watch link.
type storeRecordingResp struct {
	Success      bool   `json:"success"`
	RecordingURL string `json:"recording_url"`
	RecordingID  string `json:"recording_id"`
	Message      string `json:"message"`
}

// handleStoreRecording accepts the multipart upload from the capture UI:
// a "recording" file part and a "duration" display string. When a relay is
// configured the bytes are forwarded and the provider link returned; the
// relay and local paths are mutually exclusive per upload. Without a relay
// the bytes go into the in-memory store under a fresh handle and the
// response carries a /watch URL.
func (s *Server) handleStoreRecording(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}

	file, _, err := r.FormFile("recording")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.metrics.RecordUploadError()
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "recording too large"})
			return
		}
		s.metrics.RecordUploadError()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no recording file provided"})
		return
	}
	defer func() { _ = file.Close() }()

	duration := r.FormValue("duration")
	if duration == "" {
		duration = "00:00"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.metrics.RecordUploadError()
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "recording too large"})
			return
		}
		s.logError("store_recording", err)
		s.metrics.RecordUploadError()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not read recording"})
		return
	}

	now := time.Now().UTC()
	id := newHandle()
	// Re-mint on the vanishingly rare handle collision; past the bound the
	// insert overwrites silently per the store contract.
	for i := 0; i < handleRemintAttempts; i++ {
		if _, taken := s.store.Get(id); !taken {
			break
		}
		id = newHandle()
	}
	filename := recordingFilename(now, id)

	if s.cfg.Relay != nil {
		s.relayRecording(w, r, data, id, filename, duration, now)
		return
	}

	s.store.Put(store.Recording{
		ID:          id,
		Filename:    filename,
		Data:        data,
		Duration:    duration,
		CreatedAt:   now,
		SizeBytes:   int64(len(data)),
		ContentType: store.ContentType,
	})

	watchURL := strings.TrimRight(s.cfg.BaseURL, "/") + "/watch/" + id
	s.recordUpload(UploadEvent{
		ID:         id,
		Filename:   filename,
		URL:        watchURL,
		Duration:   duration,
		UploadedAt: now,
		SizeBytes:  int64(len(data)),
		Storage:    "local",
	})

	writeJSON(w, http.StatusOK, storeRecordingResp{
		Success:      true,
		RecordingURL: watchURL,
		RecordingID:  id,
		Message:      "Recording stored successfully",
	})
}

// relayRecording forwards the bytes through the configured relay under the
// circuit breaker. A failed relay upload is not retried; the 500 carries a
// fallback hint so the client can offer a local download instead.
func (s *Server) relayRecording(w http.ResponseWriter, r *http.Request, data []byte, id, filename, duration string, now time.Time) {
	ctx, cancel := context.WithTimeout(r.Context(), relayTimeout)
	defer cancel()

	var link string
	err := s.breaker.Execute(func() error {
		var uerr error
		link, uerr = s.cfg.Relay.Upload(ctx, data, filename)
		return uerr
	})
	if err != nil {
		s.logError("relay_upload", err)
		s.metrics.RecordRelayError()
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    fmt.Sprintf("%s upload failed: %v", s.cfg.Relay.Name(), err),
			"fallback": true,
		})
		return
	}

	s.metrics.RecordRelayUpload()
	s.recordUpload(UploadEvent{
		ID:         id,
		Filename:   filename,
		URL:        link,
		Duration:   duration,
		UploadedAt: now,
		SizeBytes:  int64(len(data)),
		Storage:    s.cfg.Relay.Name(),
	})

	writeJSON(w, http.StatusOK, storeRecordingResp{
		Success:      true,
		RecordingURL: link,
		RecordingID:  id,
		Message:      "Recording uploaded successfully",
	})
}

func (s *Server) recordUpload(ev UploadEvent) {
	s.uploadLog.Append(ev)
	s.metrics.RecordUpload(ev.SizeBytes)
}
