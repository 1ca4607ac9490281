package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// handleVideo serves the raw recording bytes inline so the watch page can
// embed them in a player. Unknown handles get a bare 404; this route is
// consumed by the <video> element, not by people.
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/video/")
	rec, ok := s.store.Get(id)
	if !ok || id == "" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", rec.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(rec.SizeBytes, 10))
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Data)

	s.metrics.RecordView(rec.SizeBytes)
}

// handleDownload serves the same bytes as an attachment with the stored
// filename, for the "save a local copy" path.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/download/")
	rec, ok := s.store.Get(id)
	if !ok || id == "" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", rec.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(rec.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rec.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Data)

	s.metrics.RecordDownload(rec.SizeBytes)
}
