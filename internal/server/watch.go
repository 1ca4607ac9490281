package server

import (
	"net/http"
	"strings"
)

type watchPageData struct {
	ID        string
	Filename  string
	Duration  string
	CreatedAt string
	SizeBytes int64
}

// handleWatch renders the human-facing playback page for a handle. The page
// embeds a player that fetches /api/video/{id}; unknown handles get the
// presentational not-found page rather than a bare status.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/watch/")
	rec, ok := s.store.Get(id)
	if !ok || id == "" {
		s.renderNotFound(w)
		return
	}

	s.renderPage(w, http.StatusOK, watchTmpl, watchPageData{
		ID:        rec.ID,
		Filename:  rec.Filename,
		Duration:  rec.Duration,
		CreatedAt: rec.CreatedAt.Format("2006-01-02 15:04 UTC"),
		SizeBytes: rec.SizeBytes,
	})
}

func (s *Server) handleRecordingPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderPage(w, http.StatusOK, recordingTmpl, nil)
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	s.renderPage(w, http.StatusNotFound, notFoundTmpl, nil)
}
