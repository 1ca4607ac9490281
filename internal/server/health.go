package server

import "net/http"

// handleHealth reports liveness plus the relay configuration. The
// google_drive flag is kept for monitoring compatibility; "relay" carries
// the configured provider name.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	relayName := "none"
	if s.cfg.Relay != nil {
		relayName = s.cfg.Relay.Name()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "healthy",
		"recording_available": true,
		"google_drive":        relayName == "google_drive",
		"relay":               relayName,
		"total_recordings":    s.uploadLog.Len(),
	})
}

// handleInfo returns the static service descriptor.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "screen-record-intake",
		"version": s.cfg.Build.Version,
		"commit":  s.cfg.Build.Commit,
		"features": []string{
			"screen_recording",
			"shareable_links",
			"cloud_relay",
			"admin_dashboard",
		},
	})
}
