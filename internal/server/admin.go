package server

import "net/http"

// handleAdminDashboard renders the operator dashboard: relay status, the
// customer interface link, and counter summaries. Sits behind requireAuth.
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := dashboardPageData{
		RelayConfigured: s.cfg.Relay != nil,
		StoredCount:     s.store.Len(),
		UploadEvents:    s.uploadLog.Len(),
		Metrics:         s.metrics.Snapshot(),
		Version:         s.cfg.Build.Version,
	}
	if s.cfg.Relay != nil {
		data.RelayName = s.cfg.Relay.Name()
	}

	s.renderPage(w, http.StatusOK, adminDashboardTmpl, data)
}

// handleAdminLogs renders the bounded upload and error logs, newest last.
func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"uploads": s.uploadLog.Entries(),
			"errors":  s.errorLog.Entries(),
		})
		return
	}

	s.renderPage(w, http.StatusOK, adminLogsTmpl, logsPageData{
		Uploads: s.uploadLog.Entries(),
		Errors:  s.errorLog.Entries(),
	})
}
