package server

import "sync"

// Metrics holds application counters. Per-server instance so tests get a
// clean slate with every New.
type Metrics struct {
	mu sync.RWMutex

	// Upload metrics
	uploadsTotal      int64
	uploadBytesTotal  int64
	uploadErrorsTotal int64

	// Relay metrics
	relayUploadsTotal int64
	relayErrorsTotal  int64

	// Playback metrics
	viewsTotal         int64
	viewBytesTotal     int64
	downloadsTotal     int64
	downloadBytesTotal int64

	// Auth metrics
	loginAttemptsTotal int64
	loginSuccessTotal  int64
	loginFailuresTotal int64

	// System metrics
	requestsTotal    int64
	requestErrors5xx int64
	requestErrors4xx int64
}

// RecordUpload records an accepted upload
func (m *Metrics) RecordUpload(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsTotal++
	m.uploadBytesTotal += bytes
}

// RecordUploadError records a rejected or failed upload
func (m *Metrics) RecordUploadError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErrorsTotal++
}

// RecordRelayUpload records a successful relay hand-off
func (m *Metrics) RecordRelayUpload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relayUploadsTotal++
}

// RecordRelayError records a failed relay hand-off
func (m *Metrics) RecordRelayError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relayErrorsTotal++
}

// RecordView records an inline playback fetch
func (m *Metrics) RecordView(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewsTotal++
	m.viewBytesTotal += bytes
}

// RecordDownload records an attachment download
func (m *Metrics) RecordDownload(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadsTotal++
	m.downloadBytesTotal += bytes
}

// RecordLoginAttempt records a login attempt
func (m *Metrics) RecordLoginAttempt(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginAttemptsTotal++
	if success {
		m.loginSuccessTotal++
	} else {
		m.loginFailuresTotal++
	}
}

// RecordRequest records an HTTP request
func (m *Metrics) RecordRequest(statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsTotal++

	if statusCode >= 500 {
		m.requestErrors5xx++
	} else if statusCode >= 400 {
		m.requestErrors4xx++
	}
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		UploadsTotal:       m.uploadsTotal,
		UploadBytesTotal:   m.uploadBytesTotal,
		UploadErrorsTotal:  m.uploadErrorsTotal,
		RelayUploadsTotal:  m.relayUploadsTotal,
		RelayErrorsTotal:   m.relayErrorsTotal,
		ViewsTotal:         m.viewsTotal,
		ViewBytesTotal:     m.viewBytesTotal,
		DownloadsTotal:     m.downloadsTotal,
		DownloadBytesTotal: m.downloadBytesTotal,
		LoginAttemptsTotal: m.loginAttemptsTotal,
		LoginSuccessTotal:  m.loginSuccessTotal,
		LoginFailuresTotal: m.loginFailuresTotal,
		RequestsTotal:      m.requestsTotal,
		RequestErrors5xx:   m.requestErrors5xx,
		RequestErrors4xx:   m.requestErrors4xx,
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	UploadsTotal      int64 `json:"uploads_total"`
	UploadBytesTotal  int64 `json:"upload_bytes_total"`
	UploadErrorsTotal int64 `json:"upload_errors_total"`

	RelayUploadsTotal int64 `json:"relay_uploads_total"`
	RelayErrorsTotal  int64 `json:"relay_errors_total"`

	ViewsTotal         int64 `json:"views_total"`
	ViewBytesTotal     int64 `json:"view_bytes_total"`
	DownloadsTotal     int64 `json:"downloads_total"`
	DownloadBytesTotal int64 `json:"download_bytes_total"`

	LoginAttemptsTotal int64 `json:"login_attempts_total"`
	LoginSuccessTotal  int64 `json:"login_success_total"`
	LoginFailuresTotal int64 `json:"login_failures_total"`

	RequestsTotal    int64 `json:"requests_total"`
	RequestErrors5xx int64 `json:"request_errors_5xx"`
	RequestErrors4xx int64 `json:"request_errors_4xx"`
}
