// prometheus.go - Prometheus text-format metrics exporter
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

var serverStartTime = time.Now()

// metricsHandler exports the counters in Prometheus text format under the
// sri_ prefix.
func metricsHandler(m *Metrics, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		snapshot := m.Snapshot()

		var output strings.Builder

		output.WriteString("# HELP sri_info Application version info\n")
		output.WriteString("# TYPE sri_info gauge\n")
		output.WriteString(fmt.Sprintf("sri_info{version=\"%s\"} 1\n\n", prometheusLabel(version)))

		output.WriteString("# HELP sri_requests_total Total number of HTTP requests\n")
		output.WriteString("# TYPE sri_requests_total counter\n")
		output.WriteString(fmt.Sprintf("sri_requests_total %d\n\n", snapshot.RequestsTotal))

		output.WriteString("# HELP sri_uploads_total Total number of accepted recording uploads\n")
		output.WriteString("# TYPE sri_uploads_total counter\n")
		output.WriteString(fmt.Sprintf("sri_uploads_total %d\n\n", snapshot.UploadsTotal))

		output.WriteString("# HELP sri_upload_bytes_total Total recording bytes accepted\n")
		output.WriteString("# TYPE sri_upload_bytes_total counter\n")
		output.WriteString(fmt.Sprintf("sri_upload_bytes_total %d\n\n", snapshot.UploadBytesTotal))

		output.WriteString("# HELP sri_upload_errors_total Total number of rejected uploads\n")
		output.WriteString("# TYPE sri_upload_errors_total counter\n")
		output.WriteString(fmt.Sprintf("sri_upload_errors_total %d\n\n", snapshot.UploadErrorsTotal))

		output.WriteString("# HELP sri_relay_uploads_total Total recordings forwarded to the relay\n")
		output.WriteString("# TYPE sri_relay_uploads_total counter\n")
		output.WriteString(fmt.Sprintf("sri_relay_uploads_total %d\n\n", snapshot.RelayUploadsTotal))

		output.WriteString("# HELP sri_relay_errors_total Total failed relay hand-offs\n")
		output.WriteString("# TYPE sri_relay_errors_total counter\n")
		output.WriteString(fmt.Sprintf("sri_relay_errors_total %d\n\n", snapshot.RelayErrorsTotal))

		output.WriteString("# HELP sri_views_total Total inline playback fetches\n")
		output.WriteString("# TYPE sri_views_total counter\n")
		output.WriteString(fmt.Sprintf("sri_views_total %d\n\n", snapshot.ViewsTotal))

		output.WriteString("# HELP sri_downloads_total Total recording downloads\n")
		output.WriteString("# TYPE sri_downloads_total counter\n")
		output.WriteString(fmt.Sprintf("sri_downloads_total %d\n\n", snapshot.DownloadsTotal))

		output.WriteString("# HELP sri_login_success_total Total number of successful admin logins\n")
		output.WriteString("# TYPE sri_login_success_total counter\n")
		output.WriteString(fmt.Sprintf("sri_login_success_total %d\n\n", snapshot.LoginSuccessTotal))

		output.WriteString("# HELP sri_login_failures_total Total number of failed admin logins\n")
		output.WriteString("# TYPE sri_login_failures_total counter\n")
		output.WriteString(fmt.Sprintf("sri_login_failures_total %d\n\n", snapshot.LoginFailuresTotal))

		output.WriteString("# HELP sri_uptime_seconds Application uptime in seconds\n")
		output.WriteString("# TYPE sri_uptime_seconds counter\n")
		output.WriteString(fmt.Sprintf("sri_uptime_seconds %.0f\n", time.Since(serverStartTime).Seconds()))

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(output.String()))
	})
}

// prometheusLabel escapes a label value for the text format.
func prometheusLabel(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}
