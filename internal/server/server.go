package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"screen-record-intake/internal/relay"
	"screen-record-intake/internal/store"
)

// Bounded in-memory log capacities. The upload log backs the admin surface
// and the /health recording count; the error log backs /admin/logs.
const (
	uploadLogCap = 100
	errorLogCap  = 50
)

// BuildInfo identifies the running binary on status surfaces.
type BuildInfo struct {
	Version string
	Commit  string
}

type Config struct {
	Addr           string // e.g. ":8080"
	BaseURL        string // public base URL used to build watch links
	Build          BuildInfo
	Auth           AuthConfig
	Relay          relay.Uploader // nil when no relay credential is configured
	MaxUploadBytes int64          // 0 = no limit
}

type Server struct {
	cfg        Config
	httpServer *http.Server

	store     store.Store
	uploadLog *store.Ring[UploadEvent]
	errorLog  *store.Ring[ErrorEntry]
	metrics   *Metrics
	breaker   *CircuitBreaker
}

// UploadEvent is one accepted upload, kept in the bounded upload log.
type UploadEvent struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Duration   string    `json:"duration"`
	UploadedAt time.Time `json:"uploaded_at"`
	SizeBytes  int64     `json:"size_bytes"`
	Storage    string    `json:"storage"` // "google_drive", "s3" or "local"
}

// ErrorEntry is one handler-boundary failure, kept in the bounded error log.
type ErrorEntry struct {
	Time    time.Time `json:"time"`
	Scope   string    `json:"scope"`
	Message string    `json:"message"`
}

func New(cfg Config) *Server {
	s := &Server{
		cfg:       cfg,
		store:     store.NewMemory(),
		uploadLog: store.NewRing[UploadEvent](uploadLogCap),
		errorLog:  store.NewRing[ErrorEntry](errorLogCap),
		metrics:   &Metrics{},
		breaker:   NewCircuitBreaker(5, 30*time.Second),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/recording", s.handleRecordingPage)
	mux.HandleFunc("/watch/", s.handleWatch)

	mux.HandleFunc("/api/store-recording", s.handleStoreRecording)
	mux.HandleFunc("/api/video/", s.handleVideo)
	mux.HandleFunc("/api/download/", s.handleDownload)
	mux.HandleFunc("/api/info", s.handleInfo)

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", metricsHandler(s.metrics, cfg.Build.Version))

	mux.HandleFunc("/admin/login", s.handleAdminLogin)
	mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	mux.Handle("/admin", s.cfg.Auth.requireAuth(http.HandlerFunc(s.handleAdminDashboard)))
	mux.Handle("/admin/logs", s.cfg.Auth.requireAuth(http.HandlerFunc(s.handleAdminLogs)))

	// Wrap middleware: requestID -> logging -> security headers -> mux
	var handler http.Handler = mux
	handler = securityHeadersMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.renderNotFound(w)
		return
	}
	http.Redirect(w, r, "/recording", http.StatusFound)
}

// logError records a handler-boundary failure in the bounded error log and
// emits it on the structured logger. Internal failures never crash the
// process; they end here and become an HTTP response.
func (s *Server) logError(scope string, err error) {
	s.errorLog.Append(ErrorEntry{
		Time:    time.Now().UTC(),
		Scope:   scope,
		Message: err.Error(),
	})
	Error(scope, nil, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
