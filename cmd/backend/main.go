package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"screen-record-intake/internal/relay"
	"screen-record-intake/internal/server"
)

func main() {
	addr := getenvDefault("SRI_ADDR", ":8080")

	build := server.BuildInfo{
		Version: getenvDefault("SRI_VERSION", "dev"),
		Commit:  getenvDefault("SRI_COMMIT", "unknown"),
	}

	auth := server.AuthConfig{
		AdminUser:     getenvDefault("SRI_ADMIN_USER", "admin"),
		AdminPass:     getenvDefault("SRI_ADMIN_PASS", ""),
		SessionSecret: getenvDefault("SRI_SESSION_SECRET", ""),
		SessionTTL:    12 * time.Hour,
		CookieName:    "sri_session",
	}

	// Safety: refuse to start if secrets are missing.
	if auth.AdminPass == "" || auth.SessionSecret == "" {
		log.Printf("service=backend msg=%q", "missing SRI_ADMIN_PASS or SRI_SESSION_SECRET")
		os.Exit(1)
	}

	var maxUploadBytes int64
	if raw := getenvDefault("SRI_MAX_UPLOAD_BYTES", ""); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			log.Printf("service=backend msg=%q value=%s", "invalid SRI_MAX_UPLOAD_BYTES", raw)
			os.Exit(1)
		}
		maxUploadBytes = n
	}

	baseURL := getenvDefault("SRI_BASE_URL", "http://localhost:8080")

	uploader := buildRelay()

	srv := server.New(server.Config{
		Addr:           addr,
		BaseURL:        baseURL,
		Build:          build,
		Auth:           auth,
		Relay:          uploader,
		MaxUploadBytes: maxUploadBytes,
	})

	// Start the HTTP server in a background goroutine.
	// This allows us to listen for OS signals while the server runs.
	errCh := make(chan error, 1)
	go func() {
		relayName := "none"
		if uploader != nil {
			relayName = uploader.Name()
		}
		log.Printf("service=backend msg=%q addr=%s version=%s commit=%s relay=%s",
			"starting", addr, build.Version, build.Commit, relayName)
		errCh <- srv.Start()
	}()

	// Set up signal handling for graceful shutdown on SIGINT (Ctrl+C) or SIGTERM (container stop).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Block until either a shutdown signal is received or the server encounters an error.
	select {
	case sig := <-sigCh:
		// Signal received: initiate graceful shutdown.
		log.Printf("service=backend msg=%q signal=%s", "shutting_down", sig.String())
		// Give the server 5 seconds to finish in-flight requests and cleanup.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("service=backend msg=%q err=%v", "shutdown_error", err)
			os.Exit(1)
		}
		log.Printf("service=backend msg=%q", "shutdown_complete")
	case err := <-errCh:
		// Server error: exit immediately.
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "server_error", err)
			os.Exit(1)
		}
	}
}

// buildRelay picks the recording relay from the environment: Google Drive
// when credentials are present, otherwise S3 when an endpoint is set,
// otherwise none and recordings stay in process memory. A relay init
// failure is logged and the service continues without one.
func buildRelay() relay.Uploader {
	if creds := getenvDefault("SRI_GOOGLE_CREDENTIALS_JSON", ""); creds != "" {
		up, err := relay.NewDrive(context.Background(), relay.DriveConfig{
			CredentialsJSON: creds,
			FolderID:        getenvDefault("SRI_DRIVE_FOLDER_ID", ""),
		})
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "drive_relay_unavailable", err)
			return nil
		}
		return up
	}

	if endpoint := getenvDefault("SRI_S3_ENDPOINT", ""); endpoint != "" {
		up, err := relay.NewS3(context.Background(), relay.S3Config{
			Endpoint:  endpoint,
			AccessKey: getenvDefault("SRI_S3_ACCESS_KEY", ""),
			SecretKey: getenvDefault("SRI_S3_SECRET_KEY", ""),
			Bucket:    getenvDefault("SRI_S3_BUCKET", "recordings"),
		})
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "s3_relay_unavailable", err)
			return nil
		}
		return up
	}

	return nil
}

// getenvDefault reads an environment variable and returns a default value if not set.
// This helper avoids importing extra packages and keeps main.go self-contained.
func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
