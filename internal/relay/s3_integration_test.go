//go:build integration
// +build integration

// Validates the S3 relay against a real MinIO instance using dockertest:
// uploads a clip through the relay and fetches the returned presigned URL.
// Requires Docker available to the test runner:
//
//	go test -tags integration -v ./internal/relay
//
// Optional env: SRI_MINIO_TEST_TAG overrides the MinIO image tag.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

func TestS3RelayUploadFlow(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	tag := os.Getenv("SRI_MINIO_TEST_TAG")
	if tag == "" {
		tag = "RELEASE.2024-01-31T20-20-33Z"
	}
	minioResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        tag,
		Cmd:        []string{"server", "/data"},
		Env: []string{
			"MINIO_ROOT_USER=minio",
			"MINIO_ROOT_PASSWORD=minio123",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		t.Fatalf("could not start minio: %v", err)
	}
	defer func() { _ = pool.Purge(minioResource) }()
	minioPort := minioResource.GetPort("9000/tcp")

	// Wait for minio to be fully ready
	if err := pool.Retry(func() error {
		resp, err := http.Get("http://localhost:" + minioPort + "/minio/health/live")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("minio not ready: %d", resp.StatusCode)
		}
		return nil
	}); err != nil {
		t.Fatalf("minio not ready: %v", err)
	}

	// Create the bucket with a direct client; the relay expects it to exist.
	mc, err := minio.New("localhost:"+minioPort, &minio.Options{
		Creds:  credentials.NewStaticV4("minio", "minio123", ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %v", err)
	}
	bucket := "recordings"
	if err := mc.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
		exists, err2 := mc.BucketExists(context.Background(), bucket)
		if err2 != nil || !exists {
			t.Fatalf("could not create or verify bucket: %v / %v", err, err2)
		}
	}

	up, err := NewS3(context.Background(), S3Config{
		Endpoint:  "http://localhost:" + minioPort,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    bucket,
	})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if up.Name() != "s3" {
		t.Fatalf("relay name = %q", up.Name())
	}

	payload := []byte("fake webm payload for the relay round trip")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	link, err := up.Upload(ctx, payload, "support-recording-1700000000-ab12cd34.webm")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(link, "support-recording-1700000000-ab12cd34.webm") {
		t.Fatalf("presigned link missing object name: %s", link)
	}

	// The presigned URL must serve the exact bytes back without credentials.
	resp, err := http.Get(link)
	if err != nil {
		t.Fatalf("fetch presigned url: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("presigned fetch status = %d", resp.StatusCode)
	}
	got, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read presigned body: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("presigned bytes differ: %q", got)
	}
}
