package relay

import (
	"context"
	"testing"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantSecure   bool
		wantErr      bool
	}{
		{"minio:9000", "minio:9000", false, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://minio:9000", "minio:9000", true, false},
		{"http://minio:9000/", "minio:9000", false, false},
		{"http://minio:9000/foo", "", false, true},
		{"", "", false, true},
	}

	for _, tt := range tests {
		ep, secure, err := normalizeEndpoint(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for input %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if ep != tt.wantEndpoint || secure != tt.wantSecure {
			t.Fatalf("normalizeEndpoint(%q) = (%q,%v), want (%q,%v)", tt.in, ep, secure, tt.wantEndpoint, tt.wantSecure)
		}
	}
}

func TestNewS3IncompleteConfig(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{Endpoint: "minio:9000"})
	if err == nil {
		t.Fatalf("expected error for incomplete config")
	}
}

func TestNewDriveMissingCredentials(t *testing.T) {
	_, err := NewDrive(context.Background(), DriveConfig{})
	if err == nil {
		t.Fatalf("expected error when credentials are not configured")
	}
}
