package server

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewHandleShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := newHandle()
		if len(id) != handleLen {
			t.Fatalf("handle %q has length %d, want %d", id, len(id), handleLen)
		}
		for _, c := range id {
			if !strings.ContainsRune("0123456789abcdef", c) {
				t.Fatalf("handle %q contains non-hex rune %q", id, c)
			}
		}
	}
}

func TestNewHandleVariety(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		seen[newHandle()] = true
	}
	// Collisions in a 1000 sample are possible but overwhelmingly unlikely;
	// this guards against a broken source producing constants.
	if len(seen) < 990 {
		t.Fatalf("only %d distinct handles out of 1000", len(seen))
	}
}

func TestRecordingFilename(t *testing.T) {
	ts := time.Unix(1700000000, 0).UTC()
	got := recordingFilename(ts, "ab12cd34")
	want := fmt.Sprintf("support-recording-%d-ab12cd34.webm", ts.Unix())
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}
