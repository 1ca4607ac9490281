package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// handleLen is the length of an issued recording handle: the first eight
// characters of a random UUID, roughly 2^32 effective values. Collisions
// are negligible at intake volume; this is an accepted-risk choice, not a
// uniqueness guarantee.
const handleLen = 8

func newHandle() string {
	return uuid.New().String()[:handleLen]
}

// recordingFilename builds the display filename for a clip: fixed prefix,
// coarse timestamp, handle. Informational only; used for download headers
// and relay object names.
func recordingFilename(ts time.Time, id string) string {
	return fmt.Sprintf("support-recording-%d-%s.webm", ts.Unix(), id)
}
