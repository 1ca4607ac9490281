// Package relay forwards recording bytes to a third-party storage backend
// and returns an externally resolvable link. The core never depends on a
// relay for correctness; it is an alternative delivery path selected at
// startup when credentials are configured.
package relay

import "context"

// Uploader is the narrow contract the server consumes: bytes and a display
// filename in, a shareable URL or an error out. Implementations make the
// uploaded object readable to anyone holding the returned link.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
	Name() string
}
