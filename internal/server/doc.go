// Package server implements the HTTP surface of the screen-recording
// intake tool: the capture UI, the upload endpoint, handle-based playback
// and download, status endpoints, and the session-gated admin pages.
package server
