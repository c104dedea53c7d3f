package upload

import (
	"context"
	"encoding/json"
	"fmt"
)

// MaxUploadSize is the media payload size ceiling, in bytes. Payloads above
// it are rejected with a 413 failure before any upload is attempted.
const MaxUploadSize = 100 * 1024 * 1024

// UploadError is a structured big-upload failure. Code mirrors the HTTP
// status the proxy renders it with.
type UploadError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (%d): %s", e.Code, e.Message)
}

// NoMediaError builds the 400 failure for a send call without a media
// payload. media is the method's media field name ("document", "photo", ...).
func NoMediaError(media string) *UploadError {
	return &UploadError{
		Code:    400,
		Message: fmt.Sprintf("Bad Request: there is no %s in the request", media),
	}
}

// TooLargeError builds the 413 failure for an oversized media payload.
func TooLargeError() *UploadError {
	return &UploadError{
		Code:    413,
		Message: "Request Entity Too Large",
	}
}

// Config enables the big-upload path. Both values must be present; the
// absence of either silently disables the path and the proxy falls through
// to plain HTTP forwarding.
type Config struct {
	// APIID is the protocol application identifier.
	APIID int

	// APIHash is the matching application secret.
	APIHash string
}

// Enabled reports whether both required configuration values are present.
func (c Config) Enabled() bool {
	return c.APIID != 0 && c.APIHash != ""
}

// Uploader is the big-upload collaborator. Send performs the upload through
// the direct protocol and returns the normalized message record: a Bot
// API-shaped message object including a raw_message field with the
// protocol-level message.
//
// Implementations are expected to reuse the per-bot session credential
// through a SessionStore to avoid repeated handshake cost; concurrent
// first-time session creation for the same bot is last-write-wins, same as
// every other cache write.
type Uploader interface {
	Send(ctx context.Context, token, method string, req *MediaRequest) (json.RawMessage, error)
}

// SessionStore persists per-bot protocol session credentials between calls.
type SessionStore interface {
	// Load returns the stored session credential, or cache.ErrNotFound.
	Load(ctx context.Context, botID int64) (string, error)

	// Store saves the session credential, replacing any previous one.
	Store(ctx context.Context, botID int64, session string) error
}
