package revalidate

import (
	"errors"
	"time"
)

// Request is the webhook payload sent by the store when content changes.
type Request struct {
	Type string `json:"type"`
	Slug string `json:"slug,omitempty"`
	ID   int64  `json:"id,omitempty"`
}

// Invalidation types sent by the store.
const (
	TypeProduct         = "product"
	TypeCategory        = "category"
	TypeProductCategory = "product_category"
)

// SuccessResponse is returned after the affected pages were purged.
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrSecretNotConfigured means the server has no shared secret and cannot
// authenticate any caller.
var ErrSecretNotConfigured = errors.New("revalidate secret not configured")

// AuthorizationError is a rejected webhook call.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "unauthorized: " + e.Reason
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
