package upyun

import (
	"errors"
	"net/http"
	"strconv"
)

// Configuration errors.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrBucketRequired   = errors.New("bucket is required")
	ErrOperatorRequired = errors.New("operator is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidEndpoint  = errors.New("invalid endpoint")
)

// Input validation errors.
var (
	ErrEmptyPath = errors.New("path is required")
	ErrNoURLs    = errors.New("no urls provided")
)

// Listing iteration conditions. Both are non-fatal: the page's records have
// already been delivered when they are returned, and the caller decides
// whether to stop.
var (
	// ErrListOver means the continuation token returned by the provider
	// equals the end-of-listing sentinel. There is no further page.
	ErrListOver = errors.New("no more directory entries")
	// ErrMissingListIter means a 200 listing response carried no
	// continuation token header, so the cursor cannot advance.
	ErrMissingListIter = errors.New("response is missing the list iterator header")
)

// APIError represents a non-200 answer from the provider. Code and Message
// are extracted from the response body's {code, msg} fields when present.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	msg := "api error: " + strconv.Itoa(e.StatusCode)
	if e.Code != 0 {
		msg += " (code " + strconv.Itoa(e.Code) + ")"
	}
	if e.Message != "" {
		msg += " - " + e.Message
	}
	return msg
}

// Is reports whether target matches this error. It matches if target is an
// *APIError with the same StatusCode, which makes the sentinels below usable
// with errors.Is regardless of provider code or message.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common provider error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the remote path does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when the signature is rejected (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when credentials are valid but the operation
	// is not permitted (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}
)
