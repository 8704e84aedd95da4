package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the SURL front-end

// ErrShortenFailed is returned when the shortening service rejects or fails a shorten request.
// The cause (validation, network, server error) is kept for logs only.
var ErrShortenFailed = errors.New("failed to shorten URL")

// ErrSummaryNotFound is returned when a summary lookup fails. An unknown code and a failed
// call are indistinguishable from the client side.
var ErrSummaryNotFound = errors.New("URL not found")

// ErrInvalidURL is returned when the long URL to shorten is blank
var ErrInvalidURL = errors.New("long URL is required")

// ErrEmptyShortCode is returned when no short code could be derived from user input
var ErrEmptyShortCode = errors.New("short code is required")

// ErrClipboardUnavailable is returned when no clipboard strategy could deliver the text
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// ErrUpstreamStatus is returned when the shortening service answers with a non-success status.
type ErrUpstreamStatus struct {
	Op         string
	StatusCode int
}

func (e ErrUpstreamStatus) Error() string {
	return fmt.Sprintf("%s: unexpected status %d from shortening service", e.Op, e.StatusCode)
}

// ErrHistoryRecordingFailed is returned when a shortened link could not be saved to the local history
type ErrHistoryRecordingFailed struct {
	ShortCode string
	Reason    string
}

func (e ErrHistoryRecordingFailed) Error() string {
	return fmt.Sprintf("failed to record link %s in history: %s", e.ShortCode, e.Reason)
}

// ErrConfigLoad is returned when configuration loading fails
type ErrConfigLoad struct {
	Path   string
	Reason string
}

func (e ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Reason)
}
