package api

import "fmt"

// ErrorKind classifies an analysis request failure
type ErrorKind int

const (
	// KindRequestFailed covers any non-success HTTP status other than 429.
	KindRequestFailed ErrorKind = iota
	// KindRateLimited means the backend rejected the request with HTTP 429.
	KindRateLimited
	// KindNetworkUnavailable means the backend could not be reached at all.
	KindNetworkUnavailable
)

// Error is the uniform failure contract surfaced by the client. Detail holds
// the backend's own explanation when it sent one.
type Error struct {
	Kind   ErrorKind
	Status int    // HTTP status, 0 for network failures
	Detail string // backend-provided explanation, may be empty
	cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return fmt.Sprintf("rate limited (429): %s", e.Message())
	case KindNetworkUnavailable:
		return fmt.Sprintf("backend unreachable: %v", e.cause)
	default:
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message())
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Message returns a display-ready description: the backend's explanation when
// present, otherwise a generic message for the failure class.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	switch e.Kind {
	case KindRateLimited:
		return "Too many requests. Please try again later."
	case KindNetworkUnavailable:
		return "Unable to connect to analysis server. Please check your connection."
	default:
		return fmt.Sprintf("Analysis failed with status: %d", e.Status)
	}
}
