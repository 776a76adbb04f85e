package client

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the server rejects the bearer token. The
// session has already been invalidated by the time the caller sees it.
var ErrUnauthorized = errors.New("unauthorized: session expired, please log in again")

// RequestError is a non-2xx response other than 401. Message carries the
// server's envelope message when present.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// TransportError means no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
