package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when the provider answered but had no usable data
	// for the requested location.
	ErrNoData = errors.New("no data for requested location")
)

// NetworkError wraps a transport or HTTP-level failure of an upstream call.
// StatusCode is zero when the failure happened before a response arrived.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status code %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIResponseError signals a response body that could not be decoded into the
// expected shape.
type APIResponseError struct {
	Op  string
	Err error
}

func (e *APIResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *APIResponseError) Unwrap() error { return e.Err }

// DataProcessingError signals a failure while deriving the normalized model
// from already-fetched payloads.
type DataProcessingError struct {
	Op  string
	Err error
}

func (e *DataProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataProcessingError) Unwrap() error { return e.Err }
