package mineru

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidRequest = errors.New("invalid request")

	ErrClientClosed         = errors.New("client already closed")
	ErrResponseClosed       = errors.New("response already closed")
	ErrTransmissionConsumed = errors.New("transmission already consumed")

	ErrZipResponse = errors.New("cannot read archive responses as markdown")
	ErrNoResults   = errors.New("response does not contain any results")
	ErrNoMarkdown  = errors.New("response does not contain markdown content")
)

const (
	messageUnavailable = "Failed to send request to the service."
	messageTimeout     = "Request to the service timed out."
)

// Error describes a failed submission: either a non-success response of the
// service or a transport failure normalized to 503 / 408.
type Error struct {
	StatusCode int
	Message    string

	// Body is the raw response text, if it could be read.
	Body string

	// ValidationErrors is only populated for 422 responses carrying a
	// "detail" array.
	ValidationErrors []ValidationError

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mineru: %s (status %d): %v", e.Message, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("mineru: %s (status %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Timeout() bool {
	return e.StatusCode == http.StatusRequestTimeout
}

// ValidationError is a single entry of a 422 "detail" array.
type ValidationError struct {
	// Location holds string and int segments in wire order,
	// e.g. ["body", "files", 0].
	Location []any

	Message string
	Type    string
}

func (v ValidationError) String() string {
	return fmt.Sprintf("%v: %s (%s)", v.Location, v.Message, v.Type)
}

func statusMessage(code int) string {
	switch code {
	case http.StatusUnprocessableEntity:
		return "The request contains validation errors."

	case http.StatusBadRequest:
		return "The request was malformed or invalid."

	case http.StatusNotFound:
		return "The API endpoint was not found."

	case http.StatusInternalServerError:
		return "The API server encountered an error."
	}

	return fmt.Sprintf("The API returned an error: %d %s", code, http.StatusText(code))
}
