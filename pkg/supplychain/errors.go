package supplychain

import (
	"errors"
	"fmt"
)

// FetchError reports a failed list, search or stats call. Message is
// safe to show to a user; Err keeps the underlying cause.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CreateError reports a failed entity or relationship creation.
// Message carries the backend's explanation when one was returned.
type CreateError struct {
	Op      string
	Message string
	Err     error
}

func (e *CreateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *CreateError) Unwrap() error { return e.Err }

// statusError is the raw non-2xx outcome of a backend call before it
// is wrapped into a Fetch/CreateError.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (c *Client) fetchErr(op, fallback string, err error) *FetchError {
	return &FetchError{Op: op, Message: backendMessage(err, fallback), Err: err}
}

func (c *Client) createErr(op, fallback string, err error) *CreateError {
	return &CreateError{Op: op, Message: backendMessage(err, fallback), Err: err}
}

func backendMessage(err error, fallback string) string {
	var se *statusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
