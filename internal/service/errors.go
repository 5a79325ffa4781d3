package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoToken is returned when an authenticated call is attempted without a token.
var ErrNoToken = errors.New("not logged in")

// APIError is a response from the backend outside the success range.
// Detail and Fields carry whatever structured payload the backend returned.
type APIError struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// FieldError returns the first message reported for the named field.
func (e *APIError) FieldError(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Message returns the most useful human-readable message in the payload:
// detail, then non-field errors, then the first field error in name order.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if msg := e.FieldError("non_field_errors"); msg != "" {
		return msg
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msg := e.FieldError(name); msg != "" {
			return name + ": " + msg
		}
	}
	return ""
}

// IsUnauthorized reports whether the backend rejected the credentials or token.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// TransportError means no response was received from the backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	msg := e.Err.Error()
	if strings.Contains(msg, "context deadline exceeded") {
		msg = "request timed out"
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
