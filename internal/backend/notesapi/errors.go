package notesapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gnotes/internal/service"
)

// decodeError converts a non-success response into a *service.APIError.
// The backend replies with either {"detail": "..."} or {"field": ["msg", ...]}.
func decodeError(resp *http.Response) error {
	apiErr := &service.APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return apiErr
	}

	for key, raw := range payload {
		if key == "detail" {
			var detail string
			if json.Unmarshal(raw, &detail) == nil {
				apiErr.Detail = detail
			}
			continue
		}
		msgs := fieldMessages(raw)
		if len(msgs) == 0 {
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string][]string)
		}
		apiErr.Fields[key] = msgs
	}
	return apiErr
}

// fieldMessages accepts either a list of strings or a single string.
func fieldMessages(raw json.RawMessage) []string {
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	var single string
	if json.Unmarshal(raw, &single) == nil && single != "" {
		return []string{single}
	}
	return nil
}

// MalformedResponse is the detail reported for a success body that is not the expected JSON.
const MalformedResponse = "Malformed response from server"

// decodeBodyError classifies a failure to decode a success body. Syntax and
// type errors mean the backend answered with something else; anything else
// means the body could not be read.
func decodeBodyError(op string, status int, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &service.APIError{Status: status, Detail: MalformedResponse}
	}
	return &service.TransportError{Op: op, Err: err}
}
