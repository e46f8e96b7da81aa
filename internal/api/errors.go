package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is an HTTP failure returned by the GasTrack API. It carries the
// response status and the server-provided detail message so callers can
// surface validation failures verbatim.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Detail)
}

// Detail extracts the server error message from err, falling back to the
// given message for transport failures and bodies we cannot parse.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// errorBody matches the error envelopes the API uses: FastAPI-style
// {"detail": ...} and the plainer {"error": ...}.
type errorBody struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

// newError builds an *Error from a non-2xx response body.
func newError(statusCode int, body []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Detail != "" {
			return &Error{StatusCode: statusCode, Detail: eb.Detail}
		}
		if eb.Err != "" {
			return &Error{StatusCode: statusCode, Detail: eb.Err}
		}
	}
	detail := string(body)
	if detail == "" {
		detail = http.StatusText(statusCode)
	}
	return &Error{StatusCode: statusCode, Detail: detail}
}
