package matrix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota

	// KindTransport is a network level failure. No status code is attached.
	KindTransport

	// KindClientReported is a 400 response from the downstream system whose
	// message can be shown to end users as is.
	KindClientReported

	// KindServerReported is any other non-2xx response. The message is framed
	// so raw backend detail is not handed to end users verbatim.
	KindServerReported

	// KindConfiguration means the client was misconfigured and no request was
	// sent.
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindClientReported:
		return "client_reported"
	case KindServerReported:
		return "server_reported"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

const serverErrorFormat = "Error occurs when calling matrix api, %s. Sorry for that, you can report it to the fulfillment tools team."

// APIError is the single error type returned by the matrix client.
type APIError struct {
	Kind ErrorKind

	// StatusCode is the HTTP status of the failed response, 0 when the
	// request never produced one.
	StatusCode int

	// Message is the caller facing text, returned by Error().
	Message string

	// Detail is the text extracted from the response or cause before any
	// framing was applied.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first APIError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// StatusCodeOf returns the HTTP status attached to err, or 0.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newTransportError(err error) *APIError {
	return &APIError{
		Kind:    KindTransport,
		Message: err.Error(),
		Detail:  err.Error(),
		Err:     err,
	}
}

func newConfigurationError(err error) *APIError {
	return &APIError{
		Kind:    KindConfiguration,
		Message: err.Error(),
		Detail:  err.Error(),
		Err:     err,
	}
}

// NormalizeError turns a non-2xx response into an APIError.
//
// The message is taken from the first match of:
//  1. errors[0].message or Errors[0].message in a JSON object body
//  2. ErrorMessage in a JSON object body, only for status 400 (overrides 1)
//  3. the raw body when it is not JSON
//  4. the compacted JSON body when no known envelope is present
//
// Status 400 yields KindClientReported with the message verbatim. Every other
// status yields KindServerReported with the message framed.
func NormalizeError(status int, body []byte) *APIError {
	detail := extractMessage(body)

	if status == http.StatusBadRequest {
		if msg, ok := errorMessageField(body); ok {
			detail = msg
		}
		return &APIError{
			Kind:       KindClientReported,
			StatusCode: status,
			Message:    detail,
			Detail:     detail,
		}
	}

	return &APIError{
		Kind:       KindServerReported,
		StatusCode: status,
		Message:    fmt.Sprintf(serverErrorFormat, detail),
		Detail:     detail,
	}
}

func extractMessage(body []byte) string {
	if !json.Valid(body) {
		return string(body)
	}

	if msg, ok := errorsArrayMessage(body); ok {
		return msg
	}

	return compactJSON(body)
}

type errorItem struct {
	Message *string `json:"message"`
}

// errorsArrayMessage looks for {"errors":[{"message":...}]}, then the
// capitalised "Errors" variant.
func errorsArrayMessage(body []byte) (string, bool) {
	fields, ok := jsonObject(body)
	if !ok {
		return "", false
	}

	for _, key := range []string{"errors", "Errors"} {
		raw, found := fields[key]
		if !found {
			continue
		}

		var items []errorItem
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		if len(items) > 0 && items[0].Message != nil {
			return *items[0].Message, true
		}
	}

	return "", false
}

func errorMessageField(body []byte) (string, bool) {
	fields, ok := jsonObject(body)
	if !ok {
		return "", false
	}

	raw, found := fields["ErrorMessage"]
	if !found {
		return "", false
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", false
	}

	return msg, true
}

func jsonObject(body []byte) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func compactJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}
