package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBodySize caps how much of a failed response is read.
const maxErrorBodySize = 1 << 20

// APIError is the single error shape returned by every Client operation.
//
// For a non-2xx response carrying a JSON object, Message is the body's
// "message" field (or "error" when there is no "message") and Fields holds
// the whole body. Without a usable body, Message describes the transport
// outcome and Err holds the underlying transport error, if any.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]any
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func statusMessage(code int) string {
	return fmt.Sprintf("request failed with status code %d", code)
}

func newTransportError(err error) *APIError {
	return &APIError{
		Message: err.Error(),
		Err:     err,
	}
}

func newResponseError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    statusMessage(resp.StatusCode),
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return apiErr
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return apiErr
	}
	apiErr.Fields = fields

	for _, key := range []string{"message", "error"} {
		if msg, ok := fields[key].(string); ok && msg != "" {
			apiErr.Message = msg
			break
		}
	}

	return apiErr
}
