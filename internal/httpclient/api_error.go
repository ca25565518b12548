package httpclient

import (
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"watchlist/internal/errors"
)

// APIError is a non-2xx response. It unwraps to the coded error matching the
// status, so errors.Is(err, errors.ErrNotFound) works on a 404.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return &errors.Error{Code: errors.CodeForStatus(e.Status), Message: e.Message}
}

func newAPIError(status int, body []byte) *APIError {
	statusText := http.StatusText(status)
	return &APIError{
		Status:     status,
		StatusText: statusText,
		Message:    errorMessage(status, statusText, body),
	}
}

// errorMessage picks, in order: error.message, message, a string error field.
// JSON without any of those gives GenericErrorMessage. Non-JSON text is used
// as is, and an empty body falls back to the status line.
func errorMessage(status int, statusText string, body []byte) string {
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("Error %d: %s", status, statusText)
	}

	var envelope any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return text
	}

	obj, ok := envelope.(map[string]any)
	if !ok {
		return GenericErrorMessage
	}
	if inner, ok := obj["error"].(map[string]any); ok {
		if msg, ok := inner["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return msg
	}
	return GenericErrorMessage
}
