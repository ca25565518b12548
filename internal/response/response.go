// Package response writes the JSON bodies of the watchlist API.
//
// Successful responses carry the bare value the client asked for (a snapshot,
// a movie, stats). Failures use an envelope whose error object the remote
// client reads first:
//
//	{"success":false,"error":{"code":"NOT_FOUND","message":"movie m-1 not found"}}
package response

import (
	"net/http"

	json "github.com/goccy/go-json"

	"watchlist/internal/errors"
)

type ErrorEnvelope struct {
	Success bool          `json:"success"`
	Error   *errors.Error `json:"error"`
}

const contentTypeJSON = "application/json"

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}
	Raw(w, status, body)
	return nil
}

// Raw writes an already encoded JSON body.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes the envelope for err. Errors without a code become a generic 500
// so internal details never leak.
func Error(w http.ResponseWriter, err error) {
	var domainErr *errors.Error
	if !errors.As(err, &domainErr) {
		domainErr = errors.ErrInternal
	}
	out := &errors.Error{Code: domainErr.Code, Message: domainErr.Message}
	if out.Code == errors.CodeInternal {
		out.Message = "internal server error"
	}
	_ = JSON(w, out.HTTPStatus(), ErrorEnvelope{Success: false, Error: out})
}
