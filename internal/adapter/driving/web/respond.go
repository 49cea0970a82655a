package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

const maxBodyBytes = 10 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// statusFor maps the sentinel errors of user input onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUnsupportedFormat),
		errors.Is(err, types.ErrInvalidDateRange),
		errors.Is(err, types.ErrInvalidFilter),
		errors.Is(err, types.ErrUnknownUserType),
		errors.Is(err, types.ErrMissingRecipient),
		errors.Is(err, types.ErrInvalidRecipient),
		errors.Is(err, types.ErrMissingCredentials),
		errors.Is(err, types.ErrIncompleteForm),
		errors.Is(err, types.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidCredentials),
		errors.Is(err, types.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrAccountExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal failures behind a generic message.
func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
