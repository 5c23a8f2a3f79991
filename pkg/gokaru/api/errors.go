package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tendant/gokaru-go/pkg/gokaru"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps library errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gokaru.ErrInvalidArgument), errors.Is(err, gokaru.ErrDomain):
		return http.StatusBadRequest
	case errors.Is(err, gokaru.ErrSignatureMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "path", r.URL.Path, "err", err)
		msg = http.StatusText(status)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
