package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/exposeprofi/proposals/internal/db"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/drafts"
	"github.com/exposeprofi/proposals/internal/quote"
	"github.com/exposeprofi/proposals/internal/services"
)

// Proposals carry base64 images, so the limit is generous.
const maxRequestBodyBytes = 32 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.loggerFromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors to a status code. Unmapped errors are logged
// and reported as 500 without their message.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.loggerFromContext(r.Context()).Error("request failed", "error", err)
		message = "internal server error"
	}
	h.writeJSON(w, r, status, errorResponse{Error: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, drafts.ErrNotFound),
		errors.Is(err, db.ErrNotFound),
		errors.Is(err, quote.ErrUnknownService):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNoServicesSelected),
		errors.Is(err, services.ErrClientRequired),
		errors.Is(err, description.ErrInvalidPath),
		errors.Is(err, errBadRequestBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequestBody = errors.New("invalid request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequestBody)
		}
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	return nil
}
