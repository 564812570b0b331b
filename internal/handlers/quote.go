package handlers

import (
	"net/http"

	"github.com/exposeprofi/proposals/internal/services"
)

// PreviewQuote prices a selection without storing anything.
func (h *Handlers) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	var input services.QuoteInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	preview, err := h.quotes.Preview(input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, preview)
}
