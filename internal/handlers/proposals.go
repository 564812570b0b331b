package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/exposeprofi/proposals/internal/services"
)

func (h *Handlers) CreateProposal(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProposalInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.proposals.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, result)
}

func (h *Handlers) GetProposal(w http.ResponseWriter, r *http.Request) {
	p, err := h.proposals.Get(r.Context(), mux.Vars(r)["offerNumber"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, p)
}
