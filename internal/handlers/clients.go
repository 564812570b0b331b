package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.Lookup(r.Context(), mux.Vars(r)["clientNumber"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, client)
}

func (h *Handlers) GetClientByEmail(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.LookupByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, client)
}
