package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/exposeprofi/proposals/internal/quote"
	"github.com/exposeprofi/proposals/internal/services"
)

func (h *Handlers) CreateDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.drafts.Create(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, view)
}

func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.drafts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}

func (h *Handlers) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.Discard(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateDraftService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update services.ServiceUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.drafts.UpdateService(r.Context(), vars["id"], vars["serviceID"], update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}

// SetDraftDiscount replaces the discount. A JSON null body removes it.
func (h *Handlers) SetDraftDiscount(w http.ResponseWriter, r *http.Request) {
	var discount *quote.Discount
	if err := decodeJSON(w, r, &discount); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.drafts.SetDiscount(r.Context(), mux.Vars(r)["id"], discount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}

func (h *Handlers) EditDefaultBullet(w http.ResponseWriter, r *http.Request) {
	h.editBullet(w, r, h.drafts.EditDefaultBullet)
}

func (h *Handlers) EditCustomBullet(w http.ResponseWriter, r *http.Request) {
	h.editBullet(w, r, h.drafts.EditCustomBullet)
}

type bulletEditFunc func(ctx context.Context, id, serviceID string, edit services.BulletEdit) (*services.DraftView, error)

func (h *Handlers) editBullet(w http.ResponseWriter, r *http.Request, apply bulletEditFunc) {
	vars := mux.Vars(r)

	var edit services.BulletEdit
	if err := decodeJSON(w, r, &edit); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := apply(r.Context(), vars["id"], vars["serviceID"], edit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}
