package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type availableSlotsResponse struct {
	AvailableSlots []string `json:"availableSlots"`
}

// AvailableSlots answers with an empty list for unknown users.
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots := []string{}
	if u, ok := h.store.GetUser(ps.ByName("userId")); ok && u.AvailableSlots != nil {
		slots = u.AvailableSlots
	}
	writeJSON(w, http.StatusOK, availableSlotsResponse{AvailableSlots: slots})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
