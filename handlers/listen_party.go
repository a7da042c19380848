package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/services"
)

// ListenPartyHandler, dinleme partisi token endpoint'i.
type ListenPartyHandler struct {
	listenPartyService services.ListenPartyService
}

// NewListenPartyHandler, constructor.
func NewListenPartyHandler(listenPartyService services.ListenPartyService) *ListenPartyHandler {
	return &ListenPartyHandler{listenPartyService: listenPartyService}
}

// Join godoc
// POST /api/collections/{id}/party
// Koleksiyonun dinleme partisine katılım için LiveKit token'ı döner.
func (h *ListenPartyHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	token, err := h.listenPartyService.JoinToken(r.Context(), id, actor.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, token)
}
