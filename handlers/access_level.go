package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/services"
)

// AccessLevelHandler, erişim seviyesi yönetim endpoint'leri.
type AccessLevelHandler struct {
	accessLevelService services.AccessLevelService
}

// NewAccessLevelHandler, constructor.
func NewAccessLevelHandler(accessLevelService services.AccessLevelService) *AccessLevelHandler {
	return &AccessLevelHandler{accessLevelService: accessLevelService}
}

// List godoc
// GET /api/access-levels
func (h *AccessLevelHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	levels, err := h.accessLevelService.List(r.Context(), actor.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, levels)
}

// Create godoc
// POST /api/access-levels
func (h *AccessLevelHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.AccessLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, err := h.accessLevelService.Create(r.Context(), actor.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, level)
}

// Update godoc
// PUT /api/access-levels/{id}
func (h *AccessLevelHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req models.AccessLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, err := h.accessLevelService.Update(r.Context(), id, actor.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, level)
}

// Delete godoc
// DELETE /api/access-levels/{id}
func (h *AccessLevelHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.accessLevelService.Delete(r.Context(), id, actor.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "access level deleted"})
}

type assignAccessLevelRequest struct {
	AccessLevelID int64 `json:"access_level_id"`
}

// AssignToUser godoc
// PUT /api/users/{id}/access-level
// Body: { "access_level_id": 2 }
func (h *AccessLevelHandler) AssignToUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req assignAccessLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accessLevelService.AssignToUser(r.Context(), userID, req.AccessLevelID, actor.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "access level assigned"})
}
