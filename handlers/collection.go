package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/services"
)

// CollectionHandler, koleksiyon endpoint'lerini yöneten struct.
type CollectionHandler struct {
	collectionService services.CollectionService
}

// NewCollectionHandler, constructor.
func NewCollectionHandler(collectionService services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// Create godoc
// POST /api/collections
// Body: { "name": "..." }
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	collection, err := h.collectionService.Create(r.Context(), actor.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, collection)
}

// Get godoc
// GET /api/collections/{id}
// Koleksiyonu banlı olmayan şarkılarıyla döner.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	collection, err := h.collectionService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, collection)
}

// ListMine godoc
// GET /api/collections
func (h *CollectionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	collections, err := h.collectionService.ListMine(r.Context(), actor.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, collections)
}

// AddSong godoc
// POST /api/collections/{id}/songs
// Body: { "song_id": 42 }
func (h *CollectionHandler) AddSong(w http.ResponseWriter, r *http.Request) {
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

	var req models.AddSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.collectionService.AddSong(r.Context(), id, actor.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "song added"})
}

// RemoveSong godoc
// DELETE /api/collections/{id}/songs/{songID}
func (h *CollectionHandler) RemoveSong(w http.ResponseWriter, r *http.Request) {
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

	songID, err := strconv.ParseInt(r.PathValue("songID"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.collectionService.RemoveSong(r.Context(), id, songID, actor.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "song removed"})
}
