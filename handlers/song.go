package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/services"
)

// SongHandler, şarkı endpoint'lerini yöneten struct.
type SongHandler struct {
	songService services.SongService
}

// NewSongHandler, constructor.
func NewSongHandler(songService services.SongService) *SongHandler {
	return &SongHandler{songService: songService}
}

// Create godoc
// POST /api/songs
// Body: { "title": "...", "artist": "...", "duration_seconds": 240 }
func (h *SongHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	song, err := h.songService.Create(r.Context(), actor.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, song)
}

// Get godoc
// GET /api/songs/{id}
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	song, err := h.songService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, song)
}

// List godoc
// GET /api/songs?limit=50
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	songs, err := h.songService.List(r.Context(), limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, songs)
}

// Download godoc
// POST /api/songs/{id}/download
// İndirme policy kararını verir; izinliyse kısa ömürlü grant döner.
// Red, moderasyon endpoint'leriyle aynı reason kodu sözleşmesini kullanır.
func (h *SongHandler) Download(w http.ResponseWriter, r *http.Request) {
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

	decision, grant, err := h.songService.Download(r.Context(), id, actor.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	writeDecision(w, decision, grant)
}
