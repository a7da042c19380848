// ModerationHandler — ban/unban ve ban durum endpoint'leri.
//
// Policy redleri serbest metin değil sabit reason kodu olarak döner
// (ör. "cannot_ban_users") — client bu kodlara göre lokalize mesaj
// gösterir. HTTP status, reason'ın sınıfına göre seçilir:
//   - hedef yok            → 404
//   - durum çelişkisi      → 409 (zaten banlı, banlı değil, kendini banlama)
//   - yetki/dokunulmazlık  → 403
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/services"
)

// ModerationHandler, moderasyon endpoint'lerini yöneten struct.
type ModerationHandler struct {
	moderationService services.ModerationService
}

// NewModerationHandler, constructor.
func NewModerationHandler(moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// statusForReason, policy reason'ını HTTP status'a çevirir.
func statusForReason(reason models.RejectReason) int {
	switch reason {
	case models.ReasonUserNotFound, models.ReasonSongNotFound, models.ReasonCollectionNotFound:
		return http.StatusNotFound
	case models.ReasonBanned, models.ReasonNotBanned, models.ReasonSameUser:
		return http.StatusConflict
	default:
		return http.StatusForbidden
	}
}

// writeDecision, karar iznine göre başarı veya reason kodlu hata yazar.
func writeDecision(w http.ResponseWriter, decision models.Decision, okPayload any) {
	if !decision.Allowed() {
		reason := decision.Reason()
		pkg.ErrorWithMessage(w, statusForReason(reason), reason.String())
		return
	}
	pkg.JSON(w, http.StatusOK, okPayload)
}

type banOperation func(targetID, actorID int64, req *models.BanRequest) (models.Decision, error)
type unbanOperation func(targetID, actorID int64) (models.Decision, error)

// handleBan, üç ban endpoint'inin ortak akışı: parse → service → decision.
func (h *ModerationHandler) handleBan(w http.ResponseWriter, r *http.Request, op banOperation, okMessage string) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := op(targetID, actor.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	writeDecision(w, decision, map[string]string{"message": okMessage})
}

func (h *ModerationHandler) handleUnban(w http.ResponseWriter, r *http.Request, op unbanOperation, okMessage string) {
	actor, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	decision, err := op(targetID, actor.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	writeDecision(w, decision, map[string]string{"message": okMessage})
}

// BanUser godoc
// POST /api/moderation/users/{id}/ban
// Body: { "reason": "...", "ban_until": "2026-01-02T15:04:05Z" }
func (h *ModerationHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	h.handleBan(w, r, func(targetID, actorID int64, req *models.BanRequest) (models.Decision, error) {
		return h.moderationService.BanUser(r.Context(), targetID, actorID, req)
	}, "user banned")
}

// UnbanUser godoc
// DELETE /api/moderation/users/{id}/ban
func (h *ModerationHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	h.handleUnban(w, r, func(targetID, actorID int64) (models.Decision, error) {
		return h.moderationService.UnbanUser(r.Context(), targetID, actorID)
	}, "user unbanned")
}

// BanSong godoc
// POST /api/moderation/songs/{id}/ban
func (h *ModerationHandler) BanSong(w http.ResponseWriter, r *http.Request) {
	h.handleBan(w, r, func(targetID, actorID int64, req *models.BanRequest) (models.Decision, error) {
		return h.moderationService.BanSong(r.Context(), targetID, actorID, req)
	}, "song banned")
}

// UnbanSong godoc
// DELETE /api/moderation/songs/{id}/ban
func (h *ModerationHandler) UnbanSong(w http.ResponseWriter, r *http.Request) {
	h.handleUnban(w, r, func(targetID, actorID int64) (models.Decision, error) {
		return h.moderationService.UnbanSong(r.Context(), targetID, actorID)
	}, "song unbanned")
}

// BanCollection godoc
// POST /api/moderation/collections/{id}/ban
func (h *ModerationHandler) BanCollection(w http.ResponseWriter, r *http.Request) {
	h.handleBan(w, r, func(targetID, actorID int64, req *models.BanRequest) (models.Decision, error) {
		return h.moderationService.BanCollection(r.Context(), targetID, actorID, req)
	}, "collection banned")
}

// UnbanCollection godoc
// DELETE /api/moderation/collections/{id}/ban
func (h *ModerationHandler) UnbanCollection(w http.ResponseWriter, r *http.Request) {
	h.handleUnban(w, r, func(targetID, actorID int64) (models.Decision, error) {
		return h.moderationService.UnbanCollection(r.Context(), targetID, actorID)
	}, "collection unbanned")
}

// LatestBans godoc
// GET /api/moderation/bans?limit=50
// Son banları aktör ve hedef isimleriyle döner.
func (h *ModerationHandler) LatestBans(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bans, err := h.moderationService.LatestBans(r.Context(), limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, bans)
}

// BanStatus godoc
// GET /api/moderation/{kind}/{id}/status
// kind: "user" | "song" | "collection"
// Hedefin canlı ban satırlarına göre banlı olup olmadığını döner.
func (h *ModerationHandler) BanStatus(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseBanKind(r.PathValue("kind"))
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid ban kind")
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	banned, err := h.moderationService.IsBanned(r.Context(), kind, targetID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"kind":      kind.String(),
		"target_id": targetID,
		"banned":    banned,
	})
}
