// ModerationService — ban kayıtlarının yaşam döngüsü yöneticisi.
//
// Policy kararları policy.go'daki pure fonksiyonlara devredilir; bu service
// veri yükleme, transaction ve yan etkilerden (broadcast, disconnect, email)
// sorumludur.
//
// Dönüş sözleşmesi: (models.Decision, error)
// - error != nil → altyapı hatası (DB vb.), handler 500 döner
// - error == nil → Decision okunur; Reject ise policy reddi, yazma yapılmamıştır
//
// Tutarlılık: ban satırı + hedefin is_banned flag'i tek transaction'da
// yazılır. Policy değerlendirmesinden önce hedefin flag'i aynı transaction
// içindeki aktif satır sorgusuyla tazelenir — flag drift'i karar anında
// düzeltilir, eski bir flag yanlış karara yol açmaz.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/pkg/email"
	"github.com/akinalp/melodi/repository"
	"github.com/akinalp/melodi/ws"
)

// ModerationService, ban/unban operasyonları ve ban durum sorguları.
type ModerationService interface {
	// BanUser, target kullanıcıyı actor adına süreli banlar.
	// Başarıda kullanıcının tüm session'ları silinir, WS bağlantıları
	// düşürülür ve (email'i varsa) bilgilendirme gönderilir.
	BanUser(ctx context.Context, targetID, actorID int64, req *models.BanRequest) (models.Decision, error)

	// UnbanUser, target kullanıcının TÜM aktif ban kayıtlarını siler.
	UnbanUser(ctx context.Context, targetID, actorID int64) (models.Decision, error)

	// BanSong, şarkıyı süreli banlar — listelerden düşer, indirilemez.
	BanSong(ctx context.Context, songID, actorID int64, req *models.BanRequest) (models.Decision, error)

	// UnbanSong, şarkının tüm aktif ban kayıtlarını siler.
	UnbanSong(ctx context.Context, songID, actorID int64) (models.Decision, error)

	// BanCollection, koleksiyonu süreli banlar.
	BanCollection(ctx context.Context, collectionID, actorID int64, req *models.BanRequest) (models.Decision, error)

	// UnbanCollection, koleksiyonun tüm aktif ban kayıtlarını siler.
	UnbanCollection(ctx context.Context, collectionID, actorID int64) (models.Decision, error)

	// IsBanned, hedefin şu anda banlı olup olmadığını canlı ban
	// satırlarından (flag'ten DEĞİL) cevaplar.
	IsBanned(ctx context.Context, kind models.BanKind, targetID int64) (bool, error)

	// LatestBans, moderasyon feed'i için en son banları döner.
	LatestBans(ctx context.Context, limit int) ([]models.BanDetail, error)
}

type moderationService struct {
	db          *sql.DB
	banRepo     repository.BanRepository
	hub         ws.EventPublisher
	emailSender email.EmailSender // nil olabilir (email devre dışı)
}

// NewModerationService, yeni bir ModerationService oluşturur.
//
// *sql.DB doğrudan alınır — ban akışları kendi transaction'larını açar ve
// tx-bound repository'ler kurar. banRepo pool-bound'dur, sadece read-only
// sorgularda (IsBanned, LatestBans) kullanılır.
func NewModerationService(
	db *sql.DB,
	banRepo repository.BanRepository,
	hub ws.EventPublisher,
	emailSender email.EmailSender,
) ModerationService {
	return &moderationService{
		db:          db,
		banRepo:     banRepo,
		hub:         hub,
		emailSender: emailSender,
	}
}

func (s *moderationService) BanUser(ctx context.Context, targetID, actorID int64, req *models.BanRequest) (models.Decision, error) {
	if err := req.Validate(); err != nil {
		return models.Decision{}, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var (
		decision models.Decision
		target   *models.User
	)

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewSQLiteUserRepo(tx)
		bans := repository.NewSQLiteBanRepo(tx)
		sessions := repository.NewSQLiteSessionRepo(tx)

		actor, err := loadUser(ctx, users, actorID)
		if err != nil {
			return err
		}
		target, err = loadUser(ctx, users, targetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		// Hedefin flag'i karar öncesi canlı satırlardan tazelenir.
		if target != nil {
			active, err := bans.HasActive(ctx, models.BanKindUser, targetID, now)
			if err != nil {
				return err
			}
			target.IsBanned = active
		}

		decision = CheckBanUser(actor, target)
		if !decision.Allowed() {
			return nil
		}

		ban := &models.Ban{
			BannedByUserID: actor.ID,
			BannedUserID:   &targetID,
			Kind:           models.BanKindUser,
			Reason:         req.Reason,
			BanUntil:       req.BanUntil.UTC(),
			BannedAt:       now,
		}
		if err := bans.Create(ctx, ban); err != nil {
			return err
		}
		if err := users.SetBanned(ctx, targetID, true); err != nil {
			return err
		}

		// Banlı kullanıcı refresh token ile geri giremez.
		if _, err := sessions.DeleteByUserID(ctx, targetID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return models.Decision{}, err
	}

	if decision.Allowed() {
		log.Printf("[moderation] user %d banned by %d until %s", targetID, actorID, req.BanUntil.UTC().Format(time.RFC3339))
		s.publishBanEvent(ws.OpUserBanned, models.BanKindUser, targetID, req.Reason)
		s.hub.DisconnectUser(targetID)
		s.sendBanNotice(target, req)
	}

	return decision, nil
}

func (s *moderationService) UnbanUser(ctx context.Context, targetID, actorID int64) (models.Decision, error) {
	var decision models.Decision

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewSQLiteUserRepo(tx)
		bans := repository.NewSQLiteBanRepo(tx)

		actor, err := loadUser(ctx, users, actorID)
		if err != nil {
			return err
		}
		target, err := loadUser(ctx, users, targetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if target != nil {
			active, err := bans.HasActive(ctx, models.BanKindUser, targetID, now)
			if err != nil {
				return err
			}
			target.IsBanned = active
		}

		decision = CheckUnbanUser(actor, target)
		if !decision.Allowed() {
			return nil
		}

		// Tüm aktif kayıtlar silinir — tek kayıt değil.
		deleted, err := bans.DeleteActive(ctx, models.BanKindUser, targetID, now)
		if err != nil {
			return err
		}
		if deleted == 0 {
			decision = models.Reject(models.ReasonNotBanned)
			return nil
		}

		return users.SetBanned(ctx, targetID, false)
	})
	if err != nil {
		return models.Decision{}, err
	}

	if decision.Allowed() {
		log.Printf("[moderation] user %d unbanned by %d", targetID, actorID)
		s.publishBanEvent(ws.OpUserUnbanned, models.BanKindUser, targetID, "")
	}

	return decision, nil
}

func (s *moderationService) BanSong(ctx context.Context, songID, actorID int64, req *models.BanRequest) (models.Decision, error) {
	if err := req.Validate(); err != nil {
		return models.Decision{}, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var decision models.Decision

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewSQLiteUserRepo(tx)
		songs := repository.NewSQLiteSongRepo(tx)
		bans := repository.NewSQLiteBanRepo(tx)

		actor, err := loadUser(ctx, users, actorID)
		if err != nil {
			return err
		}
		song, err := loadSong(ctx, songs, songID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if song != nil {
			active, err := bans.HasActive(ctx, models.BanKindSong, songID, now)
			if err != nil {
				return err
			}
			song.IsBanned = active
		}

		decision = CheckBanSong(actor, song)
		if !decision.Allowed() {
			return nil
		}

		ban := &models.Ban{
			BannedByUserID: actor.ID,
			BannedSongID:   &songID,
			Kind:           models.BanKindSong,
			Reason:         req.Reason,
			BanUntil:       req.BanUntil.UTC(),
			BannedAt:       now,
		}
		if err := bans.Create(ctx, ban); err != nil {
			return err
		}
		return songs.SetBanned(ctx, songID, true)
	})
	if err != nil {
		return models.Decision{}, err
	}

	if decision.Allowed() {
		log.Printf("[moderation] song %d banned by %d", songID, actorID)
		s.publishBanEvent(ws.OpSongBanned, models.BanKindSong, songID, req.Reason)
	}

	return decision, nil
}

func (s *moderationService) UnbanSong(ctx context.Context, songID, actorID int64) (models.Decision, error) {
	var decision models.Decision

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewSQLiteUserRepo(tx)
		songs := repository.NewSQLiteSongRepo(tx)
		bans := repository.NewSQLiteBanRepo(tx)

		actor, err := loadUser(ctx, users, actorID)
		if err != nil {
			return err
		}
		song, err := loadSong(ctx, songs, songID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if song != nil {
			active, err := bans.HasActive(ctx, models.BanKindSong, songID, now)
			if err != nil {
				return err
			}
			song.IsBanned = active
		}

		decision = CheckUnbanSong(actor, song)
		if !decision.Allowed() {
			return nil
		}

		deleted, err := bans.DeleteActive(ctx, models.BanKindSong, songID, now)
		if err != nil {
			return err
		}
		if deleted == 0 {
			decision = models.Reject(models.ReasonNotBanned)
			return nil
		}

		return songs.SetBanned(ctx, songID, false)
	})
	if err != nil {
		return models.Decision{}, err
	}

	if decision.Allowed() {
		log.Printf("[moderation] song %d unbanned by %d", songID, actorID)
		s.publishBanEvent(ws.OpSongUnbanned, models.BanKindSong, songID, "")
	}

	return decision, nil
}

func (s *moderationService) BanCollection(ctx context.Context, collectionID, actorID int64, req *models.BanRequest) (models.Decision, error) {
	if err := req.Validate(); err != nil {
		return models.Decision{}, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var decision models.Decision

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewSQLiteUserRepo(tx)
		collections := repository.NewSQLiteCollectionRepo(tx)
		bans := repository.NewSQLiteBanRepo(tx)

		actor, err := loadUser(ctx, users, actorID)
		if err != nil {
			return err
		}
		collection, err := loadCollection(ctx, collections, collectionID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if collection != nil {
			active, err := bans.HasActive(ctx, models.BanKindCollection, collectionID, now)
			if err != nil {
				return err
			}
			collection.IsBanned = active
		}

		decision = CheckBanCollection(actor, collection)
		if !decision.Allowed() {
			return nil
		}

		ban := &models.Ban{
			BannedByUserID:     actor.ID,
			BannedCollectionID: &collectionID,
			Kind:               models.BanKindCollection,
			Reason:             req.Reason,
			BanUntil:           req.BanUntil.UTC(),
			BannedAt:           now,
		}
		if err := bans.Create(ctx, ban); err != nil {
			return err
		}
		return collections.SetBanned(ctx, collectionID, true)
	})
	if err != nil {
		return models.Decision{}, err
	}

	if decision.Allowed() {
		log.Printf("[moderation] collection %d banned by %d", collectionID, actorID)
		s.publishBanEvent(ws.OpCollectionBanned, models.BanKindCollection, collectionID, req.Reason)
	}

	return decision, nil
}

func (s *moderationService) UnbanCollection(ctx context.Context, collectionID, actorID int64) (models.Decision, error) {
	var decision models.Decision

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewSQLiteUserRepo(tx)
		collections := repository.NewSQLiteCollectionRepo(tx)
		bans := repository.NewSQLiteBanRepo(tx)

		actor, err := loadUser(ctx, users, actorID)
		if err != nil {
			return err
		}
		collection, err := loadCollection(ctx, collections, collectionID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if collection != nil {
			active, err := bans.HasActive(ctx, models.BanKindCollection, collectionID, now)
			if err != nil {
				return err
			}
			collection.IsBanned = active
		}

		decision = CheckUnbanCollection(actor, collection)
		if !decision.Allowed() {
			return nil
		}

		deleted, err := bans.DeleteActive(ctx, models.BanKindCollection, collectionID, now)
		if err != nil {
			return err
		}
		if deleted == 0 {
			decision = models.Reject(models.ReasonNotBanned)
			return nil
		}

		return collections.SetBanned(ctx, collectionID, false)
	})
	if err != nil {
		return models.Decision{}, err
	}

	if decision.Allowed() {
		log.Printf("[moderation] collection %d unbanned by %d", collectionID, actorID)
		s.publishBanEvent(ws.OpCollectionUnbanned, models.BanKindCollection, collectionID, "")
	}

	return decision, nil
}

func (s *moderationService) IsBanned(ctx context.Context, kind models.BanKind, targetID int64) (bool, error) {
	return s.banRepo.HasActive(ctx, kind, targetID, time.Now().UTC())
}

func (s *moderationService) LatestBans(ctx context.Context, limit int) ([]models.BanDetail, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.banRepo.Latest(ctx, limit)
}

// publishBanEvent, commit SONRASI best-effort broadcast yapar.
// Transaction içinden broadcast yapılmaz — rollback olursa client'lar
// gerçekleşmemiş bir event görürdü.
func (s *moderationService) publishBanEvent(op string, kind models.BanKind, targetID int64, reason string) {
	s.hub.BroadcastToAll(ws.Event{
		Op: op,
		Data: ws.BanEventData{
			Kind:     kind.String(),
			TargetID: targetID,
			Reason:   reason,
		},
	})
}

// sendBanNotice, banlanan kullanıcıya best-effort email gönderir.
// Hata ban akışını geri almaz, sadece loglanır.
func (s *moderationService) sendBanNotice(target *models.User, req *models.BanRequest) {
	if s.emailSender == nil || target == nil || target.Email == nil {
		return
	}

	toEmail := *target.Email
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.emailSender.SendBanNotice(ctx, toEmail, req.Reason, req.BanUntil); err != nil {
			log.Printf("[moderation] failed to send ban notice to user %d: %v", target.ID, err)
		}
	}()
}

// loadUser, kullanıcıyı yükler; bulunamazsa (nil, nil) döner — "yok"
// bir policy sonucudur, altyapı hatası değil.
func loadUser(ctx context.Context, users repository.UserRepository, id int64) (*models.User, error) {
	user, err := users.GetByID(ctx, id)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func loadSong(ctx context.Context, songs repository.SongRepository, id int64) (*models.Song, error) {
	song, err := songs.GetByID(ctx, id)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}

func loadCollection(ctx context.Context, collections repository.CollectionRepository, id int64) (*models.Collection, error) {
	collection, err := collections.GetByID(ctx, id)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return collection, nil
}
