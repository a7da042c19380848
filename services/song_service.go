package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

// downloadGrantTTL, indirme biletinin geçerlilik süresi.
const downloadGrantTTL = 15 * time.Minute

// SongService, şarkı metadata ve indirme yetkilendirmesi.
type SongService interface {
	// Create, yeni şarkı kaydı oluşturur. CanUpload yetkisi gerekir.
	Create(ctx context.Context, ownerID int64, req *models.CreateSongRequest) (*models.Song, error)

	// Get, şarkıyı döner. Banlı şarkı normal yüzeyde görünmez — ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Song, error)

	// List, banlı olmayan şarkıları döner.
	List(ctx context.Context, limit int) ([]models.Song, error)

	// Download, indirme policy kararını verir; izinliyse kısa ömürlü bir
	// grant üretir. Dosya streaming'i bu service'in kapsamı dışındadır.
	Download(ctx context.Context, songID, actorID int64) (models.Decision, *models.DownloadGrant, error)
}

type songService struct {
	songRepo repository.SongRepository
	userRepo repository.UserRepository
}

// NewSongService, constructor.
func NewSongService(songRepo repository.SongRepository, userRepo repository.UserRepository) SongService {
	return &songService{songRepo: songRepo, userRepo: userRepo}
}

func (s *songService) Create(ctx context.Context, ownerID int64, req *models.CreateSongRequest) (*models.Song, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if d := CheckActor(owner); !d.Allowed() {
		return nil, decisionError(d)
	}
	if !owner.AccessLevel.CanUpload {
		return nil, fmt.Errorf("%w: upload not allowed", pkg.ErrForbidden)
	}

	song := &models.Song{
		Title:           req.Title,
		Artist:          req.Artist,
		OwnerUserID:     ownerID,
		DurationSeconds: req.DurationSeconds,
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, err
	}

	return song, nil
}

func (s *songService) Get(ctx context.Context, id int64) (*models.Song, error) {
	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song.IsBanned {
		return nil, pkg.ErrNotFound
	}
	return song, nil
}

func (s *songService) List(ctx context.Context, limit int) ([]models.Song, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.songRepo.List(ctx, limit)
}

func (s *songService) Download(ctx context.Context, songID, actorID int64) (models.Decision, *models.DownloadGrant, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return models.Decision{}, nil, err
	}

	song, err := loadSong(ctx, s.songRepo, songID)
	if err != nil {
		return models.Decision{}, nil, err
	}

	decision := CheckDownload(actor, song)
	if !decision.Allowed() {
		return decision, nil, nil
	}

	grant := &models.DownloadGrant{
		GrantID:   uuid.NewString(),
		SongID:    songID,
		ExpiresAt: time.Now().UTC().Add(downloadGrantTTL),
	}

	return decision, grant, nil
}
