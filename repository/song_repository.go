package repository

import (
	"context"

	"github.com/akinalp/melodi/models"
)

// SongRepository, şarkı veritabanı işlemleri için interface.
type SongRepository interface {
	// Create, yeni bir şarkı oluşturur ve ID + CreatedAt set eder.
	Create(ctx context.Context, song *models.Song) error

	// GetByID, şarkıyı döner — banlı olsa bile (moderasyon görmek zorunda).
	GetByID(ctx context.Context, id int64) (*models.Song, error)

	// List, banlı olmayan şarkıları en yeniden eskiye döner.
	List(ctx context.Context, limit int) ([]models.Song, error)

	// SetBanned, şarkının türetilmiş is_banned flag'ini yazar.
	// Sadece ModerationService ve BanSweeper tarafından çağrılır.
	SetBanned(ctx context.Context, id int64, banned bool) error
}
