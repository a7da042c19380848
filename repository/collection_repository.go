package repository

import (
	"context"

	"github.com/akinalp/melodi/models"
)

// CollectionRepository, koleksiyon veritabanı işlemleri için interface.
type CollectionRepository interface {
	// Create, yeni bir koleksiyon oluşturur ve ID + CreatedAt set eder.
	Create(ctx context.Context, collection *models.Collection) error

	// GetByID, koleksiyonu döner — banlı olsa bile.
	GetByID(ctx context.Context, id int64) (*models.Collection, error)

	// ListByOwner, bir kullanıcının banlı olmayan koleksiyonlarını döner.
	ListByOwner(ctx context.Context, ownerUserID int64) ([]models.Collection, error)

	// AddSong, koleksiyona şarkı ekler. Şarkı zaten ekliyse ErrAlreadyExists.
	AddSong(ctx context.Context, collectionID, songID int64) error

	// RemoveSong, koleksiyondan şarkı çıkarır.
	RemoveSong(ctx context.Context, collectionID, songID int64) error

	// GetSongs, koleksiyondaki banlı olmayan şarkıları sıra ile döner.
	GetSongs(ctx context.Context, collectionID int64) ([]models.Song, error)

	// SetBanned, koleksiyonun türetilmiş is_banned flag'ini yazar.
	// Sadece ModerationService ve BanSweeper tarafından çağrılır.
	SetBanned(ctx context.Context, id int64, banned bool) error
}
