package repository

import (
	"context"

	"github.com/akinalp/melodi/models"
)

// AccessLevelRepository, erişim seviyesi veritabanı işlemleri için interface.
type AccessLevelRepository interface {
	// Create, yeni bir erişim seviyesi oluşturur ve ID'sini set eder.
	Create(ctx context.Context, level *models.AccessLevel) error

	// GetByID, ID ile erişim seviyesi döner.
	GetByID(ctx context.Context, id int64) (*models.AccessLevel, error)

	// GetAll, tüm erişim seviyelerini döner.
	GetAll(ctx context.Context) ([]models.AccessLevel, error)

	// Update, mevcut bir seviyenin tüm flag'lerini günceller.
	Update(ctx context.Context, level *models.AccessLevel) error

	// Delete, bir seviyeyi siler. Kullanımda olan seviye FK nedeniyle silinemez.
	Delete(ctx context.Context, id int64) error
}
