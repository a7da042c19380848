package repository

import (
	"context"

	"github.com/akinalp/melodi/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// GetByID ve GetByUsername erişim seviyesini JOIN ile doldurur — policy
// değerlendirmesi için aktör ve hedefin flag'leri her zaman hazırdır.
type UserRepository interface {
	// Create, yeni bir kullanıcı oluşturur ve ID + CreatedAt set eder.
	Create(ctx context.Context, user *models.User) error

	// GetByID, kullanıcıyı erişim seviyesiyle birlikte döner.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername, kullanıcıyı erişim seviyesiyle birlikte döner.
	// Username karşılaştırması case-insensitive'dir (COLLATE NOCASE).
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// SetBanned, kullanıcının türetilmiş is_banned flag'ini yazar.
	// Sadece ModerationService ve BanSweeper tarafından çağrılır.
	SetBanned(ctx context.Context, id int64, banned bool) error

	// SetAccessLevel, kullanıcının erişim seviyesini değiştirir.
	SetAccessLevel(ctx context.Context, id, accessLevelID int64) error
}
