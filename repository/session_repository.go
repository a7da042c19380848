package repository

import (
	"context"
	"time"

	"github.com/akinalp/melodi/models"
)

// SessionRepository, refresh token session'ları için veritabanı interface'i.
// Token'ın kendisi değil SHA256 hash'i saklanır — DB sızsa bile token'lar
// kullanılamaz.
type SessionRepository interface {
	// Create, yeni bir session kaydı oluşturur.
	Create(ctx context.Context, session *models.Session) error

	// GetByTokenHash, hash ile session döner.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)

	// Delete, tek bir session'ı siler (logout).
	Delete(ctx context.Context, id string) error

	// DeleteByUserID, kullanıcının tüm session'larını siler ve silinen
	// sayıyı döner. Ban akışında çağrılır — banlı kullanıcı refresh ile
	// geri giremez.
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)

	// DeleteExpired, süresi dolmuş session'ları temizler.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
