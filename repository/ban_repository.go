package repository

import (
	"context"
	"time"

	"github.com/akinalp/melodi/models"
)

// BanRepository, ban kayıtları için veritabanı interface'i.
//
// "Aktif" kayıt: ban_until > now. Hedefin banlı sayılması için en az bir
// aktif kaydının olması yeterlidir — is_banned flag'leri bu tablodan
// türetilir. now parametresi dışarıdan verilir; repository kendi saatini
// kullanmaz, böylece service ve sweeper tek bir zaman damgasıyla tutarlı
// karar verir (test edilebilirlik de cabası).
type BanRepository interface {
	// Create, yeni bir ban kaydı oluşturur ve ID'sini set eder.
	Create(ctx context.Context, ban *models.Ban) error

	// HasActive, hedefin en az bir aktif ban kaydı olup olmadığını döner.
	HasActive(ctx context.Context, kind models.BanKind, targetID int64, now time.Time) (bool, error)

	// DeleteActive, hedefin TÜM aktif kayıtlarını siler ve silinen satır
	// sayısını döner. 0 dönerse hedef zaten banlı değildi.
	DeleteActive(ctx context.Context, kind models.BanKind, targetID int64, now time.Time) (int64, error)

	// ListExpired, süresi dolmuş (ban_until <= now) tüm kayıtları döner.
	// Sweeper her turda bunları temizler.
	ListExpired(ctx context.Context, now time.Time) ([]models.Ban, error)

	// Delete, tek bir kaydı ID ile siler. Sweeper expired kayıtları
	// bununla düşürür.
	Delete(ctx context.Context, id int64) error

	// Latest, en son banları aktör ve hedef isimleriyle zenginleştirilmiş
	// halde döner (moderasyon feed'i).
	Latest(ctx context.Context, limit int) ([]models.BanDetail, error)
}
