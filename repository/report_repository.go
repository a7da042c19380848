package repository

import (
	"context"

	"github.com/akinalp/melodi/models"
)

// ReportRepository, kullanıcı şikayetleri için veritabanı interface'i.
type ReportRepository interface {
	// Create, yeni bir şikayet oluşturur ve ID + CreatedAt set eder.
	Create(ctx context.Context, report *models.Report) error

	// GetByID, şikayeti döner.
	GetByID(ctx context.Context, id int64) (*models.Report, error)

	// ListOpen, çözülmemiş şikayetleri en eskiden yeniye döner.
	ListOpen(ctx context.Context, limit int) ([]models.Report, error)

	// Resolve, şikayeti çözüldü olarak işaretler.
	Resolve(ctx context.Context, id int64) error
}
