package repository

import (
	"context"

	"github.com/akinalp/melodi/models"
)

// SupportRepository, destek talepleri için veritabanı interface'i.
type SupportRepository interface {
	// Create, yeni bir destek talebi oluşturur ve ID + CreatedAt set eder.
	Create(ctx context.Context, ticket *models.SupportTicket) error

	// GetByID, talebi döner.
	GetByID(ctx context.Context, id int64) (*models.SupportTicket, error)

	// ListByUser, kullanıcının taleplerini en yeniden eskiye döner.
	ListByUser(ctx context.Context, userID int64) ([]models.SupportTicket, error)

	// ListOpen, açık talepleri en eskiden yeniye döner.
	ListOpen(ctx context.Context, limit int) ([]models.SupportTicket, error)

	// Respond, talebe yanıt yazar ve durumunu günceller.
	Respond(ctx context.Context, id int64, response, status string) error
}
