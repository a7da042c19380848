package services

import (
	"context"
	"fmt"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

// SupportService, destek talebi oluşturma ve yanıtlama.
// Talep oluşturmak için özel yetki gerekmez — banlı kullanıcı bile itiraz
// edemesin diye destek kanalını kapatmayız; sadece yanıtlama yetkilidir.
type SupportService interface {
	CreateTicket(ctx context.Context, userID int64, req *models.CreateTicketRequest) (*models.SupportTicket, error)

	// MyTickets, kullanıcının kendi taleplerini döner.
	MyTickets(ctx context.Context, userID int64) ([]models.SupportTicket, error)

	// ListOpen, açık talepleri döner. CanManageSupports gerekir.
	ListOpen(ctx context.Context, actorID int64, limit int) ([]models.SupportTicket, error)

	// Respond, talebe yanıt yazar ve durumunu answered yapar.
	// CanManageSupports gerekir.
	Respond(ctx context.Context, ticketID, actorID int64, req *models.RespondTicketRequest) error
}

type supportService struct {
	supportRepo repository.SupportRepository
	userRepo    repository.UserRepository
}

// NewSupportService, constructor.
func NewSupportService(supportRepo repository.SupportRepository, userRepo repository.UserRepository) SupportService {
	return &supportService{supportRepo: supportRepo, userRepo: userRepo}
}

func (s *supportService) CreateTicket(ctx context.Context, userID int64, req *models.CreateTicketRequest) (*models.SupportTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	ticket := &models.SupportTicket{
		UserID:  userID,
		Subject: req.Subject,
		Body:    req.Body,
		Status:  models.TicketStatusOpen,
	}

	if err := s.supportRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (s *supportService) MyTickets(ctx context.Context, userID int64) ([]models.SupportTicket, error) {
	return s.supportRepo.ListByUser(ctx, userID)
}

func (s *supportService) ListOpen(ctx context.Context, actorID int64, limit int) ([]models.SupportTicket, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := CheckManageSupports(actor); !d.Allowed() {
		return nil, decisionError(d)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.supportRepo.ListOpen(ctx, limit)
}

func (s *supportService) Respond(ctx context.Context, ticketID, actorID int64, req *models.RespondTicketRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if d := CheckManageSupports(actor); !d.Allowed() {
		return decisionError(d)
	}

	// Talep var mı kontrolü — Respond UPDATE'i de 0 satırda ErrNotFound
	// döner ama kapalı talebe yanıt ayrı mesaj hak eder.
	ticket, err := s.supportRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status == models.TicketStatusClosed {
		return fmt.Errorf("%w: ticket is closed", pkg.ErrBadRequest)
	}

	return s.supportRepo.Respond(ctx, ticketID, req.Response, models.TicketStatusAnswered)
}
