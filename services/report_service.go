package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

// ReportService, şikayet oluşturma ve moderatör tarafı şikayet yönetimi.
type ReportService interface {
	// Create, yeni şikayet açar. CanReport yetkisi gerekir; hedef var
	// olmalıdır.
	Create(ctx context.Context, reporterID int64, req *models.CreateReportRequest) (*models.Report, error)

	// ListOpen, çözülmemiş şikayetleri döner. CanManageReports gerekir.
	ListOpen(ctx context.Context, actorID int64, limit int) ([]models.Report, error)

	// Resolve, şikayeti çözüldü olarak işaretler. CanManageReports gerekir.
	Resolve(ctx context.Context, reportID, actorID int64) error
}

type reportService struct {
	reportRepo     repository.ReportRepository
	userRepo       repository.UserRepository
	songRepo       repository.SongRepository
	collectionRepo repository.CollectionRepository
}

// NewReportService, constructor.
func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	songRepo repository.SongRepository,
	collectionRepo repository.CollectionRepository,
) ReportService {
	return &reportService{
		reportRepo:     reportRepo,
		userRepo:       userRepo,
		songRepo:       songRepo,
		collectionRepo: collectionRepo,
	}
}

func (s *reportService) Create(ctx context.Context, reporterID int64, req *models.CreateReportRequest) (*models.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	kind, _ := models.ParseBanKind(req.Kind) // Validate zaten kontrol etti

	reporter, err := s.userRepo.GetByID(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if d := CheckActor(reporter); !d.Allowed() {
		return nil, decisionError(d)
	}
	if !reporter.AccessLevel.CanReport {
		return nil, fmt.Errorf("%w: reporting not allowed", pkg.ErrForbidden)
	}

	if err := s.targetExists(ctx, kind, req.TargetID); err != nil {
		return nil, err
	}

	report := &models.Report{
		ReporterUserID: reporterID,
		Kind:           kind,
		TargetID:       req.TargetID,
		Reason:         req.Reason,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *reportService) ListOpen(ctx context.Context, actorID int64, limit int) ([]models.Report, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := CheckManageReports(actor); !d.Allowed() {
		return nil, decisionError(d)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.reportRepo.ListOpen(ctx, limit)
}

func (s *reportService) Resolve(ctx context.Context, reportID, actorID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if d := CheckManageReports(actor); !d.Allowed() {
		return decisionError(d)
	}

	return s.reportRepo.Resolve(ctx, reportID)
}

// targetExists, şikayet hedefinin kind'a göre var olduğunu doğrular.
// Banlı hedef şikayet edilebilir — zaten moderasyonun radarındadır.
func (s *reportService) targetExists(ctx context.Context, kind models.BanKind, targetID int64) error {
	var err error
	switch kind {
	case models.BanKindUser:
		_, err = s.userRepo.GetByID(ctx, targetID)
	case models.BanKindSong:
		_, err = s.songRepo.GetByID(ctx, targetID)
	case models.BanKindCollection:
		_, err = s.collectionRepo.GetByID(ctx, targetID)
	default:
		return fmt.Errorf("%w: invalid report kind", pkg.ErrBadRequest)
	}

	if errors.Is(err, pkg.ErrNotFound) {
		return fmt.Errorf("%w: report target not found", pkg.ErrNotFound)
	}
	return err
}
