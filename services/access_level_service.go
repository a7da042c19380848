package services

import (
	"context"
	"fmt"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

// AccessLevelService, erişim seviyesi CRUD'u ve kullanıcıya seviye atama.
// Tüm operasyonlar CanManageAccessLevels yetkisi gerektirir.
type AccessLevelService interface {
	List(ctx context.Context, actorID int64) ([]models.AccessLevel, error)
	Create(ctx context.Context, actorID int64, req *models.AccessLevelRequest) (*models.AccessLevel, error)
	Update(ctx context.Context, levelID, actorID int64, req *models.AccessLevelRequest) (*models.AccessLevel, error)
	Delete(ctx context.Context, levelID, actorID int64) error

	// AssignToUser, kullanıcıyı verilen seviyeye taşır.
	AssignToUser(ctx context.Context, userID, levelID, actorID int64) error
}

type accessLevelService struct {
	levelRepo repository.AccessLevelRepository
	userRepo  repository.UserRepository
}

// NewAccessLevelService, constructor.
func NewAccessLevelService(
	levelRepo repository.AccessLevelRepository,
	userRepo repository.UserRepository,
) AccessLevelService {
	return &accessLevelService{levelRepo: levelRepo, userRepo: userRepo}
}

// checkManager, aktörün seviye yönetim yetkisini doğrular.
func (s *accessLevelService) checkManager(ctx context.Context, actorID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if d := CheckActor(actor); !d.Allowed() {
		return decisionError(d)
	}
	if !actor.AccessLevel.CanManageAccessLevels {
		return fmt.Errorf("%w: access level management not allowed", pkg.ErrForbidden)
	}
	return nil
}

func (s *accessLevelService) List(ctx context.Context, actorID int64) ([]models.AccessLevel, error) {
	if err := s.checkManager(ctx, actorID); err != nil {
		return nil, err
	}
	return s.levelRepo.GetAll(ctx)
}

func (s *accessLevelService) Create(ctx context.Context, actorID int64, req *models.AccessLevelRequest) (*models.AccessLevel, error) {
	if err := s.checkManager(ctx, actorID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	level := req.ToAccessLevel()
	if err := s.levelRepo.Create(ctx, level); err != nil {
		return nil, err
	}

	return level, nil
}

func (s *accessLevelService) Update(ctx context.Context, levelID, actorID int64, req *models.AccessLevelRequest) (*models.AccessLevel, error) {
	if err := s.checkManager(ctx, actorID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	level := req.ToAccessLevel()
	level.ID = levelID
	if err := s.levelRepo.Update(ctx, level); err != nil {
		return nil, err
	}

	return level, nil
}

func (s *accessLevelService) Delete(ctx context.Context, levelID, actorID int64) error {
	if err := s.checkManager(ctx, actorID); err != nil {
		return err
	}

	// Seed seviyeleri silinemez — default, kayıt akışının dayanağıdır.
	if levelID == models.DefaultAccessLevelID || levelID == models.AdminAccessLevelID {
		return fmt.Errorf("%w: built-in access levels cannot be deleted", pkg.ErrBadRequest)
	}

	return s.levelRepo.Delete(ctx, levelID)
}

func (s *accessLevelService) AssignToUser(ctx context.Context, userID, levelID, actorID int64) error {
	if err := s.checkManager(ctx, actorID); err != nil {
		return err
	}

	// Seviye var mı?
	if _, err := s.levelRepo.GetByID(ctx, levelID); err != nil {
		return err
	}

	return s.userRepo.SetAccessLevel(ctx, userID, levelID)
}
