package services

import (
	"context"
	"fmt"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

// CollectionService, koleksiyon yönetimi.
// Banlı koleksiyonlar normal yüzeyde görünmez; banlı şarkılar koleksiyon
// içeriğinden düşer (repository zaten filtreler).
type CollectionService interface {
	Create(ctx context.Context, ownerID int64, req *models.CreateCollectionRequest) (*models.Collection, error)

	// Get, koleksiyonu şarkılarıyla birlikte döner. Banlıysa ErrNotFound.
	Get(ctx context.Context, id int64) (*models.CollectionWithSongs, error)

	// ListMine, kullanıcının kendi koleksiyonlarını döner.
	ListMine(ctx context.Context, ownerID int64) ([]models.Collection, error)

	// AddSong, koleksiyona şarkı ekler. Sadece sahibi ekleyebilir; banlı
	// şarkı eklenemez.
	AddSong(ctx context.Context, collectionID, actorID int64, req *models.AddSongRequest) error

	// RemoveSong, koleksiyondan şarkı çıkarır. Sadece sahibi çıkarabilir.
	RemoveSong(ctx context.Context, collectionID, songID, actorID int64) error
}

type collectionService struct {
	collectionRepo repository.CollectionRepository
	songRepo       repository.SongRepository
}

// NewCollectionService, constructor.
func NewCollectionService(
	collectionRepo repository.CollectionRepository,
	songRepo repository.SongRepository,
) CollectionService {
	return &collectionService{collectionRepo: collectionRepo, songRepo: songRepo}
}

func (s *collectionService) Create(ctx context.Context, ownerID int64, req *models.CreateCollectionRequest) (*models.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	collection := &models.Collection{
		Name:        req.Name,
		OwnerUserID: ownerID,
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

func (s *collectionService) Get(ctx context.Context, id int64) (*models.CollectionWithSongs, error) {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.IsBanned {
		return nil, pkg.ErrNotFound
	}

	songs, err := s.collectionRepo.GetSongs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.CollectionWithSongs{
		Collection: *collection,
		Songs:      songs,
	}, nil
}

func (s *collectionService) ListMine(ctx context.Context, ownerID int64) ([]models.Collection, error) {
	return s.collectionRepo.ListByOwner(ctx, ownerID)
}

func (s *collectionService) AddSong(ctx context.Context, collectionID, actorID int64, req *models.AddSongRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.IsBanned {
		return pkg.ErrNotFound
	}
	if collection.OwnerUserID != actorID {
		return fmt.Errorf("%w: only the owner can modify a collection", pkg.ErrForbidden)
	}

	song, err := s.songRepo.GetByID(ctx, req.SongID)
	if err != nil {
		return err
	}
	if song.IsBanned {
		return pkg.ErrNotFound
	}

	return s.collectionRepo.AddSong(ctx, collectionID, req.SongID)
}

func (s *collectionService) RemoveSong(ctx context.Context, collectionID, songID, actorID int64) error {
	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.IsBanned {
		return pkg.ErrNotFound
	}
	if collection.OwnerUserID != actorID {
		return fmt.Errorf("%w: only the owner can modify a collection", pkg.ErrForbidden)
	}

	return s.collectionRepo.RemoveSong(ctx, collectionID, songID)
}
