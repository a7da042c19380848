package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
)

type sqliteCollectionRepo struct {
	db database.TxQuerier
}

// NewSQLiteCollectionRepo, CollectionRepository'nin SQLite implementasyonunu oluşturur.
func NewSQLiteCollectionRepo(db database.TxQuerier) CollectionRepository {
	return &sqliteCollectionRepo{db: db}
}

const collectionColumns = `id, name, owner_user_id, is_banned, created_at`

func scanCollection(row interface{ Scan(...any) error }, c *models.Collection) error {
	return row.Scan(&c.ID, &c.Name, &c.OwnerUserID, &c.IsBanned, &c.CreatedAt)
}

func (r *sqliteCollectionRepo) Create(ctx context.Context, collection *models.Collection) error {
	query := `
		INSERT INTO collections (name, owner_user_id)
		VALUES (?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		collection.Name, collection.OwnerUserID,
	).Scan(&collection.ID, &collection.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

func (r *sqliteCollectionRepo) GetByID(ctx context.Context, id int64) (*models.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = ?`

	collection := &models.Collection{}
	err := scanCollection(r.db.QueryRowContext(ctx, query, id), collection)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection by id: %w", err)
	}

	return collection, nil
}

func (r *sqliteCollectionRepo) ListByOwner(ctx context.Context, ownerUserID int64) ([]models.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections
		WHERE owner_user_id = ? AND is_banned = 0
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := scanCollection(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection rows: %w", err)
	}

	return collections, nil
}

func (r *sqliteCollectionRepo) AddSong(ctx context.Context, collectionID, songID int64) error {
	// position: mevcut en büyük sıra + 1
	query := `
		INSERT INTO collection_songs (collection_id, song_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM collection_songs WHERE collection_id = ?`

	_, err := r.db.ExecContext(ctx, query, collectionID, songID, collectionID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "PRIMARY KEY constraint failed") {
			return pkg.ErrAlreadyExists
		}
		return fmt.Errorf("failed to add song to collection: %w", err)
	}

	return nil
}

func (r *sqliteCollectionRepo) RemoveSong(ctx context.Context, collectionID, songID int64) error {
	query := `DELETE FROM collection_songs WHERE collection_id = ? AND song_id = ?`

	result, err := r.db.ExecContext(ctx, query, collectionID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song from collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteCollectionRepo) GetSongs(ctx context.Context, collectionID int64) ([]models.Song, error) {
	query := `
		SELECT s.id, s.title, s.artist, s.owner_user_id, s.duration_seconds, s.is_banned, s.created_at
		FROM collection_songs cs
		JOIN songs s ON s.id = cs.song_id
		WHERE cs.collection_id = ? AND s.is_banned = 0
		ORDER BY cs.position`

	rows, err := r.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := scanSong(rows, &song); err != nil {
			return nil, fmt.Errorf("failed to scan song row: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating song rows: %w", err)
	}

	return songs, nil
}

func (r *sqliteCollectionRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := `UPDATE collections SET is_banned = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, banned, id)
	if err != nil {
		return fmt.Errorf("failed to set collection banned flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
