package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
)

type sqliteSongRepo struct {
	db database.TxQuerier
}

// NewSQLiteSongRepo, SongRepository'nin SQLite implementasyonunu oluşturur.
func NewSQLiteSongRepo(db database.TxQuerier) SongRepository {
	return &sqliteSongRepo{db: db}
}

const songColumns = `id, title, artist, owner_user_id, duration_seconds, is_banned, created_at`

func scanSong(row interface{ Scan(...any) error }, song *models.Song) error {
	return row.Scan(
		&song.ID, &song.Title, &song.Artist, &song.OwnerUserID,
		&song.DurationSeconds, &song.IsBanned, &song.CreatedAt,
	)
}

func (r *sqliteSongRepo) Create(ctx context.Context, song *models.Song) error {
	query := `
		INSERT INTO songs (title, artist, owner_user_id, duration_seconds)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		song.Title, song.Artist, song.OwnerUserID, song.DurationSeconds,
	).Scan(&song.ID, &song.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}

	return nil
}

func (r *sqliteSongRepo) GetByID(ctx context.Context, id int64) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ?`

	song := &models.Song{}
	err := scanSong(r.db.QueryRowContext(ctx, query, id), song)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song by id: %w", err)
	}

	return song, nil
}

func (r *sqliteSongRepo) List(ctx context.Context, limit int) ([]models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE is_banned = 0 ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
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

func (r *sqliteSongRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := `UPDATE songs SET is_banned = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, banned, id)
	if err != nil {
		return fmt.Errorf("failed to set song banned flag: %w", err)
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
