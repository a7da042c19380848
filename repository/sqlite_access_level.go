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

type sqliteAccessLevelRepo struct {
	db database.TxQuerier
}

// NewSQLiteAccessLevelRepo, AccessLevelRepository'nin SQLite implementasyonunu
// oluşturur. TxQuerier sayesinde hem pool hem transaction ile kullanılabilir.
func NewSQLiteAccessLevelRepo(db database.TxQuerier) AccessLevelRepository {
	return &sqliteAccessLevelRepo{db: db}
}

const accessLevelColumns = `
	id, name,
	can_ban_user, can_ban_song, can_ban_collection,
	can_download, can_upload, can_report,
	can_manage_reports, can_manage_supports, can_manage_access_levels`

func scanAccessLevel(row interface{ Scan(...any) error }, level *models.AccessLevel) error {
	return row.Scan(
		&level.ID, &level.Name,
		&level.CanBanUser, &level.CanBanSong, &level.CanBanCollection,
		&level.CanDownload, &level.CanUpload, &level.CanReport,
		&level.CanManageReports, &level.CanManageSupports, &level.CanManageAccessLevels,
	)
}

func (r *sqliteAccessLevelRepo) Create(ctx context.Context, level *models.AccessLevel) error {
	query := `
		INSERT INTO access_levels (
			name,
			can_ban_user, can_ban_song, can_ban_collection,
			can_download, can_upload, can_report,
			can_manage_reports, can_manage_supports, can_manage_access_levels
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		level.Name,
		level.CanBanUser, level.CanBanSong, level.CanBanCollection,
		level.CanDownload, level.CanUpload, level.CanReport,
		level.CanManageReports, level.CanManageSupports, level.CanManageAccessLevels,
	).Scan(&level.ID)

	if err != nil {
		return fmt.Errorf("failed to create access level: %w", err)
	}

	return nil
}

func (r *sqliteAccessLevelRepo) GetByID(ctx context.Context, id int64) (*models.AccessLevel, error) {
	query := `SELECT` + accessLevelColumns + ` FROM access_levels WHERE id = ?`

	level := &models.AccessLevel{}
	err := scanAccessLevel(r.db.QueryRowContext(ctx, query, id), level)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get access level by id: %w", err)
	}

	return level, nil
}

func (r *sqliteAccessLevelRepo) GetAll(ctx context.Context) ([]models.AccessLevel, error) {
	query := `SELECT` + accessLevelColumns + ` FROM access_levels ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all access levels: %w", err)
	}
	defer rows.Close()

	var levels []models.AccessLevel
	for rows.Next() {
		var level models.AccessLevel
		if err := scanAccessLevel(rows, &level); err != nil {
			return nil, fmt.Errorf("failed to scan access level row: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access level rows: %w", err)
	}

	return levels, nil
}

func (r *sqliteAccessLevelRepo) Update(ctx context.Context, level *models.AccessLevel) error {
	query := `
		UPDATE access_levels SET
			name = ?,
			can_ban_user = ?, can_ban_song = ?, can_ban_collection = ?,
			can_download = ?, can_upload = ?, can_report = ?,
			can_manage_reports = ?, can_manage_supports = ?, can_manage_access_levels = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		level.Name,
		level.CanBanUser, level.CanBanSong, level.CanBanCollection,
		level.CanDownload, level.CanUpload, level.CanReport,
		level.CanManageReports, level.CanManageSupports, level.CanManageAccessLevels,
		level.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update access level: %w", err)
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

func (r *sqliteAccessLevelRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM access_levels WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete access level: %w", err)
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
