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

type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, UserRepository'nin SQLite implementasyonunu oluşturur.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

const userWithLevelQuery = `
	SELECT
		u.id, u.username, u.email, u.display_name, u.password_hash,
		u.access_level_id, u.is_banned, u.created_at,
		al.id, al.name,
		al.can_ban_user, al.can_ban_song, al.can_ban_collection,
		al.can_download, al.can_upload, al.can_report,
		al.can_manage_reports, al.can_manage_supports, al.can_manage_access_levels
	FROM users u
	JOIN access_levels al ON al.id = u.access_level_id`

func scanUserWithLevel(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{AccessLevel: &models.AccessLevel{}}
	al := user.AccessLevel

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.AccessLevelID, &user.IsBanned, &user.CreatedAt,
		&al.ID, &al.Name,
		&al.CanBanUser, &al.CanBanSong, &al.CanBanCollection,
		&al.CanDownload, &al.CanUpload, &al.CanReport,
		&al.CanManageReports, &al.CanManageSupports, &al.CanManageAccessLevels,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, display_name, password_hash, access_level_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.DisplayName, user.PasswordHash, user.AccessLevelID,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// UNIQUE ihlali → username veya email zaten kayıtlı
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return pkg.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := userWithLevelQuery + ` WHERE u.id = ?`

	user, err := scanUserWithLevel(r.db.QueryRowContext(ctx, query, id))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := userWithLevelQuery + ` WHERE u.username = ?`

	user, err := scanUserWithLevel(r.db.QueryRowContext(ctx, query, username))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := `UPDATE users SET is_banned = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, banned, id)
	if err != nil {
		return fmt.Errorf("failed to set user banned flag: %w", err)
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

func (r *sqliteUserRepo) SetAccessLevel(ctx context.Context, id, accessLevelID int64) error {
	query := `UPDATE users SET access_level_id = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, accessLevelID, id)
	if err != nil {
		return fmt.Errorf("failed to set user access level: %w", err)
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
