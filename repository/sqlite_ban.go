package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
)

type sqliteBanRepo struct {
	db database.TxQuerier
}

// NewSQLiteBanRepo, BanRepository'nin SQLite implementasyonunu oluşturur.
// Ban yazma akışları transaction içinde çalışır — constructor'a *sql.Tx
// verilerek tx-bound repo elde edilir.
func NewSQLiteBanRepo(db database.TxQuerier) BanRepository {
	return &sqliteBanRepo{db: db}
}

// targetColumn, kind'ın işaret ettiği hedef kolonunun adını döner.
// Sabit string'ler döner — SQL injection riski yoktur.
func targetColumn(kind models.BanKind) (string, error) {
	switch kind {
	case models.BanKindUser:
		return "banned_user_id", nil
	case models.BanKindSong:
		return "banned_song_id", nil
	case models.BanKindCollection:
		return "banned_collection_id", nil
	default:
		return "", fmt.Errorf("invalid ban kind: %d", kind)
	}
}

func (r *sqliteBanRepo) Create(ctx context.Context, ban *models.Ban) error {
	query := `
		INSERT INTO bans (
			banned_by_user_id, banned_user_id, banned_song_id, banned_collection_id,
			kind, reason, ban_until, banned_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		ban.BannedByUserID, ban.BannedUserID, ban.BannedSongID, ban.BannedCollectionID,
		ban.Kind, ban.Reason, ban.BanUntil, ban.BannedAt,
	).Scan(&ban.ID)

	if err != nil {
		return fmt.Errorf("failed to create ban: %w", err)
	}

	return nil
}

func (r *sqliteBanRepo) HasActive(ctx context.Context, kind models.BanKind, targetID int64, now time.Time) (bool, error) {
	col, err := targetColumn(kind)
	if err != nil {
		return false, err
	}

	query := `SELECT 1 FROM bans WHERE ` + col + ` = ? AND ban_until > ? LIMIT 1`

	var dummy int
	err = r.db.QueryRowContext(ctx, query, targetID, now).Scan(&dummy)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check active ban: %w", err)
	}

	return true, nil
}

func (r *sqliteBanRepo) DeleteActive(ctx context.Context, kind models.BanKind, targetID int64, now time.Time) (int64, error) {
	col, err := targetColumn(kind)
	if err != nil {
		return 0, err
	}

	// Sadece aktif kayıtlar silinir — süresi dolmuş kayıtlar sweeper'a
	// bırakılır; "zaten banlı değil" tespiti bu sayede doğru çalışır.
	query := `DELETE FROM bans WHERE ` + col + ` = ? AND ban_until > ?`

	result, err := r.db.ExecContext(ctx, query, targetID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete active bans: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

func (r *sqliteBanRepo) ListExpired(ctx context.Context, now time.Time) ([]models.Ban, error) {
	query := `
		SELECT id, banned_by_user_id, banned_user_id, banned_song_id, banned_collection_id,
		       kind, reason, ban_until, banned_at
		FROM bans
		WHERE ban_until <= ?
		ORDER BY ban_until`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired bans: %w", err)
	}
	defer rows.Close()

	var bans []models.Ban
	for rows.Next() {
		var ban models.Ban
		if err := rows.Scan(
			&ban.ID, &ban.BannedByUserID, &ban.BannedUserID, &ban.BannedSongID, &ban.BannedCollectionID,
			&ban.Kind, &ban.Reason, &ban.BanUntil, &ban.BannedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ban row: %w", err)
		}
		bans = append(bans, ban)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ban rows: %w", err)
	}

	return bans, nil
}

func (r *sqliteBanRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bans WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
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

func (r *sqliteBanRepo) Latest(ctx context.Context, limit int) ([]models.BanDetail, error) {
	// Hedef adı kind'a göre farklı tablodan gelir — COALESCE ile tek
	// kolona indirgenir. LEFT JOIN: hedef silinmişse kayıt yine döner.
	query := `
		SELECT
			b.id,
			actor.username,
			b.kind,
			COALESCE(b.banned_user_id, b.banned_song_id, b.banned_collection_id),
			COALESCE(tu.username, ts.title, tc.name, ''),
			b.reason, b.ban_until, b.banned_at
		FROM bans b
		JOIN users actor ON actor.id = b.banned_by_user_id
		LEFT JOIN users tu ON tu.id = b.banned_user_id
		LEFT JOIN songs ts ON ts.id = b.banned_song_id
		LEFT JOIN collections tc ON tc.id = b.banned_collection_id
		ORDER BY b.banned_at DESC, b.id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest bans: %w", err)
	}
	defer rows.Close()

	var details []models.BanDetail
	for rows.Next() {
		var d models.BanDetail
		var kind models.BanKind
		if err := rows.Scan(
			&d.ID, &d.BannedBy, &kind, &d.TargetID, &d.TargetName,
			&d.Reason, &d.BanUntil, &d.BannedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ban detail row: %w", err)
		}
		d.Kind = kind.String()
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ban detail rows: %w", err)
	}

	return details, nil
}
