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

type sqliteReportRepo struct {
	db database.TxQuerier
}

// NewSQLiteReportRepo, ReportRepository'nin SQLite implementasyonunu oluşturur.
func NewSQLiteReportRepo(db database.TxQuerier) ReportRepository {
	return &sqliteReportRepo{db: db}
}

const reportColumns = `id, reporter_user_id, kind, target_id, reason, resolved, created_at`

func scanReport(row interface{ Scan(...any) error }, report *models.Report) error {
	return row.Scan(
		&report.ID, &report.ReporterUserID, &report.Kind, &report.TargetID,
		&report.Reason, &report.Resolved, &report.CreatedAt,
	)
}

func (r *sqliteReportRepo) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (reporter_user_id, kind, target_id, reason)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		report.ReporterUserID, report.Kind, report.TargetID, report.Reason,
	).Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

func (r *sqliteReportRepo) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	report := &models.Report{}
	err := scanReport(r.db.QueryRowContext(ctx, query, id), report)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}

	return report, nil
}

func (r *sqliteReportRepo) ListOpen(ctx context.Context, limit int) ([]models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE resolved = 0 ORDER BY created_at LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list open reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var report models.Report
		if err := scanReport(rows, &report); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}

func (r *sqliteReportRepo) Resolve(ctx context.Context, id int64) error {
	query := `UPDATE reports SET resolved = 1 WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to resolve report: %w", err)
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
