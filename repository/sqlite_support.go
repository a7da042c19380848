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

type sqliteSupportRepo struct {
	db database.TxQuerier
}

// NewSQLiteSupportRepo, SupportRepository'nin SQLite implementasyonunu oluşturur.
func NewSQLiteSupportRepo(db database.TxQuerier) SupportRepository {
	return &sqliteSupportRepo{db: db}
}

const ticketColumns = `id, user_id, subject, body, response, status, created_at`

func scanTicket(row interface{ Scan(...any) error }, t *models.SupportTicket) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Body, &t.Response, &t.Status, &t.CreatedAt,
	)
}

func (r *sqliteSupportRepo) Create(ctx context.Context, ticket *models.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (user_id, subject, body, status)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		ticket.UserID, ticket.Subject, ticket.Body, ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create support ticket: %w", err)
	}

	return nil
}

func (r *sqliteSupportRepo) GetByID(ctx context.Context, id int64) (*models.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = ?`

	ticket := &models.SupportTicket{}
	err := scanTicket(r.db.QueryRowContext(ctx, query, id), ticket)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get support ticket by id: %w", err)
	}

	return ticket, nil
}

func (r *sqliteSupportRepo) ListByUser(ctx context.Context, userID int64) ([]models.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user support tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (r *sqliteSupportRepo) ListOpen(ctx context.Context, limit int) ([]models.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE status = ? ORDER BY created_at LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, models.TicketStatusOpen, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list open support tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func collectTickets(rows *sql.Rows) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	for rows.Next() {
		var t models.SupportTicket
		if err := scanTicket(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan support ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating support ticket rows: %w", err)
	}

	return tickets, nil
}

func (r *sqliteSupportRepo) Respond(ctx context.Context, id int64, response, status string) error {
	query := `UPDATE support_tickets SET response = ?, status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, response, status, id)
	if err != nil {
		return fmt.Errorf("failed to respond to support ticket: %w", err)
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
