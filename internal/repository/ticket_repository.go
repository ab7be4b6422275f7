package repository

import (
	"context"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	ListByPassenger(ctx context.Context, passengerID int) ([]*model.Ticket, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.TicketStatus) error

	// ExpireIfDue 惰性過期：單一條件更新，ACTIVE/IN_USE 且已過期才改成 EXPIRED，
	// 已是 EXPIRED 時再跑一次是 no-op
	ExpireIfDue(ctx context.Context, id uuid.UUID, now time.Time) error
	ExpireDueForPassenger(ctx context.Context, passengerID int, now time.Time) error

	// Transaction methods
	FindByIDWithLock(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `
		t.id, t.passenger_id, t.source_id, t.destination_id,
		sf.code, st.code,
		t.price, t.status, t.path_repr, t.lines_used, t.created_at, t.expires_at
`

const ticketJoins = `
		FROM tickets t
		JOIN stations sf ON sf.id = t.source_id
		JOIN stations st ON st.id = t.destination_id
`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.PassengerID,
		&ticket.SourceID,
		&ticket.DestinationID,
		&ticket.SourceCode,
		&ticket.DestCode,
		&ticket.Price,
		&ticket.Status,
		&ticket.PathRepr,
		&ticket.LinesUsed,
		&ticket.CreatedAt,
		&ticket.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
		id, passenger_id, source_id, destination_id, price, status, path_repr, lines_used, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := querierFrom(ctx, r.pool).QueryRow(ctx, query,
		ticket.ID, ticket.PassengerID, ticket.SourceID, ticket.DestinationID,
		ticket.Price, ticket.Status, ticket.PathRepr, ticket.LinesUsed, ticket.ExpiresAt,
	).Scan(
		&ticket.ID,
		&ticket.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketJoins + `WHERE t.id = $1`

	ticket, err := scanTicket(querierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByIDWithLock(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	// 先鎖 tickets 那一列再補站碼，避免 FOR UPDATE 連帶鎖住 stations
	query := `
		SELECT id, passenger_id, source_id, destination_id,
				price, status, path_repr, lines_used, created_at, expires_at
		FROM tickets
		WHERE id = $1
		FOR UPDATE
	`

	q := querierFrom(ctx, r.pool)

	var ticket model.Ticket
	err := q.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.PassengerID,
		&ticket.SourceID,
		&ticket.DestinationID,
		&ticket.Price,
		&ticket.Status,
		&ticket.PathRepr,
		&ticket.LinesUsed,
		&ticket.CreatedAt,
		&ticket.ExpiresAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	codesQuery := `
		SELECT sf.code, st.code
		FROM stations sf, stations st
		WHERE sf.id = $1 AND st.id = $2
	`
	if err := q.QueryRow(ctx, codesQuery, ticket.SourceID, ticket.DestinationID).Scan(
		&ticket.SourceCode,
		&ticket.DestCode,
	); err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) ListByPassenger(ctx context.Context, passengerID int) ([]*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketJoins + `
		WHERE t.passenger_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TicketStatus) error {
	query := `
		UPDATE tickets
		SET status = $1
		WHERE id = $2
	`

	result, err := querierFrom(ctx, r.pool).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

func (r *TicketRepositoryImpl) ExpireIfDue(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `
		UPDATE tickets
		SET status = 'EXPIRED'
		WHERE id = $1
			AND status IN ('ACTIVE', 'IN_USE')
			AND expires_at IS NOT NULL
			AND expires_at <= $2
	`

	_, err := querierFrom(ctx, r.pool).Exec(ctx, query, id, now)
	return err
}

func (r *TicketRepositoryImpl) ExpireDueForPassenger(ctx context.Context, passengerID int, now time.Time) error {
	query := `
		UPDATE tickets
		SET status = 'EXPIRED'
		WHERE passenger_id = $1
			AND status IN ('ACTIVE', 'IN_USE')
			AND expires_at IS NOT NULL
			AND expires_at <= $2
	`

	_, err := querierFrom(ctx, r.pool).Exec(ctx, query, passengerID, now)
	return err
}
