package repository

import (
	"context"
	"metro-ticketing/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScanRepository 閘門掃描紀錄，只增不改
type ScanRepository interface {
	Create(ctx context.Context, scan *model.TicketScan) (*model.TicketScan, error)
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*model.TicketScan, error)
}

type ScanRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewScanRepository(pool *pgxpool.Pool) ScanRepository {
	return &ScanRepositoryImpl{
		pool: pool,
	}
}

func (r *ScanRepositoryImpl) Create(ctx context.Context, scan *model.TicketScan) (*model.TicketScan, error) {
	query := `
		INSERT INTO ticket_scans (ticket_id, station_id, direction, scanned_by_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ticket_id, station_id, direction, scanned_by_id, scanned_at
	`

	err := querierFrom(ctx, r.pool).QueryRow(ctx, query,
		scan.TicketID, scan.StationID, scan.Direction, scan.ScannedByID,
	).Scan(
		&scan.ID,
		&scan.TicketID,
		&scan.StationID,
		&scan.Direction,
		&scan.ScannedByID,
		&scan.ScannedAt,
	)

	if err != nil {
		return nil, err
	}

	return scan, nil
}

func (r *ScanRepositoryImpl) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*model.TicketScan, error) {
	query := `
		SELECT id, ticket_id, station_id, direction, scanned_by_id, scanned_at
		FROM ticket_scans
		WHERE ticket_id = $1
		ORDER BY scanned_at
	`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := make([]*model.TicketScan, 0)

	for rows.Next() {
		var scan model.TicketScan
		err := rows.Scan(
			&scan.ID,
			&scan.TicketID,
			&scan.StationID,
			&scan.Direction,
			&scan.ScannedByID,
			&scan.ScannedAt,
		)
		if err != nil {
			return nil, err
		}
		scans = append(scans, &scan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scans, nil
}
