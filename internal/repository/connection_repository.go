package repository

import (
	"context"
	"metro-ticketing/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ConnectionRepository interface {
	Create(ctx context.Context, conn *model.Connection) (*model.Connection, error)
	// List 取出所有連線（含路線與站碼），onlyEnabled 時僅含啟用路線的連線
	List(ctx context.Context, onlyEnabled bool) ([]*model.Connection, error)
}

type ConnectionRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewConnectionRepository(pool *pgxpool.Pool) ConnectionRepository {
	return &ConnectionRepositoryImpl{
		pool: pool,
	}
}

func (r *ConnectionRepositoryImpl) Create(ctx context.Context, conn *model.Connection) (*model.Connection, error) {
	query := `
		INSERT INTO connections (line_id, from_station_id, to_station_id)
		VALUES ($1, $2, $3)
		RETURNING id, line_id, from_station_id, to_station_id
	`

	err := querierFrom(ctx, r.pool).QueryRow(ctx, query,
		conn.LineID, conn.FromStationID, conn.ToStationID,
	).Scan(
		&conn.ID,
		&conn.LineID,
		&conn.FromStationID,
		&conn.ToStationID,
	)

	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (r *ConnectionRepositoryImpl) List(ctx context.Context, onlyEnabled bool) ([]*model.Connection, error) {
	query := `
		SELECT c.id, c.line_id, c.from_station_id, c.to_station_id,
				l.code, l.name, sf.code, st.code
		FROM connections c
		JOIN metro_lines l ON l.id = c.line_id
		JOIN stations sf ON sf.id = c.from_station_id
		JOIN stations st ON st.id = c.to_station_id
	`
	if onlyEnabled {
		query += ` WHERE l.is_enabled`
	}
	query += ` ORDER BY c.id`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conns := make([]*model.Connection, 0)

	for rows.Next() {
		var conn model.Connection
		err := rows.Scan(
			&conn.ID,
			&conn.LineID,
			&conn.FromStationID,
			&conn.ToStationID,
			&conn.LineCode,
			&conn.LineName,
			&conn.FromStationCode,
			&conn.ToStationCode,
		)
		if err != nil {
			return nil, err
		}
		conns = append(conns, &conn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return conns, nil
}
