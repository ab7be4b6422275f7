package repository

import (
	"context"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StationRepository interface {
	Create(ctx context.Context, station *model.Station) (*model.Station, error)
	List(ctx context.Context) ([]*model.Station, error)
	FindByCode(ctx context.Context, code string) (*model.Station, error)
}

type StationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewStationRepository(pool *pgxpool.Pool) StationRepository {
	return &StationRepositoryImpl{
		pool: pool,
	}
}

func (r *StationRepositoryImpl) Create(ctx context.Context, station *model.Station) (*model.Station, error) {
	query := `
		INSERT INTO stations (code, name)
		VALUES ($1, $2)
		RETURNING id, code, name
	`

	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, station.Code, station.Name).Scan(
		&station.ID,
		&station.Code,
		&station.Name,
	)

	if err != nil {
		return nil, err
	}

	return station, nil
}

func (r *StationRepositoryImpl) List(ctx context.Context) ([]*model.Station, error) {
	query := `
		SELECT id, code, name
		FROM stations
		ORDER BY code
	`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]*model.Station, 0)

	for rows.Next() {
		var station model.Station
		err := rows.Scan(
			&station.ID,
			&station.Code,
			&station.Name,
		)
		if err != nil {
			return nil, err
		}
		stations = append(stations, &station)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

func (r *StationRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.Station, error) {
	query := `
		SELECT id, code, name
		FROM stations
		WHERE code = $1
	`

	var station model.Station
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, code).Scan(
		&station.ID,
		&station.Code,
		&station.Name,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrStationNotFound
		}
		return nil, err
	}

	return &station, nil
}
