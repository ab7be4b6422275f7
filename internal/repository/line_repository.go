package repository

import (
	"context"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LineRepository interface {
	Create(ctx context.Context, line *model.MetroLine) (*model.MetroLine, error)
	List(ctx context.Context) ([]*model.MetroLine, error)
	FindByCode(ctx context.Context, code string) (*model.MetroLine, error)
	// AnyEnabled 是否還有啟用中的路線可供購票
	AnyEnabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, code string, enabled bool) (*model.MetroLine, error)
}

type LineRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewLineRepository(pool *pgxpool.Pool) LineRepository {
	return &LineRepositoryImpl{
		pool: pool,
	}
}

func (r *LineRepositoryImpl) Create(ctx context.Context, line *model.MetroLine) (*model.MetroLine, error) {
	query := `
		INSERT INTO metro_lines (code, name, is_enabled)
		VALUES ($1, $2, $3)
		RETURNING id, code, name, is_enabled
	`

	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, line.Code, line.Name, line.IsEnabled).Scan(
		&line.ID,
		&line.Code,
		&line.Name,
		&line.IsEnabled,
	)

	if err != nil {
		return nil, err
	}

	return line, nil
}

func (r *LineRepositoryImpl) List(ctx context.Context) ([]*model.MetroLine, error) {
	query := `
		SELECT id, code, name, is_enabled
		FROM metro_lines
		ORDER BY code
	`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]*model.MetroLine, 0)

	for rows.Next() {
		var line model.MetroLine
		err := rows.Scan(
			&line.ID,
			&line.Code,
			&line.Name,
			&line.IsEnabled,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *LineRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.MetroLine, error) {
	query := `
		SELECT id, code, name, is_enabled
		FROM metro_lines
		WHERE code = $1
	`

	var line model.MetroLine
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, code).Scan(
		&line.ID,
		&line.Code,
		&line.Name,
		&line.IsEnabled,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrLineNotFound
		}
		return nil, err
	}

	return &line, nil
}

func (r *LineRepositoryImpl) AnyEnabled(ctx context.Context) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM metro_lines WHERE is_enabled)
	`

	var exists bool
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *LineRepositoryImpl) SetEnabled(ctx context.Context, code string, enabled bool) (*model.MetroLine, error) {
	query := `
		UPDATE metro_lines
		SET is_enabled = $1
		WHERE code = $2
		RETURNING id, code, name, is_enabled
	`

	var line model.MetroLine
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, enabled, code).Scan(
		&line.ID,
		&line.Code,
		&line.Name,
		&line.IsEnabled,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrLineNotFound
		}
		return nil, err
	}

	return &line, nil
}
