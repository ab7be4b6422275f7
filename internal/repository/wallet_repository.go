package repository

import (
	"context"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// WalletRepository 餘額查扣與錢包流水帳。Debit/Credit 同時更新餘額並寫入一筆流水，
// 必須在 Transactor 的交易內呼叫時才與開票動作同生共死。
type WalletRepository interface {
	FindPassengerByID(ctx context.Context, passengerID int) (*model.Passenger, error)
	GetBalance(ctx context.Context, passengerID int) (decimal.Decimal, error)
	// Debit 餘額不足時回傳 ErrInsufficientBalance，不做任何變動
	Debit(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error)
	Credit(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error)
	Transactions(ctx context.Context, passengerID int) ([]*model.WalletTransaction, error)
}

type WalletRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewWalletRepository(pool *pgxpool.Pool) WalletRepository {
	return &WalletRepositoryImpl{
		pool: pool,
	}
}

func (r *WalletRepositoryImpl) FindPassengerByID(ctx context.Context, passengerID int) (*model.Passenger, error) {
	query := `
		SELECT id, username, email, phone, balance
		FROM passengers
		WHERE id = $1
	`

	var passenger model.Passenger
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, passengerID).Scan(
		&passenger.ID,
		&passenger.Username,
		&passenger.Email,
		&passenger.Phone,
		&passenger.Balance,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPassengerNotFound
		}
		return nil, err
	}

	return &passenger, nil
}

func (r *WalletRepositoryImpl) GetBalance(ctx context.Context, passengerID int) (decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM passengers
		WHERE id = $1
	`

	var balance decimal.Decimal
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, passengerID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, apperrors.ErrPassengerNotFound
		}
		return decimal.Zero, err
	}

	return balance, nil
}

func (r *WalletRepositoryImpl) Debit(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	q := querierFrom(ctx, r.pool)

	// 條件更新：餘額夠才扣，否則零變動
	query := `
		UPDATE passengers
		SET balance = balance - $1
		WHERE id = $2 AND balance >= $1
	`

	result, err := q.Exec(ctx, query, amount, passengerID)
	if err != nil {
		return nil, err
	}

	if result.RowsAffected() == 0 {
		if _, err := r.FindPassengerByID(ctx, passengerID); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrInsufficientBalance
	}

	return r.appendTransaction(ctx, passengerID, amount.Neg(), description)
}

func (r *WalletRepositoryImpl) Credit(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	q := querierFrom(ctx, r.pool)

	query := `
		UPDATE passengers
		SET balance = balance + $1
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, amount, passengerID)
	if err != nil {
		return nil, err
	}

	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrPassengerNotFound
	}

	return r.appendTransaction(ctx, passengerID, amount, description)
}

func (r *WalletRepositoryImpl) appendTransaction(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	query := `
		INSERT INTO wallet_transactions (passenger_id, amount, description)
		VALUES ($1, $2, $3)
		RETURNING id, passenger_id, amount, description, created_at
	`

	var tx model.WalletTransaction
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, passengerID, amount, description).Scan(
		&tx.ID,
		&tx.PassengerID,
		&tx.Amount,
		&tx.Description,
		&tx.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (r *WalletRepositoryImpl) Transactions(ctx context.Context, passengerID int) ([]*model.WalletTransaction, error) {
	query := `
		SELECT id, passenger_id, amount, description, created_at
		FROM wallet_transactions
		WHERE passenger_id = $1
		ORDER BY created_at DESC
	`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]*model.WalletTransaction, 0)

	for rows.Next() {
		var tx model.WalletTransaction
		err := rows.Scan(
			&tx.ID,
			&tx.PassengerID,
			&tx.Amount,
			&tx.Description,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}
