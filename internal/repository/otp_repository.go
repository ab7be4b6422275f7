package repository

import (
	"context"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OTPRepository 購票授權。同一 passenger+purpose 的「現行授權」是唯一一筆未使用資料：
// SupersedeUnused + Create 必須包在同一交易內執行（發新碼即作廢舊碼）。
type OTPRepository interface {
	Create(ctx context.Context, otp *model.PurchaseOTP) (*model.PurchaseOTP, error)
	// FindCurrent 回傳現行(未使用)授權，沒有則回傳 ErrNoAuthorization
	FindCurrent(ctx context.Context, passengerID int, purpose model.OTPPurpose) (*model.PurchaseOTP, error)
	// MarkUsed 以 is_used=false 為前提做 CAS，輸掉競速時回傳 ErrAuthorizationAlreadyUsed
	MarkUsed(ctx context.Context, id int) error
	// SupersedeUnused 作廢所有未使用授權，舊資料保留為稽核紀錄
	SupersedeUnused(ctx context.Context, passengerID int, purpose model.OTPPurpose) error
}

type OTPRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) OTPRepository {
	return &OTPRepositoryImpl{
		pool: pool,
	}
}

func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *model.PurchaseOTP) (*model.PurchaseOTP, error) {
	query := `
		INSERT INTO purchase_otps (passenger_id, code, purpose, payload, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, passenger_id, code, purpose, payload, created_at, expires_at, is_used
	`

	err := querierFrom(ctx, r.pool).QueryRow(ctx, query,
		otp.PassengerID, otp.Code, otp.Purpose, otp.Payload, otp.ExpiresAt,
	).Scan(
		&otp.ID,
		&otp.PassengerID,
		&otp.Code,
		&otp.Purpose,
		&otp.Payload,
		&otp.CreatedAt,
		&otp.ExpiresAt,
		&otp.IsUsed,
	)

	if err != nil {
		return nil, err
	}

	return otp, nil
}

func (r *OTPRepositoryImpl) FindCurrent(ctx context.Context, passengerID int, purpose model.OTPPurpose) (*model.PurchaseOTP, error) {
	query := `
		SELECT id, passenger_id, code, purpose, payload, created_at, expires_at, is_used
		FROM purchase_otps
		WHERE passenger_id = $1 AND purpose = $2 AND NOT is_used
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp model.PurchaseOTP
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, passengerID, purpose).Scan(
		&otp.ID,
		&otp.PassengerID,
		&otp.Code,
		&otp.Purpose,
		&otp.Payload,
		&otp.CreatedAt,
		&otp.ExpiresAt,
		&otp.IsUsed,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoAuthorization
		}
		return nil, err
	}

	return &otp, nil
}

func (r *OTPRepositoryImpl) MarkUsed(ctx context.Context, id int) error {
	query := `
		UPDATE purchase_otps
		SET is_used = TRUE
		WHERE id = $1 AND NOT is_used
	`

	result, err := querierFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAuthorizationAlreadyUsed
	}

	return nil
}

func (r *OTPRepositoryImpl) SupersedeUnused(ctx context.Context, passengerID int, purpose model.OTPPurpose) error {
	query := `
		UPDATE purchase_otps
		SET is_used = TRUE
		WHERE passenger_id = $1 AND purpose = $2 AND NOT is_used
	`

	_, err := querierFrom(ctx, r.pool).Exec(ctx, query, passengerID, purpose)
	return err
}
