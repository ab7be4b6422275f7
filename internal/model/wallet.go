package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Passenger 乘客，balance 只能透過 Debit/Credit 變動
type Passenger struct {
	ID       int             `json:"id" db:"id"`
	Username string          `json:"username" db:"username"`
	Email    string          `json:"email" db:"email"`
	Phone    string          `json:"phone" db:"phone"`
	Balance  decimal.Decimal `json:"balance" db:"balance"`
}

// WalletTransaction 錢包流水帳，只增不改
type WalletTransaction struct {
	ID          int             `json:"id" db:"id"`
	PassengerID int             `json:"passenger_id" db:"passenger_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// TopUpRequest 儲值請求
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WalletResponse 錢包餘額響應
type WalletResponse struct {
	PassengerID int             `json:"passenger_id"`
	Balance     decimal.Decimal `json:"balance"`
}
