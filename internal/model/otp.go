package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OTPPurpose OTP 用途
type OTPPurpose string

const (
	OTPPurposeTicketPurchase OTPPurpose = "TICKET_PURCHASE"
)

// Quote 報價：起訖站、最短路徑、票價與行經路線。只存在於待驗證的 OTP payload 中。
type Quote struct {
	SourceCode      string          `json:"source_code"`
	DestinationCode string          `json:"destination_code"`
	Path            []string        `json:"path"`
	PathRepr        string          `json:"path_repr"`
	Price           decimal.Decimal `json:"price"`
	LinesUsed       []string        `json:"lines_used"`
}

// PurchaseOTP 購票授權。同一 user+purpose 同時只有一筆未使用的授權（發新即作廢舊的），
// 舊資料保留為稽核紀錄。
type PurchaseOTP struct {
	ID          int        `json:"id" db:"id"`
	PassengerID int        `json:"passenger_id" db:"passenger_id"`
	Code        string     `json:"-" db:"code"`
	Purpose     OTPPurpose `json:"purpose" db:"purpose"`
	Payload     []byte     `json:"-" db:"payload"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at" db:"expires_at"`
	IsUsed      bool       `json:"is_used" db:"is_used"`
}

// IsExpiredAt 是否已超過有效時間
func (o *PurchaseOTP) IsExpiredAt(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// PurchaseRequest 購票請求
type PurchaseRequest struct {
	SourceCode      string `json:"source_code" binding:"required"`
	DestinationCode string `json:"destination_code" binding:"required"`
}

// PurchaseResponse 購票請求響應：OTP 已寄出，不回傳驗證碼本身
type PurchaseResponse struct {
	Quote     Quote     `json:"quote"`
	ExpiresAt time.Time `json:"otp_expires_at"`
}

// VerifyRequest OTP 驗證請求
type VerifyRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
