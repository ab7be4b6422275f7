package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketStatus 車票狀態類型
type TicketStatus string

const (
	TicketStatusActive  TicketStatus = "ACTIVE"
	TicketStatusInUse   TicketStatus = "IN_USE"
	TicketStatusUsed    TicketStatus = "USED"
	TicketStatusExpired TicketStatus = "EXPIRED"
)

// IsValid 驗證狀態是否有效
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusActive, TicketStatusInUse, TicketStatusUsed, TicketStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	transitions := map[TicketStatus][]TicketStatus{
		TicketStatusActive:  {TicketStatusInUse, TicketStatusExpired},
		TicketStatusInUse:   {TicketStatusUsed, TicketStatusExpired},
		TicketStatusUsed:    {}, // 終態
		TicketStatusExpired: {}, // 終態
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// IsTerminal USED/EXPIRED 之後不再接受任何閘門掃描
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusUsed || s == TicketStatusExpired
}

// ScanDirection 掃描方向
type ScanDirection string

const (
	ScanDirectionEntry ScanDirection = "ENTRY"
	ScanDirectionExit  ScanDirection = "EXIT"
)

// IsValid 驗證方向是否有效
func (d ScanDirection) IsValid() bool {
	return d == ScanDirectionEntry || d == ScanDirectionExit
}

// Ticket 車票模型。PassengerID 為 nil 代表站務員開立的離線票。
type Ticket struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	PassengerID   *int            `json:"passenger_id,omitempty" db:"passenger_id"`
	SourceID      int             `json:"source_id" db:"source_id"`
	DestinationID int             `json:"destination_id" db:"destination_id"`
	SourceCode    string          `json:"source_code" db:"-"`
	DestCode      string          `json:"destination_code" db:"-"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Status        TicketStatus    `json:"status" db:"status"`
	PathRepr      string          `json:"path_repr" db:"path_repr"`
	LinesUsed     string          `json:"lines_used" db:"lines_used"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
}

// IsExpired 是否已過有效期限
func (t *Ticket) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}

// TicketScan 閘門掃描紀錄，只增不改。station/operator 可能因後續刪除而為 nil。
type TicketScan struct {
	ID          int           `json:"id" db:"id"`
	TicketID    uuid.UUID     `json:"ticket_id" db:"ticket_id"`
	StationID   *int          `json:"station_id,omitempty" db:"station_id"`
	Direction   ScanDirection `json:"direction" db:"direction"`
	ScannedByID *int          `json:"scanned_by_id,omitempty" db:"scanned_by_id"`
	ScannedAt   time.Time     `json:"scanned_at" db:"scanned_at"`
}

// ScanRequest 閘門掃描請求
type ScanRequest struct {
	TicketID    string        `json:"ticket_id" binding:"required"`
	StationCode string        `json:"station_code" binding:"required"`
	Direction   ScanDirection `json:"direction" binding:"required"`
}

// ScanResult 掃描結果。失敗時 Message 說明預期與實際的差異，供站務員排查。
type ScanResult struct {
	TicketID uuid.UUID    `json:"ticket_id"`
	Status   TicketStatus `json:"status"`
	Accepted bool         `json:"accepted"`
	Message  string       `json:"message"`
}

// OfflineTicketRequest 離線票開立請求
type OfflineTicketRequest struct {
	SourceCode      string `json:"source_code" binding:"required"`
	DestinationCode string `json:"destination_code" binding:"required"`
}
