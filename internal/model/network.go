package model

// Station 車站，code 為唯一識別
type Station struct {
	ID   int    `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// MetroLine 路線，停用後其連線不參與路徑計算
type MetroLine struct {
	ID        int    `json:"id" db:"id"`
	Code      string `json:"code" db:"code"`
	Name      string `json:"name" db:"name"`
	IsEnabled bool   `json:"is_enabled" db:"is_enabled"`
}

// Connection 兩站之間的無向邊，屬於某條路線
type Connection struct {
	ID              int    `json:"id" db:"id"`
	LineID          int    `json:"line_id" db:"line_id"`
	FromStationID   int    `json:"from_station_id" db:"from_station_id"`
	ToStationID     int    `json:"to_station_id" db:"to_station_id"`
	LineCode        string `json:"line_code" db:"-"`
	LineName        string `json:"line_name" db:"-"`
	FromStationCode string `json:"from_station_code" db:"-"`
	ToStationCode   string `json:"to_station_code" db:"-"`
}

// CreateConnectionRequest 建立連線請求
type CreateConnectionRequest struct {
	LineCode        string `json:"line_code" binding:"required"`
	FromStationCode string `json:"from_station_code" binding:"required"`
	ToStationCode   string `json:"to_station_code" binding:"required"`
}

// SetLineEnabledRequest 啟用/停用路線請求
type SetLineEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
