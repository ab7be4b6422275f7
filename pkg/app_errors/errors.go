package apperrors

import "errors"

var (
	// 路線與票價
	ErrNoPath          = errors.New("no path between stations")
	ErrSameStationPair = errors.New("source and destination cannot be the same")
	ErrStationNotFound = errors.New("station not found")
	ErrLineNotFound    = errors.New("line not found")
	ErrNoEnabledLines  = errors.New("no enabled metro line available")

	// 錢包
	ErrPassengerNotFound   = errors.New("passenger not found")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// 購票 OTP
	ErrNoAuthorization          = errors.New("no valid purchase authorization")
	ErrAuthorizationExpired     = errors.New("purchase authorization expired")
	ErrAuthorizationAlreadyUsed = errors.New("purchase authorization already used")
	ErrCodeMismatch             = errors.New("otp code mismatch")
	ErrEmailRequired            = errors.New("passenger email required for otp delivery")

	// 車票
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketTerminalState = errors.New("ticket is in a terminal state")
	ErrWrongStation        = errors.New("scan at wrong station")
	ErrWrongState          = errors.New("ticket in wrong state for scan")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
