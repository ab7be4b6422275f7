package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"metro-ticketing/config"
	"metro-ticketing/internal/database"
	"metro-ticketing/internal/model"
	"metro-ticketing/internal/queue"
	"metro-ticketing/internal/repository"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"
	"metro-ticketing/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeGenerator 產生 OTP 驗證碼。注入介面讓測試可以給固定序列。
type CodeGenerator interface {
	Generate() string
}

type RandCodeGenerator struct{}

// Generate 000000–999999 均勻隨機，補零到六位
func (RandCodeGenerator) Generate() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

type PurchaseService interface {
	// RequestPurchase 報價並簽發 OTP。OTP 通知寄送失敗時整個操作失敗。
	RequestPurchase(ctx context.Context, passengerID int, req model.PurchaseRequest) (*model.PurchaseResponse, error)
	// Verify 驗證 OTP；成功時扣款並開立 ACTIVE 車票。
	// 已過期的授權會以相同 payload 換發新碼並回傳 ErrAuthorizationExpired，絕不扣款。
	Verify(ctx context.Context, passengerID int, code string) (*model.Ticket, error)
	// Resend 作廢現行驗證碼並以相同 payload 換發新碼
	Resend(ctx context.Context, passengerID int) (*model.PurchaseResponse, error)
}

type PurchaseServiceImpl struct {
	tx          database.Transactor
	otpRepo     repository.OTPRepository
	walletRepo  repository.WalletRepository
	ticketRepo  repository.TicketRepository
	stationRepo repository.StationRepository
	lineRepo    repository.LineRepository
	routes      RouteService
	queue       queue.NotificationQueue
	codes       CodeGenerator
	otpTTL      time.Duration
	ticketTTL   time.Duration
	now         func() time.Time
}

func NewPurchaseService(
	tx database.Transactor,
	otpRepo repository.OTPRepository,
	walletRepo repository.WalletRepository,
	ticketRepo repository.TicketRepository,
	stationRepo repository.StationRepository,
	lineRepo repository.LineRepository,
	routes RouteService,
	notificationQueue queue.NotificationQueue,
	codes CodeGenerator,
	fare config.FareConfig,
) PurchaseService {
	return &PurchaseServiceImpl{
		tx:          tx,
		otpRepo:     otpRepo,
		walletRepo:  walletRepo,
		ticketRepo:  ticketRepo,
		stationRepo: stationRepo,
		lineRepo:    lineRepo,
		routes:      routes,
		queue:       notificationQueue,
		codes:       codes,
		otpTTL:      time.Duration(fare.OTPTTLMinutes) * time.Minute,
		ticketTTL:   time.Duration(fare.TicketTTLHours) * time.Hour,
		now:         time.Now,
	}
}

func (s *PurchaseServiceImpl) RequestPurchase(ctx context.Context, passengerID int, req model.PurchaseRequest) (*model.PurchaseResponse, error) {
	passenger, err := s.walletRepo.FindPassengerByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	if passenger.Email == "" {
		return nil, apperrors.ErrEmailRequired
	}

	enabled, err := s.lineRepo.AnyEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, apperrors.ErrNoEnabledLines
	}

	quote, err := s.routes.Quote(ctx, req.SourceCode, req.DestinationCode, true)
	if err != nil {
		return nil, err
	}

	// 請求時先擋一次餘額；驗證時會以條件扣款再查核一次
	if passenger.Balance.LessThan(quote.Price) {
		return nil, apperrors.ErrInsufficientBalance
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return nil, err
	}

	otp, err := s.issue(ctx, passengerID, payload)
	if err != nil {
		return nil, err
	}

	if err := s.sendOTP(ctx, passenger, otp); err != nil {
		return nil, err
	}

	return &model.PurchaseResponse{Quote: *quote, ExpiresAt: otp.ExpiresAt}, nil
}

func (s *PurchaseServiceImpl) Verify(ctx context.Context, passengerID int, code string) (*model.Ticket, error) {
	passenger, err := s.walletRepo.FindPassengerByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	otp, err := s.otpRepo.FindCurrent(ctx, passengerID, model.OTPPurposeTicketPurchase)
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("no_authorization").Inc()
		return nil, err
	}

	if otp.IsExpiredAt(s.now()) {
		// 過期滾動：以相同 payload 換發新碼並通知乘客，呼叫端必須用新碼重試。
		// 這條路徑絕不扣款、不開票。
		newOTP, err := s.issue(ctx, passengerID, otp.Payload)
		if err != nil {
			return nil, err
		}
		if err := s.sendOTP(ctx, passenger, newOTP); err != nil {
			return nil, err
		}
		metrics.OTPVerifications.WithLabelValues("expired").Inc()
		return nil, apperrors.ErrAuthorizationExpired
	}

	if code != otp.Code {
		// 授權保持未使用，到期前可以再試
		metrics.OTPVerifications.WithLabelValues("mismatch").Inc()
		return nil, apperrors.ErrCodeMismatch
	}

	// CAS 消耗授權：兩個並發驗證只有一個會成功
	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		metrics.OTPVerifications.WithLabelValues("already_used").Inc()
		return nil, err
	}

	var quote model.Quote
	if err := json.Unmarshal(otp.Payload, &quote); err != nil {
		return nil, fmt.Errorf("unmarshal otp payload: %w", err)
	}

	ticket, err := s.finalize(ctx, passengerID, &quote)
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("finalize_failed").Inc()
		return nil, err
	}
	metrics.OTPVerifications.WithLabelValues("success").Inc()
	metrics.TicketsIssued.WithLabelValues("purchase").Inc()

	// 購買成功通知是盡力而為，寄不出去不影響交易
	notification := &queue.Notification{
		Recipient: passenger.Email,
		Subject:   "Metro Ticket Purchased",
		Body: fmt.Sprintf("Ticket %s from %s to %s purchased for %s.",
			ticket.ID, quote.SourceCode, quote.DestinationCode, quote.Price),
	}
	if err := s.queue.PublishNotification(ctx, notification); err != nil {
		metrics.NotificationPublishErrors.Inc()
		logger.WithComponent("purchase").Warn("purchase confirmation publish failed", zap.Error(err))
	} else {
		metrics.NotificationsPublished.Inc()
	}

	return ticket, nil
}

// finalize 扣款、記流水、開票，三者同一交易：失敗時不能留下已扣款的錢包
func (s *PurchaseServiceImpl) finalize(ctx context.Context, passengerID int, quote *model.Quote) (*model.Ticket, error) {
	source, err := s.stationRepo.FindByCode(ctx, quote.SourceCode)
	if err != nil {
		return nil, err
	}
	destination, err := s.stationRepo.FindByCode(ctx, quote.DestinationCode)
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.ticketTTL)
	ticket := &model.Ticket{
		ID:            uuid.New(),
		PassengerID:   &passengerID,
		SourceID:      source.ID,
		DestinationID: destination.ID,
		SourceCode:    source.Code,
		DestCode:      destination.Code,
		Price:         quote.Price,
		Status:        model.TicketStatusActive,
		PathRepr:      quote.PathRepr,
		LinesUsed:     strings.Join(quote.LinesUsed, ", "),
		ExpiresAt:     &expiresAt,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		description := fmt.Sprintf("Ticket purchase %s->%s", source.Code, destination.Code)
		if _, err := s.walletRepo.Debit(ctx, passengerID, quote.Price, description); err != nil {
			return err
		}
		_, err := s.ticketRepo.Create(ctx, ticket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (s *PurchaseServiceImpl) Resend(ctx context.Context, passengerID int) (*model.PurchaseResponse, error) {
	passenger, err := s.walletRepo.FindPassengerByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	otp, err := s.otpRepo.FindCurrent(ctx, passengerID, model.OTPPurposeTicketPurchase)
	if err != nil {
		return nil, err
	}

	// 即使尚未過期也作廢舊碼，換發後只有新碼有效
	newOTP, err := s.issue(ctx, passengerID, otp.Payload)
	if err != nil {
		return nil, err
	}

	if err := s.sendOTP(ctx, passenger, newOTP); err != nil {
		return nil, err
	}

	var quote model.Quote
	if err := json.Unmarshal(newOTP.Payload, &quote); err != nil {
		return nil, fmt.Errorf("unmarshal otp payload: %w", err)
	}

	return &model.PurchaseResponse{Quote: quote, ExpiresAt: newOTP.ExpiresAt}, nil
}

// issue 簽發新授權：作廢同用途的所有未使用授權 + 寫入新授權，同一交易
func (s *PurchaseServiceImpl) issue(ctx context.Context, passengerID int, payload []byte) (*model.PurchaseOTP, error) {
	otp := &model.PurchaseOTP{
		PassengerID: passengerID,
		Code:        s.codes.Generate(),
		Purpose:     model.OTPPurposeTicketPurchase,
		Payload:     payload,
		ExpiresAt:   s.now().Add(s.otpTTL),
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.otpRepo.SupersedeUnused(ctx, passengerID, model.OTPPurposeTicketPurchase); err != nil {
			return err
		}
		_, err := s.otpRepo.Create(ctx, otp)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OTPIssued.Inc()
	return otp, nil
}

// sendOTP OTP 寄送是關鍵通知：發不進隊列就讓整個操作失敗
func (s *PurchaseServiceImpl) sendOTP(ctx context.Context, passenger *model.Passenger, otp *model.PurchaseOTP) error {
	notification := &queue.Notification{
		Recipient: passenger.Email,
		Subject:   "Your Metro Ticket OTP",
		Body:      fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", otp.Code, int(s.otpTTL.Minutes())),
	}

	if err := s.queue.PublishNotification(ctx, notification); err != nil {
		metrics.NotificationPublishErrors.Inc()
		logger.WithComponent("purchase").Error("otp notification publish failed", zap.Error(err))
		return apperrors.ErrInternalServerError
	}

	metrics.NotificationsPublished.Inc()
	return nil
}
