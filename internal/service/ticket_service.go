package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"metro-ticketing/config"
	"metro-ticketing/internal/database"
	"metro-ticketing/internal/model"
	"metro-ticketing/internal/repository"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/metrics"

	"github.com/google/uuid"
)

type TicketService interface {
	// ListForPassenger / GetForPassenger 讀取前先做惰性過期修正
	ListForPassenger(ctx context.Context, passengerID int) ([]*model.Ticket, error)
	GetForPassenger(ctx context.Context, passengerID int, ticketID uuid.UUID) (*model.Ticket, error)
	ListScans(ctx context.Context, ticketID uuid.UUID) ([]*model.TicketScan, error)

	// Scan 閘門掃描：ENTRY 要求 ACTIVE+起站，EXIT 要求 IN_USE+迄站。
	// 拒絕時回傳的 ScanResult.Message 說明預期與實際，供站務員排查。
	Scan(ctx context.Context, req model.ScanRequest, operatorID int) (*model.ScanResult, error)

	// IssueOfflineTicket 站務員現場開票：直接 USED 並補上進出站兩筆掃描，不碰錢包
	IssueOfflineTicket(ctx context.Context, req model.OfflineTicketRequest, operatorID int) (*model.Ticket, error)
}

type TicketServiceImpl struct {
	tx          database.Transactor
	repo        repository.TicketRepository
	scanRepo    repository.ScanRepository
	stationRepo repository.StationRepository
	routes      RouteService
	ticketTTL   time.Duration
	now         func() time.Time
}

func NewTicketService(
	tx database.Transactor,
	repo repository.TicketRepository,
	scanRepo repository.ScanRepository,
	stationRepo repository.StationRepository,
	routes RouteService,
	fare config.FareConfig,
) TicketService {
	return &TicketServiceImpl{
		tx:          tx,
		repo:        repo,
		scanRepo:    scanRepo,
		stationRepo: stationRepo,
		routes:      routes,
		ticketTTL:   time.Duration(fare.TicketTTLHours) * time.Hour,
		now:         time.Now,
	}
}

func (s *TicketServiceImpl) ListForPassenger(ctx context.Context, passengerID int) ([]*model.Ticket, error) {
	if err := s.repo.ExpireDueForPassenger(ctx, passengerID, s.now()); err != nil {
		return nil, err
	}
	return s.repo.ListByPassenger(ctx, passengerID)
}

func (s *TicketServiceImpl) GetForPassenger(ctx context.Context, passengerID int, ticketID uuid.UUID) (*model.Ticket, error) {
	if err := s.repo.ExpireIfDue(ctx, ticketID, s.now()); err != nil {
		return nil, err
	}

	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	// 只能看自己的票；別人的票對呼叫者而言等同不存在
	if ticket.PassengerID == nil || *ticket.PassengerID != passengerID {
		return nil, apperrors.ErrTicketNotFound
	}

	return ticket, nil
}

func (s *TicketServiceImpl) ListScans(ctx context.Context, ticketID uuid.UUID) ([]*model.TicketScan, error) {
	return s.scanRepo.ListByTicket(ctx, ticketID)
}

func (s *TicketServiceImpl) Scan(ctx context.Context, req model.ScanRequest, operatorID int) (*model.ScanResult, error) {
	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		return nil, apperrors.ErrInvalidInput
	}
	if !req.Direction.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	station, err := s.stationRepo.FindByCode(ctx, req.StationCode)
	if err != nil {
		return nil, err
	}

	now := s.now()

	// 惰性過期修正在掃描交易之前獨立提交：即使掃描被拒絕，修正仍要保留
	if err := s.repo.ExpireIfDue(ctx, ticketID, now); err != nil {
		return nil, err
	}

	var result *model.ScanResult
	var denied error

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ticket, err := s.repo.FindByIDWithLock(ctx, ticketID)
		if err != nil {
			return err
		}

		// 鎖內補判：過期時刻剛好落在上面的修正與取鎖之間
		if !ticket.Status.IsTerminal() && ticket.IsExpired(now) {
			if err := s.repo.UpdateStatus(ctx, ticketID, model.TicketStatusExpired); err != nil {
				return err
			}
			ticket.Status = model.TicketStatusExpired
		}

		if ticket.Status.IsTerminal() {
			result = deniedResult(ticket, fmt.Sprintf("Cannot scan. Ticket status is %s.", ticket.Status))
			denied = apperrors.ErrTicketTerminalState
			return nil
		}

		switch req.Direction {
		case model.ScanDirectionEntry:
			if ticket.Status != model.TicketStatusActive {
				result = deniedResult(ticket, fmt.Sprintf("ENTRY denied. Ticket status is %s, expected %s.", ticket.Status, model.TicketStatusActive))
				denied = apperrors.ErrWrongState
				return nil
			}
			if station.ID != ticket.SourceID {
				result = deniedResult(ticket, fmt.Sprintf("ENTRY denied at %s. Ticket source is %s.", station.Code, ticket.SourceCode))
				denied = apperrors.ErrWrongStation
				return nil
			}
			return s.acceptScan(ctx, ticket, station, req.Direction, operatorID, model.TicketStatusInUse, &result)

		default: // EXIT
			if ticket.Status != model.TicketStatusInUse {
				result = deniedResult(ticket, fmt.Sprintf("EXIT denied. Ticket status is %s, expected %s.", ticket.Status, model.TicketStatusInUse))
				denied = apperrors.ErrWrongState
				return nil
			}
			if station.ID != ticket.DestinationID {
				result = deniedResult(ticket, fmt.Sprintf("EXIT denied at %s. Ticket destination is %s.", station.Code, ticket.DestCode))
				denied = apperrors.ErrWrongStation
				return nil
			}
			return s.acceptScan(ctx, ticket, station, req.Direction, operatorID, model.TicketStatusUsed, &result)
		}
	})
	if err != nil {
		metrics.TicketScans.WithLabelValues(string(req.Direction), "error").Inc()
		return nil, err
	}
	if denied != nil {
		metrics.TicketScans.WithLabelValues(string(req.Direction), "denied").Inc()
		return result, denied
	}

	metrics.TicketScans.WithLabelValues(string(req.Direction), "accepted").Inc()
	return result, nil
}

func (s *TicketServiceImpl) acceptScan(
	ctx context.Context,
	ticket *model.Ticket,
	station *model.Station,
	direction model.ScanDirection,
	operatorID int,
	target model.TicketStatus,
	result **model.ScanResult,
) error {
	if err := s.repo.UpdateStatus(ctx, ticket.ID, target); err != nil {
		return err
	}

	scan := &model.TicketScan{
		TicketID:    ticket.ID,
		StationID:   &station.ID,
		Direction:   direction,
		ScannedByID: &operatorID,
	}
	if _, err := s.scanRepo.Create(ctx, scan); err != nil {
		return err
	}

	var verb string
	if direction == model.ScanDirectionEntry {
		verb = "Entry"
	} else {
		verb = "Exit"
	}
	*result = &model.ScanResult{
		TicketID: ticket.ID,
		Status:   target,
		Accepted: true,
		Message:  fmt.Sprintf("%s scan successful. Ticket is now %s.", verb, target),
	}
	return nil
}

func deniedResult(ticket *model.Ticket, message string) *model.ScanResult {
	return &model.ScanResult{
		TicketID: ticket.ID,
		Status:   ticket.Status,
		Accepted: false,
		Message:  message,
	}
}

func (s *TicketServiceImpl) IssueOfflineTicket(ctx context.Context, req model.OfflineTicketRequest, operatorID int) (*model.Ticket, error) {
	quote, err := s.routes.Quote(ctx, req.SourceCode, req.DestinationCode, true)
	if err != nil {
		return nil, err
	}

	source, err := s.stationRepo.FindByCode(ctx, req.SourceCode)
	if err != nil {
		return nil, err
	}
	destination, err := s.stationRepo.FindByCode(ctx, req.DestinationCode)
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.ticketTTL)
	ticket := &model.Ticket{
		ID:            uuid.New(),
		PassengerID:   nil, // 離線票沒有綁定乘客
		SourceID:      source.ID,
		DestinationID: destination.ID,
		SourceCode:    source.Code,
		DestCode:      destination.Code,
		Price:         quote.Price,
		Status:        model.TicketStatusUsed,
		PathRepr:      quote.PathRepr,
		LinesUsed:     strings.Join(quote.LinesUsed, ", "),
		ExpiresAt:     &expiresAt,
	}

	// 開票與進出站兩筆掃描一起落地，代表一趟已完成的現場行程
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Create(ctx, ticket); err != nil {
			return err
		}
		entry := &model.TicketScan{
			TicketID:    ticket.ID,
			StationID:   &source.ID,
			Direction:   model.ScanDirectionEntry,
			ScannedByID: &operatorID,
		}
		if _, err := s.scanRepo.Create(ctx, entry); err != nil {
			return err
		}
		exit := &model.TicketScan{
			TicketID:    ticket.ID,
			StationID:   &destination.ID,
			Direction:   model.ScanDirectionExit,
			ScannedByID: &operatorID,
		}
		_, err := s.scanRepo.Create(ctx, exit)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.TicketsIssued.WithLabelValues("offline").Inc()
	return ticket, nil
}
