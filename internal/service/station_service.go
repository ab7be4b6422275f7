package service

import (
	"context"

	"metro-ticketing/internal/cache"
	"metro-ticketing/internal/model"
	"metro-ticketing/internal/repository"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"

	"go.uber.org/zap"
)

// StationService 路網目錄：車站/路線查詢與異動。
// 任何會改變路網形狀的異動都要讓圖快照失效。
type StationService interface {
	ListStations(ctx context.Context) ([]*model.Station, error)
	ListLines(ctx context.Context) ([]*model.MetroLine, error)
	CreateStation(ctx context.Context, station *model.Station) (*model.Station, error)
	CreateConnection(ctx context.Context, req model.CreateConnectionRequest) (*model.Connection, error)
	SetLineEnabled(ctx context.Context, code string, enabled bool) (*model.MetroLine, error)
}

type StationServiceImpl struct {
	stationRepo repository.StationRepository
	lineRepo    repository.LineRepository
	connRepo    repository.ConnectionRepository
	graphCache  cache.GraphCache
}

func NewStationService(
	stationRepo repository.StationRepository,
	lineRepo repository.LineRepository,
	connRepo repository.ConnectionRepository,
	graphCache cache.GraphCache,
) StationService {
	return &StationServiceImpl{
		stationRepo: stationRepo,
		lineRepo:    lineRepo,
		connRepo:    connRepo,
		graphCache:  graphCache,
	}
}

func (s *StationServiceImpl) ListStations(ctx context.Context) ([]*model.Station, error) {
	return s.stationRepo.List(ctx)
}

func (s *StationServiceImpl) ListLines(ctx context.Context) ([]*model.MetroLine, error) {
	return s.lineRepo.List(ctx)
}

func (s *StationServiceImpl) CreateStation(ctx context.Context, station *model.Station) (*model.Station, error) {
	created, err := s.stationRepo.Create(ctx, station)
	if err != nil {
		return nil, err
	}

	s.invalidateGraph(ctx)
	return created, nil
}

func (s *StationServiceImpl) CreateConnection(ctx context.Context, req model.CreateConnectionRequest) (*model.Connection, error) {
	if req.FromStationCode == req.ToStationCode {
		return nil, apperrors.ErrSameStationPair
	}

	line, err := s.lineRepo.FindByCode(ctx, req.LineCode)
	if err != nil {
		return nil, err
	}
	from, err := s.stationRepo.FindByCode(ctx, req.FromStationCode)
	if err != nil {
		return nil, err
	}
	to, err := s.stationRepo.FindByCode(ctx, req.ToStationCode)
	if err != nil {
		return nil, err
	}

	conn := &model.Connection{
		LineID:          line.ID,
		FromStationID:   from.ID,
		ToStationID:     to.ID,
		LineCode:        line.Code,
		LineName:        line.Name,
		FromStationCode: from.Code,
		ToStationCode:   to.Code,
	}

	created, err := s.connRepo.Create(ctx, conn)
	if err != nil {
		return nil, err
	}

	s.invalidateGraph(ctx)
	return created, nil
}

func (s *StationServiceImpl) SetLineEnabled(ctx context.Context, code string, enabled bool) (*model.MetroLine, error) {
	line, err := s.lineRepo.SetEnabled(ctx, code, enabled)
	if err != nil {
		return nil, err
	}

	s.invalidateGraph(ctx)
	return line, nil
}

// invalidateGraph 快取清不掉只記 error：快照還有 TTL 當保險，路網異動本身不能失敗
func (s *StationServiceImpl) invalidateGraph(ctx context.Context) {
	if err := s.graphCache.Invalidate(ctx); err != nil {
		logger.WithComponent("directory").Error("graph cache invalidation failed", zap.Error(err))
	}
}
