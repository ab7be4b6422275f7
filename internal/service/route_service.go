package service

import (
	"context"
	"strings"

	"metro-ticketing/internal/cache"
	"metro-ticketing/internal/model"
	"metro-ticketing/internal/repository"
	"metro-ticketing/internal/routing"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RouteService interface {
	// Quote 計算起訖站的最短路徑、票價與行經路線。onlyEnabled 時只走啟用路線。
	Quote(ctx context.Context, sourceCode, destinationCode string, onlyEnabled bool) (*model.Quote, error)
}

type RouteServiceImpl struct {
	stationRepo repository.StationRepository
	connRepo    repository.ConnectionRepository
	graphCache  cache.GraphCache
	ratePerEdge decimal.Decimal
}

func NewRouteService(
	stationRepo repository.StationRepository,
	connRepo repository.ConnectionRepository,
	graphCache cache.GraphCache,
	ratePerEdge decimal.Decimal,
) RouteService {
	return &RouteServiceImpl{
		stationRepo: stationRepo,
		connRepo:    connRepo,
		graphCache:  graphCache,
		ratePerEdge: ratePerEdge,
	}
}

func (s *RouteServiceImpl) Quote(ctx context.Context, sourceCode, destinationCode string, onlyEnabled bool) (*model.Quote, error) {
	if sourceCode == destinationCode {
		return nil, apperrors.ErrSameStationPair
	}

	snapshot, err := s.loadSnapshot(ctx, onlyEnabled)
	if err != nil {
		return nil, err
	}

	network := routing.NewNetwork(*snapshot)

	path, err := network.ShortestPath(sourceCode, destinationCode)
	if err != nil {
		return nil, err
	}

	return &model.Quote{
		SourceCode:      sourceCode,
		DestinationCode: destinationCode,
		Path:            path,
		PathRepr:        strings.Join(path, "-"),
		Price:           routing.PriceFromPath(path, s.ratePerEdge),
		LinesUsed:       network.LineSummary(path),
	}, nil
}

// loadSnapshot 讀穿快取：快取沒中(或壞掉)就從資料庫重建路網快照並回填
func (s *RouteServiceImpl) loadSnapshot(ctx context.Context, onlyEnabled bool) (*routing.NetworkSnapshot, error) {
	snapshot, err := s.graphCache.Get(ctx, onlyEnabled)
	if err != nil {
		logger.WithComponent("routing").Warn("graph cache read failed, rebuilding from db", zap.Error(err))
	}
	if snapshot != nil {
		return snapshot, nil
	}

	stations, err := s.stationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	conns, err := s.connRepo.List(ctx, onlyEnabled)
	if err != nil {
		return nil, err
	}

	snapshot = &routing.NetworkSnapshot{
		Stations: make([]routing.StationNode, 0, len(stations)),
		Links:    make([]routing.Link, 0, len(conns)),
	}
	for _, st := range stations {
		snapshot.Stations = append(snapshot.Stations, routing.StationNode{Code: st.Code, Name: st.Name})
	}
	for _, conn := range conns {
		snapshot.Links = append(snapshot.Links, routing.Link{
			FromCode: conn.FromStationCode,
			ToCode:   conn.ToStationCode,
			LineCode: conn.LineCode,
			LineName: conn.LineName,
		})
	}

	if err := s.graphCache.Set(ctx, onlyEnabled, snapshot); err != nil {
		logger.WithComponent("routing").Warn("graph cache write failed", zap.Error(err))
	}

	return snapshot, nil
}
