package usecase

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/accessmap-service/internal/domain"
	apperrors "github.com/accessmap-service/internal/pkg/errors"
	"github.com/accessmap-service/internal/pkg/utils"
)

// FetchCoordinator хранит состояние выборки одной клиентской сессии:
// текущий набор мест, флаг загрузки, последнюю ошибку и центр последней
// успешной выборки. Решает, нужна ли новая выборка.
type FetchCoordinator struct {
	placesUC *PlacesUseCase
	logger   *zap.Logger

	epsilonDeg      float64
	defaultRadiusKm float64

	mu         sync.Mutex
	places     []domain.Place
	isLoading  bool
	lastErr    *apperrors.AppError
	lastCenter *domain.Point
}

// FetchRequest параметры запроса выборки
type FetchRequest struct {
	Lat          float64
	Lng          float64
	RadiusKm     float64
	Filters      []domain.AccessibilityAttribute
	ForceRefresh bool
}

// NewFetchCoordinator - создание координатора для одной сессии
func NewFetchCoordinator(
	placesUC *PlacesUseCase,
	logger *zap.Logger,
	epsilonDeg float64,
	defaultRadiusKm float64,
) *FetchCoordinator {
	return &FetchCoordinator{
		placesUC:        placesUC,
		logger:          logger,
		epsilonDeg:      epsilonDeg,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// RequestFetch выполняет выборку, если она нужна.
// Пропускает запрос без force refresh, когда центр в пределах эпсилона от
// прошлой выборки, и всегда, когда выборка уже идёт: одновременно не более
// одной выборки на координатор, повторные запросы отбрасываются, не
// ставятся в очередь. При ошибке прежний набор мест сохраняется.
func (fc *FetchCoordinator) RequestFetch(ctx context.Context, req FetchRequest) (domain.FetchStatus, domain.FetchState) {
	fc.mu.Lock()

	if fc.isLoading {
		state := fc.snapshotLocked()
		fc.mu.Unlock()
		return domain.FetchStatusSkippedInFlight, state
	}

	if !req.ForceRefresh && fc.lastCenter != nil &&
		math.Abs(req.Lat-fc.lastCenter.Lat) <= fc.epsilonDeg &&
		math.Abs(req.Lng-fc.lastCenter.Lon) <= fc.epsilonDeg {
		state := fc.snapshotLocked()
		fc.mu.Unlock()
		fc.logger.Debug("Fetch skipped: center within epsilon of last fetch",
			zap.Float64("lat", req.Lat),
			zap.Float64("lng", req.Lng))
		return domain.FetchStatusSkippedNearby, state
	}

	fc.isLoading = true
	fc.lastErr = nil
	fc.mu.Unlock()

	radius := req.RadiusKm
	if radius <= 0 {
		radius = fc.defaultRadiusKm
	}

	places, err := fc.fetch(ctx, req, radius)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.isLoading = false

	if err != nil {
		// Прежние места остаются: устаревшие данные лучше пустой карты
		fc.lastErr = toAppError(err)
		fc.logger.Warn("Fetch failed, keeping previous result set", zap.Error(err))
		return domain.FetchStatusFailed, fc.snapshotLocked()
	}

	fc.places = places
	fc.lastCenter = &domain.Point{Lat: req.Lat, Lon: req.Lng}
	return domain.FetchStatusFetched, fc.snapshotLocked()
}

func (fc *FetchCoordinator) fetch(ctx context.Context, req FetchRequest, radiusKm float64) ([]domain.Place, error) {
	bounds, err := utils.BoundingBoxFromCenter(req.Lat, req.Lng, radiusKm)
	if err != nil {
		return nil, err
	}
	return fc.placesUC.Aggregate(ctx, bounds, req.Filters)
}

// State возвращает снимок текущего состояния
func (fc *FetchCoordinator) State() domain.FetchState {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.snapshotLocked()
}

func (fc *FetchCoordinator) snapshotLocked() domain.FetchState {
	state := domain.FetchState{
		Places:    make([]domain.Place, len(fc.places)),
		IsLoading: fc.isLoading,
	}
	copy(state.Places, fc.places)

	if fc.lastErr != nil {
		state.LastError = fc.lastErr.Message
		state.LastErrorCode = fc.lastErr.Code
	}
	if fc.lastCenter != nil {
		center := *fc.lastCenter
		state.LastFetchCenter = &center
	}
	return state
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return apperrors.ErrInternalServer
}

// CoordinatorManager держит по одному координатору на клиентскую сессию
type CoordinatorManager struct {
	placesUC *PlacesUseCase
	logger   *zap.Logger

	epsilonDeg      float64
	defaultRadiusKm float64

	mu           sync.Mutex
	coordinators map[string]*FetchCoordinator
}

// NewCoordinatorManager - создание менеджера сессий
func NewCoordinatorManager(
	placesUC *PlacesUseCase,
	logger *zap.Logger,
	epsilonDeg float64,
	defaultRadiusKm float64,
) *CoordinatorManager {
	return &CoordinatorManager{
		placesUC:        placesUC,
		logger:          logger,
		epsilonDeg:      epsilonDeg,
		defaultRadiusKm: defaultRadiusKm,
		coordinators:    make(map[string]*FetchCoordinator),
	}
}

// GetOrCreate возвращает координатор сессии; при пустом идентификаторе
// создается новая сессия
func (m *CoordinatorManager) GetOrCreate(sessionID string) (string, *FetchCoordinator) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fc, ok := m.coordinators[sessionID]
	if !ok {
		fc = NewFetchCoordinator(m.placesUC, m.logger, m.epsilonDeg, m.defaultRadiusKm)
		m.coordinators[sessionID] = fc
		m.logger.Debug("Created fetch coordinator", zap.String("session_id", sessionID))
	}

	return sessionID, fc
}

// Get возвращает координатор существующей сессии
func (m *CoordinatorManager) Get(sessionID string) (*FetchCoordinator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fc, ok := m.coordinators[sessionID]
	return fc, ok
}
