package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/domain/repository"
	apperrors "github.com/accessmap-service/internal/pkg/errors"
)

// PlacesUseCase - use case агрегации мест с признаками доступности
type PlacesUseCase struct {
	geodataRepo  repository.GeodataRepository
	geocoderRepo repository.GeocoderRepository
	cacheRepo    repository.CacheRepository // nil когда кеш отключен
	classifier   Classifier
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewPlacesUseCase - создание нового PlacesUseCase
func NewPlacesUseCase(
	geodataRepo repository.GeodataRepository,
	geocoderRepo repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PlacesUseCase {
	return &PlacesUseCase{
		geodataRepo:  geodataRepo,
		geocoderRepo: geocoderRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// Aggregate выполняет веер запросов по запрошенным категориям, классифицирует
// и дедуплицирует результат. Отказ любого запроса фейлит всю агрегацию:
// частичных результатов нет, вызывающая сторона сохраняет прежний набор.
func (uc *PlacesUseCase) Aggregate(
	ctx context.Context,
	bounds domain.BoundingBox,
	requested []domain.AccessibilityAttribute,
) ([]domain.Place, error) {
	if !bounds.Valid() {
		return nil, apperrors.ErrInvalidCoordinates
	}

	attrs := normalizeAttributes(requested)

	cacheKey := uc.placesCacheKey(bounds, attrs)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	// Категории без генератора запроса (braille, elderly) веер не расширяют;
	// они всплывают через классификацию элементов из других запросов
	var queried []domain.AccessibilityAttribute
	for _, attr := range attrs {
		if uc.geodataRepo.SupportsAttribute(attr) {
			queried = append(queried, attr)
		}
	}

	results := make([][]domain.OSMElement, len(queried))
	g, gctx := errgroup.WithContext(ctx)
	for i, attr := range queried {
		i, attr := i, attr
		g.Go(func() error {
			elements, err := uc.geodataRepo.FetchByAttribute(gctx, attr, bounds)
			if err != nil {
				return err
			}
			results[i] = elements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Error("Aggregation failed",
			zap.Int("queries", len(queried)),
			zap.Error(err))
		return nil, err
	}

	places := uc.mergeElements(results)

	uc.logger.Info("Places aggregated",
		zap.Int("queries", len(queried)),
		zap.Int("places", len(places)))

	uc.toCache(ctx, cacheKey, places)

	return places, nil
}

// SearchArea ищет именованное место и агрегирует доступные места в его границах
func (uc *PlacesUseCase) SearchArea(
	ctx context.Context,
	query string,
	requested []domain.AccessibilityAttribute,
) (*domain.GeocodeResult, []domain.Place, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil, apperrors.ErrInvalidRequest
	}

	area, err := uc.geocoderRepo.SearchPlace(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	places, err := uc.Aggregate(ctx, area.Bounds, requested)
	if err != nil {
		return nil, nil, err
	}

	return area, places, nil
}

// mergeElements конкатенирует результаты запросов, классифицирует,
// отбрасывает элементы без координат и дедуплицирует по (lat, lng, name),
// сохраняя первое вхождение
func (uc *PlacesUseCase) mergeElements(results [][]domain.OSMElement) []domain.Place {
	type placeKey struct {
		lat  float64
		lng  float64
		name string
	}

	seen := make(map[placeKey]struct{})
	places := make([]domain.Place, 0)

	dropped := 0
	for _, elements := range results {
		for _, el := range elements {
			place := uc.classifier.Classify(el)
			if place == nil || !place.Valid() {
				dropped++
				continue
			}

			key := placeKey{lat: place.Lat, lng: place.Lng, name: place.Name}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			places = append(places, *place)
		}
	}

	if dropped > 0 {
		uc.logger.Debug("Dropped unclassifiable elements", zap.Int("count", dropped))
	}

	return places
}

// normalizeAttributes подставляет набор по умолчанию для пустого запроса
// и отбрасывает неизвестные категории и повторы
func normalizeAttributes(requested []domain.AccessibilityAttribute) []domain.AccessibilityAttribute {
	if len(requested) == 0 {
		return domain.DefaultAttributes
	}

	seen := make(map[domain.AccessibilityAttribute]struct{})
	attrs := make([]domain.AccessibilityAttribute, 0, len(requested))
	for _, attr := range requested {
		if !domain.IsValidAttribute(attr) {
			continue
		}
		if _, ok := seen[attr]; ok {
			continue
		}
		seen[attr] = struct{}{}
		attrs = append(attrs, attr)
	}

	if len(attrs) == 0 {
		return domain.DefaultAttributes
	}
	return attrs
}

// placesCacheKey ключ кеша по локации: область квантуется до 4 знаков
// (~11 м), категории сортируются для стабильности
func (uc *PlacesUseCase) placesCacheKey(bounds domain.BoundingBox, attrs []domain.AccessibilityAttribute) string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = string(a)
	}
	sort.Strings(names)

	return fmt.Sprintf("places:%.4f:%.4f:%.4f:%.4f:%s",
		bounds.South, bounds.North, bounds.West, bounds.East,
		strings.Join(names, ","))
}

func (uc *PlacesUseCase) fromCache(ctx context.Context, key string) []domain.Place {
	if uc.cacheRepo == nil {
		return nil
	}

	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var places []domain.Place
	if err := json.Unmarshal(data, &places); err != nil {
		uc.logger.Warn("Failed to unmarshal cached places", zap.Error(err))
		return nil
	}

	return places
}

func (uc *PlacesUseCase) toCache(ctx context.Context, key string, places []domain.Place) {
	if uc.cacheRepo == nil {
		return
	}

	data, err := json.Marshal(places)
	if err != nil {
		return
	}

	// Кеш best-effort: ошибка записи не влияет на результат
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache places", zap.Error(err))
	}
}
