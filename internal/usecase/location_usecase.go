package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/accessmap-service/internal/config"
	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/domain/repository"
	"github.com/accessmap-service/internal/pkg/utils"
)

// LocationUseCase - каскад определения локации пользователя.
// Порядок: координаты браузера (precise) -> IP-геолокация (estimated) ->
// фиксированный страновой центр (default). Каскад всегда завершается
// результатом, отказ браузерной геолокации наружу не всплывает.
type LocationUseCase struct {
	geocoderRepo repository.GeocoderRepository
	ipRepo       repository.IPLocatorRepository
	logger       *zap.Logger
	fallback     domain.ResolvedLocation
}

// NewLocationUseCase - создание нового LocationUseCase
func NewLocationUseCase(
	geocoderRepo repository.GeocoderRepository,
	ipRepo repository.IPLocatorRepository,
	cfg *config.FetchConfig,
	logger *zap.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		geocoderRepo: geocoderRepo,
		ipRepo:       ipRepo,
		logger:       logger,
		fallback: domain.ResolvedLocation{
			Point:  domain.Point{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon},
			Name:   cfg.DefaultPlaceName,
			Source: domain.LocationDefault,
		},
	}
}

// Resolve определяет локацию. coords — координаты от браузерной геолокации
// клиента; nil означает, что геолокация недоступна или отклонена.
func (uc *LocationUseCase) Resolve(ctx context.Context, coords *domain.Point) domain.ResolvedLocation {
	if coords != nil && utils.ValidateCoordinates(coords.Lat, coords.Lon) {
		name, err := uc.geocoderRepo.ReverseGeocode(ctx, coords.Lat, coords.Lon)
		if err != nil || name == "" {
			uc.logger.Debug("Reverse geocoding failed for precise location", zap.Error(err))
			name = "Your Location"
		}
		return domain.ResolvedLocation{
			Point:  *coords,
			Name:   name,
			Source: domain.LocationPrecise,
		}
	}

	if loc, err := uc.ipRepo.Locate(ctx); err == nil && loc != nil {
		return *loc
	} else if err != nil {
		uc.logger.Debug("IP geolocation failed, using default location", zap.Error(err))
	}

	return uc.fallback
}
