package repository

import (
	"context"

	"github.com/accessmap-service/internal/domain"
)

// GeocoderRepository прямое и обратное геокодирование (Nominatim)
type GeocoderRepository interface {
	// SearchPlace ищет место по названию; возвращает ErrInvalidLocation,
	// если ничего не найдено
	SearchPlace(ctx context.Context, query string) (*domain.GeocodeResult, error)

	// ReverseGeocode возвращает человекочитаемое имя локации для координат
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
