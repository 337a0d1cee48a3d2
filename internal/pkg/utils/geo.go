package utils

import (
	"math"

	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/pkg/errors"
)

const (
	earthRadiusKm = 6371.0

	// kmPerDegree приближение: один градус широты ≈ 111 км
	kmPerDegree = 111.0

	// maxDeltaDeg дельта больше этого считается вырожденной (около полюсов)
	maxDeltaDeg = 90.0
)

// BoundingBoxFromCenter строит область вокруг центра по радиусу в километрах.
// Дельта долготы растёт как 1/cos(lat); вблизи полюсов она становится
// неограниченной, такой запрос отклоняется.
func BoundingBoxFromCenter(lat, lon, radiusKm float64) (domain.BoundingBox, error) {
	if !ValidateCoordinates(lat, lon) {
		return domain.BoundingBox{}, errors.ErrInvalidCoordinates
	}
	if radiusKm <= 0 {
		return domain.BoundingBox{}, errors.ErrInvalidRadius
	}

	latDelta := radiusKm / kmPerDegree

	cosLat := math.Cos(lat * math.Pi / 180.0)
	if cosLat <= 0 {
		return domain.BoundingBox{}, errors.ErrInvalidCoordinates
	}
	lonDelta := radiusKm / (kmPerDegree * cosLat)

	if latDelta >= maxDeltaDeg || lonDelta >= maxDeltaDeg {
		return domain.BoundingBox{}, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"lat_delta": latDelta,
			"lon_delta": lonDelta,
		})
	}

	return domain.BoundingBox{
		South: lat - latDelta,
		North: lat + latDelta,
		West:  lon - lonDelta,
		East:  lon + lonDelta,
	}, nil
}

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса (0.1 - 100 км)
func ValidateRadius(radiusKm float64) bool {
	return radiusKm >= 0.1 && radiusKm <= 100
}
