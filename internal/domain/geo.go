package domain

// Point координата в градусах WGS84
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox прямоугольная область; инвариант south < north, west < east.
// Переход через антимеридиан не поддерживается.
type BoundingBox struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Valid проверяет инвариант области
func (b BoundingBox) Valid() bool {
	return b.South < b.North && b.West < b.East &&
		b.South >= -90 && b.North <= 90 &&
		b.West >= -180 && b.East <= 180
}

// LocationSource описывает, как была получена координата пользователя
type LocationSource string

const (
	LocationPrecise   LocationSource = "precise"   // координаты от браузера
	LocationEstimated LocationSource = "estimated" // IP-геолокация
	LocationDefault   LocationSource = "default"   // страновой центр по умолчанию
)

// ResolvedLocation результат каскада геолокации
type ResolvedLocation struct {
	Point  Point          `json:"point"`
	Name   string         `json:"name"`
	Source LocationSource `json:"source"`
}

// GeocodeResult результат прямого геокодирования по названию места
type GeocodeResult struct {
	Point       Point       `json:"point"`
	DisplayName string      `json:"display_name"`
	Bounds      BoundingBox `json:"bounds"`
}
