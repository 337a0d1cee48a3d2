package dto

import "github.com/accessmap-service/internal/domain"

// FetchPlacesResponse - ответ координатора выборки
type FetchPlacesResponse struct {
	SessionID string             `json:"session_id"`
	Status    domain.FetchStatus `json:"status"`
	State     domain.FetchState  `json:"state"`
}

// FetchStateResponse - снимок состояния сессии
type FetchStateResponse struct {
	SessionID string            `json:"session_id"`
	State     domain.FetchState `json:"state"`
}

// SearchAreaResponse - ответ на поиск по именованной области
type SearchAreaResponse struct {
	Area   AreaInfo       `json:"area"`
	Places []domain.Place `json:"places"`
}

// AreaInfo - найденная область
type AreaInfo struct {
	DisplayName string             `json:"display_name"`
	Center      domain.Point       `json:"center"`
	Bounds      domain.BoundingBox `json:"bounds"`
}

// ResolveLocationResponse - результат каскада геолокации
type ResolveLocationResponse struct {
	Location domain.ResolvedLocation `json:"location"`
}

// GeocodeResponse - ответ прямого геокодирования
type GeocodeResponse struct {
	Result domain.GeocodeResult `json:"result"`
}

// ReverseGeocodeResponse - ответ обратного геокодирования
type ReverseGeocodeResponse struct {
	Name string `json:"name"`
}

// ToAttributes конвертирует строковые фильтры в доменные категории
func ToAttributes(filters []string) []domain.AccessibilityAttribute {
	attrs := make([]domain.AccessibilityAttribute, 0, len(filters))
	for _, f := range filters {
		attrs = append(attrs, domain.AccessibilityAttribute(f))
	}
	return attrs
}
