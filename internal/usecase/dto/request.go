package dto

// FetchPlacesRequest - запрос выборки мест вокруг центра карты
type FetchPlacesRequest struct {
	SessionID    string   `json:"session_id" validate:"omitempty,uuid4"`
	Lat          float64  `json:"lat" validate:"min=-90,max=90"`
	Lng          float64  `json:"lng" validate:"min=-180,max=180"`
	RadiusKm     float64  `json:"radius_km" validate:"omitempty,min=0.1,max=100"`
	Filters      []string `json:"filters,omitempty" validate:"omitempty,dive,accessibility_attr"`
	ForceRefresh bool     `json:"force_refresh"`
}

// SearchAreaRequest - запрос поиска мест в именованной области
type SearchAreaRequest struct {
	Query   string   `json:"query" validate:"required,min=2"`
	Filters []string `json:"filters,omitempty" validate:"omitempty,dive,accessibility_attr"`
}

// ResolveLocationRequest - запрос определения локации пользователя.
// Coords заполняется результатом браузерной геолокации клиента;
// отсутствие поля означает отказ или недоступность геолокации.
type ResolveLocationRequest struct {
	Coords *Point `json:"coords,omitempty" validate:"omitempty"`
}

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}
