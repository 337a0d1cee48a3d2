package usecase

import (
	"fmt"
	"strings"

	"github.com/accessmap-service/internal/domain"
)

// Classifier маппит сырой OSM-элемент в каноническое место.
// Без состояния: повторная классификация одного элемента всегда даёт
// структурно идентичный результат.
type Classifier struct{}

// Classify возвращает место или nil, если у элемента нет координат.
// Правила аддитивные: элемент может получить несколько категорий.
func (Classifier) Classify(el domain.OSMElement) *domain.Place {
	var attrs []domain.AccessibilityAttribute

	if el.Tag("wheelchair", "") == "yes" {
		attrs = append(attrs, domain.AttrWheelchair)
	}
	if el.Tag("amenity", "") == "toilets" && el.Tag("wheelchair", "") == "yes" {
		attrs = append(attrs, domain.AttrToilet)
	}
	if el.Tag("highway", "") == "elevator" {
		attrs = append(attrs, domain.AttrElevator)
	}
	if el.Tag("tactile_paving", "") == "yes" {
		attrs = append(attrs, domain.AttrTactile)
	}
	if el.Tag("braille", "") == "yes" ||
		strings.Contains(strings.ToLower(el.Tag("description", "")), "braille") {
		attrs = append(attrs, domain.AttrBraille)
	}
	if el.Tag("bench", "") == "yes" || el.Tag("shelter", "") == "yes" || el.Tag("covered", "") == "yes" {
		attrs = append(attrs, domain.AttrElderly)
	}

	// Координаты: у node прямые lat/lon, у way/relation вычисленный центр
	lat, lng, ok := resolveCoordinates(el)
	if !ok {
		return nil
	}

	// Элемент попал в выборку по известному фильтру, но ни одно правило
	// не сработало: помечаем wheelchair по умолчанию, а не отбрасываем.
	// Поведение источника сохранено; возможная проблема качества данных.
	if len(attrs) == 0 {
		attrs = []domain.AccessibilityAttribute{domain.AttrWheelchair}
	}

	return &domain.Place{
		ID:                fmt.Sprintf("%s_%d", el.Type, el.ID),
		Name:              resolveName(el),
		Lat:               lat,
		Lng:               lng,
		Summary:           buildSummary(el),
		AccessibilityType: attrs,
		OSMID:             el.ID,
		OSMType:           el.Type,
		Tags:              el.Tags,
	}
}

func resolveCoordinates(el domain.OSMElement) (float64, float64, bool) {
	if el.Lat != nil && el.Lon != nil {
		return *el.Lat, *el.Lon, true
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon, true
	}
	return 0, 0, false
}

// resolveName приоритет: name, amenity, highway, затем заглушка
func resolveName(el domain.OSMElement) string {
	if name := el.Tag("name", ""); name != "" {
		return name
	}
	if amenity := el.Tag("amenity", ""); amenity != "" {
		return amenity
	}
	if highway := el.Tag("highway", ""); highway != "" {
		return highway
	}
	return "Unnamed Location"
}

// buildSummary собирает описание из фиксированных фраз по тегам;
// порядок фраз фиксирован и не зависит от порядка правил классификации
func buildSummary(el domain.OSMElement) string {
	var parts []string
	if el.Tag("wheelchair", "") == "yes" {
		parts = append(parts, "Wheelchair accessible")
	}
	if el.Tag("amenity", "") == "toilets" {
		parts = append(parts, "Accessible toilets")
	}
	if el.Tag("highway", "") == "elevator" {
		parts = append(parts, "Elevator available")
	}
	if el.Tag("tactile_paving", "") == "yes" {
		parts = append(parts, "Tactile paving")
	}
	if el.Tag("braille", "") == "yes" {
		parts = append(parts, "Braille signage")
	}

	if len(parts) == 0 {
		return "Accessibility features available"
	}
	return strings.Join(parts, ", ")
}
