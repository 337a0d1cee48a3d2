package domain

import "math"

// AccessibilityAttribute категория доступности места
type AccessibilityAttribute string

const (
	AttrWheelchair AccessibilityAttribute = "wheelchair"
	AttrBraille    AccessibilityAttribute = "braille"
	AttrTactile    AccessibilityAttribute = "tactile"
	AttrToilet     AccessibilityAttribute = "toilet"
	AttrElevator   AccessibilityAttribute = "elevator"
	AttrElderly    AccessibilityAttribute = "elderly"
)

// AllAttributes закрытый набор категорий
var AllAttributes = []AccessibilityAttribute{
	AttrWheelchair,
	AttrBraille,
	AttrTactile,
	AttrToilet,
	AttrElevator,
	AttrElderly,
}

// DefaultAttributes набор категорий по умолчанию для запроса.
// Braille и elderly исключены: у них нет прямого запроса к источнику,
// они выводятся только на этапе классификации.
var DefaultAttributes = []AccessibilityAttribute{
	AttrWheelchair,
	AttrToilet,
	AttrElevator,
	AttrTactile,
}

// IsValidAttribute проверяет принадлежность категории закрытому набору
func IsValidAttribute(a AccessibilityAttribute) bool {
	for _, known := range AllAttributes {
		if a == known {
			return true
		}
	}
	return false
}

// Place каноническое место с признаками доступности
type Place struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Lat               float64                  `json:"lat"`
	Lng               float64                  `json:"lng"`
	Summary           string                   `json:"summary"`
	AccessibilityType []AccessibilityAttribute `json:"accessibility_type"`
	OSMID             int64                    `json:"osm_id"`
	OSMType           string                   `json:"osm_type"`
	Tags              map[string]string        `json:"tags,omitempty"`
}

// Valid проверяет инварианты: конечные координаты и непустой набор категорий
func (p Place) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) ||
		math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return len(p.AccessibilityType) > 0
}

// HasAttribute сообщает, помечено ли место данной категорией
func (p Place) HasAttribute(attr AccessibilityAttribute) bool {
	for _, a := range p.AccessibilityType {
		if a == attr {
			return true
		}
	}
	return false
}
