package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/accessmap-service/internal/domain"
)

// tagFilters предикаты Overpass QL по категориям доступности.
// У braille и elderly прямого запроса нет: в OSM для них нет надёжного
// тега, эти категории выводятся только классификатором из элементов,
// найденных другими запросами.
var tagFilters = map[domain.AccessibilityAttribute]struct {
	predicate string
	kinds     []string
}{
	domain.AttrWheelchair: {
		predicate: `["wheelchair"="yes"]`,
		kinds:     []string{"node", "way", "relation"},
	},
	domain.AttrToilet: {
		predicate: `["amenity"="toilets"]["wheelchair"="yes"]`,
		kinds:     []string{"node", "way"},
	},
	domain.AttrElevator: {
		predicate: `["highway"="elevator"]`,
		kinds:     []string{"node", "way"},
	},
	domain.AttrTactile: {
		predicate: `["tactile_paving"="yes"]`,
		kinds:     []string{"way", "node"},
	},
}

// QueryBuilder строит Overpass QL запросы для категорий доступности
type QueryBuilder struct {
	timeoutSec int
}

func NewQueryBuilder(timeoutSec int) *QueryBuilder {
	if timeoutSec <= 0 {
		timeoutSec = 25
	}
	return &QueryBuilder{timeoutSec: timeoutSec}
}

// HasQuery сообщает, существует ли генератор запроса для категории
func (qb *QueryBuilder) HasQuery(attr domain.AccessibilityAttribute) bool {
	_, ok := tagFilters[attr]
	return ok
}

// Build возвращает Overpass QL запрос для категории в заданной области.
// Для way/relation запрашивается вычисленный центр (out center), чтобы
// классификатор мог получить координату вместо прямых lat/lon.
func (qb *QueryBuilder) Build(attr domain.AccessibilityAttribute, bounds domain.BoundingBox) (string, bool) {
	filter, ok := tagFilters[attr]
	if !ok {
		return "", false
	}

	bbox := fmt.Sprintf("(%s,%s,%s,%s)",
		formatCoord(bounds.South),
		formatCoord(bounds.West),
		formatCoord(bounds.North),
		formatCoord(bounds.East),
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[out:json][timeout:%d];\n(\n", qb.timeoutSec)
	for _, kind := range filter.kinds {
		fmt.Fprintf(&sb, "  %s%s%s;\n", kind, filter.predicate, bbox)
	}
	sb.WriteString(");\nout center;")

	return sb.String(), true
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
