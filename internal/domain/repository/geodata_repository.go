package repository

import (
	"context"

	"github.com/accessmap-service/internal/domain"
)

// GeodataRepository выполняет запросы к внешнему источнику геоданных
// (Overpass API). Реализация отвечает за построение запроса, троттлинг
// и маппинг транспортных ошибок.
type GeodataRepository interface {
	// FetchByAttribute возвращает сырые элементы категории в заданной области
	FetchByAttribute(ctx context.Context, attr domain.AccessibilityAttribute, bounds domain.BoundingBox) ([]domain.OSMElement, error)

	// SupportsAttribute сообщает, есть ли у категории прямой запрос к источнику
	SupportsAttribute(attr domain.AccessibilityAttribute) bool
}
