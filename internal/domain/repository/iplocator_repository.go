package repository

import (
	"context"

	"github.com/accessmap-service/internal/domain"
)

// IPLocatorRepository геолокация по IP вызывающей стороны
type IPLocatorRepository interface {
	Locate(ctx context.Context) (*domain.ResolvedLocation, error)
}
