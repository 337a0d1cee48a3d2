package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/pkg/errors"
	"github.com/accessmap-service/internal/pkg/utils"
	"github.com/accessmap-service/internal/pkg/validator"
	"github.com/accessmap-service/internal/usecase"
	"github.com/accessmap-service/internal/usecase/dto"
)

// LocationHandler - обработчик определения локации пользователя
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// Resolve - каскад геолокации: браузер -> IP -> дефолт
func (h *LocationHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveLocationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		if err := validator.Validate(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"reason": err.Error(),
			}))
		}
	}

	var coords *domain.Point
	if req.Coords != nil {
		coords = &domain.Point{Lat: req.Coords.Lat, Lon: req.Coords.Lng}
	}

	location := h.locationUC.Resolve(c.Context(), coords)

	return utils.SendSuccess(c, dto.ResolveLocationResponse{Location: location}, nil)
}
