package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/accessmap-service/internal/pkg/errors"
	"github.com/accessmap-service/internal/pkg/utils"
	"github.com/accessmap-service/internal/pkg/validator"
	"github.com/accessmap-service/internal/usecase"
	"github.com/accessmap-service/internal/usecase/dto"
)

// PlacesHandler - обработчик запросов выборки доступных мест
type PlacesHandler struct {
	manager  *usecase.CoordinatorManager
	placesUC *usecase.PlacesUseCase
	logger   *zap.Logger
}

// NewPlacesHandler - создание нового PlacesHandler
func NewPlacesHandler(
	manager *usecase.CoordinatorManager,
	placesUC *usecase.PlacesUseCase,
	logger *zap.Logger,
) *PlacesHandler {
	return &PlacesHandler{
		manager:  manager,
		placesUC: placesUC,
		logger:   logger,
	}
}

// Fetch - выборка мест вокруг центра через координатор сессии
func (h *PlacesHandler) Fetch(c *fiber.Ctx) error {
	var req dto.FetchPlacesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	sessionID, coordinator := h.manager.GetOrCreate(req.SessionID)

	status, state := coordinator.RequestFetch(c.Context(), usecase.FetchRequest{
		Lat:          req.Lat,
		Lng:          req.Lng,
		RadiusKm:     req.RadiusKm,
		Filters:      dto.ToAttributes(req.Filters),
		ForceRefresh: req.ForceRefresh,
	})

	return utils.SendSuccess(c, dto.FetchPlacesResponse{
		SessionID: sessionID,
		Status:    status,
		State:     state,
	}, &utils.Meta{
		Total: len(state.Places),
	})
}

// State - текущее состояние сессии без выборки
func (h *PlacesHandler) State(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	coordinator, ok := h.manager.Get(sessionID)
	if !ok {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "unknown session",
		}))
	}

	state := coordinator.State()
	return utils.SendSuccess(c, dto.FetchStateResponse{
		SessionID: sessionID,
		State:     state,
	}, &utils.Meta{
		Total: len(state.Places),
	})
}

// SearchArea - поиск мест в именованной области
func (h *PlacesHandler) SearchArea(c *fiber.Ctx) error {
	var req dto.SearchAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	area, places, err := h.placesUC.SearchArea(c.Context(), req.Query, dto.ToAttributes(req.Filters))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SearchAreaResponse{
		Area: dto.AreaInfo{
			DisplayName: area.DisplayName,
			Center:      area.Point,
			Bounds:      area.Bounds,
		},
		Places: places,
	}, &utils.Meta{
		Total: len(places),
	})
}
