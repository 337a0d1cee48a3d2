package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/accessmap-service/internal/domain/repository"
	"github.com/accessmap-service/internal/pkg/errors"
	"github.com/accessmap-service/internal/pkg/utils"
	"github.com/accessmap-service/internal/usecase/dto"
)

// GeocodeHandler - обработчик прямого и обратного геокодирования
type GeocodeHandler struct {
	geocoderRepo repository.GeocoderRepository
	logger       *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(geocoderRepo repository.GeocoderRepository, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocoderRepo: geocoderRepo,
		logger:       logger,
	}
}

// Search - поиск места по названию
func (h *GeocodeHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.geocoderRepo.SearchPlace(c.Context(), query)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.GeocodeResponse{Result: *result}, nil)
}

// Reverse - имя локации по координатам
func (h *GeocodeHandler) Reverse(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil || !utils.ValidateCoordinates(lat, lon) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	name, err := h.geocoderRepo.ReverseGeocode(c.Context(), lat, lon)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ReverseGeocodeResponse{Name: name}, nil)
}
