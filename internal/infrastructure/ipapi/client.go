package ipapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/accessmap-service/internal/config"
	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/domain/repository"
	apperrors "github.com/accessmap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает новый клиент IP-геолокации (ipapi.co)
func NewClient(cfg *config.IPLocationConfig, logger *zap.Logger) repository.IPLocatorRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

type ipResponse struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	CountryName string   `json:"country_name"`
}

// Locate определяет примерную локацию по IP вызывающей стороны
func (c *client) Locate(ctx context.Context) (*domain.ResolvedLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("IP geolocation request failed", zap.Error(err))
		return nil, apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("IP geolocation returned error",
			zap.Int("status_code", resp.StatusCode))
		return nil, apperrors.ErrUpstream.WithDetails(map[string]interface{}{
			"status": resp.StatusCode,
		})
	}

	var data ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperrors.ErrUpstream.WithDetails(map[string]interface{}{
			"reason": "malformed response body",
		})
	}

	if data.Latitude == nil || data.Longitude == nil {
		return nil, apperrors.ErrInvalidLocation
	}

	name := data.City
	if name == "" {
		name = data.Region
	}
	if name == "" {
		name = data.CountryName
	}
	if name == "" {
		name = "Estimated Location"
	}

	return &domain.ResolvedLocation{
		Point:  domain.Point{Lat: *data.Latitude, Lon: *data.Longitude},
		Name:   name,
		Source: domain.LocationEstimated,
	}, nil
}
