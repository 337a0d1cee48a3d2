package nominatim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/accessmap-service/internal/config"
	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/domain/repository"
	apperrors "github.com/accessmap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// pointBufferDeg буфер вокруг точки, когда геокодер не вернул bounding box
const pointBufferDeg = 0.01

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewClient создает новый клиент Nominatim
func NewClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// searchResult ответ /search; координаты и bounding box приходят строками
type searchResult struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"`
}

// SearchPlace ищет место по названию и возвращает его координату и область
func (c *client) SearchPlace(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}

	var results []searchResult
	if err := c.getJSON(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, apperrors.ErrInvalidLocation
	}

	res := results[0]
	lat, latErr := strconv.ParseFloat(res.Lat, 64)
	lon, lonErr := strconv.ParseFloat(res.Lon, 64)
	if latErr != nil || lonErr != nil {
		c.logger.Warn("Nominatim result has unparseable coordinates",
			zap.String("lat", res.Lat), zap.String("lon", res.Lon))
		return nil, apperrors.ErrInvalidLocation
	}

	return &domain.GeocodeResult{
		Point:       domain.Point{Lat: lat, Lon: lon},
		DisplayName: res.DisplayName,
		Bounds:      boundsFromResult(res, lat, lon),
	}, nil
}

// boundsFromResult предпочитает bounding box из ответа геокодера
// ([south, north, west, east] строками); если он отсутствует или
// не разбирается, синтезирует область ±0.01° вокруг точки
func boundsFromResult(res searchResult, lat, lon float64) domain.BoundingBox {
	if len(res.BoundingBox) == 4 {
		vals := make([]float64, 4)
		ok := true
		for i, s := range res.BoundingBox {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if ok {
			bounds := domain.BoundingBox{
				South: vals[0],
				North: vals[1],
				West:  vals[2],
				East:  vals[3],
			}
			if bounds.Valid() {
				return bounds
			}
		}
	}

	return domain.BoundingBox{
		South: lat - pointBufferDeg,
		North: lat + pointBufferDeg,
		West:  lon - pointBufferDeg,
		East:  lon + pointBufferDeg,
	}
}

// reverseResult ответ /reverse
type reverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

// ReverseGeocode возвращает имя локации для координат.
// Приоритет: city, town, village, county, state, затем первый
// сегмент display_name до запятой.
func (c *client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"zoom":           {"10"},
		"addressdetails": {"1"},
	}

	var res reverseResult
	if err := c.getJSON(ctx, "/reverse", params, &res); err != nil {
		return "", err
	}

	for _, name := range []string{
		res.Address.City,
		res.Address.Town,
		res.Address.Village,
		res.Address.County,
		res.Address.State,
	} {
		if name != "" {
			return name, nil
		}
	}

	if res.DisplayName != "" {
		return strings.TrimSpace(strings.SplitN(res.DisplayName, ",", 2)[0]), nil
	}

	return "", apperrors.ErrInvalidLocation
}

func (c *client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Nominatim request failed", zap.String("path", path), zap.Error(err))
		return apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Nominatim returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode))
		return apperrors.ErrUpstream.WithDetails(map[string]interface{}{
			"status": resp.StatusCode,
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode Nominatim response", zap.Error(err))
		return apperrors.ErrUpstream.WithDetails(map[string]interface{}{
			"reason": "malformed response body",
		})
	}

	return nil
}
