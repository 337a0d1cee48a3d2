package overpass

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/accessmap-service/internal/config"
	"github.com/accessmap-service/internal/domain"
	"github.com/accessmap-service/internal/domain/repository"
	apperrors "github.com/accessmap-service/internal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// client HTTP-клиент Overpass API с троттлингом исходящих запросов.
// Limiter общий для всех конкурентных вызовов: запросы, запущенные
// одновременно, разносятся минимум на MinRequestInterval друг от друга.
type client struct {
	httpClient   *http.Client
	baseURL      string
	limiter      *rate.Limiter
	queryBuilder *QueryBuilder
	logger       *zap.Logger
}

// NewClient создает новый клиент для Overpass API
func NewClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.GeodataRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:      cfg.BaseURL,
		limiter:      rate.NewLimiter(rate.Every(cfg.MinRequestInterval), 1),
		queryBuilder: NewQueryBuilder(cfg.QueryTimeoutSec),
		logger:       logger,
	}
}

// execute выполняет один Overpass QL запрос и возвращает сырые элементы
func (c *client) execute(ctx context.Context, query string) ([]domain.OSMElement, error) {
	// Ожидание слота троттлинга до сетевого вызова
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("Calling Overpass API", zap.Int("query_len", len(query)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, apperrors.ErrTransport.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("Overpass API rate limit hit")
		return nil, apperrors.ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, apperrors.ErrUpstream.WithDetails(map[string]interface{}{
			"status": resp.StatusCode,
		})
	}

	var overpassResp domain.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, apperrors.ErrUpstream.WithDetails(map[string]interface{}{
			"reason": "malformed response body",
		})
	}

	c.logger.Debug("Overpass API call successful",
		zap.Int("elements", len(overpassResp.Elements)))

	return overpassResp.Elements, nil
}

// FetchByAttribute строит и выполняет запрос для категории доступности.
// Для категорий без генератора запроса возвращается пустой результат.
func (c *client) FetchByAttribute(ctx context.Context, attr domain.AccessibilityAttribute, bounds domain.BoundingBox) ([]domain.OSMElement, error) {
	query, ok := c.queryBuilder.Build(attr, bounds)
	if !ok {
		return nil, nil
	}
	return c.execute(ctx, query)
}

// SupportsAttribute сообщает, есть ли у категории прямой запрос
func (c *client) SupportsAttribute(attr domain.AccessibilityAttribute) bool {
	return c.queryBuilder.HasQuery(attr)
}
