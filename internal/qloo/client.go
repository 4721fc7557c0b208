package qloo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"taste-persona/internal/domain"
	"taste-persona/internal/metrics"
)

// TasteGraph resuelve entidades y tendencias contra el taste-graph.
type TasteGraph interface {
	Resolve(ctx context.Context, query string, category domain.Category) (string, bool)
	Trending(ctx context.Context, entityID string, category domain.Category) []string
}

// Client habla con la API de Qloo. Los errores nunca suben: se degradan a
// "sin match" o lista vacia.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewClient construye el cliente con un timeout explicito por request.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

type autocompleteResponse struct {
	Results []struct {
		ID   *string `json:"id"`
		Type *string `json:"type"`
	} `json:"results"`
}

type trendingResponse struct {
	Results []struct {
		Name *string `json:"name"`
	} `json:"results"`
}

// Resolve devuelve el id del primer candidato cuyo tipo contiene la categoria.
// Si ese candidato no trae id, el resultado es ausente.
func (c *Client) Resolve(ctx context.Context, query string, category domain.Category) (string, bool) {
	// espacios como %20, no como "+"
	endpoint := c.baseURL + "/v1/autocomplete?query=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")

	var body autocompleteResponse
	status, err := c.getJSON(ctx, endpoint, &body)
	c.logger.Info("qloo autocomplete",
		zap.String("query", query),
		zap.String("category", string(category)),
		zap.Int("status", status),
	)
	if err != nil {
		c.logger.Warn("qloo autocomplete fallback", zap.String("query", query), zap.Error(err))
		metrics.UpstreamRequests.WithLabelValues("qloo", "autocomplete", metrics.OutcomeFallback).Inc()
		return "", false
	}

	want := strings.ToLower(string(category))
	for _, r := range body.Results {
		if r.Type == nil || !strings.Contains(strings.ToLower(*r.Type), want) {
			continue
		}
		if r.ID == nil || *r.ID == "" {
			break
		}
		metrics.UpstreamRequests.WithLabelValues("qloo", "autocomplete", metrics.OutcomeOK).Inc()
		return *r.ID, true
	}
	metrics.UpstreamRequests.WithLabelValues("qloo", "autocomplete", metrics.OutcomeEmpty).Inc()
	return "", false
}

// Trending devuelve los nombres en tendencia del año en curso para la entidad.
// Sin id no hay llamada de red.
func (c *Client) Trending(ctx context.Context, entityID string, category domain.Category) []string {
	if entityID == "" {
		return []string{}
	}

	today := c.now()
	params := url.Values{}
	params.Set("filter.start_date", fmt.Sprintf("%d-01-01", today.Year()))
	params.Set("filter.end_date", today.Format("2006-01-02"))
	params.Set("filter.type", category.URN())
	params.Set("signal.interests.entities", entityID)
	endpoint := c.baseURL + "/v2/trending?" + params.Encode()

	var body trendingResponse
	status, err := c.getJSON(ctx, endpoint, &body)
	c.logger.Info("qloo trending",
		zap.String("entity_id", entityID),
		zap.String("category", string(category)),
		zap.Int("status", status),
	)
	if err != nil {
		c.logger.Warn("qloo trending fallback", zap.String("entity_id", entityID), zap.Error(err))
		metrics.UpstreamRequests.WithLabelValues("qloo", "trending", metrics.OutcomeFallback).Inc()
		return []string{}
	}

	names := make([]string, 0, len(body.Results))
	for _, r := range body.Results {
		if r.Name != nil {
			names = append(names, *r.Name)
		}
	}
	metrics.UpstreamRequests.WithLabelValues("qloo", "trending", metrics.OutcomeOK).Inc()
	return names
}

// getJSON hace el GET autenticado; cualquier status distinto de 200 es error.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("qloo http error: status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp.StatusCode, nil
}
