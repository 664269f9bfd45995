package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/models"
)

// Ensure HTTPClient implements interfaces.QuoteClient
var _ interfaces.QuoteClient = (*HTTPClient)(nil)

const (
	calculatePath = "/calculate-delivery"
	zonesPath     = "/delivery-zones"
)

// HTTPClient talks to the storefront's delivery endpoints over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a delivery client against the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CalculateDelivery posts the address and decodes the quote.
func (c *HTTPClient) CalculateDelivery(ctx context.Context, address string) (*models.DeliveryQuote, error) {
	body, err := json.Marshal(map[string]string{"address": address})
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+calculatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	var quote models.DeliveryQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("malformed quote response: %w", err)
	}

	c.logger.Debug("Delivery quote received",
		zap.Bool("success", quote.Success), zap.Float64("distance_km", quote.DistanceKm))

	return &quote, nil
}

// DeliveryZones fetches the static zone reference list.
func (c *HTTPClient) DeliveryZones(ctx context.Context) ([]models.DeliveryZone, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+zonesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build zones request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zones request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zones request returned status %d", resp.StatusCode)
	}

	var list models.DeliveryZoneList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("malformed zones response: %w", err)
	}

	return list.DeliveryZones, nil
}
