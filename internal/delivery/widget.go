package delivery

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/metrics"
	"storefront-edge/internal/models"
)

// ViewState names the render outcome of a quote request.
type ViewState string

const (
	ViewSuccess ViewState = "success"
	ViewError   ViewState = "error"
)

// genericNetworkError is shown whenever the quote endpoint cannot be
// reached or answers with garbage. The raw failure stays in the logs.
const genericNetworkError = "Network error. Please check your connection and try again."

// QuoteView is the renderable result of a quote request. Failures never
// escape as errors; they come back as error views instead.
type QuoteView struct {
	State         ViewState `json:"state"`
	DistanceText  string    `json:"distance_text,omitempty"`
	ChargeText    string    `json:"charge_text,omitempty"`
	EstimatedTime string    `json:"estimated_time,omitempty"`
	Message       string    `json:"message,omitempty"`
}

// Widget computes delivery quotes for free-text addresses and carries the
// static zone reference list, loaded once at construction.
type Widget struct {
	quotes interfaces.QuoteClient
	zones  []models.DeliveryZone
	logger *zap.Logger
}

// NewWidget creates the widget and loads the zone list. A zone fetch
// failure is logged and swallowed; zones are supplementary content.
func NewWidget(ctx context.Context, quotes interfaces.QuoteClient, logger *zap.Logger) *Widget {
	w := &Widget{quotes: quotes, logger: logger}

	zones, err := quotes.DeliveryZones(ctx)
	if err != nil {
		logger.Warn("Failed to load delivery zones", zap.Error(err))
		return w
	}

	w.zones = zones
	logger.Info("Delivery zones loaded", zap.Int("count", len(zones)))

	return w
}

// Zones returns the zone list loaded at construction, possibly empty.
func (w *Widget) Zones() []models.DeliveryZone {
	return w.zones
}

// CalculateDelivery resolves an address to a quote view. An address that is
// empty after trimming fails validation without touching the network.
func (w *Widget) CalculateDelivery(ctx context.Context, address string) *QuoteView {
	if strings.TrimSpace(address) == "" {
		metrics.RecordQuote("validation_error")
		return &QuoteView{State: ViewError, Message: "Please enter a delivery address"}
	}

	quote, err := w.quotes.CalculateDelivery(ctx, address)
	if err != nil {
		w.logger.Warn("Quote request failed", zap.Error(err))
		metrics.RecordQuote("network_error")
		return &QuoteView{State: ViewError, Message: genericNetworkError}
	}

	if !quote.Success {
		msg := quote.Error
		if msg == "" {
			msg = "Unable to calculate delivery charge"
		}
		metrics.RecordQuote("server_error")
		return &QuoteView{State: ViewError, Message: msg}
	}

	metrics.RecordQuote("success")
	return &QuoteView{
		State:         ViewSuccess,
		DistanceText:  formatNumber(quote.DistanceKm) + " km",
		ChargeText:    "$" + formatNumber(quote.DeliveryCharge),
		EstimatedTime: EstimatedTime(quote.DistanceKm),
	}
}

// formatNumber renders a float without trailing zeros, so 3.50 shows as
// "3.5" and 7.00 as "7".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
