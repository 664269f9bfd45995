package interfaces

import (
	"context"

	"storefront-edge/internal/models"
)

//go:generate mockgen -package=mock -source=delivery.go -destination=mock/delivery.go

// QuoteClient talks to the storefront's delivery endpoints.
type QuoteClient interface {
	// CalculateDelivery posts an address to /calculate-delivery.
	CalculateDelivery(ctx context.Context, address string) (*models.DeliveryQuote, error)

	// DeliveryZones fetches the static zone list from /delivery-zones.
	DeliveryZones(ctx context.Context) ([]models.DeliveryZone, error)
}
