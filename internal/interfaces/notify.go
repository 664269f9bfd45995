package interfaces

import (
	"context"

	"storefront-edge/internal/models"
)

//go:generate mockgen -package=mock -source=notify.go -destination=mock/notify.go

// Displayer shows a notification through the host environment.
type Displayer interface {
	Show(ctx context.Context, n models.Notification) error
}

// ClientOpener opens a URL in a client window.
type ClientOpener interface {
	OpenWindow(ctx context.Context, url string) error
}
