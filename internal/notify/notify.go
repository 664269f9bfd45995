package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/metrics"
	"storefront-edge/internal/models"
)

// ordersURL is where every notification interaction lands: the "view"
// action, or a tap on the notification body itself.
const ordersURL = "/my_orders"

// ordersNotification is the fixed notification shown for every push.
// Push payloads carry no content of their own.
func ordersNotification() models.Notification {
	return models.Notification{
		Title: "Biryani Club",
		Body:  "Your order status has been updated!",
		Icon:  "/static/images/icon-192.png",
		Badge: "/static/images/badge-72.png",
		URL:   ordersURL,
		Actions: []models.NotificationAction{
			{Action: "view", Title: "View Orders"},
			{Action: "dismiss", Title: "Dismiss"},
		},
	}
}

// Service reacts to push deliveries and notification clicks.
type Service struct {
	displayer interfaces.Displayer
	opener    interfaces.ClientOpener
	logger    *zap.Logger
}

// NewService creates the notification service.
func NewService(displayer interfaces.Displayer, opener interfaces.ClientOpener, logger *zap.Logger) *Service {
	return &Service{
		displayer: displayer,
		opener:    opener,
		logger:    logger,
	}
}

// HandlePush shows the fixed order-status notification. The push payload is
// ignored; the notification content never varies.
func (s *Service) HandlePush(ctx context.Context, payload json.RawMessage) error {
	n := ordersNotification()

	if err := s.displayer.Show(ctx, n); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}

	metrics.RecordNotificationShown()
	s.logger.Info("Notification shown", zap.String("title", n.Title))

	return nil
}

// HandleClick dismisses the notification and routes the interaction:
// "view" opens the orders page, "dismiss" does nothing further, and any
// other interaction (a tap on the notification body included) opens the
// root page.
func (s *Service) HandleClick(ctx context.Context, payload json.RawMessage) error {
	var click models.ClickPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &click); err != nil {
			return fmt.Errorf("invalid click payload: %w", err)
		}
	}

	metrics.RecordNotificationClick(click.Action)

	switch click.Action {
	case "dismiss":
		s.logger.Debug("Notification dismissed")
		return nil
	case "view":
		if err := s.opener.OpenWindow(ctx, ordersURL); err != nil {
			return fmt.Errorf("failed to open orders page: %w", err)
		}
		return nil
	default:
		if err := s.opener.OpenWindow(ctx, "/"); err != nil {
			return fmt.Errorf("failed to open root page: %w", err)
		}
		return nil
	}
}
