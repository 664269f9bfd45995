package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront-edge/internal/models"
	"storefront-edge/internal/scheduler"
)

// Lifecycle drives the cache generation through install and activation.
type Lifecycle interface {
	Install(ctx context.Context) error
	Activate(ctx context.Context) error
	SkipWaiting(ctx context.Context) error
}

// Notifier reacts to push deliveries and notification clicks.
type Notifier interface {
	HandlePush(ctx context.Context, payload json.RawMessage) error
	HandleClick(ctx context.Context, payload json.RawMessage) error
}

// RegisterHandlers wires every supported event kind into the dispatcher.
func RegisterHandlers(d *Dispatcher, lifecycle Lifecycle, notifier Notifier,
	registrar *scheduler.Registrar, logger *zap.Logger) {

	d.Register(models.EventInstall, func(ctx context.Context, _ models.Event) error {
		return lifecycle.Install(ctx)
	})

	d.Register(models.EventActivate, func(ctx context.Context, _ models.Event) error {
		return lifecycle.Activate(ctx)
	})

	d.Register(models.EventMessage, func(ctx context.Context, e models.Event) error {
		var msg models.MessagePayload
		if err := json.Unmarshal(e.Data, &msg); err != nil {
			return fmt.Errorf("invalid message payload: %w", err)
		}

		if msg.Type != models.SkipWaitingMessage {
			logger.Debug("Ignoring message", zap.String("type", msg.Type))
			return nil
		}

		return lifecycle.SkipWaiting(ctx)
	})

	d.Register(models.EventPush, func(ctx context.Context, e models.Event) error {
		return notifier.HandlePush(ctx, e.Data)
	})

	d.Register(models.EventNotificationClick, func(ctx context.Context, e models.Event) error {
		return notifier.HandleClick(ctx, e.Data)
	})

	d.Register(models.EventSync, func(ctx context.Context, e models.Event) error {
		var sync models.SyncPayload
		if err := json.Unmarshal(e.Data, &sync); err != nil {
			return fmt.Errorf("invalid sync payload: %w", err)
		}

		if sync.Tag != models.BackgroundSyncTag {
			logger.Debug("Ignoring sync tag", zap.String("tag", sync.Tag))
			return nil
		}

		// No durable request queue exists yet, so replay resolves trivially.
		logger.Info("Background sync triggered", zap.String("tag", sync.Tag))
		return nil
	})

	d.Register(models.EventOnline, func(ctx context.Context, _ models.Event) error {
		logger.Info("Connection restored")
		registrar.Register(models.BackgroundSyncTag, func(ctx context.Context) error {
			return d.Dispatch(ctx, models.Event{
				Kind: models.EventSync,
				Data: json.RawMessage(fmt.Sprintf(`{"tag":%q}`, models.BackgroundSyncTag)),
			})
		})
		return nil
	})

	d.Register(models.EventOffline, func(ctx context.Context, _ models.Event) error {
		logger.Warn("Connection lost, serving from cache where possible")
		return nil
	})
}
