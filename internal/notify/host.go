package notify

import (
	"context"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/models"
)

// Ensure implementations satisfy the interfaces
var (
	_ interfaces.Displayer    = (*LogDisplayer)(nil)
	_ interfaces.ClientOpener = (*LogClientOpener)(nil)
)

// LogDisplayer records shown notifications in the structured log. The edge
// process has no display surface of its own, so this is the production
// sink until a real push relay is wired in.
type LogDisplayer struct {
	logger *zap.Logger
}

// NewLogDisplayer creates a log-backed displayer.
func NewLogDisplayer(logger *zap.Logger) *LogDisplayer {
	return &LogDisplayer{logger: logger}
}

// Show logs the notification content.
func (d *LogDisplayer) Show(_ context.Context, n models.Notification) error {
	d.logger.Info("Displaying notification",
		zap.String("title", n.Title),
		zap.String("body", n.Body),
		zap.String("url", n.URL),
		zap.Int("actions", len(n.Actions)))
	return nil
}

// LogClientOpener records window-open requests in the structured log.
type LogClientOpener struct {
	logger *zap.Logger
}

// NewLogClientOpener creates a log-backed client opener.
func NewLogClientOpener(logger *zap.Logger) *LogClientOpener {
	return &LogClientOpener{logger: logger}
}

// OpenWindow logs the target URL.
func (o *LogClientOpener) OpenWindow(_ context.Context, url string) error {
	o.logger.Info("Opening client window", zap.String("url", url))
	return nil
}
