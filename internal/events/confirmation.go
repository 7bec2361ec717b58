package events

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// ConfirmationLogger records that an order confirmation should be sent to the
// customer. There is no mail transport; the log line is the hand-off.
type ConfirmationLogger struct{}

func (ConfirmationLogger) Name() string { return "confirmation" }

func (ConfirmationLogger) HandleOrderCreated(ctx context.Context, ev OrderCreated) error {
	logger.FromCtx(ctx).Info("order confirmation queued",
		zap.Uint("order_id", ev.OrderID),
		zap.Uint("customer_id", ev.CustomerID),
		zap.Int("items", len(ev.Items)),
		zap.String("total", ev.Total.StringFixed(2)),
	)
	return nil
}
