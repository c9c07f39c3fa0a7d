package sync

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher maps shop lifecycle events onto engine operations. Every
// handler swallows the sync error after logging it: the shop action that
// fired the event must never fail because the warehouse was unreachable.
type Dispatcher struct {
	orders *OrderSyncService
	logger *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(orders *OrderSyncService, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		orders: orders,
		logger: logger,
	}
}

// OrderPaymentCompleted creates the order in the warehouse after the shop
// recorded a completed payment
func (d *Dispatcher) OrderPaymentCompleted(ctx context.Context, orderID uuid.UUID) {
	if err := d.orders.CreateOrder(ctx, orderID, ""); err != nil {
		d.logger.Error("Order create sync failed after payment completion",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}

// OrderUpdated pushes the edited item list of an already synced order
func (d *Dispatcher) OrderUpdated(ctx context.Context, orderID uuid.UUID) {
	if err := d.orders.UpdateOrder(ctx, orderID); err != nil {
		d.logger.Error("Order update sync failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}

// OrderCancelled mirrors a shop-side cancellation into the warehouse
func (d *Dispatcher) OrderCancelled(ctx context.Context, orderID uuid.UUID) {
	if err := d.orders.CancelOrder(ctx, orderID); err != nil {
		d.logger.Error("Order cancel sync failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}
