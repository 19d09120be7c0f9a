package worker

import (
	"context"
	"log"
	"time"

	"shophub/internal/broker"
	"shophub/internal/models"
	"shophub/internal/store"
	"shophub/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FulfillmentWorker consumes OrderPlaced events and advances orders from
// PENDING to SHIPPED. Redeliveries are ignored via the processed_events
// table.
type FulfillmentWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	publisher    *broker.EventPublisher
	logger       *zap.Logger
}

// NewFulfillmentWorker creates a new fulfillment worker
func NewFulfillmentWorker(
	consumer *broker.Consumer,
	st *store.Store,
	publisher *broker.EventPublisher,
) *FulfillmentWorker {
	w := &FulfillmentWorker{
		consumer:  consumer,
		store:     st,
		publisher: publisher,
		logger:    util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *FulfillmentWorker) Start(ctx context.Context) error {
	log.Println("Starting fulfillment worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *FulfillmentWorker) Stop() error {
	log.Println("Stopping fulfillment worker...")
	return w.consumer.Close()
}

func (w *FulfillmentWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		w.logger.Info("Skipping already processed event",
			zap.String("event_id", event.EventID),
			zap.Int64("order_id", event.OrderID))
		return nil
	}

	if err := w.store.UpdateOrderStatus(ctx, event.OrderID, models.OrderStatusShipped); err != nil {
		return err
	}

	util.OrdersShippedTotal.Inc()
	w.logger.Info("Order shipped",
		zap.Int64("order_id", event.OrderID),
		zap.String("user_id", event.UserID))

	shipped := &models.OrderShippedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderShipped,
			Timestamp: time.Now(),
		},
		OrderID: event.OrderID,
		UserID:  event.UserID,
	}
	if err := w.publisher.PublishOrderShipped(ctx, shipped); err != nil {
		w.logger.Error("Failed to publish OrderShipped event", zap.Error(err))
	}

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}
