package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"bella-vista/internal/logger"
	"bella-vista/internal/messaging"
	"bella-vista/internal/models"
)

// Subscriber consumes order events and prints staff-facing
// notifications to the console.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new order event subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes order events until ctx is done.
func (s *Subscriber) Start(ctx context.Context) error {
	return s.consumer.StartConsuming(ctx, s.handleEvent)
}

func (s *Subscriber) handleEvent(ctx context.Context, body []byte) error {
	var event models.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.Error("message_parsing_failed", "", "Failed to parse order event", err, nil)
		return fmt.Errorf("failed to parse order event: %w", err)
	}

	fmt.Println(formatEvent(&event))

	s.logger.Info("notification_displayed", "", "Order event displayed", map[string]interface{}{
		"event":       event.Event,
		"customer_id": event.CustomerID,
	})

	return nil
}

func formatEvent(event *models.OrderEvent) string {
	timestamp := event.Timestamp.Format("2006-01-02 15:04:05")

	switch event.Event {
	case models.EventOrderPlaced:
		return fmt.Sprintf("[%s] New order from customer %s: %d item(s), total $%s",
			timestamp, event.CustomerID, len(event.Items), event.TotalAmount.String())
	case models.EventPaymentConfirmed:
		return fmt.Sprintf("[%s] Customer %s confirmed payment of $%s",
			timestamp, event.CustomerID, event.TotalAmount.String())
	case models.EventOrderCancelled:
		return fmt.Sprintf("[%s] Customer %s cancelled their order",
			timestamp, event.CustomerID)
	default:
		return fmt.Sprintf("[%s] Order event %s for customer %s",
			timestamp, event.Event, event.CustomerID)
	}
}
