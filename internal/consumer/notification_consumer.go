package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/Eursukkul/eticket/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

type NotificationKind string

const (
	KindConfirmation NotificationKind = "confirmation"
	KindCancellation NotificationKind = "cancellation"
)

var errUnknownEvent = errors.New("unknown booking event")

// Notification is the message sent to a passenger after a booking changes.
type Notification struct {
	Kind      NotificationKind
	BookingID string
	To        string
	Phone     string
	Subject   string
	Body      string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) error {
	logger.Log.Info("[notify] "+n.Subject, "kind", n.Kind, "booking_id", n.BookingID, "to", n.To, "phone", n.Phone)
	return nil
}

type NotificationConsumer struct {
	notifier Notifier
}

func NewNotificationConsumer(notifier Notifier) *NotificationConsumer {
	return &NotificationConsumer{notifier: notifier}
}

// Start handles deliveries until msgs is closed.
func (nc *NotificationConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(ctx, msg)
		}
		logger.Log.Info("[notification-consumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var booking models.Booking
	if err := json.Unmarshal(msg.Body, &booking); err != nil || booking.ID == "" {
		logger.Log.Warn("[notification-consumer] dropping malformed message", "routing_key", msg.RoutingKey, "error", err)
		msg.Nack(false, false)
		return
	}

	n, err := buildNotification(msg.RoutingKey, &booking)
	if err != nil {
		logger.Log.Warn("[notification-consumer] dropping message", "routing_key", msg.RoutingKey, "error", err)
		msg.Nack(false, false)
		return
	}

	if err := nc.notifier.Notify(ctx, n); err != nil {
		logger.Log.Error("[notification-consumer] notify failed, requeueing", "booking_id", booking.ID, "error", err)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}

func buildNotification(routingKey string, b *models.Booking) (Notification, error) {
	n := Notification{BookingID: b.ID, To: b.PassengerEmail, Phone: b.PassengerPhone}
	switch routingKey {
	case service.EventBookingCreated:
		n.Kind = KindConfirmation
		n.Subject = fmt.Sprintf("Booking %s confirmed", b.ID)
		n.Body = fmt.Sprintf("Dear %s, your seats %v on schedule %s are confirmed. Amount paid: %d.",
			b.PassengerName, b.Seats, b.ScheduleID, b.Amount)
	case service.EventBookingCancelled:
		n.Kind = KindCancellation
		n.Subject = fmt.Sprintf("Booking %s cancelled", b.ID)
		n.Body = fmt.Sprintf("Dear %s, your booking for schedule %s has been cancelled.", b.PassengerName, b.ScheduleID)
	default:
		return Notification{}, fmt.Errorf("%w: %q", errUnknownEvent, routingKey)
	}
	return n, nil
}
