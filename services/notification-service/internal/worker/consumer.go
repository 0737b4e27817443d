package worker

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clubgolfpapudo/reservas/pkg/mq"
	"github.com/clubgolfpapudo/reservas/services/notification-service/internal/events"
	"github.com/clubgolfpapudo/reservas/services/notification-service/internal/notifier"
)

// Worker turns booking events into ops notifications. It is the operational
// visibility tail of the cancellation workflow: email fan-out failures and
// resolver anomalies end up here, never in the member-facing response.
type Worker struct {
	cons     *mq.Consumer
	notifier notifier.Notifier
}

func New(cons *mq.Consumer, n notifier.Notifier) *Worker {
	return &Worker{cons: cons, notifier: n}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.cons.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handleDelivery(d); err != nil {
				log.Printf("[notify] handle error key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingCancelled:
		ev, err := events.Decode[events.BookingCancelled](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("❌ Player Cancelled",
			fmt.Sprintf("%s (%s) left booking %s; %d player(s) remain.",
				ev.PlayerName, ev.PlayerEmail, ev.BookingID, ev.Remaining))

	case events.RKBookingDeleted:
		ev, err := events.Decode[events.BookingDeleted](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("🗑️ Booking Deleted",
			fmt.Sprintf("Booking %s removed: last player (%s) cancelled.", ev.BookingID, ev.PlayerEmail))

	case events.RKBookingDuplicate:
		ev, err := events.Decode[events.BookingDuplicate](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("⚠️ Duplicate Reservations",
			fmt.Sprintf("Slot %s has %d reservations; data needs cleanup.",
				notifier.HumanSlot(ev.CourtID, ev.Date, ev.StartTime), ev.Count))

	case events.RKEmailsSent:
		ev, err := events.Decode[events.EmailsSent](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("📧 Confirmation Emails",
			fmt.Sprintf("Booking %s: %d sent, %d failed.", ev.BookingID, ev.Sent, ev.Failed))

	case events.RKEmailsFailed:
		ev, err := events.Decode[events.EmailsFailed](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("⚠️ Notification Failures",
			fmt.Sprintf("Booking %s: %d cancellation notice(s) undelivered.", ev.BookingID, ev.Failed))

	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
