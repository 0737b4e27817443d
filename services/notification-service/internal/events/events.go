package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys booking-service publishes on the booking exchange.
const (
	RKBookingCancelled = "booking.cancelled"
	RKBookingDeleted   = "booking.deleted"
	RKBookingDuplicate = "booking.duplicate"
	RKEmailsSent       = "emails.sent"
	RKEmailsFailed     = "emails.failed"
)

// BookingCancelled: a player left but the reservation survives.
type BookingCancelled struct {
	BookingID   string `json:"booking_id"`
	PlayerEmail string `json:"player_email"`
	PlayerName  string `json:"player_name"`
	Remaining   int    `json:"remaining"`
}

// BookingDeleted: the last player left and the reservation was removed.
type BookingDeleted struct {
	BookingID   string `json:"booking_id"`
	PlayerEmail string `json:"player_email"`
}

// BookingDuplicate: the resolver found more than one reservation for a slot.
type BookingDuplicate struct {
	CourtID   string `json:"court_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Count     int    `json:"count"`
}

type EmailsSent struct {
	BookingID string `json:"booking_id"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
}

type EmailsFailed struct {
	BookingID string `json:"booking_id"`
	Failed    int    `json:"failed"`
}

// Decode parses an event payload into its typed form.
func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
