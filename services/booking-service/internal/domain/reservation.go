package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Capacity is the number of players a padel reservation can hold.
const Capacity = 4

// PlaceholderEmail marks directory members without a real address. Players
// carrying it cannot be notified or cancel through the email-link flow.
const PlaceholderEmail = "sin-email@cgp.cl"

const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
)

// Player is a value embedded in a Reservation, not a standalone row.
// Removal identity is the email, compared exactly.
type Player struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Players serializes as a JSON column so a reservation stays a single
// self-contained row.
type Players []Player

func (p Players) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Players) Scan(v any) error {
	switch b := v.(type) {
	case []byte:
		return json.Unmarshal(b, p)
	case string:
		return json.Unmarshal([]byte(b), p)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("scan players: unsupported type %T", v)
	}
}

// Reservation is a booked slot on a court. Players[0] is the organizer.
// A reservation with zero players is never persisted: removing the last
// player deletes the row. ID is immutable once created.
type Reservation struct {
	ID           string  `gorm:"primaryKey"`
	CourtID      string  `gorm:"index:idx_slot"`
	Date         string  `gorm:"index:idx_slot"` // YYYY-MM-DD
	StartTime    string  `gorm:"index:idx_slot"` // HH:MM
	Players      Players `gorm:"type:jsonb"`
	Status       string
	LastModified time.Time
	Version      int64 // optimistic concurrency token, bumped on every write
}

// StatusFor recomputes the derived status tag; it is never set independently.
func StatusFor(playerCount int) string {
	if playerCount == Capacity {
		return StatusComplete
	}
	return StatusIncomplete
}

// PlayerByEmail returns the player matching the email exactly, or nil.
// Players without an email never match.
func (r *Reservation) PlayerByEmail(email string) *Player {
	for i := range r.Players {
		if r.Players[i].Email != "" && r.Players[i].Email == email {
			return &r.Players[i]
		}
	}
	return nil
}
