// Package queue defines the booking change events published to the message
// broker and the publisher that sends them.
package queue

import (
	"time"

	"github.com/iliyamo/little-lemon/internal/model"
)

// Booking change kinds.
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
	BookingDeleted = "booking.deleted"
)

// BookingEvent is published after a booking row changes.  It carries the
// state after the change (or the last state, for deletes) so consumers do
// not need to query the primary database.
type BookingEvent struct {
	Type        string `json:"type"`
	BookingID   uint64 `json:"booking_id"`
	Name        string `json:"name"`
	NoOfGuests  int    `json:"no_of_guests"`
	BookingDate string `json:"booking_date"`
	Actor       string `json:"actor"`
	OccurredAt  string `json:"occurred_at"`
}

// NewBookingEvent builds an event of kind typ for b, performed by actor.
func NewBookingEvent(typ string, b model.Booking, actor string) BookingEvent {
	return BookingEvent{
		Type:        typ,
		BookingID:   b.ID,
		Name:        b.Name,
		NoOfGuests:  b.NoOfGuests,
		BookingDate: b.BookingDate.Format(time.RFC3339Nano),
		Actor:       actor,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
}
