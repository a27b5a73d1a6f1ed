package model

import "time"

// Booking is a table reservation.  Bookings are not owned by any user
// account: every authenticated caller sees and edits all of them.
//
// Fields:
//
//	ID          – primary key, assigned by the database.
//	Name        – guest name the table is booked under.
//	NoOfGuests  – party size, at least one.
//	BookingDate – reserved instant, carrying the offset the client sent.
type Booking struct {
	ID          uint64    // bookings.id
	Name        string    // bookings.name
	NoOfGuests  int       // bookings.no_of_guests
	BookingDate time.Time // bookings.booking_date + bookings.booking_tz_offset
}
