package serializer

import (
	"time"

	"github.com/iliyamo/little-lemon/internal/model"
)

// BookingJSON is the wire form of a booking.  booking_date is rendered in
// RFC 3339 with the offset it was created with.
type BookingJSON struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	NoOfGuests  int       `json:"no_of_guests"`
	BookingDate time.Time `json:"booking_date"`
}

func BookingToJSON(b model.Booking) BookingJSON {
	return BookingJSON{
		ID:          b.ID,
		Name:        b.Name,
		NoOfGuests:  b.NoOfGuests,
		BookingDate: b.BookingDate,
	}
}

func BookingsToJSON(bookings []model.Booking) []BookingJSON {
	out := make([]BookingJSON, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToJSON(b))
	}
	return out
}

// BookingInput holds the validated client fields; nil means not supplied.
type BookingInput struct {
	Name        *string
	NoOfGuests  *int
	BookingDate *time.Time
}

var (
	nameField   = CharField{MaxLength: 255}
	guestsField = IntegerField{Min: 1, Max: maxInt32}
	// DATETIME(6) range
	dateField = DateTimeField{
		Min: time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC),
		Max: time.Date(9999, 12, 31, 23, 59, 59, 999999000, time.UTC),
	}
)

// ValidateBooking checks body, in partial mode for PATCH.
func ValidateBooking(body Body, partial bool) Result[BookingInput] {
	errs := FieldErrors{}
	in := BookingInput{
		Name:        Field[string](body, "name", partial, errs, nameField),
		NoOfGuests:  Field[int](body, "no_of_guests", partial, errs, guestsField),
		BookingDate: Field[time.Time](body, "booking_date", partial, errs, dateField),
	}
	return result(in, errs)
}

func (in BookingInput) ApplyTo(b *model.Booking) {
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.NoOfGuests != nil {
		b.NoOfGuests = *in.NoOfGuests
	}
	if in.BookingDate != nil {
		b.BookingDate = *in.BookingDate
	}
}
