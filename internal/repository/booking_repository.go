package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/little-lemon/internal/model"
)

const (
	qBookingList   = "SELECT id, name, no_of_guests, booking_date, booking_tz_offset FROM bookings ORDER BY id"
	qBookingGet    = "SELECT id, name, no_of_guests, booking_date, booking_tz_offset FROM bookings WHERE id = ?"
	qBookingInsert = "INSERT INTO bookings (name, no_of_guests, booking_date, booking_tz_offset) VALUES (?, ?, ?, ?)"
	qBookingUpdate = "UPDATE bookings SET name = ?, no_of_guests = ?, booking_date = ?, booking_tz_offset = ? WHERE id = ?"
	qBookingDelete = "DELETE FROM bookings WHERE id = ?"
)

// bookingRow is the stored shape of a booking: the instant in UTC plus the
// client's offset in seconds east of UTC.
type bookingRow struct {
	ID          uint64    `db:"id"`
	Name        string    `db:"name"`
	NoOfGuests  int       `db:"no_of_guests"`
	BookingDate time.Time `db:"booking_date"`
	TZOffset    int       `db:"booking_tz_offset"`
}

func (row bookingRow) toModel() model.Booking {
	loc := time.UTC
	if row.TZOffset != 0 {
		loc = time.FixedZone("", row.TZOffset)
	}
	return model.Booking{
		ID:          row.ID,
		Name:        row.Name,
		NoOfGuests:  row.NoOfGuests,
		BookingDate: row.BookingDate.In(loc),
	}
}

// splitDate returns the UTC instant and offset stored for t.
func splitDate(t time.Time) (time.Time, int) {
	_, offset := t.Zone()
	return t.UTC(), offset
}

// BookingRepo encapsulates all database queries related to bookings.
// Bookings are not owned by a user, so no query filters by caller.
type BookingRepo struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// List returns every booking ordered by id.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, qBookingList); err != nil {
		return nil, err
	}
	out := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// GetByID fetches one booking, or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, qBookingGet, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b := row.toModel()
	return &b, nil
}

// Create inserts b and fills in its auto-generated ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	at, offset := splitDate(b.BookingDate)
	res, err := r.db.ExecContext(ctx, qBookingInsert, b.Name, b.NoOfGuests, at, offset)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Update overwrites every mutable column of the row b.ID.
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking) error {
	at, offset := splitDate(b.BookingDate)
	res, err := r.db.ExecContext(ctx, qBookingUpdate, b.Name, b.NoOfGuests, at, offset, b.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrBookingNotFound)
}

// Delete removes the row, or returns ErrBookingNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, qBookingDelete, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrBookingNotFound)
}
