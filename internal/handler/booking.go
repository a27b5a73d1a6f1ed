package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/little-lemon/internal/middleware"
	"github.com/iliyamo/little-lemon/internal/model"
	"github.com/iliyamo/little-lemon/internal/queue"
	"github.com/iliyamo/little-lemon/internal/repository"
	"github.com/iliyamo/little-lemon/internal/serializer"
)

// BookingHandler serves /booking/tables/.  Every route behind it requires a
// token, but bookings are not scoped to the caller.
type BookingHandler struct {
	Bookings BookingStore
	Events   EventPublisher // optional; nil disables change events
}

func NewBookingHandler(bookings BookingStore, events EventPublisher) *BookingHandler {
	if bookings == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Events: events}
}

// publishTimeout bounds the broker round trip after a change.
const publishTimeout = 3 * time.Second

// publish sends a change event.  Failures are logged and never alter the
// response, which has already been decided.
func (h *BookingHandler) publish(c echo.Context, typ string, b model.Booking) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer cancel()
	ev := queue.NewBookingEvent(typ, b, middleware.Username(c))
	if err := h.Events.PublishBookingEvent(ctx, ev); err != nil {
		c.Logger().Warnf("publish %s for booking %d: %v", typ, b.ID, err)
	}
}

func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		return internalError(c, "list bookings", err)
	}
	return c.JSON(http.StatusOK, serializer.BookingsToJSON(bookings))
}

func (h *BookingHandler) Create(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	res := serializer.ValidateBooking(body, false)
	if !res.OK() {
		return validationFailed(c, res.Errors)
	}
	var b model.Booking
	res.Value.ApplyTo(&b)

	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return internalError(c, "create booking", err)
	}
	h.publish(c, queue.BookingCreated, b)
	return c.JSON(http.StatusCreated, serializer.BookingToJSON(b))
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := middleware.IDParam(c)
	if !ok {
		return notFound(c, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return notFound(c, "booking")
		}
		return internalError(c, "get booking", err)
	}
	return c.JSON(http.StatusOK, serializer.BookingToJSON(*b))
}

// Update serves PUT (all fields) and PATCH (supplied fields only).
func (h *BookingHandler) Update(c echo.Context) error {
	id, ok := middleware.IDParam(c)
	if !ok {
		return notFound(c, "booking")
	}
	partial := c.Request().Method == http.MethodPatch

	ctx, cancel := storeCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return notFound(c, "booking")
		}
		return internalError(c, "get booking", err)
	}

	body, err := bindBody(c)
	if err != nil {
		return err
	}
	res := serializer.ValidateBooking(body, partial)
	if !res.OK() {
		return validationFailed(c, res.Errors)
	}
	res.Value.ApplyTo(b)

	if err := h.Bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return notFound(c, "booking")
		}
		return internalError(c, "update booking", err)
	}
	h.publish(c, queue.BookingUpdated, *b)
	return c.JSON(http.StatusOK, serializer.BookingToJSON(*b))
}

// Delete removes the booking.  The last known state is loaded first so the
// delete event can describe it.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, ok := middleware.IDParam(c)
	if !ok {
		return notFound(c, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err == nil {
		err = h.Bookings.Delete(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return notFound(c, "booking")
		}
		return internalError(c, "delete booking", err)
	}
	h.publish(c, queue.BookingDeleted, *b)
	return c.NoContent(http.StatusNoContent)
}
