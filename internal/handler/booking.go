package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/excursion-booking/internal/booking"
	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/model"
	"github.com/iliyamo/excursion-booking/internal/queue"
	"github.com/iliyamo/excursion-booking/internal/repository"
	publisher "github.com/iliyamo/excursion-booking/internal/service"
)

// BookingHandler implements booking admission, listing and
// cancellation for authenticated clients.
//
// Admission runs inside a single transaction that locks the excursion
// row before counting occupancy, so two concurrent requests for the
// same excursion serialize: the loser of the lock race sees the
// winner's booking in its occupancy count and is rejected when the
// bucket no longer fits the party.  Without the lock the read and the
// insert would be separate suspend points and both requests could
// observe free capacity.
type BookingHandler struct {
	DB         *sql.DB
	Excursions *repository.ExcursionRepo
	Bookings   *repository.BookingRepo
	Clients    *repository.ClientRepo
	Payments   *repository.PaymentRepo
}

func NewBookingHandler(db *sql.DB, e *repository.ExcursionRepo, b *repository.BookingRepo,
	cl *repository.ClientRepo, p *repository.PaymentRepo) *BookingHandler {
	if db == nil || e == nil || b == nil || cl == nil || p == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{DB: db, Excursions: e, Bookings: b, Clients: cl, Payments: p}
}

type createBookingReq struct {
	ExcursionID    uint64 `json:"excursion_id"`
	Date           string `json:"date"`
	NumberOfPeople int    `json:"number_of_people"`
	HasChildren    bool   `json:"has_children"` // accepted, informational only
}

type bookingView struct {
	BookingID      uint64    `json:"booking_id"`
	ExcursionID    uint64    `json:"excursion_id"`
	Date           time.Time `json:"date"`
	NumberOfPeople int       `json:"number_of_people"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
}

type createBookingResp struct {
	Booking bookingView `json:"booking"`
	Message string      `json:"message"`
}

// Create handles POST /api/bookings.  Precondition order is fixed:
// excursion approved, then timestamp normalization, then the capacity
// check, then the lazy client profile; the first failure wins and
// nothing is written before all checks pass.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if req.ExcursionID == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "excursion_id is required"})
	}
	if err := booking.ValidateParty(req.NumberOfPeople); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the excursion row for the rest of the transaction.  Every
	// concurrent admission for this excursion blocks here until we
	// commit or roll back.
	exc, err := h.Excursions.GetForUpdateTx(ctx, tx, req.ExcursionID)
	if err != nil {
		if errors.Is(err, repository.ErrExcursionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion unavailable for booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !exc.Bookable() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion unavailable for booking"})
	}

	if exc.AvailableSlots != nil {
		occupied, err := h.Bookings.OccupancyTx(ctx, tx, exc.ID, date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if err := booking.Decide(exc.AvailableSlots, occupied, req.NumberOfPeople); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	clientID, err := h.Clients.EnsureTx(ctx, tx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Payment first so the booking row can reference its identity.
	payment := model.Payment{
		Amount: booking.Amount(exc.PricePerPerson, req.NumberOfPeople),
		Method: "online",
	}
	if err := h.Payments.CreateTx(ctx, tx, &payment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	bk := model.Booking{
		ExcursionID:    exc.ID,
		ClientID:       clientID,
		PaymentID:      payment.ID,
		Date:           date,
		NumberOfPeople: req.NumberOfPeople,
		Status:         model.BookingConfirmed,
		PaymentStatus:  model.PaymentPending,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &bk); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	// Publish after commit, detached from the request: a broker outage
	// must not fail a booking that is already durable.
	event := queue.BookingConfirmedEvent{
		BookingID:      bk.ID,
		ExcursionID:    exc.ID,
		ExcursionTitle: exc.Title,
		City:           exc.City,
		Country:        exc.Country,
		ClientID:       clientID,
		Date:           bk.Date.Format(time.RFC3339),
		NumberOfPeople: bk.NumberOfPeople,
		Amount:         payment.Amount,
		PaymentMethod:  payment.Method,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := publisher.PublishBookingConfirmed(pubCtx, event); err != nil {
			logrus.WithError(err).WithField("booking_id", bk.ID).
				Warn("booking.confirmed publish failed")
		}
	}()

	return c.JSON(http.StatusCreated, createBookingResp{
		Booking: bookingView{
			BookingID:      bk.ID,
			ExcursionID:    bk.ExcursionID,
			Date:           bk.Date,
			NumberOfPeople: bk.NumberOfPeople,
			Status:         bk.Status,
			PaymentStatus:  bk.PaymentStatus,
		},
		Message: "excursion booked successfully",
	})
}

// List handles GET /api/bookings and returns the authenticated client's
// bookings with excursion and payment context.  Users who never booked
// get an empty list, not an error.
func (h *BookingHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	client, err := h.Clients.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusOK, []repository.BookingDetail{})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	list, err := h.Bookings.ListByClient(ctx, client.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// Cancel handles DELETE /api/bookings/:id.  Cancellation is the only
// seat-release path and needs no capacity bookkeeping: the status flip
// removes the row from every occupancy sum.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()

	client, err := h.Clients.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	ownerID, err := h.Bookings.GetOwnerClientID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ownerID != client.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Bookings.CancelOwn(ctx, bookingID, client.ID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			// already cancelled
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
