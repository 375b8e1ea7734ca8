package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/excursion-booking/internal/availability"
	"github.com/iliyamo/excursion-booking/internal/model"
	"github.com/iliyamo/excursion-booking/internal/repository"
)

// ExcursionHandler serves the public excursion surface: search, detail
// and the available-dates projection.  Everything here is read-only.
type ExcursionHandler struct {
	Excursions *repository.ExcursionRepo
	Bookings   *repository.BookingRepo
}

func NewExcursionHandler(e *repository.ExcursionRepo, b *repository.BookingRepo) *ExcursionHandler {
	return &ExcursionHandler{Excursions: e, Bookings: b}
}

// excursionView is the JSON shape shared by every endpoint that returns
// excursions.  The repository model carries no tags, so handlers map
// explicitly.
type excursionView struct {
	ExcursionID            uint64  `json:"excursion_id"`
	Title                  string  `json:"title"`
	Country                string  `json:"country"`
	City                   string  `json:"city"`
	Difficulty             string  `json:"difficulty"`
	Description            *string `json:"description"`
	Photos                 *string `json:"photos"`
	PricePerPerson         float64 `json:"price_per_person"`
	AcceptedPaymentMethods string  `json:"accepted_payment_methods"`
	Status                 string  `json:"status"`
	AvailableSlots         *int    `json:"available_slots"`
	GuideID                uint64  `json:"guide_id"`
}

func toExcursionView(e model.Excursion) excursionView {
	return excursionView{
		ExcursionID:            e.ID,
		Title:                  e.Title,
		Country:                e.Country,
		City:                   e.City,
		Difficulty:             e.Difficulty,
		Description:            e.Description,
		Photos:                 e.Photos,
		PricePerPerson:         e.PricePerPerson,
		AcceptedPaymentMethods: e.AcceptedPaymentMethods,
		Status:                 string(e.Status),
		AvailableSlots:         e.AvailableSlots,
		GuideID:                e.GuideID,
	}
}

func toExcursionViews(list []model.Excursion) []excursionView {
	out := make([]excursionView, 0, len(list))
	for _, e := range list {
		out = append(out, toExcursionView(e))
	}
	return out
}

// peopleParam parses the optional ?people=N query parameter, defaulting
// to 1.  Values below 1 are rejected before any query runs.
func peopleParam(c echo.Context) (int, error) {
	people := 1
	if raw := c.QueryParam("people"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, errors.New("people must be a positive integer")
		}
		people = n
	}
	return people, nil
}

// Search handles GET /api/excursions.  Only approved excursions are
// returned; country and city filter by substring and people filters out
// excursions whose capacity could never fit the party.
func (h *ExcursionHandler) Search(c echo.Context) error {
	people, err := peopleParam(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	filters := repository.SearchFilters{
		Country: c.QueryParam("country"),
		City:    c.QueryParam("city"),
		People:  people,
	}
	list, err := h.Excursions.Search(c.Request().Context(), filters)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExcursionViews(list))
}

// GetByID handles GET /api/excursions/:id.
func (h *ExcursionHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid excursion id"})
	}
	e, err := h.Excursions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrExcursionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExcursionView(e))
}

// availableDatesResp is the projection payload: one cell per (date,
// slot) pair over the whole horizon.
type availableDatesResp struct {
	ExcursionID    uint64                  `json:"excursion_id"`
	AvailableSlots *int                    `json:"available_slots"`
	TimeSlots      []availability.TimeSlot `json:"time_slots"`
}

// AvailableDates handles GET /api/excursions/:id/available-dates.  It
// projects remaining capacity over the next 30 days × the fixed daily
// slots for the requested party size.  The projection is advisory: it
// takes no locks, so a slot reported available can still be lost to a
// concurrent booking before the caller submits theirs.
func (h *ExcursionHandler) AvailableDates(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid excursion id"})
	}
	people, err := peopleParam(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	e, err := h.Excursions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExcursionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion not found or unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !e.Bookable() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion not found or unavailable"})
	}

	today := time.Now().UTC()
	occ, err := h.Bookings.OccupancyRange(ctx, e.ID, today, today.AddDate(0, 0, availability.HorizonDays))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, availableDatesResp{
		ExcursionID:    e.ID,
		AvailableSlots: e.AvailableSlots,
		TimeSlots:      availability.Project(e.AvailableSlots, occ, people, today),
	})
}
