package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/model"
	"github.com/iliyamo/excursion-booking/internal/repository"
)

// GuideHandler serves the guide-scoped surface: profile, owned
// excursions and the bookings calendar.
//
// Guide capability is not encoded in the JWT.  Every endpoint here
// resolves the caller's guide profile from the guides table on each
// request, so a moderator revoking the profile locks the user out of
// this whole surface immediately, with tokens still valid.
type GuideHandler struct {
	Guides     *repository.GuideRepo
	Excursions *repository.ExcursionRepo
	Bookings   *repository.BookingRepo
}

func NewGuideHandler(g *repository.GuideRepo, e *repository.ExcursionRepo, b *repository.BookingRepo) *GuideHandler {
	return &GuideHandler{Guides: g, Excursions: e, Bookings: b}
}

// currentGuide resolves the authenticated user's guide profile or
// writes the error response itself.  A missing profile is a 403, not a
// 404: the route exists, the caller just lacks the capability.
func (h *GuideHandler) currentGuide(c echo.Context) (model.Guide, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.Guide{}, false
	}
	g, err := h.Guides.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			_ = c.JSON(http.StatusForbidden, echo.Map{"error": "guide profile required"})
			return model.Guide{}, false
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		return model.Guide{}, false
	}
	return g, true
}

// Check handles GET /api/guides/check and reports whether the caller
// holds an approved guide profile.  Unlike the rest of the surface it
// never fails on a missing profile; the frontend uses it to decide
// which navigation to render.
func (h *GuideHandler) Check(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	_, err := h.Guides.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"is_guide": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"is_guide": true})
}

// Me handles GET /api/guides/me.
func (h *GuideHandler) Me(c echo.Context) error {
	g, ok := h.currentGuide(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guide_id": g.ID,
		"user_id":  g.UserID,
		"photo":    g.Photo,
	})
}

type updateGuideReq struct {
	Photo string `json:"photo"`
}

// UpdateProfile handles PATCH /api/guides/me.  Photo is the only
// mutable field; the URL normally comes from the upload endpoint.
func (h *GuideHandler) UpdateProfile(c echo.Context) error {
	g, ok := h.currentGuide(c)
	if !ok {
		return nil
	}
	var req updateGuideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	req.Photo = strings.TrimSpace(req.Photo)
	if req.Photo == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "photo is required"})
	}
	if err := h.Guides.UpdatePhoto(c.Request().Context(), g.ID, req.Photo); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guide_id": g.ID,
		"photo":    req.Photo,
	})
}

// MyExcursions handles GET /api/guides/me/excursions: everything the
// guide owns, whatever the status.
func (h *GuideHandler) MyExcursions(c echo.Context) error {
	g, ok := h.currentGuide(c)
	if !ok {
		return nil
	}
	list, err := h.Excursions.ListByGuide(c.Request().Context(), g.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExcursionViews(list))
}

type excursionReq struct {
	Title                  string  `json:"title"`
	Country                string  `json:"country"`
	City                   string  `json:"city"`
	Difficulty             string  `json:"difficulty"`
	Description            *string `json:"description"`
	Photos                 *string `json:"photos"`
	PricePerPerson         float64 `json:"price_per_person"`
	AcceptedPaymentMethods string  `json:"accepted_payment_methods"`
	AvailableSlots         *int    `json:"available_slots"`
}

func (r *excursionReq) validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Country = strings.TrimSpace(r.Country)
	r.City = strings.TrimSpace(r.City)
	switch {
	case r.Title == "":
		return errors.New("title is required")
	case r.Country == "" || r.City == "":
		return errors.New("country and city are required")
	case r.PricePerPerson < 0:
		return errors.New("price_per_person must not be negative")
	case r.AvailableSlots != nil && *r.AvailableSlots < 1:
		return errors.New("available_slots must be at least 1 when set")
	}
	if r.AcceptedPaymentMethods == "" {
		r.AcceptedPaymentMethods = "online"
	}
	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
	return nil
}

// CreateExcursion handles POST /api/guides/me/excursions.  New excursions
// enter the lifecycle at pending_review and stay invisible to clients
// until a moderator approves them.
func (h *GuideHandler) CreateExcursion(c echo.Context) error {
	g, ok := h.currentGuide(c)
	if !ok {
		return nil
	}
	var req excursionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	e := model.Excursion{
		Title:                  req.Title,
		Country:                req.Country,
		City:                   req.City,
		Difficulty:             req.Difficulty,
		Description:            req.Description,
		Photos:                 req.Photos,
		PricePerPerson:         req.PricePerPerson,
		AcceptedPaymentMethods: req.AcceptedPaymentMethods,
		Status:                 model.StatusPendingReview,
		AvailableSlots:         req.AvailableSlots,
		GuideID:                g.ID,
	}
	if err := h.Excursions.Create(c.Request().Context(), &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toExcursionView(e))
}

// UpdateExcursion handles PATCH /api/guides/me/excursions/:id.  Any edit to
// an approved excursion sends it back to pending_review; capacity and
// price changes need a fresh moderator pass before clients see them.
func (h *GuideHandler) UpdateExcursion(c echo.Context) error {
	g, ok := h.currentGuide(c)
	if !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid excursion id"})
	}
	var req excursionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	e, err := h.Excursions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExcursionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if e.GuideID != g.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your excursion"})
	}

	e.Title = req.Title
	e.Country = req.Country
	e.City = req.City
	e.Difficulty = req.Difficulty
	e.Description = req.Description
	e.Photos = req.Photos
	e.PricePerPerson = req.PricePerPerson
	e.AcceptedPaymentMethods = req.AcceptedPaymentMethods
	e.AvailableSlots = req.AvailableSlots
	e.Status = e.Status.AfterEdit()

	if err := h.Excursions.Update(ctx, &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExcursionView(e))
}

// BookingsCalendar handles GET /api/guides/me/bookings: every active
// booking across the guide's excursions, ordered by date.
func (h *GuideHandler) BookingsCalendar(c echo.Context) error {
	g, ok := h.currentGuide(c)
	if !ok {
		return nil
	}
	entries, err := h.Bookings.ListForGuide(c.Request().Context(), g.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, entries)
}
