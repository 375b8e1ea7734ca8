package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/excursion-booking/internal/model"
	"github.com/iliyamo/excursion-booking/internal/repository"
)

// AdminHandler serves the moderator back-office: all bookings, all
// excursions and guide application review.  Routes mount behind
// RequireRole(MODERATOR).
type AdminHandler struct {
	Users      *repository.UserRepo
	Guides     *repository.GuideRepo
	Excursions *repository.ExcursionRepo
	Bookings   *repository.BookingRepo
}

func NewAdminHandler(u *repository.UserRepo, g *repository.GuideRepo,
	e *repository.ExcursionRepo, b *repository.BookingRepo) *AdminHandler {
	return &AdminHandler{Users: u, Guides: g, Excursions: e, Bookings: b}
}

// ListBookings handles GET /api/admin/bookings.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	list, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// GetBooking handles GET /api/admin/bookings/:id.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.GetAdminByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, b)
}

// ListExcursions handles GET /api/admin/excursions with an optional
// ?status= filter.  Without the filter it returns the review queue
// plus everything already approved.
func (h *AdminHandler) ListExcursions(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("status"); raw != "" {
		status := model.ExcursionStatus(raw)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		list, err := h.Excursions.ListByStatus(ctx, status)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, toExcursionViews(list))
	}

	pending, err := h.Excursions.ListByStatus(ctx, model.StatusPendingReview)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	approved, err := h.Excursions.ListByStatus(ctx, model.StatusApproved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExcursionViews(append(pending, approved...)))
}

// ListGuides handles GET /api/admin/guides: approved guide profiles
// joined with their user records.
func (h *AdminHandler) ListGuides(c echo.Context) error {
	list, err := h.Guides.ListWithUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListGuideApplications handles GET /api/admin/guides/pending: users
// who registered with guide intent but have no profile yet.
func (h *AdminHandler) ListGuideApplications(c echo.Context) error {
	list, err := h.Guides.ListPendingUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

type guideDecisionReq struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// DecideGuide handles POST /api/admin/guides/:user_id/approve.
// Approval creates the guide profile, which is the capability itself.
// Rejection (or later revocation) deletes the profile and clears the
// intent flag; the user's excursions keep their rows but stop being
// reachable through the guide surface.
func (h *AdminHandler) DecideGuide(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req guideDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if req.Approved {
		g, err := h.Guides.Ensure(ctx, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if err := h.Users.SetGuideFlag(ctx, userID, true); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		logrus.WithFields(logrus.Fields{"user_id": userID, "guide_id": g.ID}).Info("guide approved")
		return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "guide_id": g.ID, "approved": true})
	}

	if err := h.Guides.DeleteByUserID(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Users.SetGuideFlag(ctx, userID, false); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"reason":  strings.TrimSpace(req.Reason),
	}).Info("guide rejected")
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "approved": false})
}
