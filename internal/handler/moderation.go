package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/model"
	"github.com/iliyamo/excursion-booking/internal/repository"
)

// ModerationHandler serves the moderator review queue for excursions.
type ModerationHandler struct {
	Excursions *repository.ExcursionRepo
	Moderators *repository.ModeratorRepo
}

func NewModerationHandler(e *repository.ExcursionRepo, m *repository.ModeratorRepo) *ModerationHandler {
	return &ModerationHandler{Excursions: e, Moderators: m}
}

// ListPending handles GET /api/moderation/excursions: everything
// waiting for review, both new submissions and edited regressions.
func (h *ModerationHandler) ListPending(c echo.Context) error {
	list, err := h.Excursions.ListByStatus(c.Request().Context(), model.StatusPendingReview)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExcursionViews(list))
}

// Approve handles POST /api/moderation/excursions/:id/approve.  The
// transition table is the authority: approving an excursion that is
// not pending_review is a conflict, not a no-op, so double-submits
// from two moderators surface instead of silently passing.
func (h *ModerationHandler) Approve(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid excursion id"})
	}
	ctx := c.Request().Context()

	e, err := h.Excursions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExcursionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "excursion not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	next, err := e.Status.Transition(model.StatusApproved)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "excursion is not pending review",
		})
	}

	mod, err := h.Moderators.Ensure(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Excursions.Approve(ctx, e.ID, mod.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	logrus.WithFields(logrus.Fields{
		"excursion_id": e.ID,
		"moderator_id": mod.ID,
	}).Info("excursion approved")

	e.Status = next
	e.ModeratorID = &mod.ID
	return c.JSON(http.StatusOK, toExcursionView(e))
}
