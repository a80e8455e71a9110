package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"emvibook/internal/api"
	"emvibook/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Set a weekly availability rule
// @Description  Artist-only: publish a recurring window; an existing active rule for the same weekday is superseded
// @Tags         artist,availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body calendar.CreateRuleRequest true "Rule payload"
// @Success      201 {object} calendar.AvailabilityRule
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/availability/rules [post]
func (h *Handler) SetRule(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	rule, err := h.service.SetRule(ctx, artistID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidWeekday), errors.Is(err, ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to set availability rule"})
		}
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// @Summary      Remove an availability rule
// @Description  Artist-only: deactivate a rule; history is retained
// @Tags         artist,availability
// @Produce      json
// @Security     BearerAuth
// @Param        ruleID path int true "Rule ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/availability/rules/{ruleID} [delete]
func (h *Handler) RemoveRule(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ruleID, err := strconv.Atoi(c.Param("ruleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid rule ID"})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.RemoveRule(ctx, artistID, ruleID); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Availability rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to remove availability rule"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Availability rule removed"})
}

// @Summary      List availability rules
// @Description  Artist-only: list the caller's rules, including superseded history with ?all=true
// @Tags         artist,availability
// @Produce      json
// @Security     BearerAuth
// @Param        all query bool false "Include inactive rules"
// @Success      200 {array} calendar.AvailabilityRule
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/availability/rules [get]
func (h *Handler) ListRules(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ctx := c.Request.Context()

	var rules []AvailabilityRule
	var err error
	if c.Query("all") == "true" {
		rules, err = h.service.ListRules(ctx, artistID)
	} else {
		rules, err = h.service.ListActiveRules(ctx, artistID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability rules"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// @Summary      Add a time off exception
// @Description  Artist-only: carve a one-off blackout out of the weekly schedule
// @Tags         artist,availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body calendar.CreateTimeOffRequest true "Time off payload"
// @Success      201 {object} calendar.TimeOffException
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/availability/time-off [post]
func (h *Handler) AddTimeOff(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	exception, err := h.service.AddTimeOff(ctx, artistID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time off range"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to add time off"})
		return
	}

	c.JSON(http.StatusCreated, exception)
}

// @Summary      Remove a time off exception
// @Tags         artist,availability
// @Produce      json
// @Security     BearerAuth
// @Param        exceptionID path int true "Exception ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/availability/time-off/{exceptionID} [delete]
func (h *Handler) RemoveTimeOff(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	exceptionID, err := strconv.Atoi(c.Param("exceptionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exception ID"})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.RemoveTimeOff(ctx, artistID, exceptionID); err != nil {
		if errors.Is(err, ErrExceptionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time off exception not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to remove time off"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Time off removed"})
}

// @Summary      List time off exceptions
// @Tags         artist,availability
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Window start (RFC3339)"
// @Param        to query string false "Window end (RFC3339)"
// @Success      200 {array} calendar.TimeOffException
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/availability/time-off [get]
func (h *Handler) ListTimeOff(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	now := time.Now().UTC()
	from := now
	to := now.AddDate(0, 3, 0)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time window"})
			return
		}
		from = parsed.UTC()
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time window"})
			return
		}
		to = parsed.UTC()
	}

	ctx := c.Request.Context()
	exceptions, err := h.service.ListTimeOff(ctx, artistID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch time off"})
		return
	}

	c.JSON(http.StatusOK, exceptions)
}
