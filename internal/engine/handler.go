package engine

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"emvibook/internal/api"
	"emvibook/internal/auth"
	"emvibook/internal/catalog"
	"emvibook/internal/ledger"
)

// Default availability window when the query omits bounds.
const defaultWindowDays = 14

type BookingRequest struct {
	ArtistID  int64  `json:"artist_id" binding:"required"`
	ServiceID int    `json:"service_id" binding:"required"`
	StartAt   string `json:"start_at" binding:"required"`
	// Optional; omitted means the slot ends after exactly the service duration.
	EndAt string `json:"end_at"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// parseWindow reads optional from/to RFC3339 query params, defaulting to
// the next two weeks starting now.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now
	to := now.AddDate(0, 0, defaultWindowDays)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed.UTC()
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.UTC()
	}

	return from, to, nil
}

// @Summary      Get artist availability
// @Description  Resolves the open bookable slots for an artist over a window
// @Tags         availability
// @Produce      json
// @Param        artistID path int true "Artist ID"
// @Param        from query string false "Window start (RFC3339)"
// @Param        to query string false "Window end (RFC3339)"
// @Success      200 {array} slots.ResolvedSlot
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artists/{artistID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	artistID, err := strconv.ParseInt(c.Param("artistID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid artist ID"})
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time window"})
		return
	}

	ctx := c.Request.Context()
	resolved, err := h.service.GetAvailability(ctx, artistID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQueryWindow):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time window"})
		case errors.Is(err, ErrNoActiveRules):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Artist has no published availability"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to resolve availability"})
		}
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// @Summary      Request a booking
// @Description  Places a pending hold on a slot; the artist must confirm it
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body engine.BookingRequest true "Booking payload"
// @Success      201 {object} ledger.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) RequestBooking(c *gin.Context) {
	clientID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid start time"})
		return
	}

	var endAt time.Time
	if req.EndAt != "" {
		endAt, err = time.Parse(time.RFC3339, req.EndAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid end time"})
			return
		}
	}

	ctx := c.Request.Context()
	booking, err := h.service.RequestBooking(ctx, clientID, req.ArtistID, req.ServiceID, startAt, endAt)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service not found"})
		case errors.Is(err, ErrServiceUnavailable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Service is not offered by this artist"})
		case errors.Is(err, ErrStartInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking must start in the future"})
		case errors.Is(err, ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking interval"})
		case errors.Is(err, ErrNoActiveRules):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Artist has no published availability"})
		case errors.Is(err, ErrSlotUnavailable):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Requested slot is not available"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to request booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path string true "Booking ID"
// @Success      200 {object} ledger.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/{bookingID} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	ctx := c.Request.Context()
	booking, err := h.service.GetBooking(ctx, userID, id)
	if err != nil {
		h.writeBookingError(c, err, "Failed to fetch booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// @Summary      Confirm a booking
// @Description  Artist-only: accept a pending booking
// @Tags         artist,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path string true "Booking ID"
// @Success      200 {object} ledger.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /artist/bookings/{bookingID}/confirm [post]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

// @Summary      Decline a booking
// @Description  Artist-only: reject a pending booking and release its hold
// @Tags         artist,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path string true "Booking ID"
// @Success      200 {object} ledger.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /artist/bookings/{bookingID}/decline [post]
func (h *Handler) DeclineBooking(c *gin.Context) {
	h.transition(c, h.service.Decline)
}

// @Summary      Cancel a booking
// @Description  Either participant may cancel a confirmed booking outside the cutoff window
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path string true "Booking ID"
// @Success      200 {object} ledger.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, userID int64, id uuid.UUID) (*ledger.Booking, error)) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	ctx := c.Request.Context()
	booking, err := op(ctx, userID, id)
	if err != nil {
		h.writeBookingError(c, err, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *Handler) writeBookingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ledger.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrNotAllowed):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed"})
	case errors.Is(err, ledger.ErrInvalidTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking is not in a state that allows this action"})
	case errors.Is(err, ledger.ErrCancellationWindowOver):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Cancellation window has closed"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// @Summary      List the caller's bookings as a client
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ledger.Booking
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListClientBookings(c *gin.Context) {
	clientID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListClientBookings(ctx, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List the caller's bookings as an artist
// @Tags         artist,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Window start (RFC3339)"
// @Param        to query string false "Window end (RFC3339)"
// @Success      200 {array} ledger.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/schedule [get]
func (h *Handler) ListArtistBookings(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time window"})
		return
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListArtistBookings(ctx, artistID, from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidQueryWindow) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time window"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
