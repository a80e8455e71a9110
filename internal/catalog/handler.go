package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"emvibook/internal/api"
	"emvibook/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service CatalogService
}

func NewHandler(service CatalogService) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Publish a service
// @Description  Artist-only: publish a new bookable service
// @Tags         artist,services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateServiceRequest true "Service payload"
// @Success      201 {object} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/services [post]
func (h *Handler) CreateService(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	svc, err := h.service.Create(ctx, artistID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidService):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service data"})
		case errors.Is(err, ErrDuplicateService):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "An active service with this name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create service"})
		}
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// @Summary      Update a service
// @Description  Artist-only: update or deactivate one of their services
// @Tags         artist,services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        serviceID path int true "Service ID"
// @Param        request body catalog.UpdateServiceRequest true "Service payload"
// @Success      200 {object} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/services/{serviceID} [patch]
func (h *Handler) UpdateService(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service ID"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	svc, err := h.service.Update(ctx, serviceID, artistID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidService):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service data"})
		case errors.Is(err, ErrServiceNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update service"})
		}
		return
	}

	c.JSON(http.StatusOK, svc)
}

// @Summary      Deactivate a service
// @Description  Artist-only: retire a service so it can no longer be booked
// @Tags         artist,services
// @Produce      json
// @Security     BearerAuth
// @Param        serviceID path int true "Service ID"
// @Success      200 {object} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artist/services/{serviceID} [delete]
func (h *Handler) DeleteService(c *gin.Context) {
	artistID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service ID"})
		return
	}

	ctx := c.Request.Context()
	svc, err := h.service.Deactivate(ctx, serviceID, artistID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to deactivate service"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

// @Summary      List an artist's services
// @Tags         services
// @Produce      json
// @Param        artistID path int true "Artist ID"
// @Success      200 {array} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /artists/{artistID}/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	artistID, err := strconv.ParseInt(c.Param("artistID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid artist ID"})
		return
	}

	ctx := c.Request.Context()
	services, err := h.service.ListByArtist(ctx, artistID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}
