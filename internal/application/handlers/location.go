package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// LocationHandler handles location operations at the application layer.
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// Create handles POST /locations.
func (h *LocationHandler) Create(c *gin.Context) {
	var req entities.LocationSpec
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

// List handles GET /locations.
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.locationService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// Get handles GET /locations/:id.
func (h *LocationHandler) Get(c *gin.Context) {
	location, err := h.locationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// Update handles PUT /locations/:id.
func (h *LocationHandler) Update(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		City        *string `json:"city"`
		State       *string `json:"state"`
		Country     *string `json:"country"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), c.Param("id"), services.LocationUpdate{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// Delete handles DELETE /locations/:id. Links pointing at the location are
// removed with it.
func (h *LocationHandler) Delete(c *gin.Context) {
	if err := h.locationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
