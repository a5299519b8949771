package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ersonp/kin-core/internal/domain/services"
)

// FamilyHandler handles family operations at the application layer.
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

type familyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create handles POST /families.
func (h *FamilyHandler) Create(c *gin.Context) {
	var req familyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := h.familyService.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, family)
}

// List handles GET /families.
func (h *FamilyHandler) List(c *gin.Context) {
	families, err := h.familyService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, families)
}

// Get handles GET /families/:id. The response carries the family's
// members with their location links resolved.
func (h *FamilyHandler) Get(c *gin.Context) {
	family, err := h.familyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, family)
}

// Update handles PUT /families/:id.
func (h *FamilyHandler) Update(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := h.familyService.Update(c.Request.Context(), c.Param("id"), services.FamilyUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, family)
}

// Delete handles DELETE /families/:id. Members are detached, not deleted.
func (h *FamilyHandler) Delete(c *gin.Context) {
	if err := h.familyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
