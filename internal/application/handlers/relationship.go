package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// RelationshipHandler handles relationship operations at the application layer.
type RelationshipHandler struct {
	relationshipService *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(relationshipService *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		relationshipService: relationshipService,
	}
}

// Create handles POST /relationships. The reciprocal edge is created in the
// same transaction.
func (h *RelationshipHandler) Create(c *gin.Context) {
	var req struct {
		FromPersonID string `json:"from_person_id" binding:"required"`
		ToPersonID   string `json:"to_person_id" binding:"required"`
		Type         string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relType, err := entities.ParseRelationType(req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	rel, err := h.relationshipService.Create(c.Request.Context(), req.FromPersonID, req.ToPersonID, relType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rel)
}

// List handles GET /relationships.
func (h *RelationshipHandler) List(c *gin.Context) {
	rels, err := h.relationshipService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rels)
}

// Update handles PUT /relationships/:id. Changing the type moves the
// reciprocal edge along with it.
func (h *RelationshipHandler) Update(c *gin.Context) {
	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relType, err := entities.ParseRelationType(req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	rel, err := h.relationshipService.Update(c.Request.Context(), c.Param("id"), relType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rel)
}

// Delete handles DELETE /relationships/:id. The reciprocal edge is removed
// in the same transaction.
func (h *RelationshipHandler) Delete(c *gin.Context) {
	if err := h.relationshipService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
