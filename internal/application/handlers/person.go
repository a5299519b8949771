package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// PersonHandler handles person operations at the application layer.
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// assignmentRequest is one desired location entry on the wire.
type assignmentRequest struct {
	Role        string                 `json:"role" binding:"required"`
	LocationID  string                 `json:"location_id"`
	NewLocation *entities.LocationSpec `json:"new_location"`
}

// parseAssignments converts wire entries into domain assignments. Role
// strings are validated here; everything else is validated by the service.
func parseAssignments(reqs []assignmentRequest) ([]entities.LocationAssignment, error) {
	assignments := make([]entities.LocationAssignment, 0, len(reqs))
	for _, r := range reqs {
		role, err := entities.ParseLocationRole(r.Role)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, entities.LocationAssignment{
			Role:        role,
			LocationID:  r.LocationID,
			NewLocation: r.NewLocation,
		})
	}
	return assignments, nil
}

// Create handles POST /people. The body may reference an existing family
// by ID or carry an inline family spec, not both.
func (h *PersonHandler) Create(c *gin.Context) {
	var req struct {
		FirstName string               `json:"first_name" binding:"required"`
		LastName  string               `json:"last_name" binding:"required"`
		BirthDate string               `json:"birth_date"`
		DeathDate string               `json:"death_date"`
		Biography string               `json:"biography"`
		FamilyID  string               `json:"family_id"`
		NewFamily *entities.FamilySpec `json:"family"`
		Locations []assignmentRequest  `json:"locations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments, err := parseAssignments(req.Locations)
	if err != nil {
		respondError(c, err)
		return
	}

	person, err := h.personService.Create(c.Request.Context(), services.PersonInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		DeathDate: req.DeathDate,
		Biography: req.Biography,
		FamilyID:  req.FamilyID,
		NewFamily: req.NewFamily,
		Locations: assignments,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, person)
}

// List handles GET /people.
func (h *PersonHandler) List(c *gin.Context) {
	people, err := h.personService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, people)
}

// Get handles GET /people/:id.
func (h *PersonHandler) Get(c *gin.Context) {
	person, err := h.personService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, person)
}

// Update handles PUT /people/:id. Omitted fields are left untouched; a
// present locations array re-syncs the person's location links.
func (h *PersonHandler) Update(c *gin.Context) {
	var req struct {
		FirstName *string              `json:"first_name"`
		LastName  *string              `json:"last_name"`
		BirthDate *string              `json:"birth_date"`
		DeathDate *string              `json:"death_date"`
		Biography *string              `json:"biography"`
		FamilyID  *string              `json:"family_id"`
		Locations *[]assignmentRequest `json:"locations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := services.PersonUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		DeathDate: req.DeathDate,
		Biography: req.Biography,
		FamilyID:  req.FamilyID,
	}
	if req.Locations != nil {
		assignments, err := parseAssignments(*req.Locations)
		if err != nil {
			respondError(c, err)
			return
		}
		upd.Locations = assignments
		upd.SyncLocations = true
	}

	person, err := h.personService.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, person)
}

// SyncLocations handles PUT /people/:id/locations. The body is the full
// desired set of location entries; roles not listed are removed.
func (h *PersonHandler) SyncLocations(c *gin.Context) {
	var req struct {
		Locations []assignmentRequest `json:"locations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments, err := parseAssignments(req.Locations)
	if err != nil {
		respondError(c, err)
		return
	}

	person, err := h.personService.Update(c.Request.Context(), c.Param("id"), services.PersonUpdate{
		Locations:     assignments,
		SyncLocations: true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, person)
}

// Delete handles DELETE /people/:id. Relationship edges and location links
// go with the person.
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.personService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
