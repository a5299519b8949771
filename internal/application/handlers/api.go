// Package handlers exposes the application services over HTTP.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// API bundles the entity handlers behind a single router.
type API struct {
	families      *FamilyHandler
	people        *PersonHandler
	locations     *LocationHandler
	relationships *RelationshipHandler
	log           *zap.Logger
}

// NewAPI creates a new API over the given services.
func NewAPI(
	families *services.FamilyService,
	people *services.PersonService,
	locations *services.LocationService,
	relationships *services.RelationshipService,
	log *zap.Logger,
) *API {
	return &API{
		families:      NewFamilyHandler(families),
		people:        NewPersonHandler(people),
		locations:     NewLocationHandler(locations),
		relationships: NewRelationshipHandler(relationships),
		log:           log,
	}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router(env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(a.log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/families", a.families.Create)
		api.GET("/families", a.families.List)
		api.GET("/families/:id", a.families.Get)
		api.PUT("/families/:id", a.families.Update)
		api.DELETE("/families/:id", a.families.Delete)

		api.POST("/people", a.people.Create)
		api.GET("/people", a.people.List)
		api.GET("/people/:id", a.people.Get)
		api.PUT("/people/:id", a.people.Update)
		api.DELETE("/people/:id", a.people.Delete)
		api.PUT("/people/:id/locations", a.people.SyncLocations)

		api.POST("/locations", a.locations.Create)
		api.GET("/locations", a.locations.List)
		api.GET("/locations/:id", a.locations.Get)
		api.PUT("/locations/:id", a.locations.Update)
		api.DELETE("/locations/:id", a.locations.Delete)

		api.POST("/relationships", a.relationships.Create)
		api.GET("/relationships", a.relationships.List)
		api.PUT("/relationships/:id", a.relationships.Update)
		api.DELETE("/relationships/:id", a.relationships.Delete)
	}

	return router
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entities.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// requestLogger is a zap logging middleware for gin.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
		)
	}
}
