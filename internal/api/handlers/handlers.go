package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/matchup"
	"github.com/hooplytics/fantasy-nba/internal/services"
	"github.com/hooplytics/fantasy-nba/pkg/logger"
)

// Handler serves the REST API over the analyzer.
type Handler struct {
	analyzer *services.Analyzer
	logger   *logrus.Logger
}

func NewHandler(analyzer *services.Analyzer, logger *logrus.Logger) *Handler {
	return &Handler{analyzer: analyzer, logger: logger}
}

// RegisterRoutes mounts all API routes on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/players/:name/stats", h.GetPlayerStats)
		v1.GET("/rankings", h.GetRankings)
		v1.GET("/freeagents", h.GetFreeAgents)
		v1.GET("/teams/:name/roster", h.GetTeamRoster)
		v1.GET("/teams/averages", h.GetLeagueAverages)
		v1.POST("/matchups/project", h.ProjectMatchup)
	}
}

// requestLogger tags the request with an id for correlation.
func (h *Handler) requestLogger(c *gin.Context) *logrus.Entry {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.Header("X-Request-ID", requestID)
	return logger.WithRequestContext(requestID).WithField("path", c.FullPath())
}

// respondError maps domain errors to HTTP statuses: bad input gets 400,
// unresolved names get 404, everything else is a 502 upstream failure.
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	var unknownPeriod *config.ErrUnknownPeriod
	var unknownMatchup *matchup.ErrUnknownMatchup
	var notFound *services.ErrNotFound

	switch {
	case errors.As(err, &unknownPeriod), errors.As(err, &unknownMatchup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch league data"})
	}
}
