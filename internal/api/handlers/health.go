package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "fantasy-nba",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready is the readiness probe. The service has no hard startup dependencies
// (redis degrades to a no-op cache), so readiness reports the configured
// league context.
func (h *Handler) Ready(c *gin.Context) {
	league := h.analyzer.League()
	c.JSON(http.StatusOK, gin.H{
		"status":          "ready",
		"league_id":       league.LeagueID,
		"season_year":     league.Year,
		"current_matchup": h.analyzer.CurrentMatchupID(),
	})
}
