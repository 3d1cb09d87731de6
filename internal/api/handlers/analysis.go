package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// periodParam reads the stat period query parameter, defaulting to the full
// season totals.
func periodParam(c *gin.Context) string {
	return c.DefaultQuery("period", "total")
}

func limitParam(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// GetPlayerStats returns one player's averages, z-scores, and power scores.
// The name is matched fuzzily, so close misspellings still resolve.
func (h *Handler) GetPlayerStats(c *gin.Context) {
	log := h.requestLogger(c)

	summary, err := h.analyzer.PlayerSummary(c.Request.Context(), c.Param("name"), periodParam(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRankings returns the player pool ranked by season power.
func (h *Handler) GetRankings(c *gin.Context) {
	log := h.requestLogger(c)

	ranked, err := h.analyzer.Rankings(c.Request.Context(), periodParam(c), limitParam(c, 50))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": periodParam(c), "players": ranked})
}

// GetFreeAgents returns the strongest available free agents with their game
// counts in the current matchup window.
func (h *Handler) GetFreeAgents(c *gin.Context) {
	log := h.requestLogger(c)

	agents, err := h.analyzer.TopFreeAgents(c.Request.Context(), periodParam(c), limitParam(c, 10))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"free_agents": agents})
}

// GetTeamRoster returns a fantasy team's roster sorted by per-game power.
func (h *Handler) GetTeamRoster(c *gin.Context) {
	log := h.requestLogger(c)

	roster, err := h.analyzer.Roster(c.Request.Context(), c.Param("name"), periodParam(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// GetLeagueAverages returns each team's mean z-score per category.
func (h *Handler) GetLeagueAverages(c *gin.Context) {
	log := h.requestLogger(c)

	averages, err := h.analyzer.LeagueAverages(c.Request.Context(), periodParam(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": averages})
}

// ProjectMatchupRequest is the body for POST /api/v1/matchups/project. With
// both team names set, that head-to-head is projected; with only TeamA, the
// single team's totals are returned; with neither, every league matchup is
// projected with sequential pairing.
type ProjectMatchupRequest struct {
	TeamA     string `json:"team_a"`
	TeamB     string `json:"team_b"`
	MatchupID int    `json:"matchup_id"`
	Period    string `json:"period"`
}

// ProjectMatchup projects matchup totals over a matchup window.
func (h *Handler) ProjectMatchup(c *gin.Context) {
	log := h.requestLogger(c)

	var req ProjectMatchupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Period == "" {
		req.Period = "total"
	}
	if req.MatchupID == 0 {
		req.MatchupID = h.analyzer.CurrentMatchupID()
	}

	switch {
	case req.TeamA != "" && req.TeamB != "":
		projection, err := h.analyzer.ProjectMatchup(c.Request.Context(), req.TeamA, req.TeamB, req.MatchupID, req.Period)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, projection)

	case req.TeamA != "":
		totals, err := h.analyzer.ProjectTeam(c.Request.Context(), req.TeamA, req.MatchupID, req.Period)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matchup_id": req.MatchupID, "team": totals})

	default:
		projections, err := h.analyzer.ProjectAllMatchups(c.Request.Context(), req.MatchupID, req.Period)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matchup_id": req.MatchupID, "matchups": projections})
	}
}
