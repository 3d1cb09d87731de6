package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/types"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/fba"

// Client fetches league rosters, the free-agent pool, and the NBA schedule
// from the ESPN fantasy API, caching the assembled snapshot.
type Client struct {
	httpClient    *http.Client
	cache         Cache
	logger        *logrus.Logger
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker
	baseURL       string
	leagueID      int
	year          int
	espnS2        string
	swid          string
	faPoolSize    int
	cacheTTL      time.Duration
	retryAttempts int
}

// NewClient creates an ESPN fantasy API client. The espn_s2/SWID cookies are
// only required for private leagues. Requests are rate limited to the
// configured requests per second and wrapped in a circuit breaker so a
// misbehaving upstream fails fast instead of stacking timeouts.
func NewClient(cfg *config.Config, cache Cache, logger *logrus.Logger) *Client {
	rps := cfg.ESPNRateLimit
	if rps <= 0 {
		rps = 10
	}

	settings := gobreaker.Settings{
		Name: "espn",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeout) * time.Second,
		},
		cache:         cache,
		logger:        logger,
		limiter:       rate.NewLimiter(rate.Limit(rps), rps),
		breaker:       gobreaker.NewCircuitBreaker(settings),
		baseURL:       defaultBaseURL,
		leagueID:      cfg.LeagueID,
		year:          cfg.SeasonYear,
		espnS2:        cfg.ESPNs2,
		swid:          cfg.SWID,
		faPoolSize:    cfg.FreeAgentPoolSize,
		cacheTTL:      time.Duration(cfg.CacheTTLSeconds) * time.Second,
		retryAttempts: 2,
	}
}

// ESPN wire structures (subset of the v3 API views we consume).

type espnLeagueResponse struct {
	Teams []espnTeam `json:"teams"`
}

type espnTeam struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
	Roster struct {
		Entries []struct {
			PlayerPoolEntry struct {
				Player espnPlayer `json:"player"`
			} `json:"playerPoolEntry"`
		} `json:"entries"`
	} `json:"roster"`
}

type espnPlayersResponse struct {
	Players []struct {
		Player espnPlayer `json:"player"`
	} `json:"players"`
}

type espnPlayer struct {
	ID                int                `json:"id"`
	FullName          string             `json:"fullName"`
	DefaultPositionID int                `json:"defaultPositionId"`
	EligibleSlots     []int              `json:"eligibleSlots"`
	ProTeamID         int                `json:"proTeamId"`
	Injured           bool               `json:"injured"`
	InjuryStatus      string             `json:"injuryStatus"`
	Stats             []espnPlayerSplits `json:"stats"`
}

type espnPlayerSplits struct {
	ID           string             `json:"id"` // e.g. "002026": split prefix + season
	SeasonID     int                `json:"seasonId"`
	AverageStats map[string]float64 `json:"averageStats"`
	Stats        map[string]float64 `json:"stats"`
}

type espnScheduleResponse struct {
	Settings struct {
		ProTeams []struct {
			ID                      int                          `json:"id"`
			Abbrev                  string                       `json:"abbrev"`
			ProGamesByScoringPeriod map[string][]json.RawMessage `json:"proGamesByScoringPeriod"`
		} `json:"proTeams"`
	} `json:"settings"`
}

// Split id prefixes to short period names.
var periodByPrefix = map[string]string{
	"00": "total",
	"01": "last_7",
	"02": "last_15",
	"03": "last_30",
	"10": "projected",
}

// ESPN numeric stat ids to league categories.
var statIDToCategory = map[string]types.Category{
	"0":  types.CatPoints,
	"1":  types.CatBlocks,
	"2":  types.CatSteals,
	"3":  types.CatAssists,
	"6":  types.CatRebounds,
	"15": types.CatFTMade,
	"16": types.CatFTAttempted,
	"17": types.CatThrees,
	"20": types.CatFTPct,
}

const gamesPlayedStatID = "42"

// Lineup slot ids 0-4 are the five exact positions.
var slotIDToPosition = map[int]string{
	0: "PG", 1: "SG", 2: "SF", 3: "PF", 4: "C",
}

// FetchLeague assembles a full league snapshot: teams with rosters, the top
// free agents, and the NBA schedule. The snapshot is cached for the
// configured TTL; everything downstream is recomputed from it per query.
func (c *Client) FetchLeague(ctx context.Context) (*types.LeagueData, error) {
	var cached types.LeagueData
	if err := c.cache.Get(ctx, c.cacheKey(), &cached); err == nil {
		return &cached, nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches a fresh snapshot from ESPN, bypassing the cached copy, and
// replaces it in the cache. Used by the scheduled refresher to keep the
// snapshot warm past its TTL.
func (c *Client) Refresh(ctx context.Context) (*types.LeagueData, error) {
	teams, err := c.fetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	freeAgents, err := c.fetchFreeAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch free agents: %w", err)
	}

	schedule, abbrevs, err := c.fetchProSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pro schedule: %w", err)
	}

	data := &types.LeagueData{
		Teams:      teams,
		FreeAgents: freeAgents,
		Schedule:   schedule,
	}
	for i := range data.Teams {
		for j := range data.Teams[i].Roster {
			p := &data.Teams[i].Roster[j]
			p.ProTeam = abbrevs[p.ProTeamID]
		}
	}
	for i := range data.FreeAgents {
		data.FreeAgents[i].ProTeam = abbrevs[data.FreeAgents[i].ProTeamID]
	}

	if err := c.cache.Set(ctx, c.cacheKey(), data, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache league snapshot")
	}

	c.logger.WithFields(logrus.Fields{
		"teams":       len(data.Teams),
		"free_agents": len(data.FreeAgents),
	}).Info("Fetched league snapshot")

	return data, nil
}

func (c *Client) cacheKey() string {
	return fmt.Sprintf("espn:league:%d:%d", c.year, c.leagueID)
}

func (c *Client) fetchTeams(ctx context.Context) ([]types.Team, error) {
	url := fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%d?view=mTeam&view=mRoster",
		c.baseURL, c.year, c.leagueID)

	var resp espnLeagueResponse
	if err := c.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, err
	}

	teams := make([]types.Team, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		team := types.Team{
			TeamID: t.ID,
			Name:   t.Name,
			Abbrev: t.Abbrev,
		}
		for _, entry := range t.Roster.Entries {
			team.Roster = append(team.Roster, convertPlayer(entry.PlayerPoolEntry.Player))
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (c *Client) fetchFreeAgents(ctx context.Context) ([]types.Player, error) {
	url := fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%d?view=kona_player_info",
		c.baseURL, c.year, c.leagueID)

	filter := fmt.Sprintf(`{"players":{"filterStatus":{"value":["FREEAGENT","WAIVERS"]},"limit":%d,"sortPercOwned":{"sortAsc":false,"sortPriority":1}}}`, c.faPoolSize)
	headers := map[string]string{"X-Fantasy-Filter": filter}

	var resp espnPlayersResponse
	if err := c.getJSON(ctx, url, headers, &resp); err != nil {
		return nil, err
	}

	players := make([]types.Player, 0, len(resp.Players))
	for _, entry := range resp.Players {
		players = append(players, convertPlayer(entry.Player))
	}
	return players, nil
}

func (c *Client) fetchProSchedule(ctx context.Context) (types.ProSchedule, map[int]string, error) {
	url := fmt.Sprintf("%s/seasons/%d?view=proTeamSchedules_wl", c.baseURL, c.year)

	var resp espnScheduleResponse
	if err := c.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, nil, err
	}

	schedule := make(types.ProSchedule, len(resp.Settings.ProTeams))
	abbrevs := make(map[int]string, len(resp.Settings.ProTeams))
	for _, team := range resp.Settings.ProTeams {
		abbrevs[team.ID] = team.Abbrev
		periods := make(map[int]bool, len(team.ProGamesByScoringPeriod))
		for sp, games := range team.ProGamesByScoringPeriod {
			if len(games) == 0 {
				continue
			}
			var id int
			if _, err := fmt.Sscanf(sp, "%d", &id); err == nil {
				periods[id] = true
			}
		}
		schedule[team.ID] = periods
	}
	return schedule, abbrevs, nil
}

// convertPlayer maps an ESPN player record into the domain model, keying stat
// lines by season-qualified period. Absent stat values stay absent; nothing
// is coerced to zero here.
func convertPlayer(p espnPlayer) types.Player {
	player := types.Player{
		PlayerID:     p.ID,
		Name:         p.FullName,
		Position:     eligiblePositions(p),
		ProTeamID:    p.ProTeamID,
		Injured:      p.Injured,
		InjuryStatus: p.InjuryStatus,
		Stats:        make(map[string]types.PeriodStats),
	}

	for _, split := range p.Stats {
		if len(split.ID) < 2 {
			continue
		}
		period, ok := periodByPrefix[split.ID[:2]]
		if !ok || split.AverageStats == nil {
			continue
		}

		line := make(types.StatLine)
		for id, value := range split.AverageStats {
			if cat, ok := statIDToCategory[id]; ok {
				line[cat] = value
			}
		}

		gp := split.Stats[gamesPlayedStatID]
		key := fmt.Sprintf("%d_%s", split.SeasonID, period)
		player.Stats[key] = types.PeriodStats{Averages: line, GamesPlayed: gp}
	}

	return player
}

func eligiblePositions(p espnPlayer) string {
	var positions []string
	for _, slot := range p.EligibleSlots {
		if pos, ok := slotIDToPosition[slot]; ok {
			positions = append(positions, pos)
		}
	}
	if len(positions) == 0 {
		if pos, ok := slotIDToPosition[p.DefaultPositionID-1]; ok {
			positions = append(positions, pos)
		}
	}
	return strings.Join(positions, ",")
}

func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, dest interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			c.logger.WithFields(logrus.Fields{
				"url":     url,
				"attempt": attempt,
			}).Debug("Retrying ESPN request")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		_, lastErr = c.breaker.Execute(func() (interface{}, error) {
			return nil, c.doJSON(ctx, url, headers, dest)
		})
		if lastErr == nil {
			return nil
		}
		// An open breaker will not recover within the retry window.
		if lastErr == gobreaker.ErrOpenState || lastErr == gobreaker.ErrTooManyRequests {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doJSON(ctx context.Context, url string, headers map[string]string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.espnS2 != "" && c.swid != "" {
		req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
		req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("espn api returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
