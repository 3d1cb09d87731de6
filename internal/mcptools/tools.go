package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hooplytics/fantasy-nba/internal/services"
)

// NewServer builds the MCP server exposing the analysis tools. Each tool is a
// thin adapter over the analyzer; the heavy lifting stays in the services
// layer so the REST API and tools share one implementation.
func NewServer(analyzer *services.Analyzer, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fantasy-nba-mcp",
			Version: version,
		},
		nil,
	)

	registerTools(server, analyzer)
	return server
}

// HTTPHandler wraps the server for streamable HTTP transport, so the tools
// mount on the same port as the REST API.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

type PlayerStatsArgs struct {
	Name   string `json:"name" jsonschema:"Player name (fuzzy matched, e.g. 'lebron james')"`
	Period string `json:"period,omitempty" jsonschema:"Stat period: total, last_30, last_15, last_7, projected (default total)"`
}

type TopFreeAgentsArgs struct {
	Period string `json:"period,omitempty" jsonschema:"Stat period (default total)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Number of free agents to return (default 10)"`
}

type MatchupProjectionsArgs struct {
	MatchupID int    `json:"matchup_id,omitempty" jsonschema:"Matchup number 1-20 (default: current matchup)"`
	Period    string `json:"period,omitempty" jsonschema:"Stat period used for projections (default total)"`
}

type TeamProjectionArgs struct {
	Team      string `json:"team" jsonschema:"Fantasy team name or abbreviation (fuzzy matched)"`
	MatchupID int    `json:"matchup_id,omitempty" jsonschema:"Matchup number 1-20 (default: current matchup)"`
	Period    string `json:"period,omitempty" jsonschema:"Stat period used for projections (default total)"`
}

type TeamRosterArgs struct {
	Team   string `json:"team" jsonschema:"Fantasy team name or abbreviation (fuzzy matched)"`
	Period string `json:"period,omitempty" jsonschema:"Stat period (default total)"`
}

func registerTools(server *mcp.Server, analyzer *services.Analyzer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_player_stats",
		Description: "Per-game averages, category z-scores, and power scores for one player",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerStatsArgs) (*mcp.CallToolResult, any, error) {
		summary, err := analyzer.PlayerSummary(ctx, args.Name, defaultPeriod(args.Period))
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(summary), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_top_free_agents",
		Description: "Strongest available free agents by per-game power, with games remaining in the current matchup",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TopFreeAgentsArgs) (*mcp.CallToolResult, any, error) {
		agents, err := analyzer.TopFreeAgents(ctx, defaultPeriod(args.Period), args.Limit)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{"free_agents": agents}), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_matchup_projections",
		Description: "Projected totals and category winners for every league matchup in a scoring window",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MatchupProjectionsArgs) (*mcp.CallToolResult, any, error) {
		matchupID := args.MatchupID
		if matchupID == 0 {
			matchupID = analyzer.CurrentMatchupID()
		}
		projections, err := analyzer.ProjectAllMatchups(ctx, matchupID, defaultPeriod(args.Period))
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{
			"matchup_id": matchupID,
			"matchups":   projections,
		}), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_projection",
		Description: "One team's projected category totals over a matchup window",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamProjectionArgs) (*mcp.CallToolResult, any, error) {
		matchupID := args.MatchupID
		if matchupID == 0 {
			matchupID = analyzer.CurrentMatchupID()
		}
		totals, err := analyzer.ProjectTeam(ctx, args.Team, matchupID, defaultPeriod(args.Period))
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{
			"matchup_id": matchupID,
			"team":       totals,
		}), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_roster",
		Description: "A fantasy team's roster sorted by per-game power",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamRosterArgs) (*mcp.CallToolResult, any, error) {
		roster, err := analyzer.Roster(ctx, args.Team, defaultPeriod(args.Period))
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(roster), nil, nil
	})
}

func defaultPeriod(period string) string {
	if period == "" {
		return "total"
	}
	return period
}

func toolJSON(v any) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
