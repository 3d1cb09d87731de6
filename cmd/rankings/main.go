package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/provider"
	"github.com/hooplytics/fantasy-nba/internal/services"
	"github.com/hooplytics/fantasy-nba/internal/types"
	"github.com/hooplytics/fantasy-nba/pkg/logger"
)

func main() {
	var (
		period    = flag.String("period", "total", "stat period: total, last_30, last_15, last_7, projected")
		limit     = flag.Int("limit", 25, "number of players to show")
		team      = flag.String("team", "", "show one team's roster instead of league rankings")
		matchupID = flag.Int("matchup", 0, "project the team over this matchup (requires -team; 0 = current)")
		averages  = flag.Bool("averages", false, "show per-team category z-score averages")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.InitLogger("warn", false)

	league := config.NewLeague(cfg)
	espn := provider.NewClient(cfg, provider.NoopCache{}, log)
	analyzer := services.NewAnalyzer(
		espn, league, provider.NoopCache{},
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
		logger.WithService("rankings"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch {
	case *averages:
		err = printAverages(ctx, analyzer, *period)
	case *team != "" && *matchupID != 0:
		err = printProjection(ctx, analyzer, *team, *matchupID, *period)
	case *team != "":
		err = printRoster(ctx, analyzer, *team, *period)
	default:
		err = printRankings(ctx, analyzer, *period, *limit)
	}
	if err != nil {
		logrus.Fatalf("%v", err)
	}
}

func printRankings(ctx context.Context, analyzer *services.Analyzer, period string, limit int) error {
	ranked, err := analyzer.Rankings(ctx, period, limit)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Player", "Pos", "Team", "GP", "Power/G", "Season"})
	for i, p := range ranked {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			p.Name,
			p.Position,
			p.ProTeam,
			fmt.Sprintf("%.0f", p.GamesPlayed),
			fmt.Sprintf("%.2f", p.PerGamePower),
			fmt.Sprintf("%.2f", p.SeasonPower),
		})
	}
	table.Render()
	return nil
}

func printRoster(ctx context.Context, analyzer *services.Analyzer, team, period string) error {
	roster, err := analyzer.Roster(ctx, team, period)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", roster.Team, roster.Period)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Player", "Pos", "Team", "Status", "GP", "Power/G", "Season"})
	for _, p := range roster.Roster {
		table.Append([]string{
			p.Name,
			p.Position,
			p.ProTeam,
			p.InjuryStatus,
			fmt.Sprintf("%.0f", p.GamesPlayed),
			fmt.Sprintf("%.2f", p.PerGamePower),
			fmt.Sprintf("%.2f", p.SeasonPower),
		})
	}
	table.Render()
	return nil
}

func printProjection(ctx context.Context, analyzer *services.Analyzer, team string, matchupID int, period string) error {
	totals, err := analyzer.ProjectTeam(ctx, team, matchupID, period)
	if err != nil {
		return err
	}

	fmt.Printf("%s, matchup %d (%d games)\n", totals.Team, matchupID, totals.Totals.GamesPlayed)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Projected"})
	for _, cat := range types.ScoringCategories {
		table.Append([]string{string(cat), fmt.Sprintf("%.2f", totals.Totals.Stats[cat])})
	}
	table.Render()
	return nil
}

func printAverages(ctx context.Context, analyzer *services.Analyzer, period string) error {
	teams, err := analyzer.LeagueAverages(ctx, period)
	if err != nil {
		return err
	}

	header := []string{"Team", "Size"}
	for _, cat := range types.ScoringCategories {
		header = append(header, string(cat))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	for _, t := range teams {
		row := []string{t.Team, fmt.Sprintf("%d", t.RosterSize)}
		for _, cat := range types.ScoringCategories {
			row = append(row, fmt.Sprintf("%.2f", t.AvgZ[cat]))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}
