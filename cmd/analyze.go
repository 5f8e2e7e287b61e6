package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

const analyzeSystemPrompt = `You are a college football analytics assistant. You are given structured
situational data computed from play-by-play records and a question from a coach or analyst.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable; focus on what the team can actually change.
- Avoid generic football advice unless it directly explains a pattern in the data.

Metrics glossary:
- Explosive play: run of 15+ yards or pass of 20+ yards (special teams excluded).
- Explosive return: kick return of 35+ or punt return of 20+ actual return yards.
- Middle eight: the last 4:00 of Q2 plus the first 4:00 of Q3. Net points there
  track which team controls halftime momentum.
- Points off turnovers: points on the drive immediately following an interception
  or lost fumble (turnover-on-downs excluded). Net = scored minus allowed.
- 4th-down attempts: genuine go-for-it plays; punts, field goals, kneels and
  penalty no-plays are not attempts.
- Tight red zone / red zone / green zone: snaps within 10 / 20 / 30 yards of
  the goal. Zones nest: every tight-red snap also counts in the wider zones.
- Drive score rate: share of unique drives with a snap in the zone that scored.
- Penalty yards: accepted flags only; offsetting and declined flags never count.
- Trend arrays are week-by-week; a 0 on a BYE week means no game, not a bad game.`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzeTeamCmd = &cobra.Command{
	Use:   "team <team> <question>",
	Short: "Analyze a team's situational report with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeTeam,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")

	addFilterFlags(analyzeTeamCmd)
	analyzeCmd.AddCommand(analyzeTeamCmd)
}

func runAnalyzeTeam(cmd *cobra.Command, args []string) error {
	team, question := args[0], args[1]
	spec, err := filterSpecFromFlags()
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	r, err := buildTeamReport(db, team, spec)
	if err != nil {
		return err
	}
	contextJSON, err := buildTeamContext(r, spec.Mode.String(), spec.LastThree)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildTeamContext serialises the situational report into compact JSON.
func buildTeamContext(r *model.TeamReport, filterMode string, last3 bool) (string, error) {
	doc := map[string]interface{}{
		"subject": "team",
		"team":    r.Team,
		"weeks":   r.Weeks.MaxWeek(),
		"filters": map[string]interface{}{
			"mode":  filterMode,
			"last3": last3,
		},
		"explosive": map[string]interface{}{
			"total":        r.Explosive.Total,
			"per_game":     round2(r.Explosive.PerGame()),
			"last3_per_gm": round2(r.Explosive.Last3PerGame()),
			"week_trend":   r.Explosive.WeekTrend,
		},
		"penalties": map[string]interface{}{
			"total":           r.Penalties.Total,
			"accepted":        r.Penalties.Accepted,
			"declined":        r.Penalties.Declined,
			"offsetting":      r.Penalties.Offsetting,
			"yards":           r.Penalties.Yards,
			"per_game":        round2(r.Penalties.PerGame()),
			"by_type":         r.Penalties.ByType,
			"net_yards_trend": r.Penalties.NetYardsTrend,
		},
		"fourth_down": map[string]interface{}{
			"attempts":    r.FourthDowns.Attempts,
			"conversions": r.FourthDowns.Conversions,
			"rate_pct":    round2(r.FourthDowns.Rate()),
			"by_distance": r.FourthDowns.DistanceBreakdown,
		},
		"points_off_turnovers": map[string]interface{}{
			"giveaways":      r.PostTurnover.TeamTurnovers,
			"takeaways":      r.PostTurnover.OpponentTurnovers,
			"points_for":     r.PostTurnover.PointsScored,
			"points_against": r.PostTurnover.PointsAllowed,
			"net":            r.PostTurnover.NetPoints(),
			"net_trend":      r.PostTurnover.NetTrend,
		},
		"middle_eight": map[string]interface{}{
			"points_for":     r.MiddleEight.PointsScored,
			"points_against": r.MiddleEight.PointsAllowed,
			"net":            r.MiddleEight.Net(),
			"avg_net_per_gm": round2(r.MiddleEight.AvgNetPerGame()),
		},
		"special_teams": map[string]interface{}{
			"explosive":         r.SpecialTeams.Explosive,
			"explosive_allowed": r.SpecialTeams.ExplosiveAllowed,
			"bad_results":       r.SpecialTeams.BadResults,
			"tds":               r.SpecialTeams.TDsScored,
			"tds_allowed":       r.SpecialTeams.TDsAllowed,
			"punt_blocks":       r.SpecialTeams.PuntBlocks,
		},
		"zones": map[string]interface{}{
			"tight_red": zoneContext(r.TightRedZone),
			"red":       zoneContext(r.RedZone),
			"green":     zoneContext(r.GreenZone),
		},
	}
	if r.ThirdDownReceiving != nil {
		doc["receiving_3rd_down"] = receivingContext(r.ThirdDownReceiving)
	}
	if r.RedZoneReceiving != nil {
		doc["receiving_red_zone"] = receivingContext(r.RedZoneReceiving)
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

func zoneContext(z model.ZoneSummary) map[string]interface{} {
	return map[string]interface{}{
		"plays":            z.TotalPlays,
		"drives":           z.DriveAttempts,
		"scoring_drives":   z.ScoringDrives,
		"drive_score_pct":  round2(z.DriveScoreRate()),
		"touchdowns":       z.Touchdowns,
		"td_rate_pct":      round2(z.TDRate()),
		"turnovers":        z.Turnovers,
		"explosive":        z.Explosive,
		"third_down_conv":  fmt.Sprintf("%d/%d", z.ThirdDowns.Conversions, z.ThirdDowns.Attempts),
		"fourth_down_conv": fmt.Sprintf("%d/%d", z.FourthDowns.Conversions, z.FourthDowns.Attempts),
	}
}

func receivingContext(s *model.ReceivingSummary) map[string]interface{} {
	players := make([]map[string]interface{}, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, map[string]interface{}{
			"name":      p.Name,
			"targets":   p.Line.Targets,
			"catches":   p.Line.Receptions,
			"catch_pct": round2(p.Line.CatchRate()),
			"tds":       p.Line.Touchdowns,
			"yards":     p.Line.Yards,
		})
	}
	return map[string]interface{}{
		"targets":    s.Total.Targets,
		"receptions": s.Total.Receptions,
		"catch_pct":  round2(s.Total.CatchRate()),
		"tds":        s.Total.Touchdowns,
		"yards":      s.Total.Yards,
		"players":    players,
	}
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*100+0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
