package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/filter"
	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/schedule"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("cfbmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("cfbmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "teams":
			shellTeams(db)
		case "games":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: games <team>")
				continue
			}
			shellGames(db, args[0])
		case "report":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: report <team> [--conference|--non-conference|--power4] [--last3]")
				continue
			}
			shellReport(db, args[0], args[1:])
		case "trend":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: trend <team> <situation>")
				continue
			}
			shellTrend(db, args[0], args[1])
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			shellSQL(db, strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"teams", "list stored teams"},
		{"games <team>", "week-by-week schedule with byes"},
		{"report <team> [filters]", "full situational report"},
		{"trend <team> <situation>", "weekly trend table for one situation"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-30s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellTeams(db *storage.DB) {
	teams, err := db.ListTeams()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(teams) == 0 {
		cMuted.Println("No teams stored yet.")
		return
	}
	report.PrintTeams(os.Stdout, teams)
}

func shellGames(db *storage.DB, team string) {
	games, err := db.GetGames(team)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(games) == 0 {
		cMuted.Printf("No games stored for %s.\n", team)
		return
	}
	report.PrintGames(os.Stdout, team, schedule.Build(games, 0))
}

func shellFilterSpec(args []string) (filter.Spec, bool) {
	var spec filter.Spec
	for _, a := range args {
		switch a {
		case "--conference":
			spec.Mode = filter.Conference
		case "--non-conference":
			spec.Mode = filter.NonConference
		case "--power4":
			spec.Mode = filter.Power4
		case "--last3":
			spec.LastThree = true
		default:
			cError.Fprintf(os.Stderr, "unknown filter %q\n", a)
			return spec, false
		}
	}
	return spec, true
}

func shellReport(db *storage.DB, team string, args []string) {
	spec, ok := shellFilterSpec(args)
	if !ok {
		return
	}
	r, err := buildTeamReport(db, team, spec)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintFullReport(os.Stdout, r)
}

func shellTrend(db *storage.DB, team, situation string) {
	r, err := buildTeamReport(db, team, filter.Spec{})
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if err := report.PrintTrendTable(os.Stdout, r, situation); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func shellSQL(db *storage.DB, query string) {
	rr, err := db.RawQuery(query)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(rr.Rows) == 0 {
		cMuted.Println("(no rows)")
		return
	}
	report.PrintRaw(os.Stdout, rr)
}
