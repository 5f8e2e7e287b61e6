package model

// TurnoverType describes how possession changed on a turnover play.
type TurnoverType int

const (
	TurnoverNone TurnoverType = iota
	TurnoverInterception
	TurnoverFumble
	TurnoverDowns
)

func (t TurnoverType) String() string {
	switch t {
	case TurnoverInterception:
		return "Interception"
	case TurnoverFumble:
		return "Fumble"
	case TurnoverDowns:
		return "Downs"
	default:
		return "None"
	}
}

// PenaltyDecision is the officiating outcome of a flagged penalty.
type PenaltyDecision int

const (
	DecisionNone PenaltyDecision = iota
	DecisionAccepted
	DecisionDeclined
	DecisionOffsetting
)

func (d PenaltyDecision) String() string {
	switch d {
	case DecisionAccepted:
		return "accepted"
	case DecisionDeclined:
		return "declined"
	case DecisionOffsetting:
		return "offsetting"
	default:
		return "none"
	}
}

// UnknownTeam is the sentinel attribution for penalty/turnover plays that
// cannot be resolved to either team. Such plays stay in raw play lists but
// are excluded from team-specific totals.
const UnknownTeam = "Unknown"

// Play is the canonical, normalized play record. Immutable once built:
// every downstream stage derives new values and never writes back.
type Play struct {
	GameID      string
	DriveID     string
	DriveNumber int
	PlayNumber  int

	Period       int // 1-4, 5 = OT
	ClockSeconds int // seconds remaining in the period

	Down        int // 0 when unknown
	Distance    int
	YardsToGoal int // 100 when unknown

	Offense string
	Defense string

	PlayType           string
	PlayText           string
	PlayClassification string // e.g. "special_teams", empty when unmarked

	YardsGained int
	Scoring     bool

	Turnover     bool
	TurnoverType TurnoverType

	PenaltyType     string // empty = no penalty
	PenaltyDecision PenaltyDecision

	DriveStartedAfterTurnover bool

	Week     int
	Opponent string

	// Enrichment fields from the game list. nil = unknown; an unknown value
	// never matches a conference/power-4 filter.
	IsConference     *bool
	IsPower4Opponent *bool

	// PPA is an externally supplied per-play point value; nil when the
	// source did not provide one.
	PPA *float64
}

// HasPenalty reports whether the play carries a penalty flag.
func (p *Play) HasPenalty() bool { return p.PenaltyType != "" }

// Tags is the set of situational labels a play can carry. A play may hold
// several at once (zone tags nest by construction).
type Tags struct {
	Explosive             bool
	SpecialTeamsExplosive bool
	TightRedZone          bool
	RedZone               bool
	GreenZone             bool
	MiddleEight           bool
	FourthDownAttempt     bool
}

// ClassifiedPlay is a Play plus derived situational tags and resolved
// attribution. Classification is a pure function of (Play, team).
type ClassifiedPlay struct {
	Play
	Tags Tags

	// CommittingTeam is the resolved penalty attribution (UnknownTeam when
	// unresolvable); empty for non-penalty plays.
	CommittingTeam string

	// TurnoverOwner is the team charged with the turnover (UnknownTeam when
	// unresolvable); empty for non-turnover plays.
	TurnoverOwner string

	// ReturnYards is the actual return yardage parsed from play text for
	// special-teams return plays; 0 when not a return or unparseable.
	ReturnYards int

	// FourthDownConverted is meaningful only when Tags.FourthDownAttempt.
	FourthDownConverted bool
}

// ByeOpponent is the WeekIndex sentinel for a week with no scheduled game.
const ByeOpponent = "BYE"

// GameInfo is one entry of a team's game list.
type GameInfo struct {
	GameID           string
	Week             int
	Opponent         string
	HomeTeam         string
	AwayTeam         string
	Date             string
	IsConference     *bool
	IsPower4Opponent *bool
}

// WeekIndex maps canonical weeks 1..MaxWeek to opponents, with BYE filling
// scheduling gaps. Every weekly trend array downstream has exactly MaxWeek
// entries so two teams' series compare index-for-index.
type WeekIndex struct {
	Opponents []string            // index 0 = week 1; ByeOpponent for gaps
	GameWeeks map[string]int      // game_id -> week
	WeekGames map[int]string      // week -> game_id (non-BYE weeks only)
	Games     map[string]GameInfo // game_id -> game metadata
}

// MaxWeek is the length of every weekly trend array built from this index.
func (w *WeekIndex) MaxWeek() int { return len(w.Opponents) }

// Opponent returns the opponent for a 1-based week, or ByeOpponent.
func (w *WeekIndex) Opponent(week int) string {
	if week < 1 || week > len(w.Opponents) {
		return ByeOpponent
	}
	return w.Opponents[week-1]
}

// IsBye reports whether the 1-based week has no scheduled game.
func (w *WeekIndex) IsBye(week int) bool { return w.Opponent(week) == ByeOpponent }

// WeekOf maps a game id to its canonical week (0 when unknown).
func (w *WeekIndex) WeekOf(gameID string) int { return w.GameWeeks[gameID] }

// LastN returns the n most recent non-BYE weeks, oldest first.
func (w *WeekIndex) LastN(n int) []int {
	var weeks []int
	for wk := 1; wk <= w.MaxWeek(); wk++ {
		if !w.IsBye(wk) {
			weeks = append(weeks, wk)
		}
	}
	if len(weeks) > n {
		weeks = weeks[len(weeks)-n:]
	}
	return weeks
}

// ---- Situation summaries ----
//
// Summaries are value objects: recomputing from the same play set and the
// same WeekIndex yields identical output. Weekly trend slices always have
// MaxWeek entries with 0 at BYE weeks.

// ExplosiveSummary covers offensive explosive plays (run >=15, pass >=20).
type ExplosiveSummary struct {
	Total      int
	Games      int
	Last3Total int
	Last3Games int
	WeekTrend  []int
	Plays      []ClassifiedPlay
}

func (s *ExplosiveSummary) PerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Games)
}

func (s *ExplosiveSummary) Last3PerGame() float64 {
	if s.Last3Games == 0 {
		return 0
	}
	return float64(s.Last3Total) / float64(s.Last3Games)
}

// PenaltySummary covers penalties committed by the team under analysis.
type PenaltySummary struct {
	Total      int // all flags resolved to the team, any decision
	Accepted   int
	Declined   int
	Offsetting int
	Yards      int // accepted penalties only
	Games      int

	Last3Total    int
	Last3Accepted int
	Last3Yards    int

	ByType map[string]int

	// NetYardsTrend is opponent penalty yards minus team penalty yards per
	// week (positive favors the team under analysis).
	NetYardsTrend []int
	CountTrend    []int
	Plays         []ClassifiedPlay
}

func (s *PenaltySummary) PerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Games)
}

// ConversionLine is an attempts/conversions pair.
type ConversionLine struct {
	Attempts    int
	Conversions int
}

func (c ConversionLine) Rate() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Conversions) / float64(c.Attempts) * 100
}

// FourthDownSummary covers "go for it" 4th-down attempts.
type FourthDownSummary struct {
	Attempts    int
	Conversions int

	Last3Attempts    int
	Last3Conversions int

	// DistanceBreakdown keys: "1 yard or less", "2-3 yards", "4-5 yards",
	// "6-10 yards", "11+ yards".
	DistanceBreakdown map[string]ConversionLine

	AttemptTrend    []int
	ConversionTrend []int
	Plays           []ClassifiedPlay
}

func (s *FourthDownSummary) Rate() float64 {
	return ConversionLine{s.Attempts, s.Conversions}.Rate()
}

func (s *FourthDownSummary) Last3Rate() float64 {
	return ConversionLine{s.Last3Attempts, s.Last3Conversions}.Rate()
}

// TurnoverEvent is one resolved turnover plus the points that followed it.
type TurnoverEvent struct {
	GameID       string
	Week         int
	Opponent     string
	Period       int
	ClockSeconds int
	Type         TurnoverType
	OwnedByTeam  bool // true when the team under analysis gave the ball away
	DriveResult  string
	Points       int // points scored off the turnover, always >= 0
	PlayText     string
}

// PostTurnoverSummary covers scoring after interceptions and lost fumbles.
type PostTurnoverSummary struct {
	TeamTurnovers     int
	OpponentTurnovers int

	PointsScored  int // after opponent turnovers
	PointsAllowed int // after team turnovers

	Last3PointsScored  int
	Last3PointsAllowed int

	NetTrend []int
	Events   []TurnoverEvent
}

func (s *PostTurnoverSummary) NetPoints() int { return s.PointsScored - s.PointsAllowed }

func (s *PostTurnoverSummary) Last3Net() int {
	return s.Last3PointsScored - s.Last3PointsAllowed
}

// TeamScoreRate is the share of team giveaways the opponent converted.
func (s *PostTurnoverSummary) TeamScoreRate() float64 {
	return scoreRate(s.Events, true)
}

// OpponentScoreRate is the share of takeaways the team converted.
func (s *PostTurnoverSummary) OpponentScoreRate() float64 {
	return scoreRate(s.Events, false)
}

func scoreRate(events []TurnoverEvent, owned bool) float64 {
	n, scored := 0, 0
	for _, e := range events {
		if e.OwnedByTeam != owned {
			continue
		}
		n++
		if e.Points > 0 {
			scored++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(scored) / float64(n) * 100
}

// MiddleEightSummary covers the final 4:00 of Q2 plus the first 4:00 of Q3.
type MiddleEightSummary struct {
	PointsScored  int
	PointsAllowed int
	Games         int

	Last3Scored  int
	Last3Allowed int

	NetTrend     []int
	ScoringPlays []ClassifiedPlay
}

func (s *MiddleEightSummary) Net() int { return s.PointsScored - s.PointsAllowed }

func (s *MiddleEightSummary) AvgNetPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Net()) / float64(s.Games)
}

func (s *MiddleEightSummary) Last3Net() int { return s.Last3Scored - s.Last3Allowed }

// SpecialTeamsSummary covers kick/punt units.
type SpecialTeamsSummary struct {
	TotalPlays        int
	Explosive         int
	ExplosiveAllowed  int
	BadResults        int
	BadResultsAllowed int
	TDsScored         int
	TDsAllowed        int
	PuntBlocks        int
	PuntBlocksAllowed int

	ExplosiveTrend []int
	Plays          []ClassifiedPlay
}

// ZoneSummary covers one scoring zone (tight-red <=10, red <=20, green <=30).
type ZoneSummary struct {
	Zone       string
	TotalPlays int

	// Drive-level counts: a drive "attempt" is a unique game+drive pair
	// with at least one snap in the zone.
	DriveAttempts int
	ScoringDrives int

	Touchdowns int
	Turnovers  int
	Explosive  int

	ThirdDowns  ConversionLine
	FourthDowns ConversionLine

	AvgPPA  float64
	TDTrend []int
	Plays   []ClassifiedPlay
}

func (s *ZoneSummary) TDRate() float64 {
	if s.TotalPlays == 0 {
		return 0
	}
	return float64(s.Touchdowns) / float64(s.TotalPlays) * 100
}

func (s *ZoneSummary) DriveScoreRate() float64 {
	if s.DriveAttempts == 0 {
		return 0
	}
	return float64(s.ScoringDrives) / float64(s.DriveAttempts) * 100
}

func (s *ZoneSummary) ExplosiveRate() float64 {
	if s.TotalPlays == 0 {
		return 0
	}
	return float64(s.Explosive) / float64(s.TotalPlays) * 100
}

// ReceivingLine is one aggregate row of the situational receiving feed.
type ReceivingLine struct {
	Targets    int
	Receptions int
	FirstDowns int
	Touchdowns int
	Yards      int
}

func (r ReceivingLine) Add(o ReceivingLine) ReceivingLine {
	return ReceivingLine{
		Targets:    r.Targets + o.Targets,
		Receptions: r.Receptions + o.Receptions,
		FirstDowns: r.FirstDowns + o.FirstDowns,
		Touchdowns: r.Touchdowns + o.Touchdowns,
		Yards:      r.Yards + o.Yards,
	}
}

func (r ReceivingLine) CatchRate() float64 {
	if r.Targets == 0 {
		return 0
	}
	return float64(r.Receptions) / float64(r.Targets) * 100
}

// PlayerReceiving is a per-player line within one situation.
type PlayerReceiving struct {
	Name string
	Line ReceivingLine
}

// ReceivingSummary aggregates one situation (3rd down or red zone) of the
// situational receiving feed.
type ReceivingSummary struct {
	Situation   string
	Total       ReceivingLine
	Last3       ReceivingLine
	TargetTrend []int
	Players     []PlayerReceiving
}

// TeamReport is the full per-team result set handed to rendering
// collaborators. Built fresh per request; filtered and unfiltered reports
// are structurally identical and never merged.
type TeamReport struct {
	Team     string
	Weeks    WeekIndex
	Filtered bool

	Explosive    ExplosiveSummary
	Penalties    PenaltySummary
	FourthDowns  FourthDownSummary
	PostTurnover PostTurnoverSummary
	MiddleEight  MiddleEightSummary
	SpecialTeams SpecialTeamsSummary

	TightRedZone ZoneSummary
	RedZone      ZoneSummary
	GreenZone    ZoneSummary

	ThirdDownReceiving *ReceivingSummary
	RedZoneReceiving   *ReceivingSummary
}
