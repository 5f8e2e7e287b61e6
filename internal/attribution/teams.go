package attribution

import "strings"

// TeamTable maps a team name to the abbreviations that appear in play text
// (e.g. "PENALTY WASH"). Entries are data, not code: new teams come from
// config, and any team missing from the table falls back to generated
// short forms.
type TeamTable map[string][]string

// DefaultTeamTable covers abbreviations observed in the source feeds.
func DefaultTeamTable() TeamTable {
	return TeamTable{
		"Washington":     {"WASH", "UW"},
		"Wisconsin":      {"WISC", "WIS"},
		"Michigan":       {"MICH"},
		"Michigan State": {"MSU"},
		"Oregon":         {"ORE", "ORST"},
		"Rutgers":        {"RUTG", "RUT"},
		"Purdue":         {"PUR"},
		"Minnesota":      {"MINN"},
		"Northwestern":   {"NW", "NU"},
		"Illinois":       {"ILL"},
		"Nebraska":       {"NEB"},
		"Maryland":       {"MD", "UMD"},
		"Iowa":           {"IOWA"},
		"Indiana":        {"IND"},
		"Ohio State":     {"OSU"},
		"Penn State":     {"PSU"},
		"UCLA":           {"UCLA"},
		"USC":            {"USC"},
	}
}

// Merge returns a copy of t with extra entries layered on top.
func (t TeamTable) Merge(extra map[string][]string) TeamTable {
	out := make(TeamTable, len(t)+len(extra))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = append(out[k], v...)
	}
	return out
}

// Markers returns every text form a team may appear under in play text:
// the full name, table abbreviations, and a generated first-4-letters
// short form for teams the table does not know.
func (t TeamTable) Markers(team string) []string {
	if team == "" {
		return nil
	}
	markers := []string{team}
	if abbrs, ok := t[team]; ok {
		markers = append(markers, abbrs...)
		return markers
	}
	compact := strings.ReplaceAll(team, " ", "")
	if len(compact) >= 4 {
		markers = append(markers, compact[:4])
	}
	// Initials for multi-word names ("Penn State" -> "PS").
	words := strings.Fields(team)
	if len(words) > 1 {
		var b strings.Builder
		for _, w := range words {
			b.WriteByte(w[0])
		}
		markers = append(markers, b.String())
	}
	return markers
}
