package espn

import (
	"errors"
	"strconv"
	"strings"
)

// ErrStandingsUnavailable is returned when a standings payload is absent or
// matches none of the known response shapes. Callers must treat this as
// "no data", which is distinct from a league that genuinely has zero teams.
var ErrStandingsUnavailable = errors.New("standings unavailable")

// TeamRecord is one team's win/loss line within a standings view.
type TeamRecord struct {
	Conference   string `json:"conference"`
	Team         string `json:"team"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// NormalizeStandings flattens a raw standings payload into team records.
// ESPN serves standings in (at least) three layouts depending on the host
// and sport; each is tried in order and the first that yields any row wins.
func NormalizeStandings(payload map[string]interface{}) ([]TeamRecord, error) {
	if payload == nil {
		return nil, ErrStandingsUnavailable
	}

	rows := parseGroupedEntries(payload)
	if len(rows) == 0 {
		rows = parseContentGroups(payload)
	}
	if len(rows) == 0 {
		rows = parseFlatTeams(payload)
	}

	if len(rows) == 0 {
		return nil, ErrStandingsUnavailable
	}
	return rows, nil
}

// Shape 1: site.api.espn.com — children[].standings.entries[]
func parseGroupedEntries(payload map[string]interface{}) []TeamRecord {
	var rows []TeamRecord
	for _, childInterface := range extractArray(payload, "children") {
		child, ok := childInterface.(map[string]interface{})
		if !ok {
			continue
		}
		confName := extractString(child, "name")
		entries := extractArray(extractMap(child, "standings"), "entries")
		for _, entryInterface := range entries {
			entry, ok := entryInterface.(map[string]interface{})
			if !ok {
				continue
			}
			team := extractMap(entry, "team")
			teamName := fallbackString(
				extractString(team, "displayName"),
				extractString(team, "shortDisplayName"),
			)
			if teamName == "" {
				continue
			}
			wins, losses := ParseWinLoss(extractArray(entry, "stats"))
			rows = append(rows, TeamRecord{
				Conference:   confName,
				Team:         teamName,
				Abbreviation: extractString(team, "abbreviation"),
				Wins:         wins,
				Losses:       losses,
			})
		}
	}
	return rows
}

// Shape 2: cdn.espn.com — the grouped structure nested under "content",
// with either content.standings.groups, content.groups, or a flat
// content.standings list standing in for the group array.
func parseContentGroups(payload map[string]interface{}) []TeamRecord {
	content := extractMap(payload, "content")
	if len(content) == 0 {
		content = payload
	}

	groups := extractArray(extractMap(content, "standings"), "groups")
	if len(groups) == 0 {
		groups = extractArray(content, "groups")
	}
	if len(groups) == 0 {
		if flat, ok := content["standings"].([]interface{}); ok {
			groups = flat
		}
	}

	var rows []TeamRecord
	for _, grpInterface := range groups {
		grp, ok := grpInterface.(map[string]interface{})
		if !ok {
			continue
		}
		confName := fallbackString(extractString(grp, "name"), extractString(grp, "label"))
		entries := extractArray(extractMap(grp, "standings"), "entries")
		if len(entries) == 0 {
			entries = extractArray(grp, "entries")
		}
		for _, entryInterface := range entries {
			entry, ok := entryInterface.(map[string]interface{})
			if !ok {
				continue
			}
			// The team field is sometimes a bare ID string here; those
			// entries carry nothing usable, skip them.
			if _, isString := entry["team"].(string); isString {
				continue
			}
			team := extractMap(entry, "team")
			if len(team) == 0 {
				team = entry
			}
			teamName := fallbackString(
				extractString(team, "displayName"),
				extractString(team, "shortDisplayName"),
				extractString(team, "name"),
			)
			if teamName == "" {
				continue
			}
			wins, losses := ParseWinLoss(extractArray(entry, "stats"))
			rows = append(rows, TeamRecord{
				Conference:   confName,
				Team:         teamName,
				Abbreviation: extractString(team, "abbreviation"),
				Wins:         wins,
				Losses:       losses,
			})
		}
	}
	return rows
}

// Shape 3: a flat teams[] list where the record is either a "W-L" summary
// string or explicit wins/losses fields.
func parseFlatTeams(payload map[string]interface{}) []TeamRecord {
	if _, ok := payload["teams"]; !ok {
		return nil
	}

	var rows []TeamRecord
	for _, entryInterface := range extractArray(payload, "teams") {
		entry, ok := entryInterface.(map[string]interface{})
		if !ok {
			continue
		}

		var wins, losses int
		if record, ok := recordSummary(entry); ok && strings.Contains(record, "-") {
			wins, losses = parseRecordString(record)
		} else {
			wins = extractInt(entry, "wins")
			losses = extractInt(entry, "losses")
		}

		var teamName, abbr string
		switch team := entry["team"].(type) {
		case map[string]interface{}:
			teamName = extractString(team, "displayName")
			abbr = extractString(team, "abbreviation")
		case string:
			teamName = team
		default:
			teamName = extractString(entry, "displayName")
			abbr = extractString(entry, "abbreviation")
		}
		if teamName == "" {
			continue
		}

		rows = append(rows, TeamRecord{
			Team:         teamName,
			Abbreviation: abbr,
			Wins:         wins,
			Losses:       losses,
		})
	}
	return rows
}

// recordSummary returns the entry's record when it is presented as a
// display string ("12-4"). A structured record object reports false so the
// caller falls back to explicit wins/losses fields; a missing or empty
// record falls through to the entry's summary field.
func recordSummary(entry map[string]interface{}) (string, bool) {
	switch rec := entry["record"].(type) {
	case string:
		return rec, true
	case map[string]interface{}:
		if len(rec) > 0 {
			return "", false
		}
	}
	return extractString(entry, "summary"), true
}

// parseRecordString reads wins and losses from a "W-L" summary. Records
// with more parts keep the first two, so a soccer "W-L-T" drops the ties
// column. Anything that does not parse cleanly as two integers is (0, 0).
func parseRecordString(record string) (int, int) {
	parts := strings.Split(record, "-")
	if len(parts) < 2 {
		return 0, 0
	}
	wins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0
	}
	losses, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0
	}
	return wins, losses
}

// Conferences lists the distinct non-empty conference labels in rows,
// preserving first-seen order. An all-empty conference column means the
// league has a single implicit "All" group.
func Conferences(rows []TeamRecord) []string {
	seen := make(map[string]bool)
	var confs []string
	for _, row := range rows {
		name := strings.TrimSpace(row.Conference)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		confs = append(confs, name)
	}
	return confs
}

// FilterConference returns the rows belonging to one conference, sorted is
// left to the caller. An empty conference argument matches ungrouped rows.
func FilterConference(rows []TeamRecord, conference string) []TeamRecord {
	var out []TeamRecord
	for _, row := range rows {
		if row.Conference == conference {
			out = append(out, row)
		}
	}
	return out
}
