package espn

import "fmt"

// Scoreboard is the parsed view of one league's scoreboard payload.
type Scoreboard struct {
	SeasonLabel string `json:"season_label,omitempty"`
	Games       []Game `json:"games"`
}

// Game is one competition rendered as a dashboard card.
type Game struct {
	ID      string       `json:"id,omitempty"`
	Venue   string       `json:"venue,omitempty"`
	Status  string       `json:"status"` // scheduled | live | final
	Detail  string       `json:"detail,omitempty"`
	Clock   string       `json:"clock,omitempty"`
	Home    Competitor   `json:"home"`
	Away    Competitor   `json:"away"`
	Leaders []GameLeader `json:"leaders,omitempty"`
}

// Competitor is one side of a game.
type Competitor struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Score        string `json:"score"`
}

// GameLeader is the top performer in one stat category, shown on live and
// final game cards.
type GameLeader struct {
	Category     string `json:"category"`
	Athlete      string `json:"athlete"`
	Headshot     string `json:"headshot,omitempty"`
	DisplayValue string `json:"display_value,omitempty"`
}

// Leader categories beyond this are noise on a card.
const maxLeaderCategories = 4

// ParseScoreboard walks a scoreboard payload into game cards. Events
// without at least two competitors are skipped. An empty events list is a
// quiet day, not an error.
func ParseScoreboard(payload map[string]interface{}) (*Scoreboard, error) {
	if payload == nil {
		return nil, fmt.Errorf("no scoreboard payload")
	}

	sb := &Scoreboard{
		SeasonLabel: parseSeasonLabel(payload),
		Games:       []Game{},
	}

	for _, eventInterface := range extractArray(payload, "events") {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		for _, compInterface := range extractArray(event, "competitions") {
			comp, ok := compInterface.(map[string]interface{})
			if !ok {
				continue
			}
			if game, ok := parseGameCard(extractString(event, "id"), comp); ok {
				sb.Games = append(sb.Games, game)
			}
		}
	}

	return sb, nil
}

func parseGameCard(eventID string, comp map[string]interface{}) (Game, bool) {
	competitors := extractArray(comp, "competitors")
	if len(competitors) < 2 {
		return Game{}, false
	}

	status := extractMap(comp, "status")
	statusType := extractMap(status, "type")

	game := Game{
		ID:     eventID,
		Venue:  extractString(extractMap(comp, "venue"), "fullName"),
		Status: gameStatus(statusType),
		Detail: fallbackString(
			extractString(statusType, "shortDetail"),
			extractString(statusType, "detail"),
		),
		Clock: extractString(status, "displayClock"),
	}

	home, away := splitHomeAway(competitors)
	game.Home = parseCompetitor(home)
	game.Away = parseCompetitor(away)

	// Pre-game leader lists are season stats, not game stats; skip them.
	if game.Status != "scheduled" {
		game.Leaders = parseLeaders(extractArray(comp, "leaders"))
	}

	return game, true
}

// splitHomeAway picks competitors by their homeAway marker, falling back to
// list position when the marker is missing.
func splitHomeAway(competitors []interface{}) (home, away map[string]interface{}) {
	asMap := func(i int) map[string]interface{} {
		if m, ok := competitors[i].(map[string]interface{}); ok {
			return m
		}
		return map[string]interface{}{}
	}
	home, away = asMap(0), asMap(1)
	for _, cInterface := range competitors {
		c, ok := cInterface.(map[string]interface{})
		if !ok {
			continue
		}
		switch extractString(c, "homeAway") {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	return home, away
}

func parseCompetitor(c map[string]interface{}) Competitor {
	team := extractMap(c, "team")
	score := extractString(c, "score")
	if score == "" {
		score = "0"
	}
	return Competitor{
		Name: fallbackString(
			extractString(team, "shortDisplayName"),
			extractString(team, "displayName"),
			"TBD",
		),
		Abbreviation: extractString(team, "abbreviation"),
		Logo:         fallbackString(extractString(c, "logo"), extractString(team, "logo")),
		Score:        score,
	}
}

func parseLeaders(leaders []interface{}) []GameLeader {
	var out []GameLeader
	for _, catInterface := range leaders {
		if len(out) >= maxLeaderCategories {
			break
		}
		cat, ok := catInterface.(map[string]interface{})
		if !ok {
			continue
		}
		leadList := extractArray(cat, "leaders")
		if len(leadList) == 0 {
			continue
		}
		lead, ok := leadList[0].(map[string]interface{})
		if !ok {
			continue
		}
		athlete := extractMap(lead, "athlete")
		out = append(out, GameLeader{
			Category: fallbackString(
				extractString(cat, "displayName"),
				extractString(cat, "shortDisplayName"),
			),
			Athlete: extractString(athlete, "displayName"),
			// headshot is a bare URL on scoreboard payloads but an
			// object with an href on summary payloads
			Headshot: fallbackString(
				extractString(athlete, "headshot"),
				extractString(extractMap(athlete, "headshot"), "href"),
			),
			DisplayValue: extractString(lead, "displayValue"),
		})
	}
	return out
}

func gameStatus(statusType map[string]interface{}) string {
	if completed, ok := statusType["completed"].(bool); ok && completed {
		return "final"
	}
	switch extractString(statusType, "state") {
	case "in":
		return "live"
	case "post":
		return "final"
	default:
		return "scheduled"
	}
}

// parseSeasonLabel pulls a human season name out of the scoreboard
// metadata, e.g. "2025-26 Regular Season".
func parseSeasonLabel(payload map[string]interface{}) string {
	var season map[string]interface{}
	if leagues := extractArray(payload, "leagues"); len(leagues) > 0 {
		if league, ok := leagues[0].(map[string]interface{}); ok {
			season = extractMap(league, "season")
		}
	}
	if len(season) == 0 {
		season = extractMap(payload, "season")
	}
	label := extractString(season, "displayName")
	if label == "" {
		if year := extractInt(season, "year"); year > 0 {
			label = fmt.Sprintf("%d", year)
		}
	}
	return label
}
