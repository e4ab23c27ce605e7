package espn

// League identifies one supported sport/league pair on the ESPN API.
type League struct {
	Sport  string `json:"sport"`
	League string `json:"league"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
}

// Path is the URL segment "{sport}/{league}".
func (l League) Path() string {
	return l.Sport + "/" + l.League
}

// Leagues lists the leagues the dashboard serves, in display order.
var Leagues = []League{
	{Sport: "football", League: "nfl", Name: "NFL", Icon: "🏈"},
	{Sport: "basketball", League: "nba", Name: "NBA", Icon: "🏀"},
	{Sport: "baseball", League: "mlb", Name: "MLB", Icon: "⚾"},
	{Sport: "hockey", League: "nhl", Name: "NHL", Icon: "🏒"},
	{Sport: "soccer", League: "usa.1", Name: "MLS", Icon: "⚽"},
}

// LookupLeague resolves a sport/league pair against the supported set.
func LookupLeague(sport, league string) (League, bool) {
	for _, l := range Leagues {
		if l.Sport == sport && l.League == league {
			return l, true
		}
	}
	return League{}, false
}
