package rest

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/leaderboard"
)

// Dashboard renders the combined leaderboard + live sports page. The page
// is deliberately plain; charts and styling live with whatever frontend
// consumes the JSON API. A broken score sheet does not take the sports
// half down with it.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{Leagues: espn.Leagues}

	_, ranked, err := h.board.Board(nil)
	if err != nil {
		log.Printf("[rest] dashboard leaderboard load: %v", err)
		data.LeaderboardError = "Leaderboard is not available at the moment."
	} else {
		data.Rows = ranked
		data.Summary = leaderboard.Summarize(ranked)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		log.Printf("[rest] rendering dashboard: %v", err)
	}
}

type dashboardData struct {
	Leagues          []espn.League
	Rows             []leaderboard.ScoreRow
	Summary          leaderboard.Summary
	LeaderboardError string
}

// score formats a nullable score cell; missing scores render as a dash,
// never as zero.
var dashboardFuncs = template.FuncMap{
	"score": func(v *float64) string {
		if v == nil {
			return "–"
		}
		return strconv.FormatFloat(*v, 'f', 0, 64)
	},
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(dashboardFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Scorehub</title>
<style>
  body { font-family: system-ui, sans-serif; background: #0c0f14; color: #f5f5f5; margin: 2rem auto; max-width: 960px; }
  h1 { letter-spacing: 0.2em; text-transform: uppercase; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { padding: 0.4rem 0.8rem; border-bottom: 1px solid #26303d; text-align: left; }
  .kpi { display: inline-block; margin-right: 2rem; color: #86efac; }
  .kpi span { display: block; color: #9ca3af; font-size: 0.75rem; text-transform: uppercase; }
  .muted { color: #9ca3af; }
  a { color: #22c55e; }
</style>
</head>
<body>
<h1>Scorehub</h1>
<p class="muted">Live scores · Standings · Spirit Games leaderboard</p>

<h2>Leagues</h2>
<ul>
{{range .Leagues}}
  <li>{{.Icon}} <a href="/api/v1/{{.Sport}}/{{.League}}/scoreboard">{{.Name}} scoreboard</a> ·
      <a href="/api/v1/{{.Sport}}/{{.League}}/standings">standings</a></li>
{{end}}
</ul>

<h2>Chart Spirit Games</h2>
{{if .LeaderboardError}}
<p class="muted">{{.LeaderboardError}}</p>
{{else}}
<p>
  <span class="kpi"><span>Overall MVP</span>{{.Summary.MVP}} 🏆</span>
  <span class="kpi"><span>Average spirit</span>{{printf "%.1f" .Summary.AvgSpirit}}</span>
  <span class="kpi"><span>Total points</span>{{printf "%.0f" .Summary.TotalPoints}}</span>
</p>
<table>
  <tr><th></th><th>Player</th><th>Game</th><th>Spirit</th><th>Total</th></tr>
{{range .Rows}}
  <tr>
    <td>{{.Badge}}</td>
    <td>{{.Player}}</td>
    <td>{{score .GameTotal}}</td>
    <td>{{score .SpiritTotal}}</td>
    <td>{{score .GrandTotal}}</td>
  </tr>
{{end}}
</table>
{{end}}

<h2>Live scores</h2>
<div id="scores" class="muted">Waiting for updates…</div>
<script>
  const scores = document.getElementById("scores");
  const proto = location.protocol === "https:" ? "wss" : "ws";
  const sock = new WebSocket(proto + "://" + location.host + "/ws/scores");
  const latest = {};
  sock.onmessage = (ev) => {
    const update = JSON.parse(ev.data);
    latest[update.name] = update;
    scores.innerHTML = Object.values(latest).map(u =>
      "<h3>" + u.name + "</h3>" + u.scoreboard.games.map(g =>
        "<p>" + g.away.name + " " + g.away.score + " @ " +
        g.home.name + " " + g.home.score +
        " <span class=muted>(" + (g.status === "live" ? "Live · " + g.clock : g.detail || g.status) + ")</span></p>"
      ).join("")
    ).join("");
  };
</script>
</body>
</html>
`))
