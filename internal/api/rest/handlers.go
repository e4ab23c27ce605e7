package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/scorehub/internal/api/websocket"
	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/leaderboard"
	"github.com/fortuna/scorehub/internal/service"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	sports *service.SportsService
	board  *service.LeaderboardService
	ws     *websocket.Server
}

// NewHandler creates a new handler.
func NewHandler(sports *service.SportsService, board *service.LeaderboardService, ws *websocket.Server) *Handler {
	return &Handler{
		sports: sports,
		board:  board,
		ws:     ws,
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"service":    "scorehub",
		"version":    "1.0.0",
		"ws_clients": h.ws.ClientCount(),
	})
}

// GetLeagues lists the supported leagues.
func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leagues": espn.Leagues,
	})
}

// GetScoreboard returns the current scoreboard for a league.
func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	league, ok := requestedLeague(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown league", nil)
		return
	}

	sb, err := h.sports.Scoreboard(r.Context(), league)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable,
			"Could not load "+league.Name+" scoreboard. Try again in a moment.", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"league":       league.Name,
		"icon":         league.Icon,
		"season_label": sb.SeasonLabel,
		"games":        sb.Games,
		"count":        len(sb.Games),
	})
}

// GetStandings returns the normalized standings table for a league,
// optionally filtered to one conference and sorted by wins.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	league, ok := requestedLeague(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown league", nil)
		return
	}

	records, err := h.sports.Standings(r.Context(), league)
	if err != nil {
		if errors.Is(err, espn.ErrStandingsUnavailable) {
			respondError(w, http.StatusServiceUnavailable,
				"Standings for "+league.Name+" are not available at the moment.", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load standings", err)
		return
	}

	// A standings table with no conference labels is one implicit group.
	conferences := espn.Conferences(records)
	if len(conferences) == 0 {
		conferences = []string{"All"}
		for i := range records {
			records[i].Conference = "All"
		}
	}

	pick := r.URL.Query().Get("conference")
	if pick == "" {
		pick = conferences[0]
	}
	table := espn.FilterConference(records, pick)
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Wins > table[j].Wins
	})
	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(table) {
		table = table[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"league":      league.Name,
		"icon":        league.Icon,
		"conferences": conferences,
		"conference":  pick,
		"records":     table,
	})
}

// GetStandingsHistory returns recent standings snapshots for a league.
func (h *Handler) GetStandingsHistory(w http.ResponseWriter, r *http.Request) {
	league, ok := requestedLeague(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown league", nil)
		return
	}

	limit := queryInt(r, "limit", 10)
	history, err := h.sports.History(r.Context(), league, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load standings history", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"league":    league.Name,
		"snapshots": history,
		"count":     len(history),
	})
}

// leaderboardRow augments a ranked row with the per-game chart anchor.
type leaderboardRow struct {
	leaderboard.ScoreRow
	MaxGameScore float64 `json:"max_game_score"`
}

// GetLeaderboard returns the ranked score sheet. Repeated "player" query
// parameters spotlight a subset without changing the ranking.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query()["player"]

	board, ranked, err := h.board.Board(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load leaderboard", err)
		return
	}

	rows := make([]leaderboardRow, 0, len(ranked))
	for _, row := range ranked {
		rows = append(rows, leaderboardRow{
			ScoreRow:     row,
			MaxGameScore: leaderboard.MaxGameScore(row),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_columns":   board.GameColumns,
		"spirit_columns": board.SpiritColumns,
		"rows":           rows,
		"count":          len(rows),
	})
}

// GetLeaderboardSummary returns the KPI card values.
func (h *Handler) GetLeaderboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.board.Summary()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// ReloadLeaderboard re-reads the score sheet from disk.
func (h *Handler) ReloadLeaderboard(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Reload(); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Leaderboard reloaded"})
}

func requestedLeague(r *http.Request) (espn.League, bool) {
	vars := mux.Vars(r)
	return espn.LookupLeague(vars["sport"], vars["league"])
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	json.NewEncoder(w).Encode(response)
}
