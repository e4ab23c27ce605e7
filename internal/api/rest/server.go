package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/scorehub/internal/api/websocket"
	"github.com/fortuna/scorehub/internal/service"
)

// Server is the HTTP server: JSON API, dashboard pages, and the live
// scores websocket endpoint.
type Server struct {
	server  *http.Server
	handler *Handler
}

// NewServer wires the router.
func NewServer(addr string, sports *service.SportsService, board *service.LeaderboardService, ws *websocket.Server) *Server {
	handler := NewHandler(sports, board, ws)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Dashboard pages
	router.HandleFunc("/", handler.Dashboard).Methods("GET")

	// Live score push
	router.HandleFunc("/ws/scores", ws.HandleScores)

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Leaderboard
	api.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/leaderboard/summary", handler.GetLeaderboardSummary).Methods("GET")
	api.HandleFunc("/leaderboard/reload", handler.ReloadLeaderboard).Methods("POST")

	// Sports
	api.HandleFunc("/leagues", handler.GetLeagues).Methods("GET")
	api.HandleFunc("/{sport}/{league}/scoreboard", handler.GetScoreboard).Methods("GET")
	api.HandleFunc("/{sport}/{league}/standings", handler.GetStandings).Methods("GET")
	api.HandleFunc("/{sport}/{league}/standings/history", handler.GetStandingsHistory).Methods("GET")

	return &Server{
		handler: handler,
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
