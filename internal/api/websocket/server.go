package websocket

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard is same-origin in practice, public data anyway
	},
}

// Server upgrades dashboard connections and registers them with the hub.
type Server struct {
	hub *Hub
}

// NewServer creates a websocket server around hub.
func NewServer(hub *Hub) *Server {
	return &Server{hub: hub}
}

// HandleScores handles websocket connections for live score updates. It is
// mounted on the main router at /ws/scores.
func (s *Server) HandleScores(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] failed to upgrade connection: %v", err)
		return
	}

	client := NewClient(uuid.New().String(), conn, s.hub)
	s.hub.Register(client)

	go client.writePump()
	go client.readPump()
}

// Broadcast sends an update to all connected clients.
func (s *Server) Broadcast(message []byte) {
	s.hub.Broadcast(message)
}

// ClientCount reports connected clients, for the health endpoint.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}
