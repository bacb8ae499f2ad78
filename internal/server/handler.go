package server

import (
	"log"
	"net/http"

	"github.com/soar/padoverlay/internal/hub"
)

// handleWebSocket upgrades an overlay connection. The corner query
// parameter picks the corner to watch; without it the client watches all.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	corner, all, ok := hub.ParseSelection(r.URL.Query().Get("corner"))
	if !ok {
		http.Error(w, "unknown corner", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := hub.NewClient(s.hub, conn, corner, all)
	hub.Attach(conn, client)
	// ReadLoop registers the client (OnOpen) and unregisters it on close.
	go conn.ReadLoop()
}
