package api

import (
	"log"
	"net/http"

	"kasjer/internal/auth"
	"kasjer/internal/websocket"
)

// ServeWsHandler opens the live inbox for the player named by the token query
// parameter. New messages for that player are pushed as they are sent.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	if s.wsHub == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Live inbox disabled")
		return
	}

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		log.Println("WS connection attempt without token")
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Token required")
		return
	}

	claims, err := auth.VerifyJWT(tokenString, s.config.JWT.Secret)
	if err != nil || claims.UserID == "" {
		log.Printf("WS connection attempt with invalid token: %v", err)
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, claims.UserID)
	if !s.wsHub.Add(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
