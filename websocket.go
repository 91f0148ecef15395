package interview_coach

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agnivade/interview_coach/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  8192,
	WriteBufferSize: 8192,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	if !s.trackRelay() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.relays.Done()

	// The descriptor is claimed before upgrading so an unknown id costs
	// nothing upstream.
	desc, err := s.pending.Pop(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("WebSocket upgrade failed for session %s: %v", id, err)
		return
	}
	defer conn.Close()

	relay := NewRelay(desc, conn, s.registry, s.newUpstream, s.log)
	relay.transcribers = s.transcribers
	relay.transcriberConfig = s.transcriberConfig

	if err := relay.Run(s.ctx); err != nil {
		s.log.Printf("[%s] Session ended: %v", id, err)
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}
