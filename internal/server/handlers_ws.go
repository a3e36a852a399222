package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/state"
)

// maxCommandSize bounds one command frame. Longer frames close the
// connection with 1009 (message too big).
const maxCommandSize = 4096

// WSReply answers one command frame.
type WSReply struct {
	Output string            `json:"output"`
	Error  string            `json:"error,omitempty"`
	State  *state.GraphState `json:"state"`
}

// handleWebSocket runs a command loop over one connection. Each text frame
// is a command line; each reply carries its output and the resulting state.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId required", http.StatusBadRequest)
		return
	}
	session, err := s.sessionOrRestore(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxCommandSize)

	// Initial frame so the client can draw before its first command.
	if err := conn.WriteJSON(WSReply{State: session.GraphState()}); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: user=%s err=%v", sessionID, err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := s.runFrame(ctx, session, strings.TrimSpace(string(message)))
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("WebSocket write error: user=%s err=%v", sessionID, err)
			return
		}
	}
}

func (s *Server) runFrame(ctx context.Context, session *git.Session, command string) WSReply {
	var reply WSReply
	output, err := git.Run(ctx, session, command)
	if err != nil {
		reply.Error = err.Error()
	}
	reply.Output = output
	reply.State = session.GraphState()
	return reply
}
