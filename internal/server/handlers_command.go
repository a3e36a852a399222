package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/state"
)

type CommandRequest struct {
	SessionID string `json:"sessionId"`
	Command   string `json:"command"`
}

type ApplyRequest struct {
	SessionID string          `json:"sessionId"`
	Op        state.Operation `json:"op"`
}

type ApplyResponse struct {
	Result state.Result      `json:"result"`
	State  *state.GraphState `json:"state"`
}

func (s *Server) handleExecCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "sessionId required", http.StatusBadRequest)
		return
	}

	log.Printf("Command received: user=%s cmd=%s", req.SessionID, req.Command)

	session, err := s.sessionOrRestore(req.SessionID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "failed to restore session: " + err.Error()})
		return
	}

	output, err := git.Run(r.Context(), session, req.Command)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"output": output})
}

// handleApply runs one structured operation, the path used by the graph UI
// buttons. Rejections map to 409 (duplicate branch) or 400 (empty input).
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.apply(w, req.SessionID, req.Op)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.apply(w, req.SessionID, state.UndoOp())
}

func (s *Server) apply(w http.ResponseWriter, sessionID string, op state.Operation) {
	session, ok := s.SessionManager.GetSession(sessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	res, err := session.Apply(op)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if res.Ignored {
		log.Printf("Operation ignored: user=%s op=%q reason=%s", sessionID, op.Command(), res.Reason)
	}
	writeJSON(w, http.StatusOK, ApplyResponse{Result: res, State: session.GraphState()})
}
