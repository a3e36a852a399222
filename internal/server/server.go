package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/kurobon/gitviz/internal/config"
	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/mission"
	"github.com/kurobon/gitviz/internal/state"
)

type Server struct {
	SessionManager *git.SessionManager
	MissionEngine  *mission.Engine
	Config         *config.Config
	Mux            *http.ServeMux

	upgrader websocket.Upgrader
}

// NewServer wires the routes. A nil cfg means config.Global.
func NewServer(sm *git.SessionManager, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Global
	}
	s := &Server{
		SessionManager: sm,
		MissionEngine:  mission.NewEngine(mission.NewLoader(cfg.MissionDir), sm),
		Config:         cfg,
		Mux:            http.NewServeMux(),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)
	s.Mux.HandleFunc("/api/session/init", s.handleInitSession)
	s.Mux.HandleFunc("/api/command", s.handleExecCommand)
	s.Mux.HandleFunc("/api/apply", s.handleApply)
	s.Mux.HandleFunc("/api/undo", s.handleUndo)
	s.Mux.HandleFunc("/api/state", s.handleGetGraphState)
	s.Mux.HandleFunc("/api/layout", s.handleGetLayout)
	s.Mux.HandleFunc("/api/graph.svg", s.handleGetSVG)
	s.Mux.HandleFunc("/api/history", s.handleGetHistory)
	s.Mux.HandleFunc("/api/log", s.handleGetLog)
	s.Mux.HandleFunc("/api/strategies", s.handleGetStrategies)
	s.Mux.HandleFunc("/api/missions", s.handleListMissions)
	s.Mux.HandleFunc("/api/missions/start", s.handleStartMission)
	s.Mux.HandleFunc("/api/missions/verify", s.handleVerifyMission)
	s.Mux.HandleFunc("/ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// statusFor maps engine rejections onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, state.ErrDuplicateBranchName):
		return http.StatusConflict
	case errors.Is(err, state.ErrEmptyInput), errors.Is(err, state.ErrUnknownOperation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// lookupSession resolves ?sessionId= and writes a 404 when it is unknown.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*git.Session, bool) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId required", http.StatusBadRequest)
		return nil, false
	}
	session, ok := s.SessionManager.GetSession(sessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// sessionOrRestore returns the named session, recreating it when the
// server restarted underneath a client.
func (s *Server) sessionOrRestore(sessionID string) (*git.Session, error) {
	if session, ok := s.SessionManager.GetSession(sessionID); ok {
		return session, nil
	}
	log.Printf("Session %s not found (likely backend restart). Recreating...", sessionID)
	return s.SessionManager.CreateSession(sessionID)
}

// checkOrigin accepts same-host requests, requests without an Origin header
// and any origin listed in the configuration.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return s.Config.OriginAllowed(origin)
}
