package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/layout"
	"github.com/kurobon/gitviz/internal/state"
)

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "pong",
		"system":  "gitviz",
	})
}

func (s *Server) handleInitSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.SessionManager.NewSession()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "session created",
		"sessionId": session.ID,
	})
}

// etag changes whenever the graph, selection or undo log changes.
func etag(gs *state.GraphState) string {
	return fmt.Sprintf(`"%s-%d"`, gs.Fingerprint, len(gs.History))
}

func (s *Server) handleGetGraphState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	gs := session.GraphState()
	tag := etag(gs)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, layout.Compute(session.Repository(), session.Selected()))
}

func (s *Server) handleGetSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := layout.WriteSVG(&buf, layout.Compute(session.Repository(), session.Selected())); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to write svg: %v", err)
	}
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	items := session.HistoryItems()
	if items == nil {
		items = []state.HistoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleGetLog returns git log output of the session's mirror.
// Query: sessionId, branch (default HEAD), oneline=true, limit=N.
func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := git.LogOptions{
		Branch:  q.Get("branch"),
		OneLine: q.Get("oneline") == "true",
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		opts.Limit, opts.Limited = n, true
	}

	mirror, err := git.BuildMirror(session.Repository())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out, err := mirror.Log(opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"output": out})
}

func (s *Server) handleGetStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, state.GetBranchingStrategies(s.Config.DefaultBranch))
}
