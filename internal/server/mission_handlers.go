package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kurobon/gitviz/internal/mission"
)

type StartMissionRequest struct {
	MissionID string `json:"missionId"`
}

type StartMissionResponse struct {
	SessionID string `json:"sessionId"`
	MissionID string `json:"missionId"`
}

type VerifyMissionRequest struct {
	SessionID string `json:"sessionId"`
	MissionID string `json:"missionId"`
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := s.MissionEngine.Loader.ListMissions()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Simple detection for Japanese. For production, consider using x/text/language.
	if strings.Contains(strings.ToLower(r.Header.Get("Accept-Language")), "ja") {
		localized := make([]*mission.Mission, len(missions))
		for i, m := range missions {
			localized[i] = m.Localized("ja")
		}
		missions = localized
	}
	if missions == nil {
		missions = []*mission.Mission{}
	}

	writeJSON(w, http.StatusOK, missions)
}

func (s *Server) handleStartMission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StartMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sessionID, err := s.MissionEngine.StartMission(r.Context(), req.MissionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, StartMissionResponse{
		SessionID: sessionID,
		MissionID: req.MissionID,
	})
}

func (s *Server) handleVerifyMission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VerifyMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.MissionEngine.VerifyMission(req.SessionID, req.MissionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
