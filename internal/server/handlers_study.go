package server

import (
	"encoding/json"
	"net/http"

	"github.com/example/engstudy/internal/database"
)

func (s *Server) handleListStudyLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.studyLog.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list study log")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleAddStudyLog(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DurationMinutes int `json:"duration_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.studyLog.Log(body.DurationMinutes); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Study time logged"})
}

func (s *Server) handleStudyLogSummary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "daily"
	}
	switch period {
	case "daily", "weekly", "monthly", "total":
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown summary period")
		return
	}

	entries, err := s.studyLog.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to read study log")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"period":  period,
		"buckets": database.Summarize(entries, period),
	})
}
