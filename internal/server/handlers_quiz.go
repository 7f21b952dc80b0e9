package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/engstudy/internal/quiz"
)

// quizItemView is a quiz question as shown to the client: the gold answer
// stays server-side until graded or revealed.
type quizItemView struct {
	Index    int    `json:"index"`
	PhraseID int64  `json:"phrase_id"`
	Question string `json:"question"`
	Answered bool   `json:"answered"`
	Correct  bool   `json:"correct"`
}

func (s *Server) handleBuildQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Folder    string `json:"folder"`
		Direction string `json:"direction"`
		Count     int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	direction := quiz.Direction(body.Direction)
	if direction == "" {
		direction = quiz.SourceToTarget
	}
	if direction != quiz.SourceToTarget && direction != quiz.TargetToSource {
		respondWithError(w, http.StatusBadRequest, "Unknown quiz direction")
		return
	}
	if body.Count <= 0 {
		respondWithError(w, http.StatusBadRequest, "Question count must be positive")
		return
	}

	items, err := s.generator.Build(body.Folder, direction, body.Count)
	if errors.Is(err, quiz.ErrNoPhrases) {
		respondWithError(w, http.StatusBadRequest, "Folder has no phrases to quiz on")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build quiz")
		return
	}

	s.mu.Lock()
	s.session.Replace(body.Folder, direction, items)
	s.mu.Unlock()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"folder":    body.Folder,
		"direction": direction,
		"count":     len(items),
	})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]quizItemView, len(s.session.Items))
	for i, item := range s.session.Items {
		result, answered := s.session.Results[i]
		views[i] = quizItemView{
			Index:    i,
			PhraseID: item.PhraseID,
			Question: item.Question,
			Answered: answered && result.Checked,
			Correct:  result.Correct,
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"folder":    s.session.Folder,
		"direction": s.session.Direction,
		"items":     views,
	})
}

func (s *Server) handleAnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index  int    `json:"index"`
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if body.Index < 0 || body.Index >= len(s.session.Items) {
		respondWithError(w, http.StatusBadRequest, "Question index out of range")
		return
	}

	item := s.session.Items[body.Index]
	result := quiz.Grade(body.Answer, item.Answer)
	s.session.Record(body.Index, result)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"correct":  result.Correct,
		"ratio":    result.Ratio,
		"expected": item.Answer,
	})
}

func (s *Server) handleRevealAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if body.Index < 0 || body.Index >= len(s.session.Items) {
		respondWithError(w, http.StatusBadRequest, "Question index out of range")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"answer": s.session.Items[body.Index].Answer,
	})
}

func (s *Server) handleQuizScore(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	answered, correct := s.session.Score()
	total := len(s.session.Items)
	s.mu.Unlock()

	respondWithJSON(w, http.StatusOK, map[string]int{
		"total":    total,
		"answered": answered,
		"correct":  correct,
	})
}

func (s *Server) handleResetQuiz(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.Clear()
	s.mu.Unlock()
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Quiz cleared"})
}

func (s *Server) handleResetResults(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.ResetResults()
	s.mu.Unlock()
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Results cleared"})
}
