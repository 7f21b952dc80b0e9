package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/engstudy/internal/ai"
	"github.com/example/engstudy/internal/passage"
)

func (s *Server) handleListPassages(w http.ResponseWriter, r *http.Request) {
	passages, err := s.passages.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list passages")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"passages": passages})
}

func (s *Server) handleGeneratePassage(w http.ResponseWriter, r *http.Request) {
	if !s.aiAvailable(w) {
		return
	}

	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	generated, err := s.ai.GeneratePassage(r.Context(), body.Theme)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Passage generation failed: "+err.Error())
		return
	}

	week, err := s.passages.NextWeekNum()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to read passages")
		return
	}

	p := passage.Passage{
		WeekNum:      week,
		EnglishText:  generated.English,
		JapaneseText: generated.Japanese,
	}
	if err := s.passages.Add(p); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save passage")
		return
	}
	respondWithJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePassageAudio(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid week number")
		return
	}

	p, err := s.passages.Get(week)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	base := filepath.Join(s.audioDir, fmt.Sprintf("week_%d", week))
	written, err := s.tts.Synthesize(r.Context(), p.EnglishText, base)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Speech synthesis failed: "+err.Error())
		return
	}

	audioFile := filepath.Base(written)
	if err := s.passages.SetAudio(week, audioFile); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record audio file")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"week_num":   week,
		"audio_file": audioFile,
	})
}

func (s *Server) handleListRecordings(w http.ResponseWriter, r *http.Request) {
	entries, err := s.recordings.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"recordings": entries})
}

// handleUploadRecording stores a practice recording, then tries
// transcription and evaluation. Collaborator trouble downgrades the
// response instead of failing the upload: the audio is already safe on
// disk.
func (s *Server) handleUploadRecording(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing audio upload")
		return
	}
	defer file.Close()

	wav, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read audio upload")
		return
	}

	category := r.FormValue("category")
	englishText := r.FormValue("english_text")
	japaneseText := r.FormValue("japanese_text")

	entry, err := s.recordings.Save(category, englishText, japaneseText, wav)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save recording")
		return
	}

	response := map[string]interface{}{"recording": entry}

	if r.FormValue("evaluate") == "true" {
		transcript, evaluation, warning := s.evaluateRecording(r, entry.Filename, wav, englishText)
		response["transcript"] = transcript
		if evaluation != nil {
			response["evaluation"] = evaluation
		}
		if warning != "" {
			response["warning"] = warning
		}
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (s *Server) evaluateRecording(r *http.Request, filename string, wav []byte, task string) (string, *ai.Evaluation, string) {
	if s.ai == nil {
		return "", nil, "AI features are not configured; recording saved without evaluation"
	}

	transcript, err := s.ai.Transcribe(r.Context(), filename, bytes.NewReader(wav))
	if err != nil {
		return "", nil, "Transcription failed; recording saved without evaluation"
	}

	evaluation, err := s.ai.Evaluate(r.Context(), task, transcript)
	if err != nil {
		return transcript, nil, "Evaluation failed; recording saved with transcript only"
	}
	return transcript, evaluation, ""
}

func (s *Server) handleRecordingAudio(w http.ResponseWriter, r *http.Request) {
	data, err := s.recordings.Open(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handlePicturePractice(w http.ResponseWriter, r *http.Request) {
	if !s.aiAvailable(w) {
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	image, err := s.ai.GenerateImage(r.Context(), body.Description)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Image generation failed: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"image_b64": image})
}
