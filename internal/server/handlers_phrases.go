package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/example/engstudy/internal/database"
	"github.com/example/engstudy/pkg/models"
)

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.folders.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list folders")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := s.folders.Create(body.Name)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !created {
		respondWithError(w, http.StatusConflict, "Folder already exists")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"name": strings.TrimSpace(body.Name)})
}

func (s *Server) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	folder := mux.Vars(r)["folder"]
	phrases, err := s.phrases.GetByFolder(folder)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list phrases")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"folder": folder, "phrases": phrases})
}

func (s *Server) handleCreatePhrase(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Folder     string `json:"folder"`
		SourceText string `json:"source_text"`
		TargetText string `json:"target_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	body.SourceText = strings.TrimSpace(body.SourceText)
	body.TargetText = strings.TrimSpace(body.TargetText)
	if body.SourceText == "" && body.TargetText == "" {
		respondWithError(w, http.StatusBadRequest, "Phrase needs at least one side of text")
		return
	}

	if body.Folder == "" {
		body.Folder = database.DefaultFolder
	}
	exists, err := s.folders.Exists(body.Folder)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to check folder")
		return
	}
	if !exists {
		respondWithError(w, http.StatusBadRequest, "Folder does not exist")
		return
	}

	phrase := &models.Phrase{
		Folder:     body.Folder,
		SourceText: body.SourceText,
		TargetText: body.TargetText,
	}
	if err := s.phrases.Create(phrase); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save phrase")
		return
	}
	respondWithJSON(w, http.StatusCreated, phrase)
}

func (s *Server) handleUpdatePhrase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phrase id")
		return
	}

	var body struct {
		SourceText string `json:"source_text"`
		TargetText string `json:"target_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err = s.phrases.Update(id, strings.TrimSpace(body.SourceText), strings.TrimSpace(body.TargetText))
	if errors.Is(err, database.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Phrase not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update phrase")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Phrase updated"})
}

func (s *Server) handleDeletePhrase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phrase id")
		return
	}

	err = s.phrases.Delete(id)
	if errors.Is(err, database.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Phrase not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete phrase")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Phrase deleted"})
}

func (s *Server) handleExportPhrases(w http.ResponseWriter, r *http.Request) {
	records, err := s.phrases.ExportAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export phrases")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="phrases.json"`)
	respondWithJSON(w, http.StatusOK, records)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if !s.aiAvailable(w) {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "Nothing to translate")
		return
	}

	translation, err := s.ai.Translate(r.Context(), body.Text)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Translation failed: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, translation)
}
