package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/engstudy/internal/importer"
)

// previewTTL bounds how long an uncommitted preview is kept.
const previewTTL = time.Hour

// handleImportPreview accepts a multipart upload: a "file" part holding the
// CSV or xlsx data and a "config" part holding the importer.Config JSON. It
// materializes the preview and hands back an id for the commit call.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	var cfg importer.Config
	cfg.Mapping.FolderCol = -1
	if raw := r.FormValue("config"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid import config")
			return
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		rows, err = importer.ReadExcel(file)
	case ".tsv":
		rows, err = importer.ReadCSV(file, '\t')
	default:
		rows, err = importer.ReadCSV(file, 0)
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := s.importer.BuildPreview(r.Context(), rows, cfg)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New().String()

	s.mu.Lock()
	for key, stored := range s.previews {
		if time.Since(stored.createdAt) > previewTTL {
			delete(s.previews, key)
		}
	}
	s.previews[id] = &storedPreview{preview: preview, config: cfg, createdAt: time.Now()}
	s.mu.Unlock()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"preview_id": id,
		"rows":       preview.Rows,
		"warnings":   preview.Warnings,
	})
}

// handleImportCommit writes a previously previewed import. The preview is
// consumed whether or not every row lands.
func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PreviewID string `json:"preview_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	stored, ok := s.previews[body.PreviewID]
	if ok {
		delete(s.previews, body.PreviewID)
	}
	s.mu.Unlock()

	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown or expired preview")
		return
	}

	result, err := s.importer.Commit(stored.preview, stored.config)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Import failed: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
