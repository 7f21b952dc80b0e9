// Package server exposes the study application over HTTP: phrase and folder
// management, quizzes, bulk import, the study log, weekly passages and
// speaking practice. The app is single-user; one mutex serializes the quiz
// session and pending import previews.
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/example/engstudy/internal/ai"
	"github.com/example/engstudy/internal/database"
	"github.com/example/engstudy/internal/importer"
	"github.com/example/engstudy/internal/passage"
	"github.com/example/engstudy/internal/quiz"
	"github.com/example/engstudy/internal/recordings"
	"github.com/example/engstudy/internal/speech"
)

// Server wires the repositories and collaborator clients into HTTP
// handlers.
type Server struct {
	folders  *database.FolderRepository
	phrases  *database.PhraseRepository
	studyLog *database.StudyLogRepository

	generator  *quiz.Generator
	importer   *importer.Importer
	ai         *ai.Client // nil when no API key is configured
	tts        *speech.Synthesizer
	passages   *passage.Store
	recordings *recordings.Log
	audioDir   string

	mu       sync.Mutex
	session  *quiz.Session
	previews map[string]*storedPreview
}

// storedPreview is a materialized import preview waiting for its commit
// call.
type storedPreview struct {
	preview   *importer.Preview
	config    importer.Config
	createdAt time.Time
}

// Config carries the dependencies for a server.
type Config struct {
	Folders    *database.FolderRepository
	Phrases    *database.PhraseRepository
	StudyLog   *database.StudyLogRepository
	Generator  *quiz.Generator
	Importer   *importer.Importer
	AI         *ai.Client
	TTS        *speech.Synthesizer
	Passages   *passage.Store
	Recordings *recordings.Log
	AudioDir   string
}

// New creates a server.
func New(cfg Config) *Server {
	return &Server{
		folders:    cfg.Folders,
		phrases:    cfg.Phrases,
		studyLog:   cfg.StudyLog,
		generator:  cfg.Generator,
		importer:   cfg.Importer,
		ai:         cfg.AI,
		tts:        cfg.TTS,
		passages:   cfg.Passages,
		recordings: cfg.Recordings,
		audioDir:   cfg.AudioDir,
		session:    quiz.NewSession(),
		previews:   map[string]*storedPreview{},
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/folders", s.handleListFolders).Methods("GET")
	api.HandleFunc("/folders", s.handleCreateFolder).Methods("POST")
	api.HandleFunc("/folders/{folder}/phrases", s.handleListPhrases).Methods("GET")

	api.HandleFunc("/phrases", s.handleCreatePhrase).Methods("POST")
	api.HandleFunc("/phrases/export", s.handleExportPhrases).Methods("GET")
	api.HandleFunc("/phrases/{id:[0-9]+}", s.handleUpdatePhrase).Methods("PUT")
	api.HandleFunc("/phrases/{id:[0-9]+}", s.handleDeletePhrase).Methods("DELETE")

	api.HandleFunc("/translate", s.handleTranslate).Methods("POST")

	api.HandleFunc("/quiz", s.handleBuildQuiz).Methods("POST")
	api.HandleFunc("/quiz", s.handleGetQuiz).Methods("GET")
	api.HandleFunc("/quiz/answer", s.handleAnswerQuiz).Methods("POST")
	api.HandleFunc("/quiz/reveal", s.handleRevealAnswer).Methods("POST")
	api.HandleFunc("/quiz/score", s.handleQuizScore).Methods("GET")
	api.HandleFunc("/quiz/reset", s.handleResetQuiz).Methods("POST")
	api.HandleFunc("/quiz/reset-results", s.handleResetResults).Methods("POST")

	api.HandleFunc("/import/preview", s.handleImportPreview).Methods("POST")
	api.HandleFunc("/import/commit", s.handleImportCommit).Methods("POST")

	api.HandleFunc("/studylog", s.handleListStudyLog).Methods("GET")
	api.HandleFunc("/studylog", s.handleAddStudyLog).Methods("POST")
	api.HandleFunc("/studylog/summary", s.handleStudyLogSummary).Methods("GET")

	api.HandleFunc("/passages", s.handleListPassages).Methods("GET")
	api.HandleFunc("/passages/generate", s.handleGeneratePassage).Methods("POST")
	api.HandleFunc("/passages/{week:[0-9]+}/audio", s.handlePassageAudio).Methods("POST")

	api.HandleFunc("/recordings", s.handleListRecordings).Methods("GET")
	api.HandleFunc("/recordings", s.handleUploadRecording).Methods("POST")
	api.HandleFunc("/recordings/{id}/audio", s.handleRecordingAudio).Methods("GET")

	api.HandleFunc("/practice/picture", s.handlePicturePractice).Methods("POST")

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// aiAvailable guards endpoints that need the OpenAI client.
func (s *Server) aiAvailable(w http.ResponseWriter) bool {
	if s.ai == nil {
		respondWithError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return false
	}
	return true
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
