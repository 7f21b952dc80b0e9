package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/engstudy/internal/ai"
	"github.com/example/engstudy/internal/database"
	"github.com/example/engstudy/internal/importer"
	"github.com/example/engstudy/internal/passage"
	"github.com/example/engstudy/internal/quiz"
	"github.com/example/engstudy/internal/recordings"
	"github.com/example/engstudy/internal/server"
	"github.com/example/engstudy/internal/speech"
)

// aiTranslator adapts the OpenAI client to the importer's translator
// interface.
type aiTranslator struct {
	client *ai.Client
}

func (t aiTranslator) Translate(ctx context.Context, text string) (string, string, error) {
	translation, err := t.client.Translate(ctx, text)
	if err != nil {
		return "", "", err
	}
	return translation.English, translation.Japanese, nil
}

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	folders := database.NewFolderRepository()
	phrases := database.NewPhraseRepository()
	studyLog := database.NewStudyLogRepository()

	var aiClient *ai.Client
	var translator importer.Translator
	if client, err := ai.New(); err != nil {
		log.Printf("AI features disabled: %v", err)
	} else {
		aiClient = client
		translator = aiTranslator{client: client}
	}

	tts := speech.New(ctx)
	defer tts.Close()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	srv := server.New(server.Config{
		Folders:    folders,
		Phrases:    phrases,
		StudyLog:   studyLog,
		Generator:  quiz.NewGenerator(phrases, nil),
		Importer:   importer.New(folders, phrases, translator),
		AI:         aiClient,
		TTS:        tts,
		Passages:   passage.NewStore(filepath.Join(dataDir, "passages.json")),
		Recordings: recordings.NewLog(filepath.Join(dataDir, "recordings")),
		AudioDir:   filepath.Join(dataDir, "audio"),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("Listening on :%s. Press Ctrl+C to stop.", port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	log.Println("Server stopped successfully")
}
