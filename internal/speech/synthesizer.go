// Package speech renders English text to audio. Google Cloud Text-to-Speech
// is the primary engine; when no cloud credentials are available it falls
// back to the local espeak binary so listening practice keeps working
// offline.
package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// Synthesizer turns text into audio files.
type Synthesizer struct {
	client *texttospeech.Client
}

// New creates a synthesizer. A failed Google client setup is not fatal:
// the synthesizer then runs on the espeak fallback only.
func New(ctx context.Context) *Synthesizer {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return &Synthesizer{}
	}
	return &Synthesizer{client: client}
}

// Close releases the cloud client, if any.
func (s *Synthesizer) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Synthesize writes spoken audio for text to outputPath. The cloud engine
// produces MP3; the fallback produces WAV. The actual extension of the
// written file is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outputPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %v", err)
	}

	if s.client != nil {
		path := withExt(outputPath, ".mp3")
		if err := s.synthesizeCloud(ctx, text, path); err == nil {
			return path, nil
		}
	}

	path := withExt(outputPath, ".wav")
	if err := synthesizeEspeak(ctx, text, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Synthesizer) synthesizeCloud(ctx context.Context, text, outputPath string) error {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
			Name:         "en-US-Standard-F",
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("SynthesizeSpeech: %v", err)
	}

	if err := os.WriteFile(outputPath, resp.AudioContent, 0644); err != nil {
		return fmt.Errorf("WriteFile: %v", err)
	}
	return nil
}

// synthesizeEspeak shells out to espeak for offline synthesis.
func synthesizeEspeak(ctx context.Context, text, outputPath string) error {
	cmd := exec.CommandContext(ctx, "espeak", "-v", "en-us", "-w", outputPath, text)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak failed: %v: %s", err, output)
	}
	return nil
}

func withExt(path, ext string) string {
	if old := filepath.Ext(path); old != "" {
		return path[:len(path)-len(old)] + ext
	}
	return path + ext
}
