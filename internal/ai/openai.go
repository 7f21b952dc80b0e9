// Package ai talks to the OpenAI API for translation, passage generation,
// speech transcription, answer evaluation and picture prompts. Every call
// degrades gracefully: callers treat a nil client or an error as "feature
// unavailable", never as a fatal condition.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

const (
	chatURL          = "https://api.openai.com/v1/chat/completions"
	transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"
	imageURL         = "https://api.openai.com/v1/images/generations"

	chatModel          = "gpt-4o-mini"
	transcriptionModel = "whisper-1"
	imageModel         = "dall-e-3"
)

// Client is a thin OpenAI API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// New creates a client from the OPENAI_API_KEY environment variable.
func New() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Message represents a message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chat sends one conversation to the chat completions API and returns the
// first choice, trimmed.
func (c *Client) chat(ctx context.Context, messages []Message, maxTokens int, temperature float64) (string, error) {
	request := ChatRequest{
		Model:       chatModel,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", chatURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// Translation is a bilingual phrase pair as returned by the model.
type Translation struct {
	English  string `json:"english"`
	Japanese string `json:"japanese"`
}

var japaneseRE = regexp.MustCompile(`[\p{Hiragana}\p{Katakana}\p{Han}]`)

// isJapanese reports whether the text contains Japanese script.
func isJapanese(text string) bool {
	return japaneseRE.MatchString(text)
}

// Translate completes a phrase pair from one side. Japanese input yields a
// natural English rendering and vice versa; the given side comes back
// unchanged.
func (c *Client) Translate(ctx context.Context, text string) (*Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("nothing to translate")
	}

	var prompt string
	if isJapanese(text) {
		prompt = fmt.Sprintf(
			"Translate the following Japanese text into natural, conversational English.\n\n"+
				"Japanese: %s\n\n"+
				"Respond with JSON only, in this exact shape: {\"english\": \"...\", \"japanese\": \"...\"}. "+
				"The japanese field must repeat the input unchanged.",
			text,
		)
	} else {
		prompt = fmt.Sprintf(
			"Translate the following English text into natural Japanese.\n\n"+
				"English: %s\n\n"+
				"Respond with JSON only, in this exact shape: {\"english\": \"...\", \"japanese\": \"...\"}. "+
				"The english field must repeat the input unchanged.",
			text,
		)
	}

	messages := []Message{
		{Role: "system", Content: "You are a translation assistant for an English learner whose native language is Japanese. Produce natural, everyday phrasing."},
		{Role: "user", Content: prompt},
	}

	content, err := c.chat(ctx, messages, 300, 0.3)
	if err != nil {
		return nil, err
	}

	var result Translation
	if err := json.Unmarshal([]byte(jsonSpan(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse translation response: %v", err)
	}
	if result.English == "" && result.Japanese == "" {
		return nil, fmt.Errorf("empty translation response")
	}

	// keep the caller's side authoritative
	if isJapanese(text) {
		result.Japanese = text
	} else {
		result.English = text
	}
	return &result, nil
}

// GeneratePassage asks for a TOEFL-style reading passage of roughly 150
// words on the given theme, with a Japanese translation.
func (c *Client) GeneratePassage(ctx context.Context, theme string) (*Translation, error) {
	prompt := fmt.Sprintf(
		"Write a TOEFL-style academic reading passage of about 150 words on the theme %q. "+
			"Then translate it into Japanese. "+
			"Respond with JSON only, in this exact shape: {\"english\": \"...\", \"japanese\": \"...\"}.",
		theme,
	)
	if strings.TrimSpace(theme) == "" {
		prompt = "Write a TOEFL-style academic reading passage of about 150 words on a theme of your choosing. " +
			"Then translate it into Japanese. " +
			"Respond with JSON only, in this exact shape: {\"english\": \"...\", \"japanese\": \"...\"}."
	}

	messages := []Message{
		{Role: "system", Content: "You write concise academic English passages for TOEFL listening and reading practice."},
		{Role: "user", Content: prompt},
	}

	content, err := c.chat(ctx, messages, 900, 0.8)
	if err != nil {
		return nil, err
	}

	var result Translation
	if err := json.Unmarshal([]byte(jsonSpan(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse passage response: %v", err)
	}
	if result.English == "" {
		return nil, fmt.Errorf("empty passage response")
	}
	return &result, nil
}

// transcriptionResponse is the whisper API response body.
type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Transcribe converts recorded speech into English text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to read audio: %v", err)
	}
	if err := writer.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}
	if err := writer.WriteField("language", "en"); err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", transcriptionURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	return strings.TrimSpace(response.Text), nil
}

// Evaluation scores a spoken answer against a prompt on a 0-5 scale per axis.
type Evaluation struct {
	Accuracy int    `json:"accuracy"`
	Fluency  int    `json:"fluency"`
	Clarity  int    `json:"clarity"`
	Content  int    `json:"content"`
	Feedback string `json:"feedback"`
}

// Evaluate grades a transcribed spoken answer against the task it responded
// to.
func (c *Client) Evaluate(ctx context.Context, task, answer string) (*Evaluation, error) {
	prompt := fmt.Sprintf(
		"A learner of English was given this speaking task:\n\n%s\n\n"+
			"Their transcribed answer was:\n\n%s\n\n"+
			"Score the answer from 0 to 5 on accuracy, fluency, clarity and content, "+
			"and give one short paragraph of feedback in Japanese. "+
			"Respond with JSON only, in this exact shape: "+
			"{\"accuracy\": 0, \"fluency\": 0, \"clarity\": 0, \"content\": 0, \"feedback\": \"...\"}.",
		task, answer,
	)

	messages := []Message{
		{Role: "system", Content: "You are an experienced English speaking examiner. Be fair and specific."},
		{Role: "user", Content: prompt},
	}

	content, err := c.chat(ctx, messages, 500, 0.3)
	if err != nil {
		return nil, err
	}

	var result Evaluation
	if err := json.Unmarshal([]byte(jsonSpan(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %v", err)
	}
	return &result, nil
}

// imageRequest is the image generations API request body.
type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

// imageResponse is the image generations API response body.
type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateImage produces a scene for picture-description practice and
// returns it as base64-encoded PNG data.
func (c *Client) GenerateImage(ctx context.Context, description string) (string, error) {
	request := imageRequest{
		Model:          imageModel,
		Prompt:         "A clear, realistic everyday scene for an English picture-description exercise: " + description,
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "b64_json",
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", imageURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Data) == 0 {
		return "", fmt.Errorf("no image data returned")
	}

	return response.Data[0].B64JSON, nil
}

// jsonSpan cuts the substring from the first '{' to the last '}' so that
// model chatter around the JSON payload does not break parsing. Returns the
// input unchanged when no brace pair is found.
func jsonSpan(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}
