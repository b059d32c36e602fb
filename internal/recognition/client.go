// Package recognition turns meal photos, voice notes and free-form text into
// structured nutrition data via the OpenAI HTTP API. Raw net/http keeps the
// dependency surface small; responses are strict JSON with a tolerant parser
// in front.
package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/observability"
)

// ErrUnrecognized means the model could not identify food in the input.
var ErrUnrecognized = errors.New("could not recognize food in the input")

// Meal is the structured recognition result.
type Meal struct {
	FoodName string  `json:"food_name"`
	WeightG  float64 `json:"weight_g"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Fats     float64 `json:"fats_g"`
	Carbs    float64 `json:"carbs_g"`
	Fiber    float64 `json:"fiber_g"`
}

// Config carries the API settings.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	TranscribeModel string
	Timeout         time.Duration
	// MinInterval throttles calls to stay under the account's rate limit.
	MinInterval time.Duration
	MaxRetries  int
	// RetryBackoff is the initial delay before the first retry; it doubles on
	// each subsequent attempt.
	RetryBackoff time.Duration
}

// Client calls the chat completions and transcription endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *minInterval
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = "whisper-1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    newMinInterval(cfg.MinInterval),
	}
}

const mealSystemPrompt = `You are a nutrition assistant. Identify the meal and return a JSON object with:
- "food_name" (string, cleaned up)
- "weight_g" (number, estimated portion weight in grams)
- "calories" (number, total for the portion)
- "protein_g" (number)
- "fats_g" (number)
- "carbs_g" (number)
- "fiber_g" (number)

Always provide your best estimate. Only return {"error": "unrecognized"} if the input contains no food at all.
Return only valid JSON, no explanation.`

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type imageContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

// RecognizeText parses a free-form meal description.
func (c *Client) RecognizeText(ctx context.Context, description string) (*Meal, error) {
	messages := []chatMessage{
		{Role: "system", Content: mealSystemPrompt},
		{Role: "user", Content: description},
	}
	return c.recognize(ctx, "text", messages)
}

// RecognizePhoto parses a meal photo. The image is downscaled before upload
// to keep request sizes small.
func (c *Client) RecognizePhoto(ctx context.Context, jpegData []byte) (*Meal, error) {
	scaled, err := DownscaleJPEG(jpegData, maxImageDimension)
	if err != nil {
		return nil, fmt.Errorf("prepare image: %w", err)
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(scaled)

	content := []imageContent{
		{Type: "text", Text: "What meal is on this photo? Estimate its nutrition."},
		{Type: "image_url", ImageURL: &struct {
			URL string `json:"url"`
		}{URL: dataURL}},
	}
	messages := []chatMessage{
		{Role: "system", Content: mealSystemPrompt},
		{Role: "user", Content: content},
	}
	return c.recognize(ctx, "photo", messages)
}

// RecognizeVoice transcribes the audio and parses the transcript.
func (c *Client) RecognizeVoice(ctx context.Context, audio []byte, filename string) (*Meal, string, error) {
	transcript, err := c.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, "", err
	}
	meal, err := c.RecognizeText(ctx, transcript)
	return meal, transcript, err
}

func (c *Client) recognize(ctx context.Context, kind string, messages []chatMessage) (*Meal, error) {
	start := time.Now()
	content, err := c.chat(ctx, messages)
	observability.RecognitionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.RecognitionRequests.WithLabelValues(kind, "error").Inc()
		return nil, err
	}

	meal, err := ParseMeal(content)
	if err != nil {
		outcome := "parse_error"
		if errors.Is(err, ErrUnrecognized) {
			outcome = "unrecognized"
		}
		observability.RecognitionRequests.WithLabelValues(kind, outcome).Inc()
		return nil, err
	}
	observability.RecognitionRequests.WithLabelValues(kind, "ok").Inc()
	return meal, nil
}

// chat posts a completions request and returns the first choice content.
func (c *Client) chat(ctx context.Context, messages []chatMessage) (string, error) {
	if c.cfg.APIKey == "" {
		return "", errors.New("recognition API key is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:          c.cfg.Model,
		Messages:       messages,
		Temperature:    0,
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var content string
	err = c.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		respBytes, err := c.do(req)
		if err != nil {
			return err
		}

		var result struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(respBytes, &result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		if len(result.Choices) == 0 {
			return errors.New("no choices in response")
		}
		content = result.Choices[0].Message.Content
		return nil
	})
	return content, err
}

// Transcribe sends the audio to the transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", errors.New("recognition API key is not configured")
	}
	if filename == "" {
		filename = "voice.ogg"
	}

	var text string
	err := c.withRetry(ctx, func() error {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(audio); err != nil {
			return fmt.Errorf("write audio: %w", err)
		}
		if err := writer.WriteField("model", c.cfg.TranscribeModel); err != nil {
			return fmt.Errorf("write model field: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("close multipart: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/audio/transcriptions", &buf)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		respBytes, err := c.do(req)
		if err != nil {
			return err
		}
		var result struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(respBytes, &result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		if strings.TrimSpace(result.Text) == "" {
			return errors.New("empty transcription")
		}
		text = result.Text
		return nil
	})
	return text, err
}

// do rate-limits, executes and reads one request, classifying retryable
// status codes.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &retryableError{err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &retryableError{err: fmt.Errorf("api returned status %d: %s", resp.StatusCode, truncate(string(respBytes), 200))}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned status %d: %s", resp.StatusCode, truncate(string(respBytes), 200))
	}
	return respBytes, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
