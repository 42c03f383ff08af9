package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"time"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Transcriber turns a locally stored audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// ClovaSpeechConfig holds the CLOVA Speech long-sentence recognizer settings.
type ClovaSpeechConfig struct {
	DomainID     string
	InvokeSecret string
	APIKey       string
}

// ClovaSpeech is the CLOVA Speech recognizer/upload client.
type ClovaSpeech struct {
	cfg     ClovaSpeechConfig
	client  *http.Client
	baseURL string
}

func NewClovaSpeech(cfg ClovaSpeechConfig) *ClovaSpeech {
	return &ClovaSpeech{
		cfg:     cfg,
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: "https://clovaspeech-gw.ncloud.com",
	}
}

type clovaSpeechResult struct {
	Result string `json:"result"`
	Text   string `json:"text"`
	Message string `json:"message"`
}

// Transcribe uploads the audio file and returns the recognized full text.
func (c *ClovaSpeech) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if c.cfg.DomainID == "" || c.cfg.InvokeSecret == "" || c.cfg.APIKey == "" {
		return "", fmt.Errorf("clova speech credentials are not configured")
	}

	audio, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer audio.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	media, err := writer.CreateFormFile("media", audioPath)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(media, audio); err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	params, err := json.Marshal(map[string]any{
		"language":      "ko-KR",
		"completion":    "sync",
		"fullText":      true,
		"wordAlignment": true,
	})
	if err != nil {
		return "", fmt.Errorf("build params: %w", err)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="params"`)
	header.Set("Content-Type", "application/json")
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build params part: %w", err)
	}
	if _, err := part.Write(params); err != nil {
		return "", fmt.Errorf("write params: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finish upload: %w", err)
	}

	url := fmt.Sprintf("%s/external/v1/%s/%s/recognizer/upload",
		c.baseURL, c.cfg.DomainID, c.cfg.InvokeSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-CLOVASPEECH-API-KEY", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("clova speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("clova speech status %d: %s", resp.StatusCode, string(raw))
	}

	var result clovaSpeechResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode clova speech response: %w", err)
	}
	if result.Result != "SUCCESS" && result.Result != "COMPLETED" {
		return "", fmt.Errorf("clova speech result %s: %s", result.Result, result.Message)
	}

	logger.Log.Infof("transcribed %s: %d chars", audioPath, len(result.Text))
	return result.Text, nil
}
