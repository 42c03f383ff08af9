package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Synthesizer turns a response text into a playable audio file and returns
// its public path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// ClovaVoiceConfig holds the CLOVA Voice premium TTS settings.
type ClovaVoiceConfig struct {
	ClientID     string
	ClientSecret string
	Speaker      string // defaults to nara
	OutputDir    string // defaults to ./static/tts
}

const (
	maxSynthesisRunes = 5000
	// Anything shorter than this is an error page, not audio.
	minAudioBytes = 500
)

// ClovaVoice is the CLOVA Voice premium TTS client. Synthesized files are
// written under the static tts directory and served by the HTTP layer.
type ClovaVoice struct {
	cfg      ClovaVoiceConfig
	client   *http.Client
	endpoint string
}

func NewClovaVoice(cfg ClovaVoiceConfig) *ClovaVoice {
	if cfg.Speaker == "" {
		cfg.Speaker = "nara"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./static/tts"
	}
	return &ClovaVoice{
		cfg:      cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: "https://naveropenapi.apigw.ntruss.com/tts-premium/v1/tts",
	}
}

// Synthesize renders the text to an mp3 file and returns its /static path.
// Input longer than the service limit is truncated here, not rejected.
func (c *ClovaVoice) Synthesize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("synthesis text is empty")
	}
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", fmt.Errorf("clova voice credentials are not configured")
	}

	if runes := []rune(text); len(runes) > maxSynthesisRunes {
		text = string(runes[:maxSynthesisRunes])
	}

	form := url.Values{}
	form.Set("speaker", c.cfg.Speaker)
	form.Set("volume", "0")
	form.Set("speed", "0")
	form.Set("pitch", "0")
	form.Set("format", "mp3")
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-NCP-APIGW-API-KEY-ID", c.cfg.ClientID)
	req.Header.Set("X-NCP-APIGW-API-KEY", c.cfg.ClientSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("clova voice request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("clova voice status %d: %s", resp.StatusCode, string(raw))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if len(audio) < minAudioBytes {
		return "", fmt.Errorf("synthesized audio too small: %d bytes", len(audio))
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	filename := fmt.Sprintf("tts_%s_%s.mp3",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(c.cfg.OutputDir, filename)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	logger.Log.Infof("synthesized %d bytes to %s", len(audio), path)
	return "/static/tts/" + filename, nil
}
