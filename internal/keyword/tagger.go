package keyword

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Token is one morpheme produced by the part-of-speech tagger.
type Token struct {
	Text string `json:"text"`
	POS  string `json:"pos"`
}

// Tagger segments Korean text into tagged morphemes. Empty input yields an
// empty result; taggers do not fail in a way callers need to distinguish.
type Tagger interface {
	Tag(ctx context.Context, text string) []Token
}

// RemoteTagger calls an external POS tagging service over HTTP.
type RemoteTagger struct {
	endpoint string
	client   *http.Client
}

func NewRemoteTagger(endpoint string) *RemoteTagger {
	return &RemoteTagger{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

var _ Tagger = (*RemoteTagger)(nil)

type tagRequest struct {
	Text string `json:"text"`
}

type tagResponse struct {
	Tokens []Token `json:"tokens"`
}

// Tag returns the service's morphemes, or nothing when the service is
// unreachable. A missing tagger degrades keyword extraction to its fallback
// path instead of failing the request.
func (t *RemoteTagger) Tag(ctx context.Context, text string) []Token {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	payload, err := json.Marshal(tagRequest{Text: text})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.client.Do(req)
	if err != nil {
		logger.Log.Warnf("tagger request failed: %v", err)
		return nil
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		logger.Log.Warnf("tagger response unusable: status=%d err=%v", res.StatusCode, err)
		return nil
	}

	var out tagResponse
	if err := json.Unmarshal(body, &out); err != nil {
		logger.Log.Warnf("tagger response parse failed: %v", err)
		return nil
	}
	return out.Tokens
}

func (t *RemoteTagger) String() string {
	return fmt.Sprintf("RemoteTagger(%s)", t.endpoint)
}
