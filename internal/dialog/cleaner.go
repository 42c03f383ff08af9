package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sswu-capstoneDesign2025/backend/internal/llm"
	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// ErrCleanTimeout reports that the model did not answer inside the cleaning
// deadline. The machine treats it as retryable; everything else is fatal.
var ErrCleanTimeout = errors.New("story cleaning timed out")

// CleanedStory is the refined form of a user-told story.
type CleanedStory struct {
	Title  string `json:"title"`
	Story  string `json:"cleaned_story"`
	Topic  string `json:"topic"`
	Region string `json:"region"`
}

// Cleaner refines a raw spoken story into a titled, classified record.
type Cleaner interface {
	Clean(ctx context.Context, text string) (CleanedStory, error)
}

var (
	storyRegions = []string{"서울", "부산", "대구", "인천", "광주", "대전", "용산", "세종"}
	storyTopics  = []string{"일상", "사랑", "설화"}
)

const (
	cleanDeadline    = 15 * time.Second
	cleanTemperature = 0.7
	cleanMaxTokens   = 800

	defaultTopic  = "기타"
	defaultRegion = "없음"
)

// LLMCleaner cleans stories through the chat-completion client.
type LLMCleaner struct {
	llm llm.Client
}

func NewLLMCleaner(client llm.Client) *LLMCleaner {
	return &LLMCleaner{llm: client}
}

func (c *LLMCleaner) Clean(ctx context.Context, text string) (CleanedStory, error) {
	prompt := fmt.Sprintf(`다음 사용자의 이야기를 정제하고, 다음 조건에 따라 주제와 지역을 분류해줘:

1. 표준어로 정제
2. 비속어 제거
3. 개인정보(이름, 번호, 주소 등) 제거
4. 이야기 주제는 다음 중 하나로 분류 (없으면 "%s"): %s
5. 지역은 다음 중 포함된 게 있다면 명시 (없으면 "%s"): %s

출력 형식은 JSON으로:
{
  "title": "...",
  "cleaned_story": "...",
  "topic": "...",
  "region": "..."
}

사용자 이야기:
"""%s"""`,
		defaultTopic, strings.Join(storyTopics, ", "),
		defaultRegion, strings.Join(storyRegions, ", "),
		text)

	ctx, cancel := context.WithTimeout(ctx, cleanDeadline)
	defer cancel()

	out, err := c.llm.Complete(ctx, "", prompt, cleanTemperature, cleanMaxTokens)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return CleanedStory{}, ErrCleanTimeout
		}
		return CleanedStory{}, fmt.Errorf("story cleaning: %w", err)
	}

	raw, ok := llm.ExtractJSONObject(out)
	if !ok {
		logger.Log.Warnf("cleaner response had no JSON object")
		return fallbackStory(text), nil
	}
	var story CleanedStory
	if err := json.Unmarshal([]byte(raw), &story); err != nil {
		logger.Log.Warnf("cleaner response parse failed: %v", err)
		return fallbackStory(text), nil
	}

	if story.Title == "" {
		story.Title = truncateRunes(text, 30)
	}
	if story.Story == "" {
		story.Story = text
	}
	if story.Topic == "" {
		story.Topic = defaultTopic
	}
	if story.Region == "" {
		story.Region = defaultRegion
	}
	return story, nil
}

// fallbackStory keeps the raw text when the model answer was unusable.
func fallbackStory(text string) CleanedStory {
	return CleanedStory{
		Title:  truncateRunes(text, 30),
		Story:  text,
		Topic:  defaultTopic,
		Region: defaultRegion,
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
