package intent

import (
	"context"
	"strings"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Intent is the classified purpose of an utterance.
type Intent string

const (
	News    Intent = "news"
	Weather Intent = "weather"
	Story   Intent = "story"
	Invalid Intent = "invalid"
)

// RemoteClassifier is an optional external categorical model consulted when no
// marker fires. It returns a Korean label and a confidence in [0, 1].
type RemoteClassifier interface {
	Classify(ctx context.Context, text string) (label string, confidence float64, err error)
}

const confidenceThreshold = 0.7

var remoteLabels = map[string]Intent{
	"뉴스":  News,
	"날씨":  Weather,
	"이야기": Story,
}

// Marker tables, checked in order. News wins over weather wins over story so
// "비 온다는 뉴스" asks for news, not a forecast.
var markers = []struct {
	intent Intent
	words  []string
}{
	{News, []string{"뉴스", "기사", "속보", "보도", "이슈", "정보 알려줘", "최신 소식", "기사 알려줘", "기사 읽어줘", "소식"}},
	{Weather, []string{"날씨", "기온", "온도", "더워", "추워", "비 와", "비 오", "눈 와", "눈 오", "미세먼지", "우산"}},
	{Story, []string{"이야기", "얘기", "심심", "놀아줘", "지루해", "외로워", "뭐할까", "들려줘"}},
}

// Classifier decides which pipeline handles an utterance.
type Classifier struct {
	remote RemoteClassifier // nil means markers only
}

func NewClassifier(remote RemoteClassifier) *Classifier {
	return &Classifier{remote: remote}
}

// Classify returns the intent of the text, or Invalid when neither the marker
// tables nor the remote model recognize it confidently.
func (c *Classifier) Classify(ctx context.Context, text string) Intent {
	for _, group := range markers {
		for _, w := range group.words {
			if strings.Contains(text, w) {
				return group.intent
			}
		}
	}

	if c.remote != nil {
		label, confidence, err := c.remote.Classify(ctx, text)
		if err != nil {
			logger.Log.Warnf("remote classification failed: %v", err)
			return Invalid
		}
		if intent, ok := remoteLabels[label]; ok && confidence >= confidenceThreshold {
			return intent
		}
	}
	return Invalid
}
