package biz

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/geo"
	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
	"github.com/sswu-capstoneDesign2025/backend/internal/timeexpr"
	"github.com/sswu-capstoneDesign2025/backend/internal/weather"
)

const defaultLocation = "서울"

// WeatherResult is the answer to a weather question.
type WeatherResult struct {
	Location string
	When     timeexpr.Expr
	Summary  string
}

// WeatherUseCase resolves a spoken weather question: it finds the place,
// widens it through the location hierarchy, parses the time expression, and
// asks the provider.
type WeatherUseCase struct {
	provider  weather.Provider
	hierarchy *geo.Hierarchy
	vocab     *keyword.Vocab
	log       *log.Helper
}

func NewWeatherUseCase(provider weather.Provider, hierarchy *geo.Hierarchy, vocab *keyword.Vocab, logger log.Logger) *WeatherUseCase {
	return &WeatherUseCase{
		provider:  provider,
		hierarchy: hierarchy,
		vocab:     vocab,
		log:       log.NewHelper(logger),
	}
}

// Resolve answers the question in text.
func (uc *WeatherUseCase) Resolve(ctx context.Context, text string) (*WeatherResult, error) {
	location := uc.locationIn(text)
	full := uc.fullLocation(location)
	expr, offset := timeexpr.Parse(text)

	uc.log.Infof("weather question: location=%s when=%s offset=%d", full, expr, offset)
	summary, err := uc.provider.Report(ctx, full, expr, offset)
	if err != nil {
		return nil, err
	}
	return &WeatherResult{Location: full, When: expr, Summary: summary}, nil
}

// locationIn picks the first known place name mentioned in the text.
func (uc *WeatherUseCase) locationIn(text string) string {
	for _, token := range strings.Fields(text) {
		token = strings.TrimRight(token, ".,!?")
		if uc.hierarchy.Known(token) || uc.vocab.IsLocation(token) {
			return token
		}
		// Particles stick to place names in speech ("성남시의", "부산은").
		for _, suffix := range []string{"의", "은", "는", "이", "가", "에", "에서", "으로"} {
			trimmed := strings.TrimSuffix(token, suffix)
			if trimmed != token && (uc.hierarchy.Known(trimmed) || uc.vocab.IsLocation(trimmed)) {
				return trimmed
			}
		}
	}
	return defaultLocation
}

// fullLocation renders the hierarchy chain broad-to-specific without the
// national root, e.g. "경기도 성남시 분당구".
func (uc *WeatherUseCase) fullLocation(token string) string {
	chain := uc.hierarchy.Expand(token)
	if len(chain) > 0 && chain[len(chain)-1] == geo.Root {
		chain = chain[:len(chain)-1]
	}
	parts := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		parts = append(parts, chain[i])
	}
	return strings.Join(parts, " ")
}
