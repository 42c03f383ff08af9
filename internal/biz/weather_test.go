package biz

import (
	"context"
	"os"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/geo"
	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
	"github.com/sswu-capstoneDesign2025/backend/internal/timeexpr"
)

type fakeProvider struct {
	lastLocation string
	lastExpr     timeexpr.Expr
	lastOffset   int
}

func (f *fakeProvider) Report(_ context.Context, location string, expr timeexpr.Expr, offset int) (string, error) {
	f.lastLocation = location
	f.lastExpr = expr
	f.lastOffset = offset
	return location + " 맑음", nil
}

func newTestWeather(provider *fakeProvider) *WeatherUseCase {
	hierarchy := geo.New(map[string][]string{
		"서울":  {},
		"성남시": {"경기도"},
		"분당구": {"성남시", "경기도"},
	})
	return NewWeatherUseCase(provider, hierarchy, keyword.NewVocab(), log.NewStdLogger(os.Stderr))
}

func TestResolveExpandsLocationChain(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{}
	uc := newTestWeather(provider)

	result, err := uc.Resolve(context.Background(), "분당구 내일 날씨 어때?")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Location != "경기도 성남시 분당구" {
		t.Errorf("location = %q", result.Location)
	}
	if provider.lastExpr != timeexpr.Tomorrow || provider.lastOffset != 1 {
		t.Errorf("expr = %q offset = %d", provider.lastExpr, provider.lastOffset)
	}
}

func TestResolveStripsParticle(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{}
	uc := newTestWeather(provider)

	result, err := uc.Resolve(context.Background(), "성남시의 오늘 날씨 알려줘")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Location != "경기도 성남시" {
		t.Errorf("location = %q", result.Location)
	}
	if provider.lastExpr != timeexpr.Today {
		t.Errorf("expr = %q", provider.lastExpr)
	}
}

func TestResolveFallsBackToDefaultLocation(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{}
	uc := newTestWeather(provider)

	result, err := uc.Resolve(context.Background(), "오늘 날씨 어때?")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Location != defaultLocation {
		t.Errorf("location = %q, want default", result.Location)
	}
}
