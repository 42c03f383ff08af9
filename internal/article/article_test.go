package article

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestRelevanceDeterministic(t *testing.T) {
	t.Parallel()

	text := "서울 시내 지하철 요금이 인상됩니다. 서울시는 다음 달부터 적용한다고 밝혔습니다."
	first := Relevance(text, "서울 지하철 요금")
	second := Relevance(text, "서울 지하철 요금")
	if first != second {
		t.Fatalf("relevance must be deterministic: %d vs %d", first, second)
	}
	if first != 3 {
		t.Fatalf("expected all three tokens to match, got %d", first)
	}
}

func TestRelevanceCaseInsensitive(t *testing.T) {
	t.Parallel()

	if Relevance("Samsung Electronics posted record profit", "SAMSUNG profit") != 2 {
		t.Fatal("matching must ignore case")
	}
}

func TestRelevanceZeroMeansDiscard(t *testing.T) {
	t.Parallel()

	if got := Relevance("날씨가 아주 맑고 화창합니다", "코스피 환율"); got != 0 {
		t.Fatalf("unrelated article must score zero, got %d", got)
	}
}

func TestCollectRelevantSkipsFailuresAndStopsAtTarget(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"u1": "삼성 반도체 실적 발표",
		"u2": "",                // empty body
		"u3": "오늘 점심 메뉴 추천",    // irrelevant
		"u5": "삼성 주가 상승",
		"u6": "삼성 신제품 공개 행사 안내",
		"u7": "삼성 협력사 간담회", // beyond the early-exit point
	}

	f := NewFetcher()
	f.fetch = func(url string, _ time.Duration) (string, error) {
		if url == "u4" {
			return "", fmt.Errorf("connection refused")
		}
		return pages[url], nil
	}

	got := f.CollectRelevant(context.Background(), []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}, "삼성")
	if len(got) != 3 {
		t.Fatalf("expected exactly 3 accepted articles, got %d", len(got))
	}
	want := []string{"u1", "u5", "u6"}
	for i, rec := range got {
		if rec.URL != want[i] {
			t.Fatalf("accepted[%d] = %s, want %s", i, rec.URL, want[i])
		}
	}
}

func TestCollectRelevantFewerThanTargetIsFine(t *testing.T) {
	t.Parallel()

	f := NewFetcher()
	f.fetch = func(url string, _ time.Duration) (string, error) {
		return "삼성 관련 단신", nil
	}

	got := f.CollectRelevant(context.Background(), []string{"only"}, "삼성")
	if len(got) != 1 {
		t.Fatalf("expected 1 accepted article, got %d", len(got))
	}
}
