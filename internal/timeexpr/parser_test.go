package timeexpr

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		expr   Expr
		offset int
	}{
		{"오늘 날씨 어때", Today, 0},
		{"내일 비 와?", Tomorrow, 1},
		{"모레 서울 날씨", DayAfter, 2},
		{"글피 일정", TwoAfter, 3},
		{"어제 뉴스 알려줘", Yesterday, -1},
		{"5일 후 날씨", DaysLater, 5},
		{"이번 주 날씨 알려줘", ThisWeek, 0},
		{"다음주 예보", NextWeek, 0},
		{"이번달 날씨", ThisMonth, 0},
		{"다음 달 계획", NextMonth, 0},
		{"날씨 알려줘", Today, 0},
	}

	for _, tc := range cases {
		expr, offset := Parse(tc.in)
		if expr != tc.expr || offset != tc.offset {
			t.Errorf("Parse(%q) = (%v, %d), want (%v, %d)", tc.in, expr, offset, tc.expr, tc.offset)
		}
	}
}

func TestWeeklyTakesPriorityOverDaily(t *testing.T) {
	t.Parallel()

	expr, _ := Parse("이번 주 내일 날씨")
	if expr != ThisWeek {
		t.Fatalf("expected weekly expression to win, got %v", expr)
	}
}

func TestDateFilter(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 10, 13, 30, 0, 0, time.UTC)

	day, ok := DateFilter("어제 뉴스", now)
	if !ok {
		t.Fatal("expected a date filter for 어제")
	}
	if day.Year() != 2025 || day.Month() != 5 || day.Day() != 9 {
		t.Fatalf("unexpected resolved date: %v", day)
	}

	if _, ok := DateFilter("이번 주 뉴스", now); ok {
		t.Fatal("weekly expressions must not produce a single-day filter")
	}
}

func TestMentioned(t *testing.T) {
	t.Parallel()

	if Mentioned("삼성 주가 알려줘") {
		t.Fatal("no time expression present")
	}
	if !Mentioned("오늘 삼성 주가") {
		t.Fatal("오늘 should count as a time expression")
	}
}
