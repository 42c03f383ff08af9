package intent

import (
	"context"
	"errors"
	"testing"
)

type fakeRemote struct {
	label      string
	confidence float64
	err        error
}

func (f *fakeRemote) Classify(_ context.Context, _ string) (string, float64, error) {
	return f.label, f.confidence, f.err
}

func TestClassifyMarkers(t *testing.T) {
	t.Parallel()
	c := NewClassifier(nil)
	cases := []struct {
		text string
		want Intent
	}{
		{"오늘 속보 있어?", News},
		{"최신 소식 좀 알려줘", News},
		{"내일 날씨 어때?", Weather},
		{"밖에 비 오고 있어?", Weather},
		{"심심한데 얘기하자", Story},
		{"재밌는 이야기 들려줘", Story},
		{"비 온다는 뉴스 있어?", News},
		{"점심 뭐 먹지", Invalid},
	}
	for _, tc := range cases {
		if got := c.Classify(context.Background(), tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestClassifyRemoteFallback(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		remote *fakeRemote
		want   Intent
	}{
		{"confident weather", &fakeRemote{label: "날씨", confidence: 0.92}, Weather},
		{"confident news", &fakeRemote{label: "뉴스", confidence: 0.88}, News},
		{"below threshold", &fakeRemote{label: "뉴스", confidence: 0.4}, Invalid},
		{"unknown label", &fakeRemote{label: "노래", confidence: 0.95}, Invalid},
		{"remote error", &fakeRemote{err: errors.New("timeout")}, Invalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClassifier(tc.remote)
			if got := c.Classify(context.Background(), "점심 뭐 먹지"); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyMarkerBeatsRemote(t *testing.T) {
	t.Parallel()
	c := NewClassifier(&fakeRemote{label: "날씨", confidence: 0.99})
	if got := c.Classify(context.Background(), "속보 알려줘"); got != News {
		t.Errorf("got %q, want news", got)
	}
}
