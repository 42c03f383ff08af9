package biz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/dialog"
	"github.com/sswu-capstoneDesign2025/backend/internal/intent"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

type fakeSynthesizer struct {
	ref   string
	err   error
	calls int
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.ref, nil
}

type stubStore struct{}

func (stubStore) SaveStory(context.Context, dialog.Story) error        { return nil }
func (stubStore) ListShared(context.Context) ([]dialog.Story, error)   { return nil, nil }

type stubCleaner struct{}

func (stubCleaner) Clean(_ context.Context, text string) (dialog.CleanedStory, error) {
	return dialog.CleanedStory{Title: "제목", Story: text, Topic: "기타", Region: "없음"}, nil
}

func newTestAssistant(t *testing.T, stt *fakeTranscriber, tts *fakeSynthesizer) *AssistantUseCase {
	t.Helper()
	machine := dialog.NewMachine(stubStore{}, stubCleaner{})
	return NewAssistantUseCase(
		stt, tts,
		intent.NewClassifier(nil),
		machine,
		nil, nil,
		filepath.Join(t.TempDir(), "uploads"),
		log.NewStdLogger(os.Stderr),
	)
}

func TestProcessStoryTurnKeepsAudioAndState(t *testing.T) {
	stt := &fakeTranscriber{text: "심심한데 얘기하자"}
	tts := &fakeSynthesizer{ref: "/static/tts/x.mp3"}
	uc := newTestAssistant(t, stt, tts)

	result, err := uc.Process(context.Background(), []byte("audio"), "initial", "민수")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Type != "story" {
		t.Errorf("type = %q", result.Type)
	}
	if result.NextState != dialog.StateAwaitingChoice {
		t.Errorf("next state = %q", result.NextState)
	}
	if result.AudioURL != "/static/tts/x.mp3" {
		t.Errorf("audio = %q", result.AudioURL)
	}
	if result.TranscribedText != "심심한데 얘기하자" {
		t.Errorf("transcribed = %q", result.TranscribedText)
	}
}

func TestProcessEmptyTranscriptionIsClientError(t *testing.T) {
	uc := newTestAssistant(t, &fakeTranscriber{text: "   "}, &fakeSynthesizer{})

	_, err := uc.Process(context.Background(), []byte("audio"), "initial", "")
	if !kerrors.IsBadRequest(err) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestProcessTranscriptionFailureIsServerError(t *testing.T) {
	uc := newTestAssistant(t, &fakeTranscriber{err: errors.New("service down")}, &fakeSynthesizer{})

	_, err := uc.Process(context.Background(), []byte("audio"), "initial", "")
	if !kerrors.IsInternalServer(err) {
		t.Errorf("err = %v, want internal server", err)
	}
}

func TestProcessInvalidEscalatesThenResets(t *testing.T) {
	stt := &fakeTranscriber{text: "점심 뭐 먹지"}
	uc := newTestAssistant(t, stt, &fakeSynthesizer{ref: "/static/tts/x.mp3"})

	first, err := uc.Process(context.Background(), []byte("audio"), "initial", "")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Type != "invalid" || first.NextState != dialog.StateInvalidRepeat {
		t.Errorf("first = %+v", first)
	}
	if first.Response != askAgainResponse {
		t.Errorf("first response = %q", first.Response)
	}

	second, err := uc.Process(context.Background(), []byte("audio"), string(dialog.StateInvalidRepeat), "")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Response != giveUpResponse || second.NextState != dialog.StateInitial {
		t.Errorf("second = %+v", second)
	}
}

func TestProcessAwaitingStorySkipsClassification(t *testing.T) {
	// The utterance carries a news marker, but mid-story turns must not be
	// re-classified.
	stt := &fakeTranscriber{text: "어제 뉴스에서 봤다는 이야기를 해줄게"}
	uc := newTestAssistant(t, stt, &fakeSynthesizer{ref: "/static/tts/x.mp3"})

	result, err := uc.Process(context.Background(), []byte("audio"), string(dialog.StateAwaitingStory), "민수")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Type != "story" {
		t.Errorf("type = %q, want story", result.Type)
	}
	if result.NextState != dialog.StateComplete {
		t.Errorf("next state = %q", result.NextState)
	}
}

func TestProcessSynthesisFailureDegradesToNoAudio(t *testing.T) {
	stt := &fakeTranscriber{text: "심심한데 얘기하자"}
	tts := &fakeSynthesizer{err: errors.New("quota")}
	uc := newTestAssistant(t, stt, tts)

	result, err := uc.Process(context.Background(), []byte("audio"), "initial", "")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.AudioURL != "" {
		t.Errorf("audio = %q, want empty", result.AudioURL)
	}
	if result.Response == "" {
		t.Error("response should survive a synthesis failure")
	}
}

func TestSaveUploadWritesFile(t *testing.T) {
	uc := newTestAssistant(t, &fakeTranscriber{}, &fakeSynthesizer{})

	path, public, err := uc.SaveUpload([]byte("RIFFdata"))
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "RIFFdata" {
		t.Errorf("read back %q, err %v", data, err)
	}
	if filepath.Ext(public) != ".wav" {
		t.Errorf("public path = %q", public)
	}
}
