package speech

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTranscribeReadsFullText(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-CLOVASPEECH-API-KEY")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if !strings.Contains(r.MultipartForm.Value["params"][0], "ko-KR") {
			t.Errorf("params missing language: %v", r.MultipartForm.Value["params"])
		}
		w.Write([]byte(`{"result": "COMPLETED", "text": "안녕하세요"}`))
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "input.wav")
	if err := os.WriteFile(audio, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	stt := NewClovaSpeech(ClovaSpeechConfig{DomainID: "1234", InvokeSecret: "inv", APIKey: "key"})
	stt.baseURL = srv.URL

	text, err := stt.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "안녕하세요" {
		t.Errorf("text = %q", text)
	}
	if gotKey != "key" {
		t.Errorf("api key header = %q", gotKey)
	}
}

func TestTranscribeRejectsFailedResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result": "FAILED", "message": "bad media"}`))
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "input.wav")
	if err := os.WriteFile(audio, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	stt := NewClovaSpeech(ClovaSpeechConfig{DomainID: "1234", InvokeSecret: "inv", APIKey: "key"})
	stt.baseURL = srv.URL

	if _, err := stt.Transcribe(context.Background(), audio); err == nil {
		t.Fatal("expected an error for a failed result")
	}
}

func TestSynthesizeWritesFileAndTruncates(t *testing.T) {
	payload := bytes.Repeat([]byte{0xff}, 2000)
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotText = r.FormValue("text")
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	tts := NewClovaVoice(ClovaVoiceConfig{ClientID: "id", ClientSecret: "secret", OutputDir: dir})
	tts.endpoint = srv.URL

	long := strings.Repeat("가", maxSynthesisRunes+100)
	ref, err := tts.Synthesize(context.Background(), long)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len([]rune(gotText)) != maxSynthesisRunes {
		t.Errorf("sent %d runes, want %d", len([]rune(gotText)), maxSynthesisRunes)
	}
	if !strings.HasPrefix(ref, "/static/tts/") || !strings.HasSuffix(ref, ".mp3") {
		t.Errorf("ref = %q", ref)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("output dir entries = %v, err %v", entries, err)
	}
}

func TestSynthesizeRejectsTinyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("oops"))
	}))
	defer srv.Close()

	tts := NewClovaVoice(ClovaVoiceConfig{ClientID: "id", ClientSecret: "secret", OutputDir: t.TempDir()})
	tts.endpoint = srv.URL

	if _, err := tts.Synthesize(context.Background(), "안녕"); err == nil {
		t.Fatal("expected an error for tiny audio")
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	tts := NewClovaVoice(ClovaVoiceConfig{ClientID: "id", ClientSecret: "secret"})
	if _, err := tts.Synthesize(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for empty text")
	}
}
