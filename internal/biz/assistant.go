package biz

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/sswu-capstoneDesign2025/backend/internal/dialog"
	"github.com/sswu-capstoneDesign2025/backend/internal/intent"
	"github.com/sswu-capstoneDesign2025/backend/internal/speech"
)

// ProcessResult is one answered voice turn.
type ProcessResult struct {
	Type            string
	TranscribedText string
	Response        string
	AudioURL        string
	NextState       dialog.State
	News            *NewsResult
}

const (
	askAgainResponse = "알아듣지 못했어요. 다시 말해줄래요?"
	giveUpResponse   = "못 알아듣겠어요."
)

// AssistantUseCase is the per-request orchestrator: upload, transcription,
// classification, dispatch, synthesis.
type AssistantUseCase struct {
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	classifier  *intent.Classifier
	machine     *dialog.Machine
	news        *NewsUseCase
	weather     *WeatherUseCase
	uploadDir   string
	log         *log.Helper
}

func NewAssistantUseCase(
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	classifier *intent.Classifier,
	machine *dialog.Machine,
	news *NewsUseCase,
	weather *WeatherUseCase,
	uploadDir string,
	logger log.Logger,
) *AssistantUseCase {
	if uploadDir == "" {
		uploadDir = "./static/uploads"
	}
	return &AssistantUseCase{
		transcriber: transcriber,
		synthesizer: synthesizer,
		classifier:  classifier,
		machine:     machine,
		news:        news,
		weather:     weather,
		uploadDir:   uploadDir,
		log:         log.NewHelper(logger),
	}
}

// SaveUpload writes the audio bytes under a fresh name and returns the local
// path and the public /static path.
func (uc *AssistantUseCase) SaveUpload(audio []byte) (string, string, error) {
	if err := os.MkdirAll(uc.uploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}
	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + ".wav"
	path := filepath.Join(uc.uploadDir, filename)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", "", fmt.Errorf("save upload: %w", err)
	}
	return path, "/static/uploads/" + filename, nil
}

// Transcribe runs recognition over a previously saved upload.
func (uc *AssistantUseCase) Transcribe(ctx context.Context, path string) (string, error) {
	text, err := uc.transcriber.Transcribe(ctx, path)
	if err != nil {
		return "", errors.InternalServer("STT_FAILED", err.Error())
	}
	return text, nil
}

// Synthesize renders a response to audio. Used by the standalone endpoint;
// the orchestrator goes through attachAudio instead.
func (uc *AssistantUseCase) Synthesize(ctx context.Context, text string) (string, error) {
	ref, err := uc.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return "", errors.InternalServer("TTS_FAILED", err.Error())
	}
	return ref, nil
}

// Process handles one uploaded voice turn end to end.
func (uc *AssistantUseCase) Process(ctx context.Context, audio []byte, stateStr, username string) (*ProcessResult, error) {
	path, _, err := uc.SaveUpload(audio)
	if err != nil {
		return nil, errors.InternalServer("UPLOAD_FAILED", err.Error())
	}

	text, err := uc.transcriber.Transcribe(ctx, path)
	if err != nil {
		return nil, errors.InternalServer("STT_FAILED", err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.BadRequest("EMPTY_TRANSCRIPTION", "음성에서 텍스트를 추출하지 못했습니다.")
	}

	state := dialog.ParseState(stateStr)

	// Mid-story turns skip classification; the conversation already knows
	// its topic.
	if state == dialog.StateAwaitingStory {
		return uc.storyTurn(ctx, text, state, username)
	}

	switch uc.classifier.Classify(ctx, text) {
	case intent.Story:
		return uc.storyTurn(ctx, text, state, username)

	case intent.News:
		result, err := uc.news.Run(ctx, text, username)
		if err != nil {
			return nil, err
		}
		out := &ProcessResult{
			Type:            "news",
			TranscribedText: text,
			Response:        result.Combined,
			NextState:       dialog.StateInitial,
			News:            result,
		}
		uc.attachAudio(ctx, out)
		return out, nil

	case intent.Weather:
		result, err := uc.weather.Resolve(ctx, text)
		if err != nil {
			return nil, errors.InternalServer("WEATHER_FAILED", err.Error())
		}
		out := &ProcessResult{
			Type:            "weather",
			TranscribedText: text,
			Response:        result.Summary,
			NextState:       dialog.StateInitial,
		}
		uc.attachAudio(ctx, out)
		return out, nil

	default:
		return uc.invalidTurn(ctx, text, state), nil
	}
}

func (uc *AssistantUseCase) storyTurn(ctx context.Context, text string, state dialog.State, username string) (*ProcessResult, error) {
	reply, err := uc.machine.Turn(ctx, text, state, username)
	if err != nil {
		return nil, err
	}
	out := &ProcessResult{
		Type:            "story",
		TranscribedText: text,
		Response:        reply.Text,
		NextState:       reply.Next,
	}
	uc.attachAudio(ctx, out)
	return out, nil
}

// invalidTurn applies the two-ask escalation: the first unrecognized turn
// asks the user to repeat, the second gives up and resets.
func (uc *AssistantUseCase) invalidTurn(ctx context.Context, text string, state dialog.State) *ProcessResult {
	out := &ProcessResult{
		Type:            "invalid",
		TranscribedText: text,
		Response:        askAgainResponse,
		NextState:       dialog.StateInvalidRepeat,
	}
	if state == dialog.StateInvalidRepeat {
		out.Response = giveUpResponse
		out.NextState = dialog.StateInitial
	}
	uc.attachAudio(ctx, out)
	return out
}

// attachAudio synthesizes the response. Failures degrade to an empty audio
// reference on every branch; synthesis never fails a turn.
func (uc *AssistantUseCase) attachAudio(ctx context.Context, out *ProcessResult) {
	if out.Response == "" {
		return
	}
	ref, err := uc.synthesizer.Synthesize(ctx, out.Response)
	if err != nil {
		uc.log.Warnf("synthesis failed, answering without audio: %v", err)
		return
	}
	out.AudioURL = ref
}
