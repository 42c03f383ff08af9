package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
)

// AssistantService is the HTTP-facing surface of the voice assistant.
type AssistantService struct {
	assistant *biz.AssistantUseCase
	news      *biz.NewsUseCase
	weather   *biz.WeatherUseCase
	uploadDir string
	log       *log.Helper
}

func NewAssistantService(
	assistant *biz.AssistantUseCase,
	news *biz.NewsUseCase,
	weather *biz.WeatherUseCase,
	uploadDir string,
	logger log.Logger,
) *AssistantService {
	if uploadDir == "" {
		uploadDir = "./static/uploads"
	}
	return &AssistantService{
		assistant: assistant,
		news:      news,
		weather:   weather,
		uploadDir: uploadDir,
		log:       log.NewHelper(logger),
	}
}

type ProcessAudioReply struct {
	Type            string         `json:"type"`
	TranscribedText string         `json:"transcribed_text"`
	Response        string         `json:"response,omitempty"`
	ResponseAudio   string         `json:"response_audio_url,omitempty"`
	NextState       string         `json:"next_state"`
	Result          *NewsURLsReply `json:"result,omitempty"`
}

// ProcessAudio runs the whole voice turn.
func (s *AssistantService) ProcessAudio(ctx context.Context, audio []byte, state, username string) (*ProcessAudioReply, error) {
	result, err := s.assistant.Process(ctx, audio, state, username)
	if err != nil {
		return nil, err
	}
	reply := &ProcessAudioReply{
		Type:            result.Type,
		TranscribedText: result.TranscribedText,
		Response:        result.Response,
		ResponseAudio:   result.AudioURL,
		NextState:       string(result.NextState),
	}
	if result.News != nil {
		reply.Result = &NewsURLsReply{Keywords: result.News.Keywords, Results: result.News.URLs}
	}
	return reply, nil
}

type UploadReply struct {
	FileURL string `json:"file_url"`
}

// UploadAudio stores the audio and returns its public path.
func (s *AssistantService) UploadAudio(_ context.Context, audio []byte) (*UploadReply, error) {
	_, publicPath, err := s.assistant.SaveUpload(audio)
	if err != nil {
		return nil, errors.InternalServer("UPLOAD_FAILED", err.Error())
	}
	return &UploadReply{FileURL: publicPath}, nil
}

type TranscribeReply struct {
	TranscribedText string `json:"transcribed_text"`
}

// Transcribe recognizes a previously uploaded file addressed by its /static
// URL or path.
func (s *AssistantService) Transcribe(ctx context.Context, fileURL string) (*TranscribeReply, error) {
	local, err := s.localUploadPath(fileURL)
	if err != nil {
		return nil, err
	}
	text, err := s.assistant.Transcribe(ctx, local)
	if err != nil {
		return nil, err
	}
	return &TranscribeReply{TranscribedText: text}, nil
}

// localUploadPath maps a public upload URL back onto the upload directory.
// Only files under /static/uploads are reachable.
func (s *AssistantService) localUploadPath(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", errors.BadRequest("BAD_FILE_URL", "invalid file url")
	}
	if !strings.HasPrefix(parsed.Path, "/static/uploads/") {
		return "", errors.BadRequest("BAD_FILE_URL", "file must live under /static/uploads")
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return "", errors.BadRequest("BAD_FILE_URL", "invalid file name")
	}
	return filepath.Join(s.uploadDir, name), nil
}

type SynthesizeRequest struct {
	Text string `json:"text"`
}

type SynthesizeReply struct {
	Message string `json:"message"`
	FileURL string `json:"file_url"`
}

// Synthesize renders text to speech.
func (s *AssistantService) Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeReply, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.BadRequest("EMPTY_TEXT", "텍스트가 비어 있습니다.")
	}
	ref, err := s.assistant.Synthesize(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	return &SynthesizeReply{Message: "음성 생성 성공", FileURL: ref}, nil
}

type NewsURLsRequest struct {
	RequestText string `json:"request_text"`
}

type NewsURLsReply struct {
	Keywords []string            `json:"keywords"`
	Results  map[string][]string `json:"results"`
}

// SearchNewsURLs extracts keywords and returns candidate article URLs.
func (s *AssistantService) SearchNewsURLs(ctx context.Context, req *NewsURLsRequest) (*NewsURLsReply, error) {
	keywords, urls := s.news.SearchURLs(ctx, req.RequestText)
	return &NewsURLsReply{Keywords: keywords, Results: urls}, nil
}

type SummarizeURLsRequest struct {
	URLs    []string `json:"urls"`
	Keyword string   `json:"keyword"`
}

type SummarizeURLsReply struct {
	Summaries []string `json:"summaries"`
	Combined  string   `json:"combined"`
}

// SummarizeFromURLs fetches the given articles and summarizes the relevant
// ones.
func (s *AssistantService) SummarizeFromURLs(ctx context.Context, req *SummarizeURLsRequest) (*SummarizeURLsReply, error) {
	if len(req.URLs) == 0 {
		return nil, errors.BadRequest("EMPTY_URLS", "요약할 URL이 없습니다.")
	}
	result := s.news.SummarizeURLs(ctx, req.URLs, req.Keyword)
	return &SummarizeURLsReply{Summaries: result.Summaries, Combined: result.Combined}, nil
}

type WeatherReply struct {
	Location string `json:"location"`
	When     string `json:"when"`
	Summary  string `json:"summary"`
}

// Weather answers a natural-language weather question.
func (s *AssistantService) Weather(ctx context.Context, text string) (*WeatherReply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.BadRequest("EMPTY_TEXT", "질문이 비어 있습니다.")
	}
	result, err := s.weather.Resolve(ctx, text)
	if err != nil {
		return nil, errors.InternalServer("WEATHER_FAILED", fmt.Sprintf("날씨 조회 실패: %v", err))
	}
	return &WeatherReply{
		Location: result.Location,
		When:     string(result.When),
		Summary:  result.Summary,
	}, nil
}
