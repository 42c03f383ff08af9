package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/joho/godotenv"

	"github.com/sswu-capstoneDesign2025/backend/internal/article"
	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
	"github.com/sswu-capstoneDesign2025/backend/internal/conf"
	"github.com/sswu-capstoneDesign2025/backend/internal/data"
	"github.com/sswu-capstoneDesign2025/backend/internal/dialog"
	"github.com/sswu-capstoneDesign2025/backend/internal/geo"
	"github.com/sswu-capstoneDesign2025/backend/internal/intent"
	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
	"github.com/sswu-capstoneDesign2025/backend/internal/llm"
	"github.com/sswu-capstoneDesign2025/backend/internal/search"
	"github.com/sswu-capstoneDesign2025/backend/internal/server"
	"github.com/sswu-capstoneDesign2025/backend/internal/service"
	"github.com/sswu-capstoneDesign2025/backend/internal/speech"
	"github.com/sswu-capstoneDesign2025/backend/internal/summarize"
	"github.com/sswu-capstoneDesign2025/backend/internal/weather"
	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	Name    string = "assistant"
	Version string

	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	// Secrets come from the environment; .env is a local convenience.
	_ = godotenv.Load()

	klogger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	if bc.Assistant.Log != nil {
		if err := logger.Init(bc.Assistant.Log.Level, bc.Assistant.Log.File); err != nil {
			panic(err)
		}
	}

	app, cleanup, err := initApp(context.Background(), &bc, klogger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}

// initApp assembles the whole dependency graph by hand.
func initApp(ctx context.Context, bc *conf.Bootstrap, klogger log.Logger) (*kratos.App, func(), error) {
	ac := bc.Assistant

	d, cleanup, err := data.NewData(bc.Data, klogger)
	if err != nil {
		return nil, nil, err
	}

	llmClient, err := llm.NewEinoClient(ctx, llm.Config{
		BaseURL: ac.Llm.BaseUrl,
		APIKey:  firstNonEmpty(ac.Llm.ApiKey, os.Getenv("OPENAI_API_KEY")),
		Model:   ac.Llm.Model,
		QPS:     int(ac.Llm.Qps),
		RPM:     int(ac.Llm.Rpm),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	hierarchy, err := geo.Load(ac.Locations)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	vocab := keyword.NewVocab()
	var tagger keyword.Tagger
	if ac.Tagger != nil && ac.Tagger.Url != "" {
		tagger = keyword.NewRemoteTagger(ac.Tagger.Url)
	}
	extractor := keyword.NewExtractor(tagger, vocab)

	naver := ac.Search.Naver
	if naver == nil {
		naver = &conf.Naver{}
	}
	searcher, err := search.NewSearcher(search.ProviderConfig{
		Provider:          ac.Search.Provider,
		NaverClientID:     firstNonEmpty(naver.ClientId, os.Getenv("NAVER_CLIENT_ID")),
		NaverClientSecret: firstNonEmpty(naver.ClientSecret, os.Getenv("NAVER_CLIENT_SECRET")),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	refiner := search.NewRefiner(time.Now().UnixNano())
	keywordSearcher := search.NewKeywordSearcher(searcher, vocab, hierarchy, refiner)

	chunker, err := summarize.NewChunker()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	ttl := 24 * time.Hour
	if bc.Data.Redis != nil && bc.Data.Redis.Ttl != "" {
		if parsed, err := time.ParseDuration(bc.Data.Redis.Ttl); err == nil {
			ttl = parsed
		}
	}
	cache := data.NewSummaryCache(d, ttl, klogger)
	pipeline := summarize.NewPipeline(llmClient, chunker, cache)

	stt := &conf.STT{}
	tts := &conf.TTS{}
	if ac.Speech != nil {
		if ac.Speech.Stt != nil {
			stt = ac.Speech.Stt
		}
		if ac.Speech.Tts != nil {
			tts = ac.Speech.Tts
		}
	}
	transcriber := speech.NewClovaSpeech(speech.ClovaSpeechConfig{
		DomainID:     firstNonEmpty(stt.DomainId, os.Getenv("DOMAIN_ID")),
		InvokeSecret: firstNonEmpty(stt.InvokeSecret, os.Getenv("CLOVA_INVOKE_SECRET")),
		APIKey:       firstNonEmpty(stt.ApiKey, os.Getenv("CLOVA_SPEECH_SECRET")),
	})
	ttsDir := ""
	uploadDir := ""
	if ac.Static != nil {
		ttsDir = ac.Static.TtsDir
		uploadDir = ac.Static.UploadDir
	}
	synthesizer := speech.NewClovaVoice(speech.ClovaVoiceConfig{
		ClientID:     firstNonEmpty(tts.ClientId, os.Getenv("NCP_CLIENT_ID")),
		ClientSecret: firstNonEmpty(tts.ClientSecret, os.Getenv("NCP_CLIENT_SECRET")),
		Speaker:      tts.Speaker,
		OutputDir:    ttsDir,
	})

	userRepo := data.NewUserRepo(d, klogger)
	storyRepo := data.NewStoryRepo(d, klogger)
	newsRepo := data.NewNewsRepo(d, klogger)
	alertRepo := data.NewAlertRepo(d, klogger)

	userUC := biz.NewUserUseCase(userRepo, bc.Auth, klogger)
	storyUC := biz.NewStoryUseCase(storyRepo, klogger)
	newsUC := biz.NewNewsUseCase(extractor, keywordSearcher, article.NewFetcher(), pipeline, newsRepo, klogger)
	weatherUC := biz.NewWeatherUseCase(weather.NewNaverWeather(), hierarchy, vocab, klogger)
	alertUC := biz.NewAlertUseCase(alertRepo, klogger)

	cleaner := dialog.NewLLMCleaner(llmClient)
	machine := dialog.NewMachine(storyUC.DialogStore(), cleaner)
	classifier := intent.NewClassifier(nil)

	assistantUC := biz.NewAssistantUseCase(
		transcriber, synthesizer, classifier, machine, newsUC, weatherUC, uploadDir, klogger)

	assistantSvc := service.NewAssistantService(assistantUC, newsUC, weatherUC, uploadDir, klogger)
	accountSvc := service.NewAccountService(userUC, storyUC, newsUC, alertUC, klogger)

	hs := server.NewHTTPServer(bc.Server, assistantSvc, accountSvc, klogger)
	return newApp(klogger, hs), cleanup, nil
}

func newApp(klogger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(klogger),
		kratos.Server(hs),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
