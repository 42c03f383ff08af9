package server

import (
	"io"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/sswu-capstoneDesign2025/backend/internal/conf"
	"github.com/sswu-capstoneDesign2025/backend/internal/service"
)

const maxUploadBytes = 32 << 20

// NewHTTPServer wires every endpoint of the assistant onto a kratos HTTP
// server and serves the static audio files.
func NewHTTPServer(c *conf.Server, assistant *service.AssistantService, account *service.AccountService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	registerAssistant(srv, assistant)
	registerAccount(srv, account)

	srv.HandlePrefix("/static/", nethttp.StripPrefix("/static/",
		nethttp.FileServer(nethttp.Dir("./static"))))

	return srv
}

func registerAssistant(srv *http.Server, s *service.AssistantService) {
	r := srv.Route("/")

	r.POST("/process/audio/", func(ctx http.Context) error {
		audio, form, err := readAudioForm(ctx)
		if err != nil {
			return err
		}
		state := form("session_state")
		if state == "" {
			state = "initial"
		}
		reply, err := s.ProcessAudio(ctx, audio, state, form("username"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/upload/audio/", func(ctx http.Context) error {
		audio, _, err := readAudioForm(ctx)
		if err != nil {
			return err
		}
		reply, err := s.UploadAudio(ctx, audio)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/transcribe/", func(ctx http.Context) error {
		var req struct {
			FileURL string `json:"file_url"`
		}
		if err := ctx.Bind(&req); err != nil || req.FileURL == "" {
			req.FileURL = ctx.Query().Get("file_url")
		}
		if req.FileURL == "" {
			return errors.BadRequest("MISSING_FILE_URL", "file_url is required")
		}
		reply, err := s.Transcribe(ctx, req.FileURL)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/tts/synthesize", func(ctx http.Context) error {
		var req service.SynthesizeRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.Synthesize(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/search-news-urls/", func(ctx http.Context) error {
		var req service.NewsURLsRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.SearchNewsURLs(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/summarize-news-from-urls/", func(ctx http.Context) error {
		var req service.SummarizeURLsRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.SummarizeFromURLs(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/weather/", func(ctx http.Context) error {
		text := ctx.Query().Get("text")
		reply, err := s.Weather(ctx, text)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}

func registerAccount(srv *http.Server, s *service.AccountService) {
	r := srv.Route("/")

	r.POST("/auth/signup", func(ctx http.Context) error {
		var req service.SignupRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.Signup(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/auth/login", func(ctx http.Context) error {
		var req service.LoginRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.Login(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/summary-notes/", func(ctx http.Context) error {
		var req service.SummaryNoteRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.CreateSummaryNote(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/summary-notes/", func(ctx http.Context) error {
		reply, err := s.ListSummaryNotes(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/other-user-records/", func(ctx http.Context) error {
		var req service.SharedStoryRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.CreateSharedStory(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/other-user-records/", func(ctx http.Context) error {
		reply, err := s.ListSharedStories(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.DELETE("/other-user-records/", func(ctx http.Context) error {
		reply, err := s.DeleteSharedStories(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/news-history", func(ctx http.Context) error {
		var req service.NewsHistoryRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.SaveNewsHistory(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/news-history", func(ctx http.Context) error {
		username := ctx.Query().Get("username")
		if username == "" {
			return errors.BadRequest("MISSING_USERNAME", "username is required")
		}
		reply, err := s.ListNewsHistory(ctx, username)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/alerts/user/{user_id}", func(ctx http.Context) error {
		userID, err := intVar(ctx, "user_id")
		if err != nil {
			return err
		}
		reply, err := s.ListAlerts(ctx, userID)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/alerts/user/{user_id}", func(ctx http.Context) error {
		userID, err := intVar(ctx, "user_id")
		if err != nil {
			return err
		}
		var req service.AlertRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.UserID = userID
		reply, err := s.AddAlert(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.PUT("/alerts/{alert_id}/toggle", func(ctx http.Context) error {
		alertID, err := intVar(ctx, "alert_id")
		if err != nil {
			return err
		}
		reply, err := s.ToggleAlert(ctx, alertID)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/alerts/trigger", func(ctx http.Context) error {
		userID, err := strconv.Atoi(ctx.Query().Get("user_id"))
		if err != nil {
			return errors.BadRequest("BAD_USER_ID", "user_id must be an integer")
		}
		reply, err := s.TriggerAlerts(ctx, userID, ctx.Query().Get("time"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}

func intVar(ctx http.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Vars().Get(name))
	if err != nil {
		return 0, errors.BadRequest("BAD_PATH_PARAM", name+" must be an integer")
	}
	return v, nil
}

// readAudioForm pulls the uploaded file plus form fields out of a multipart
// request.
func readAudioForm(ctx http.Context) ([]byte, func(string) string, error) {
	req := ctx.Request()
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, errors.BadRequest("BAD_UPLOAD", "multipart form expected")
	}
	file, _, err := req.FormFile("file")
	if err != nil {
		return nil, nil, errors.BadRequest("MISSING_FILE", "audio file is required")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, errors.InternalServer("READ_UPLOAD_FAILED", err.Error())
	}
	return audio, req.FormValue, nil
}
