package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
)

// AccountService covers auth, saved stories, news history, and alerts.
type AccountService struct {
	users   *biz.UserUseCase
	stories *biz.StoryUseCase
	news    *biz.NewsUseCase
	alerts  *biz.AlertUseCase
	log     *log.Helper
}

func NewAccountService(
	users *biz.UserUseCase,
	stories *biz.StoryUseCase,
	news *biz.NewsUseCase,
	alerts *biz.AlertUseCase,
	logger log.Logger,
) *AccountService {
	return &AccountService{
		users:   users,
		stories: stories,
		news:    news,
		alerts:  alerts,
		log:     log.NewHelper(logger),
	}
}

type SignupRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type SignupReply struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

func (s *AccountService) Signup(ctx context.Context, req *SignupRequest) (*SignupReply, error) {
	u, err := s.users.Signup(ctx, req.Username, req.Password, req.Name, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	return &SignupReply{Username: u.Username, Nickname: u.Nickname}, nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *AccountService) Login(ctx context.Context, req *LoginRequest) (*LoginReply, error) {
	token, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &LoginReply{AccessToken: token, TokenType: "bearer"}, nil
}

type SummaryNoteRequest struct {
	Title    string `json:"sum_title"`
	Content  string `json:"content"`
	Topic    string `json:"topic"`
	Region   string `json:"region"`
	Username string `json:"username"`
}

type SummaryNote struct {
	ID        int    `json:"id"`
	Title     string `json:"sum_title"`
	Content   string `json:"content"`
	Topic     string `json:"topic"`
	Region    string `json:"region"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type SummaryNoteReply struct {
	Message string       `json:"message"`
	Note    *SummaryNote `json:"note"`
}

func (s *AccountService) CreateSummaryNote(ctx context.Context, req *SummaryNoteRequest) (*SummaryNoteReply, error) {
	note := &biz.SummaryNote{
		Title:    req.Title,
		Content:  req.Content,
		Topic:    req.Topic,
		Region:   req.Region,
		Username: req.Username,
	}
	if err := s.stories.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return &SummaryNoteReply{Message: "Summary note saved!", Note: toNote(note)}, nil
}

type SummaryNotesReply struct {
	Notes []*SummaryNote `json:"notes"`
}

func (s *AccountService) ListSummaryNotes(ctx context.Context) (*SummaryNotesReply, error) {
	notes, err := s.stories.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*SummaryNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNote(n))
	}
	return &SummaryNotesReply{Notes: out}, nil
}

func toNote(n *biz.SummaryNote) *SummaryNote {
	return &SummaryNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Topic:     n.Topic,
		Region:    n.Region,
		Username:  n.Username,
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type SharedStoryRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Author     string `json:"author"`
	ProfileURL string `json:"profileUrl"`
}

type SharedStory struct {
	ID         int    `json:"id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Author     string `json:"author"`
	ProfileURL string `json:"profileUrl"`
}

type SharedStoryReply struct {
	Message string       `json:"message"`
	Record  *SharedStory `json:"record"`
}

const defaultProfileURL = "https://i.pravatar.cc/150?img=1"

func (s *AccountService) CreateSharedStory(ctx context.Context, req *SharedStoryRequest) (*SharedStoryReply, error) {
	story := &biz.SharedStory{
		Title:      req.Title,
		Content:    req.Content,
		Author:     req.Author,
		ProfileURL: req.ProfileURL,
	}
	if err := s.stories.CreateShared(ctx, story); err != nil {
		return nil, err
	}
	return &SharedStoryReply{Message: "Other user record saved!", Record: toShared(story)}, nil
}

func (s *AccountService) ListSharedStories(ctx context.Context) ([]*SharedStory, error) {
	stories, err := s.stories.ListShared(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*SharedStory, 0, len(stories))
	for _, story := range stories {
		out = append(out, toShared(story))
	}
	return out, nil
}

type DeleteSharedReply struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

func (s *AccountService) DeleteSharedStories(ctx context.Context) (*DeleteSharedReply, error) {
	deleted, err := s.stories.DeleteAllShared(ctx)
	if err != nil {
		return nil, err
	}
	return &DeleteSharedReply{Message: "모든 기록이 삭제되었습니다.", DeletedCount: deleted}, nil
}

func toShared(s *biz.SharedStory) *SharedStory {
	profile := s.ProfileURL
	if profile == "" {
		profile = defaultProfileURL
	}
	return &SharedStory{
		ID:         s.ID,
		Date:       s.Date.Format("2006-01-02"),
		Title:      s.Title,
		Content:    s.Content,
		Author:     s.Author,
		ProfileURL: profile,
	}
}

type NewsHistoryRequest struct {
	Username string `json:"username"`
	Keyword  string `json:"keyword"`
	Summary  string `json:"summary"`
}

type MessageReply struct {
	Message string `json:"message"`
}

func (s *AccountService) SaveNewsHistory(ctx context.Context, req *NewsHistoryRequest) (*MessageReply, error) {
	if err := s.news.SaveHistoryEntry(ctx, req.Username, req.Keyword, req.Summary); err != nil {
		return nil, err
	}
	return &MessageReply{Message: "저장 완료"}, nil
}

type NewsHistoryRecord struct {
	Date    string `json:"date"`
	Keyword string `json:"keyword"`
	Summary string `json:"summary"`
}

type NewsHistoryReply struct {
	Records []*NewsHistoryRecord `json:"records"`
}

func (s *AccountService) ListNewsHistory(ctx context.Context, username string) (*NewsHistoryReply, error) {
	records, err := s.news.History(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]*NewsHistoryRecord, 0, len(records))
	for _, r := range records {
		out = append(out, &NewsHistoryRecord{
			Date:    r.Date.Format("2006.01.02"),
			Keyword: r.Keyword,
			Summary: r.Summary,
		})
	}
	return &NewsHistoryReply{Records: out}, nil
}

type AlertRequest struct {
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Time   string `json:"time"`
}

type Alert struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id"`
	Title   string `json:"title"`
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
}

func (s *AccountService) ListAlerts(ctx context.Context, userID int) ([]*Alert, error) {
	alerts, err := s.alerts.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAlerts(alerts), nil
}

func (s *AccountService) AddAlert(ctx context.Context, req *AlertRequest) (*Alert, error) {
	alert := &biz.Alert{UserID: req.UserID, Title: req.Title, Time: req.Time}
	if err := s.alerts.Add(ctx, alert); err != nil {
		return nil, err
	}
	return toAlert(alert), nil
}

func (s *AccountService) ToggleAlert(ctx context.Context, alertID int) (*Alert, error) {
	alert, err := s.alerts.Toggle(ctx, alertID)
	if err != nil {
		return nil, err
	}
	return toAlert(alert), nil
}

func (s *AccountService) TriggerAlerts(ctx context.Context, userID int, at string) ([]*Alert, error) {
	alerts, err := s.alerts.Trigger(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	return toAlerts(alerts), nil
}

func toAlert(a *biz.Alert) *Alert {
	return &Alert{ID: a.ID, UserID: a.UserID, Title: a.Title, Time: a.Time, Enabled: a.Enabled}
}

func toAlerts(alerts []*biz.Alert) []*Alert {
	out := make([]*Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlert(a))
	}
	return out
}
