package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/dialog"
)

// SummaryNote is a user's own saved story.
type SummaryNote struct {
	ID        int
	Title     string
	Content   string
	Topic     string
	Region    string
	Username  string
	CreatedAt time.Time
}

// SharedStory is a story other users can be told.
type SharedStory struct {
	ID         int
	Title      string
	Content    string
	Author     string
	Topic      string
	Region     string
	ProfileURL string
	Date       time.Time
}

type StoryRepo interface {
	CreateSummaryNote(ctx context.Context, n *SummaryNote) error
	ListSummaryNotes(ctx context.Context) ([]*SummaryNote, error)
	CreateSharedStory(ctx context.Context, s *SharedStory) error
	ListSharedStories(ctx context.Context) ([]*SharedStory, error)
	DeleteAllSharedStories(ctx context.Context) (int, error)
}

// StoryUseCase exposes the stories surface and adapts the repo to the
// dialogue machine's store contract.
type StoryUseCase struct {
	repo StoryRepo
	log  *log.Helper
}

func NewStoryUseCase(repo StoryRepo, logger log.Logger) *StoryUseCase {
	return &StoryUseCase{repo: repo, log: log.NewHelper(logger)}
}

func (uc *StoryUseCase) CreateNote(ctx context.Context, n *SummaryNote) error {
	if n.Topic == "" {
		n.Topic = "기타"
	}
	if n.Region == "" {
		n.Region = "없음"
	}
	if n.Username == "" {
		n.Username = "익명"
	}
	return uc.repo.CreateSummaryNote(ctx, n)
}

func (uc *StoryUseCase) ListNotes(ctx context.Context) ([]*SummaryNote, error) {
	return uc.repo.ListSummaryNotes(ctx)
}

func (uc *StoryUseCase) CreateShared(ctx context.Context, s *SharedStory) error {
	return uc.repo.CreateSharedStory(ctx, s)
}

func (uc *StoryUseCase) ListShared(ctx context.Context) ([]*SharedStory, error) {
	return uc.repo.ListSharedStories(ctx)
}

func (uc *StoryUseCase) DeleteAllShared(ctx context.Context) (int, error) {
	return uc.repo.DeleteAllSharedStories(ctx)
}

// DialogStore adapts the use case to the dialogue machine's store contract.
func (uc *StoryUseCase) DialogStore() dialog.StoryStore {
	return dialogStore{uc: uc}
}

type dialogStore struct {
	uc *StoryUseCase
}

// SaveStory persists a told story as both a personal note and a shared
// record.
func (d dialogStore) SaveStory(ctx context.Context, s dialog.Story) error {
	uc := d.uc
	note := &SummaryNote{
		Title:    s.Title,
		Content:  s.Content,
		Username: s.Author,
		Topic:    s.Topic,
		Region:   s.Region,
	}
	if err := uc.repo.CreateSummaryNote(ctx, note); err != nil {
		return err
	}
	shared := &SharedStory{
		Title:   s.Title,
		Content: s.Content,
		Author:  s.Author,
		Topic:   s.Topic,
		Region:  s.Region,
	}
	if err := uc.repo.CreateSharedStory(ctx, shared); err != nil {
		return err
	}
	uc.log.Infof("saved story %q by %s", s.Title, s.Author)
	return nil
}

func (d dialogStore) ListShared(ctx context.Context) ([]dialog.Story, error) {
	stories, err := d.uc.repo.ListSharedStories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dialog.Story, 0, len(stories))
	for _, s := range stories {
		out = append(out, dialog.Story{
			Title:   s.Title,
			Content: s.Content,
			Author:  s.Author,
			Topic:   s.Topic,
			Region:  s.Region,
		})
	}
	return out, nil
}
