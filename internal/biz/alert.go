package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// Alert is a per-user scheduled reminder.
type Alert struct {
	ID      int
	UserID  int
	Title   string
	Time    string // HH:MM
	Enabled bool
}

type AlertRepo interface {
	ListForUser(ctx context.Context, userID int) ([]*Alert, error)
	Create(ctx context.Context, a *Alert) error
	Toggle(ctx context.Context, alertID int) (*Alert, error)
	EnabledAt(ctx context.Context, userID int, at string) ([]*Alert, error)
}

type AlertUseCase struct {
	repo AlertRepo
	log  *log.Helper
}

func NewAlertUseCase(repo AlertRepo, logger log.Logger) *AlertUseCase {
	return &AlertUseCase{repo: repo, log: log.NewHelper(logger)}
}

func (uc *AlertUseCase) List(ctx context.Context, userID int) ([]*Alert, error) {
	return uc.repo.ListForUser(ctx, userID)
}

func (uc *AlertUseCase) Add(ctx context.Context, a *Alert) error {
	if a.UserID == 0 {
		return errors.BadRequest("USER_REQUIRED", "alert needs a user")
	}
	a.Enabled = true
	return uc.repo.Create(ctx, a)
}

// Toggle flips the enabled flag and returns the updated alert.
func (uc *AlertUseCase) Toggle(ctx context.Context, alertID int) (*Alert, error) {
	return uc.repo.Toggle(ctx, alertID)
}

// Trigger lists a user's enabled alerts scheduled at the given HH:MM time.
func (uc *AlertUseCase) Trigger(ctx context.Context, userID int, at string) ([]*Alert, error) {
	return uc.repo.EnabledAt(ctx, userID, at)
}
