package data

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
)

type alertRepo struct {
	data *Data
	log  *log.Helper
}

func NewAlertRepo(data *Data, logger log.Logger) biz.AlertRepo {
	return &alertRepo{data: data, log: log.NewHelper(logger)}
}

func (r *alertRepo) ListForUser(ctx context.Context, userID int) ([]*biz.Alert, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

func (r *alertRepo) EnabledAt(ctx context.Context, userID int, at string) ([]*biz.Alert, error) {
	return r.list(ctx, sq.Eq{"user_id": userID, "alert_time": at, "enabled": true})
}

func (r *alertRepo) list(ctx context.Context, where sq.Eq) ([]*biz.Alert, error) {
	query, args, err := psql.Select("id", "user_id", "title", "alert_time", "enabled").
		From("user_alerts").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*biz.Alert
	for rows.Next() {
		var a biz.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Time, &a.Enabled); err != nil {
			return nil, err
		}
		alerts = append(alerts, &a)
	}
	return alerts, rows.Err()
}

func (r *alertRepo) Create(ctx context.Context, a *biz.Alert) error {
	query, args, err := psql.Insert("user_alerts").
		Columns("user_id", "title", "alert_time", "enabled").
		Values(a.UserID, a.Title, a.Time, a.Enabled).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.data.db.QueryRowContext(ctx, query, args...).Scan(&a.ID)
}

func (r *alertRepo) Toggle(ctx context.Context, alertID int) (*biz.Alert, error) {
	query, args, err := psql.Update("user_alerts").
		Set("enabled", sq.Expr("NOT enabled")).
		Where(sq.Eq{"id": alertID}).
		Suffix("RETURNING id, user_id, title, alert_time, enabled").
		ToSql()
	if err != nil {
		return nil, err
	}

	var a biz.Alert
	err = r.data.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.UserID, &a.Title, &a.Time, &a.Enabled)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("ALERT_NOT_FOUND", "alert not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
