package data

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
)

type newsRepo struct {
	data *Data
	log  *log.Helper
}

func NewNewsRepo(data *Data, logger log.Logger) biz.NewsRepo {
	return &newsRepo{data: data, log: log.NewHelper(logger)}
}

func (r *newsRepo) SaveHistory(ctx context.Context, h *biz.NewsHistory) error {
	query, args, err := psql.Insert("news_history").
		Columns("username", "keyword", "summary", "date").
		Values(h.Username, h.Keyword, h.Summary, h.Date).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.data.db.QueryRowContext(ctx, query, args...).Scan(&h.ID)
}

func (r *newsRepo) ListHistory(ctx context.Context, username string) ([]*biz.NewsHistory, error) {
	query, args, err := psql.Select("id", "username", "keyword", "summary", "date").
		From("news_history").
		Where(sq.Eq{"username": username}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*biz.NewsHistory
	for rows.Next() {
		var h biz.NewsHistory
		if err := rows.Scan(&h.ID, &h.Username, &h.Keyword, &h.Summary, &h.Date); err != nil {
			return nil, err
		}
		records = append(records, &h)
	}
	return records, rows.Err()
}
