package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
)

type storyRepo struct {
	data *Data
	log  *log.Helper
}

func NewStoryRepo(data *Data, logger log.Logger) biz.StoryRepo {
	return &storyRepo{data: data, log: log.NewHelper(logger)}
}

func (r *storyRepo) CreateSummaryNote(ctx context.Context, n *biz.SummaryNote) error {
	query, args, err := psql.Insert("summary_notes").
		Columns("sum_title", "content", "topic", "region", "username").
		Values(n.Title, n.Content, n.Topic, n.Region, n.Username).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.data.db.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt)
}

func (r *storyRepo) ListSummaryNotes(ctx context.Context) ([]*biz.SummaryNote, error) {
	query, args, err := psql.Select("id", "sum_title", "content", "topic", "region", "username", "created_at").
		From("summary_notes").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*biz.SummaryNote
	for rows.Next() {
		var n biz.SummaryNote
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Topic, &n.Region, &n.Username, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

func (r *storyRepo) CreateSharedStory(ctx context.Context, s *biz.SharedStory) error {
	query, args, err := psql.Insert("other_user_records").
		Columns("title", "content", "author", "topic", "region", "profile_url").
		Values(s.Title, s.Content, s.Author, s.Topic, s.Region, s.ProfileURL).
		Suffix("RETURNING id, date").
		ToSql()
	if err != nil {
		return err
	}
	return r.data.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Date)
}

func (r *storyRepo) ListSharedStories(ctx context.Context) ([]*biz.SharedStory, error) {
	query, args, err := psql.Select("id", "title", "content", "author", "topic", "region", "profile_url", "date").
		From("other_user_records").
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

	var stories []*biz.SharedStory
	for rows.Next() {
		var s biz.SharedStory
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.Author, &s.Topic, &s.Region, &s.ProfileURL, &s.Date); err != nil {
			return nil, err
		}
		stories = append(stories, &s)
	}
	return stories, rows.Err()
}

func (r *storyRepo) DeleteAllSharedStories(ctx context.Context) (int, error) {
	query, args, err := psql.Delete("other_user_records").ToSql()
	if err != nil {
		return 0, err
	}
	result, err := r.data.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.log.Infof("deleted %d shared stories", deleted)
	return int(deleted), nil
}
