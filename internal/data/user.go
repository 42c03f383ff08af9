package data

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/biz"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type userRepo struct {
	data *Data
	log  *log.Helper
}

func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{data: data, log: log.NewHelper(logger)}
}

func (r *userRepo) CreateUser(ctx context.Context, u *biz.User) error {
	query, args, err := psql.Insert("users").
		Columns("username", "password_hash", "name", "phone_number", "nickname").
		Values(u.Username, u.PasswordHash, u.Name, u.PhoneNumber, u.Nickname).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.data.db.QueryRowContext(ctx, query, args...).Scan(&u.ID)
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*biz.User, error) {
	query, args, err := psql.Select("id", "username", "password_hash", "name", "phone_number", "nickname").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u biz.User
	err = r.data.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.PhoneNumber, &u.Nickname)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) NicknameTaken(ctx context.Context, nickname string) (bool, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"nickname": nickname}).
		ToSql()
	if err != nil {
		return false, err
	}
	var count int
	if err := r.data.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
