package biz

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sswu-capstoneDesign2025/backend/internal/conf"
)

// User is an account holder.
type User struct {
	ID           int
	Username     string
	Name         string
	PhoneNumber  string
	Nickname     string
	PasswordHash string
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	NicknameTaken(ctx context.Context, nickname string) (bool, error)
}

var (
	nicknameAdjectives = []string{"멋쟁이", "귀여운", "용감한", "지혜로운", "상냥한", "반짝이는", "든든한"}
	nicknameNouns      = []string{"할부지", "할무니", "친구", "이웃", "동네형", "고수", "챔피언"}
)

const nicknameAttempts = 100

// UserUseCase handles signup, login, and nickname assignment.
type UserUseCase struct {
	repo   UserRepo
	log    *log.Helper
	jwtKey string
	pick   func(n int) int
}

func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
		pick:   rand.Intn,
	}
}

// Signup registers a new account with a hashed password and a random unique
// nickname, and returns the created user.
func (uc *UserUseCase) Signup(ctx context.Context, username, password, name, phone string) (*User, error) {
	if existing, err := uc.repo.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, errors.BadRequest("USERNAME_TAKEN", "username already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nickname, err := uc.uniqueNickname(ctx)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     username,
		Name:         name,
		PhoneNumber:  phone,
		Nickname:     nickname,
		PasswordHash: string(hashed),
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Infof("registered user %s as %s", username, nickname)
	return u, nil
}

// Login checks the password and issues a signed token.
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.Username,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(uc.jwtKey))
}

// GetProfile returns the stored account for a username.
func (uc *UserUseCase) GetProfile(ctx context.Context, username string) (*User, error) {
	return uc.repo.GetUserByUsername(ctx, username)
}

func (uc *UserUseCase) uniqueNickname(ctx context.Context) (string, error) {
	for i := 0; i < nicknameAttempts; i++ {
		nickname := fmt.Sprintf("%s %s",
			nicknameAdjectives[uc.pick(len(nicknameAdjectives))],
			nicknameNouns[uc.pick(len(nicknameNouns))])
		taken, err := uc.repo.NicknameTaken(ctx, nickname)
		if err != nil {
			return "", err
		}
		if !taken {
			return nickname, nil
		}
	}
	return "", errors.InternalServer("NICKNAME_EXHAUSTED", "could not find a free nickname")
}
