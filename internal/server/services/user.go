// Package services holds the server's business logic between the HTTP
// handlers and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/common"
	"fintrack/internal/cryptox"
	"fintrack/internal/logging"
	"fintrack/internal/server/auth"
	"fintrack/internal/server/models"
	"fintrack/internal/server/repositories/users"
)

// Session is what a successful login yields: the signed access token and the
// id of the account it belongs to.
type Session struct {
	Token  string
	UserID string
}

type UserService struct {
	repo                  users.Repository
	log                   logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, log logging.Logger, jwtSecret []byte, tokenValidity time.Duration) *UserService {
	return &UserService{
		repo:                  repo,
		log:                   log.With("component", "users"),
		jwtSecret:             jwtSecret,
		tokenValidityDuration: tokenValidity,
	}
}

var ErrInvalidCredentials = errors.New("username and password must not be empty")

// Register creates an account with an argon2id password hash. The username
// must be unique; a taken one surfaces as common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Login checks the credentials and issues an access token. Unknown usernames
// and wrong passwords both map to common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Session{}, common.ErrorUnauthorized
		}
		return Session{}, common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, []byte(password))
	if err != nil {
		return Session{}, common.ErrorInternal
	}
	if !ok {
		return Session{}, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return Session{}, common.ErrorInternal
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return Session{Token: token, UserID: user.ID}, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
