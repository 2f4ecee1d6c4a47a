package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/server/repositories/users"
)

func newUserService() *UserService {
	return NewUserService(users.NewInMemoryRepository(), logging.NewDiscard(), []byte("test-secret"), time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "pw123", user.PasswordHash)

	session, err := s.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.Equal(t, user.ID, session.UserID)
	require.NotEmpty(t, session.Token)

	// The issued token resolves back to the account.
	callerID, err := s.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, callerID)
}

func TestRegister_EmptyCredentials(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Register(ctx, "alice", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	s := newUserService()

	_, err := s.Login(context.Background(), "ghost", "pw")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	s := NewUserService(users.NewInMemoryRepository(), logging.NewDiscard(), []byte("test-secret"), -time.Minute)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	session, err := s.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.Equal(t, user.ID, session.UserID)

	_, err = s.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}
