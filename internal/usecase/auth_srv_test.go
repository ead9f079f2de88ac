package usecase

import (
	"context"
	"strings"
	"testing"

	"movie-review/internal/data/repository"
	"movie-review/internal/data/repository/memrepo"
	"movie-review/internal/dto/request"
	"movie-review/internal/session"
	"movie-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testClient = request.ClientInfo{UserAgent: "go-test", IPAddress: "127.0.0.1"}

func newTestService(t *testing.T) (*Service, *repository.Repository, *memrepo.Store) {
	t.Helper()
	repo, store := memrepo.NewRepository()
	config := &utils.Config{
		App:     utils.AppConfig{Name: "movie-review"},
		Session: utils.SessionConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	return NewService(repo, config, zap.NewNop()), repo, store
}

func register(t *testing.T, svc *Service, name, email, password string) (*session.Session, int64) {
	t.Helper()
	sess := session.New()
	user, err := svc.Auth.Register(context.Background(), sess, &request.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, testClient)
	require.NoError(t, err)
	return sess, user.ID
}

func TestAuthService_Register(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	sess, userID := register(t, svc, "alice", "alice@example.com", "password1")

	assert.True(t, svc.Auth.IsLoggedIn(sess))
	assert.True(t, sess.Changed())
	assert.Equal(t, userID, sess.UserID)

	stored, err := repo.User.FindByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password1", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("password1", stored.PasswordHash))

	row, err := repo.Session.FindValidSession(ctx, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, userID, row.UserID)
	require.NotNil(t, row.UserAgent)
	assert.Equal(t, "go-test", *row.UserAgent)
}

func TestAuthService_RegisterDuplicateEmailIgnoresCase(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "alice", "alice@example.com", "password1")

	sess := session.New()
	_, err := svc.Auth.Register(context.Background(), sess, &request.RegisterRequest{
		Name:     "alice2",
		Email:    "ALICE@Example.COM",
		Password: "password2",
	}, testClient)

	errs, ok := utils.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "has already been taken", errs["email"])
	assert.False(t, sess.IsLoggedIn())
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name   string
		req    request.RegisterRequest
		fields []string
	}{
		{
			name:   "all blank",
			req:    request.RegisterRequest{},
			fields: []string{"name", "email", "password"},
		},
		{
			name:   "name too long",
			req:    request.RegisterRequest{Name: "abcdefghijk", Email: "a@example.com", Password: "pw"},
			fields: []string{"name"},
		},
		{
			name:   "bad email",
			req:    request.RegisterRequest{Name: "bob", Email: "bob@example", Password: "pw"},
			fields: []string{"email"},
		},
		{
			name:   "password past bcrypt limit",
			req:    request.RegisterRequest{Name: "bob", Email: "bob@example.com", Password: strings.Repeat("p", 73)},
			fields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New()
			_, err := svc.Auth.Register(context.Background(), sess, &tt.req, testClient)

			errs, ok := utils.AsValidationErrors(err)
			require.True(t, ok)
			assert.Len(t, errs, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, errs, field)
			}
			assert.False(t, sess.IsLoggedIn())
		})
	}
}

func TestAuthService_LoginErrorsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "alice", "alice@example.com", "password1")
	ctx := context.Background()

	unknown := session.New()
	_, errUnknown := svc.Auth.Login(ctx, unknown, &request.LoginRequest{
		Email: "nobody@example.com", Password: "password1",
	}, testClient)

	wrong := session.New()
	_, errWrong := svc.Auth.Login(ctx, wrong, &request.LoginRequest{
		Email: "alice@example.com", Password: "nope",
	}, testClient)

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.False(t, unknown.IsLoggedIn())
	assert.False(t, wrong.IsLoggedIn())
}

func TestAuthService_LoginIgnoresEmailCase(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, userID := register(t, svc, "bob", "Bob@Example.com", "password1")

	sess := session.New()
	user, err := svc.Auth.Login(context.Background(), sess, &request.LoginRequest{
		Email: "bob@example.com", Password: "password1",
	}, testClient)
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.Equal(t, userID, sess.UserID)
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	sess, _ := register(t, svc, "alice", "alice@example.com", "password1")
	token := sess.Token

	require.NoError(t, svc.Auth.Logout(ctx, sess))

	assert.False(t, svc.Auth.IsLoggedIn(sess))
	row, err := repo.Session.FindValidSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, row)

	// anonymous logout is a no-op
	assert.NoError(t, svc.Auth.Logout(ctx, session.New()))
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.Auth.CurrentUser(ctx, session.New())
	require.NoError(t, err)
	assert.Nil(t, user)

	sess, userID := register(t, svc, "alice", "alice@example.com", "password1")

	// a fresh request for the same login
	restored := session.New()
	restored.Restore(userID, sess.Token)

	user, err = svc.Auth.CurrentUser(ctx, restored)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Name)

	// memoised for the rest of the request
	store.DeleteUser(userID)
	again, err := svc.Auth.CurrentUser(ctx, restored)
	require.NoError(t, err)
	assert.Same(t, user, again)

	// a later request sees the user is gone
	next := session.New()
	next.Restore(userID, sess.Token)
	gone, err := svc.Auth.CurrentUser(ctx, next)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
