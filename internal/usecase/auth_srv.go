package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/session"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bcrypt ignores input past this many bytes, so longer passwords are refused.
const maxPasswordBytes = 72

type AuthService interface {
	// Register creates the user and authenticates sess on success.
	Register(ctx context.Context, sess *session.Session, req *request.RegisterRequest, client request.ClientInfo) (*entity.User, error)
	// Login authenticates sess. Unknown email and wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, sess *session.Session, req *request.LoginRequest, client request.ClientInfo) (*entity.User, error)
	// Logout revokes the server-side session and clears sess unconditionally.
	Logout(ctx context.Context, sess *session.Session) error
	// CurrentUser returns nil when sess is anonymous or its user no longer exists.
	CurrentUser(ctx context.Context, sess *session.Session) (*entity.User, error)
	IsLoggedIn(sess *session.Session) bool
}

type authService struct {
	repo *repository.Repository
	ttl  time.Duration
	log  *zap.Logger
	now  func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	ttl := time.Duration(config.Session.ExpiryHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &authService{
		repo: repo,
		ttl:  ttl,
		log:  log.With(zap.String("service", "auth")),
		now:  time.Now,
	}
}

func (s *authService) Register(ctx context.Context, sess *session.Session, req *request.RegisterRequest, client request.ClientInfo) (*entity.User, error) {
	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = make(utils.ValidationErrors)
	}
	if len(req.Password) > maxPasswordBytes {
		errs.Add("password", fmt.Sprintf("is too long (maximum is %d bytes)", maxPasswordBytes))
	}

	// uniqueness is only worth a query when the email itself is acceptable
	if _, bad := errs["email"]; !bad {
		existing, err := s.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			errs.Add("email", "has already been taken")
		}
	}

	if len(errs) > 0 {
		s.log.Debug("Register validation failed", zap.Any("errors", errs))
		return nil, errs
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, utils.ValidationErrors{"email": "has already been taken"}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.startSession(ctx, sess, user, client); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	return user, nil
}

func (s *authService) Login(ctx context.Context, sess *session.Session, req *request.LoginRequest, client request.ClientInfo) (*entity.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.log.Info("Login for unknown email")
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Info("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if err := s.startSession(ctx, sess, user, client); err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return user, nil
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	token := sess.Token
	userID := sess.UserID
	sess.Clear()

	if token == uuid.Nil {
		return nil
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out", zap.Int64("user_id", userID))
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, sess *session.Session) (*entity.User, error) {
	if !sess.IsLoggedIn() {
		return nil, nil
	}
	if user, ok := sess.CachedUser(); ok {
		return user, nil
	}

	user, err := s.repo.User.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}

	sess.CacheUser(user)
	return user, nil
}

func (s *authService) IsLoggedIn(sess *session.Session) bool {
	return sess.IsLoggedIn()
}

// ==================== HELPER METHODS ====================

func (s *authService) startSession(ctx context.Context, sess *session.Session, user *entity.User, client request.ClientInfo) error {
	// a new login replaces whatever the browser held before
	if sess.Token != uuid.Nil {
		if err := s.repo.Session.Revoke(ctx, sess.Token); err != nil {
			s.log.Warn("Failed to revoke previous session", zap.Error(err))
		}
	}

	now := s.now()
	row := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Session.Create(ctx, row); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	sess.Authenticate(user.ID, row.Token)
	sess.CacheUser(user)
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
