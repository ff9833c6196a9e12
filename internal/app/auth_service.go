package app

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ShamilRahmanPK/job-seeker/internal/api"
	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

// Authenticator is the slice of the API client the auth flows need.
type Authenticator interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, error)
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthService owns login, registration, and logout. It is the only writer
// of the session manager.
type AuthService struct {
	api      Authenticator
	sessions *session.Manager
	logger   *slog.Logger
}

func NewAuthService(api Authenticator, sessions *session.Manager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: api, sessions: sessions, logger: logger}
}

// Register creates an account. All fields are required; the role is
// normalized to the canonical enumeration before it goes on the wire.
func (s *AuthService) Register(ctx context.Context, name, email, password, role, phone string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(phone) == "" {
		fields["phone"] = "phone is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		fields["email"] = "invalid email format"
	}
	if strings.TrimSpace(password) == "" {
		fields["password"] = "password is required"
	}
	normalized, ok := user.NormalizeRole(role)
	if !ok {
		fields["role"] = "role must be job_seeker or employer"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid registration", fields)
	}
	req := api.RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     normalized,
		Phone:    strings.TrimSpace(phone),
	}
	if err := s.api.Register(ctx, req); err != nil {
		s.logger.Error("registration failed", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("account registered", slog.String("email", req.Email))
	return nil
}

// Login authenticates and establishes the session, persisting it through
// the session store.
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return nil, common.NewValidationError("invalid email format", map[string]string{"email": "invalid email format"})
	}
	if password == "" {
		return nil, common.NewValidationError("password is required", map[string]string{"password": "password is required"})
	}
	result, err := s.api.Login(ctx, api.Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		s.logger.Error("login failed", slog.String("error", err.Error()))
		return nil, err
	}
	sess := session.Session{User: result.User, Token: result.Token}
	if err := s.sessions.Establish(ctx, sess); err != nil {
		return nil, common.NewError(common.CodeInternal, "persist session", err)
	}
	s.logger.Info("logged in", slog.String("user_id", sess.User.ID), slog.String("role", string(sess.User.Role)))
	return &sess, nil
}

// Logout clears the session, in memory and in the store.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Reset(ctx); err != nil {
		return common.NewError(common.CodeInternal, "clear session", err)
	}
	s.logger.Info("logged out")
	return nil
}
