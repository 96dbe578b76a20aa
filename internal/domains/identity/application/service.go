package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/laundromart/admin-api/internal/auth"
	activitydomain "github.com/laundromart/admin-api/internal/domains/activity/domain"
	activityports "github.com/laundromart/admin-api/internal/domains/activity/ports"
	"github.com/laundromart/admin-api/internal/domains/identity/ports"
)

// Service exposes the identity bounded context use cases.
type Service struct {
	repo     ports.Repository
	issuer   *auth.Issuer
	activity activityports.Recorder
	logger   *slog.Logger
}

// NewService wires the identity service with its dependencies.
func NewService(repo ports.Repository, issuer *auth.Issuer, activity activityports.Recorder, logger *slog.Logger) *Service {
	if activity == nil {
		activity = activityports.NoopRecorder
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, issuer: issuer, activity: activity, logger: logger}
}

// Login exchanges credentials for a bearer token. A failed audit log write
// is logged and swallowed; it never fails the login.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ports.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ports.ErrAccountDeactivated
	}
	token, err := s.issuer.Issue(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, err
	}
	if err := s.activity.Record(ctx, activitydomain.Activity{
		Type:        activitydomain.TypeUserLogin,
		Title:       "User Login",
		Description: fmt.Sprintf("%s logged in successfully", user.DisplayName()),
		UserID:      user.ID,
	}); err != nil {
		s.logger.Warn("failed to record login activity",
			slog.String("user.id", user.ID),
			slog.String("error", err.Error()),
		)
	}
	return &ports.LoginResult{Token: token, User: user}, nil
}

var _ ports.Service = (*Service)(nil)
