package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/invest_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/utils"
)

// Session storage keys.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

type sessionService struct {
	BaseService
	store    portsrepo.KeyValueStore
	accounts clients.AccountsAPI
	now      func() time.Time
}

// NewSessionService creates the session of one profile. store is the
// profile's session scope.
func NewSessionService(store portsrepo.KeyValueStore, accounts clients.AccountsAPI, logger *slog.Logger) portssvc.SessionSvc {
	return &sessionService{
		BaseService: BaseService{Logger: logger},
		store:       store,
		accounts:    accounts,
		now:         time.Now,
	}
}

var _ portssvc.SessionSvc = (*sessionService)(nil)

// LoginRequestFor builds the backend login payload for an identifier.
func LoginRequestFor(form dto.LoginForm) dto.LoginRequest {
	identifier := strings.TrimSpace(form.Identifier)
	req := dto.LoginRequest{Password: form.Password}
	if strings.Contains(identifier, "@") {
		req.Email = identifier
	} else {
		req.PhoneNumber = identifier
	}
	return req
}

func (s *sessionService) Login(ctx context.Context, form dto.LoginForm) error {
	if strings.TrimSpace(form.Identifier) == "" || form.Password == "" {
		return apperrors.Validationf("Email or phone and password are required.")
	}

	tokens, err := s.accounts.Login(ctx, LoginRequestFor(form))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if tokens == nil || tokens.Access == "" {
		return fmt.Errorf("login: backend returned no access token")
	}

	if err := s.store.Set(ctx, AccessTokenKey, tokens.Access, 0); err != nil {
		return fmt.Errorf("storing access token: %w", err)
	}
	if err := s.store.Set(ctx, RefreshTokenKey, tokens.Refresh, 0); err != nil {
		return fmt.Errorf("storing refresh token: %w", err)
	}

	s.LogInfo(ctx, "User logged in")
	return nil
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, AccessTokenKey)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && token == "") {
		return "", fmt.Errorf("%w: not logged in", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("reading access token: %w", err)
	}

	if _, err := utils.DecodeJWT(token, s.now()); err != nil {
		s.LogDebug(ctx, "Dropping unusable access token", slog.String("reason", err.Error()))
		if clearErr := s.Clear(ctx); clearErr != nil {
			s.LogWarn(ctx, clearErr, "Failed to clear session")
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	return token, nil
}

func (s *sessionService) Authenticated(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	s.LogInfo(ctx, "User logged out")
	return nil
}

func (s *sessionService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, AccessTokenKey); err != nil {
		return fmt.Errorf("clearing access token: %w", err)
	}
	if err := s.store.Delete(ctx, RefreshTokenKey); err != nil {
		return fmt.Errorf("clearing refresh token: %w", err)
	}
	return nil
}
