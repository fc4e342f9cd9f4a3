package services

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/dto"
)

// SessionReaderSvc exposes the stored credentials of one profile.
type SessionReaderSvc interface {
	// Token returns a usable access token or an apperrors.ErrUnauthorized error.
	// Undecodable or expired tokens are cleared.
	Token(ctx context.Context) (string, error)
	// Authenticated reports whether Token would succeed.
	Authenticated(ctx context.Context) bool
}

// SessionWriterSvc changes the stored credentials of one profile.
type SessionWriterSvc interface {
	// Login exchanges an email or phone identifier and password for tokens.
	Login(ctx context.Context, req dto.LoginForm) error
	// Logout forgets the stored tokens.
	Logout(ctx context.Context) error
	// Clear drops the tokens after the backend rejected them.
	Clear(ctx context.Context) error
}

// SessionSvc combines read and write access to a profile's session.
type SessionSvc interface {
	SessionReaderSvc
	SessionWriterSvc
}
