package services

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
)

// authorized runs call with the current access token. A 401 from the backend
// ends the session so the next request is sent to the login page.
func authorized[T any](ctx context.Context, base *BaseService, session portssvc.SessionSvc, call func(token string) (T, error)) (T, error) {
	var zero T
	token, err := session.Token(ctx)
	if err != nil {
		return zero, err
	}

	result, err := call(token)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			if clearErr := session.Clear(ctx); clearErr != nil {
				base.LogWarn(ctx, clearErr, "Failed to clear rejected session")
			}
		}
		return zero, err
	}
	return result, nil
}
