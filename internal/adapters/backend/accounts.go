package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/dto"
)

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*domain.Tokens, error) {
	var tokens domain.Tokens
	if err := c.postJSON(ctx, "", pathLogin, req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.MessageResponse, error) {
	return c.message(ctx, "", pathRegister, req)
}

func (c *Client) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.MessageResponse, error) {
	return c.message(ctx, "", pathVerifyOTP, req)
}

func (c *Client) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	return c.message(ctx, "", pathForgotPassword, req)
}

func (c *Client) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	return c.message(ctx, "", pathResetPassword, req)
}

func (c *Client) message(ctx context.Context, token, path string, body any) (*dto.MessageResponse, error) {
	var res dto.MessageResponse
	if err := c.postJSON(ctx, token, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.get(ctx, token, pathProfile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile sends a multipart PUT so an image can ride along with the username.
func (c *Client) UpdateProfile(ctx context.Context, token string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	r := c.request(ctx, token).SetMultipartFormData(map[string]string{"username": req.Username})
	attach(r, "profile_image", req.ProfileImage)

	var profile domain.Profile
	if err := send(r, http.MethodPut, pathProfile, &profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return &profile, nil
}

func (c *Client) Referrals(ctx context.Context, token string) (*domain.ReferralSummary, error) {
	var summary domain.ReferralSummary
	if err := c.get(ctx, token, pathReferrals, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
