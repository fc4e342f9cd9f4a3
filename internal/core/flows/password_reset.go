package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	"github.com/SscSPs/invest_portal/internal/dto"
)

// Password reset steps.
const (
	PasswordResetStepEmail = "email"
	PasswordResetStepReset = "reset"
)

// PasswordResetForm holds the reset input.
type PasswordResetForm struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"-"`
}

// PasswordResetPatch updates the fields that are set.
type PasswordResetPatch struct {
	Email       *string `json:"email"`
	OTP         *string `json:"otp"`
	NewPassword *string `json:"new_password"`
}

// PasswordResetView is what a client renders for the reset wizard.
type PasswordResetView struct {
	State
	Form PasswordResetForm `json:"form"`
}

// PasswordResetFlow is the email, reset wizard for a forgotten password.
type PasswordResetFlow struct {
	mu       sync.Mutex
	accounts clients.AccountsAPI
	wizard   *Wizard

	form PasswordResetForm
}

// NewPasswordResetFlow creates a password reset wizard. It needs no session.
func NewPasswordResetFlow(accounts clients.AccountsAPI, logger *slog.Logger) *PasswordResetFlow {
	f := &PasswordResetFlow{accounts: accounts}
	f.wizard = newWizard("password-reset", []Step{
		{Name: PasswordResetStepEmail, Validate: f.validateEmail, Action: f.requestOTP, Policy: &ForgotPasswordPolicy},
		{Name: PasswordResetStepReset, Validate: f.validateReset, Action: f.reset, Policy: &ResetPasswordPolicy},
	}, nil, ForgotPasswordPolicy, logger)
	return f
}

func (f *PasswordResetFlow) validateEmail() error {
	return checkVar(f.form.Email, "required,email", "Please enter a valid email address.")
}

func (f *PasswordResetFlow) requestOTP(ctx context.Context) error {
	res, err := f.accounts.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: f.form.Email})
	if err != nil {
		return fmt.Errorf("requesting reset otp: %w", err)
	}
	notice := "OTP sent to your email!"
	if res != nil && res.Message != "" {
		notice = res.Message
	}
	f.wizard.SetNotice(notice)
	return nil
}

func (f *PasswordResetFlow) validateReset() error {
	if err := checkVar(f.form.OTP, otpTag, "Please enter the 6-digit OTP."); err != nil {
		return err
	}
	return checkVar(f.form.NewPassword, "required", "Please enter a new password.")
}

func (f *PasswordResetFlow) reset(ctx context.Context) error {
	_, err := f.accounts.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email:       f.form.Email,
		OTP:         f.form.OTP,
		NewPassword: f.form.NewPassword,
	})
	if err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}
	f.wizard.SetNotice("Password reset successful! Please login.")
	f.form.NewPassword = ""
	return nil
}

func (f *PasswordResetFlow) apply(patch PasswordResetPatch) {
	if patch.Email != nil {
		f.form.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.OTP != nil {
		f.form.OTP = strings.TrimSpace(*patch.OTP)
	}
	if patch.NewPassword != nil {
		f.form.NewPassword = *patch.NewPassword
	}
	f.wizard.ClearError()
}

// Update applies patch to the form.
func (f *PasswordResetFlow) Update(patch PasswordResetPatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
}

// Next applies patch and requests the OTP.
func (f *PasswordResetFlow) Next(ctx context.Context, patch PasswordResetPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
	return f.wizard.Next(ctx)
}

// Back returns to the email step.
func (f *PasswordResetFlow) Back(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Back(ctx)
}

// Submit applies patch and sets the new password.
func (f *PasswordResetFlow) Submit(ctx context.Context, patch PasswordResetPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
	return f.wizard.Submit(ctx)
}

// Reset clears the form and returns to the email step.
func (f *PasswordResetFlow) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = PasswordResetForm{}
	return f.wizard.Reset(ctx)
}

// Step returns the current step name.
func (f *PasswordResetFlow) Step() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Current()
}

// View returns a snapshot for rendering. The new password is never included.
func (f *PasswordResetFlow) View() PasswordResetView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return PasswordResetView{State: f.wizard.State(), Form: f.form}
}
