package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	"github.com/SscSPs/invest_portal/internal/dto"
)

// Registration steps.
const (
	RegistrationStepDetails = "details"
	RegistrationStepOTP     = "otp"
)

const otpTag = "required,len=6,numeric"

// RegistrationForm holds the sign-up input.
type RegistrationForm struct {
	Username      string `json:"username" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PhoneNumber   string `json:"phone_number" validate:"required"`
	Password      string `json:"-" validate:"required"`
	ReferralInput string `json:"referral_input"`
	OTP           string `json:"otp"`
}

// RegistrationPatch updates the fields that are set.
type RegistrationPatch struct {
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	PhoneNumber   *string `json:"phone_number"`
	Password      *string `json:"password"`
	ReferralInput *string `json:"referral_input"`
	OTP           *string `json:"otp"`
}

// RegistrationView is what a client renders for the registration wizard.
type RegistrationView struct {
	State
	Form RegistrationForm `json:"form"`
	// OTPEmail is where the code was sent.
	OTPEmail string `json:"otp_email,omitempty"`
}

// RegistrationFlow is the details, otp wizard that creates and verifies an account.
type RegistrationFlow struct {
	mu       sync.Mutex
	accounts clients.AccountsAPI
	wizard   *Wizard

	form     RegistrationForm
	otpEmail string
}

// NewRegistrationFlow creates a registration wizard. It needs no session.
func NewRegistrationFlow(accounts clients.AccountsAPI, logger *slog.Logger) *RegistrationFlow {
	f := &RegistrationFlow{accounts: accounts}
	f.wizard = newWizard("registration", []Step{
		{Name: RegistrationStepDetails, Validate: f.validateDetails, Action: f.register, Policy: &RegisterPolicy},
		{Name: RegistrationStepOTP, Validate: f.validateOTP, Action: f.verify, Policy: &VerifyOTPPolicy},
	}, nil, RegisterPolicy, logger)
	return f
}

func (f *RegistrationFlow) validateDetails() error {
	return checkStruct(f.form, "Please fill in all fields with a valid email address.")
}

func (f *RegistrationFlow) register(ctx context.Context) error {
	req := dto.RegisterRequest{
		Username:      strings.TrimSpace(f.form.Username),
		Email:         strings.TrimSpace(f.form.Email),
		PhoneNumber:   strings.TrimSpace(f.form.PhoneNumber),
		Password:      f.form.Password,
		ReferralInput: strings.TrimSpace(f.form.ReferralInput),
	}
	res, err := f.accounts.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("registering: %w", err)
	}

	f.otpEmail = req.Email
	f.form.OTP = ""
	notice := "Registration successful. Please verify."
	if res != nil && res.Message != "" {
		notice = res.Message
	}
	f.wizard.SetNotice(notice)
	return nil
}

func (f *RegistrationFlow) validateOTP() error {
	return checkVar(f.form.OTP, otpTag, "Please enter the 6-digit OTP.")
}

func (f *RegistrationFlow) verify(ctx context.Context) error {
	res, err := f.accounts.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: f.otpEmail, OTP: f.form.OTP})
	if err != nil {
		return fmt.Errorf("verifying otp: %w", err)
	}

	notice := "Account verified. Please login."
	if res != nil && res.Message != "" {
		notice = res.Message
	}
	f.wizard.SetNotice(notice)
	f.form.Password = ""
	return nil
}

// Update applies patch to the form. OTP input is limited to six digits.
func (f *RegistrationFlow) Update(ctx context.Context, patch RegistrationPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apply(ctx, patch)
}

func (f *RegistrationFlow) apply(ctx context.Context, patch RegistrationPatch) error {
	if patch.OTP != nil {
		otp := strings.TrimSpace(*patch.OTP)
		if otp != "" && (len(otp) > 6 || checkVar(otp, "numeric", "") != nil) {
			return f.wizard.Fail(ctx, apperrors.Validationf("The OTP has at most 6 digits."))
		}
		f.form.OTP = otp
	}
	if patch.Username != nil {
		f.form.Username = *patch.Username
	}
	if patch.Email != nil {
		f.form.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.PhoneNumber != nil {
		f.form.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Password != nil {
		f.form.Password = *patch.Password
	}
	if patch.ReferralInput != nil {
		f.form.ReferralInput = *patch.ReferralInput
	}
	f.wizard.ClearError()
	return nil
}

// Next applies patch and registers the account, moving to the OTP step.
func (f *RegistrationFlow) Next(ctx context.Context, patch RegistrationPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.apply(ctx, patch); err != nil {
		return err
	}
	return f.wizard.Next(ctx)
}

// Back returns to the details step.
func (f *RegistrationFlow) Back(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Back(ctx)
}

// Submit applies patch and verifies the OTP.
func (f *RegistrationFlow) Submit(ctx context.Context, patch RegistrationPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.apply(ctx, patch); err != nil {
		return err
	}
	return f.wizard.Submit(ctx)
}

// Reset clears the form and returns to the details step.
func (f *RegistrationFlow) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = RegistrationForm{}
	f.otpEmail = ""
	return f.wizard.Reset(ctx)
}

// Step returns the current step name.
func (f *RegistrationFlow) Step() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Current()
}

// View returns a snapshot for rendering. The password is never included.
func (f *RegistrationFlow) View() RegistrationView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return RegistrationView{
		State:    f.wizard.State(),
		Form:     f.form,
		OTPEmail: f.otpEmail,
	}
}
