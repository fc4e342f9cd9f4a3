package dto

import "github.com/shopspring/decimal"

// LoginRequest is sent to /accounts/login/. Exactly one of Email or PhoneNumber is set.
type LoginRequest struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password"`
}

// RegisterRequest is sent to /accounts/register/.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PhoneNumber   string `json:"phone_number" validate:"required"`
	Password      string `json:"password" validate:"required"`
	ReferralInput string `json:"referral_input,omitempty"`
}

// VerifyOTPRequest is sent to /accounts/verify-otp/.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ForgotPasswordRequest is sent to /accounts/forgot-password/.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is sent to /accounts/reset-password/.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size is the upload length in bytes.
func (u *Upload) Size() int64 {
	if u == nil {
		return 0
	}
	return int64(len(u.Data))
}

// DepositRequest is posted as multipart form data to /transactions/deposit/.
// Amount is in base currency.
type DepositRequest struct {
	Amount        decimal.Decimal
	Method        string
	TransactionID string
	BankName      string
	AccountOwner  string
	Screenshot    *Upload
}

// WithdrawalRequest is posted as JSON to /transactions/withdraw/. Amount is in base currency.
type WithdrawalRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	BankName     string          `json:"bank_name,omitempty"`
	AccountOwner string          `json:"account_owner"`
	BankAccount  string          `json:"bank_account"`
}

// InvestRequest is sent to /transactions/invest/.
type InvestRequest struct {
	PlanID int64 `json:"plan_id"`
}

// UpdateProfileRequest is sent as multipart form data to /accounts/profile/.
type UpdateProfileRequest struct {
	Username     string
	ProfileImage *Upload
}

// MessageResponse is the common {"message": ...} reply of mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
