package flows

import "github.com/SscSPs/invest_portal/internal/apperrors"

// DepositPolicy words deposit errors.
var DepositPolicy = apperrors.DefaultPolicy

// depositAccountsPolicy words failures to load the receiving accounts.
var depositAccountsPolicy = apperrors.MessagePolicy{
	SessionExpired: apperrors.DefaultPolicy.SessionExpired,
	Network:        "Failed to fetch payment details.",
	Unexpected:     "Failed to fetch payment details.",
	Fallback:       "Failed to fetch payment details.",
}

// WithdrawalPolicy shows the backend's "error" for any status and otherwise
// joins every reported field message.
var WithdrawalPolicy = apperrors.MessagePolicy{
	SessionExpired: "Session expired. Redirecting to login.",
	Network:        "Withdrawal failed. Please try again.",
	Unexpected:     "Withdrawal failed. Please try again.",
	Fallback:       "Withdrawal failed. Please try again.",
	MessageKeys:    []string{"error"},
	JoinValues:     true,
	AnyStatusKeys:  true,
}

// RegisterPolicy words failures of the registration details step.
var RegisterPolicy = apperrors.MessagePolicy{
	SessionExpired: "Registration failed.",
	Network:        "Network error. Please try again.",
	Unexpected:     "Registration failed.",
	Fallback:       "Registration failed.",
	MessageKeys:    []string{"error", "message"},
	AnyStatusKeys:  true,
}

// VerifyOTPPolicy words failures of the OTP step.
var VerifyOTPPolicy = apperrors.MessagePolicy{
	SessionExpired: "Verification failed.",
	Network:        "Network error. Please try again.",
	Unexpected:     "Verification failed.",
	Fallback:       "Verification failed.",
	MessageKeys:    []string{"error", "message"},
	AnyStatusKeys:  true,
}

// ForgotPasswordPolicy words failures to request a reset OTP.
var ForgotPasswordPolicy = apperrors.MessagePolicy{
	SessionExpired: "Failed to send OTP. Please check your email.",
	Network:        "Failed to send OTP. Please check your email.",
	Unexpected:     "Failed to send OTP. Please check your email.",
	Fallback:       "Failed to send OTP. Please check your email.",
	MessageKeys:    []string{"message"},
	AnyStatusKeys:  true,
}

// ResetPasswordPolicy words failures to set the new password.
var ResetPasswordPolicy = apperrors.MessagePolicy{
	SessionExpired: "Invalid OTP or details. Try again.",
	Network:        "Invalid OTP or details. Try again.",
	Unexpected:     "Invalid OTP or details. Try again.",
	Fallback:       "Invalid OTP or details. Try again.",
	MessageKeys:    []string{"message"},
	AnyStatusKeys:  true,
}

// LoginPolicy words login failures.
var LoginPolicy = apperrors.MessagePolicy{
	SessionExpired: "Login failed.",
	Network:        "Login failed.",
	Unexpected:     "Login failed.",
	Fallback:       "Login failed.",
	MessageKeys:    []string{"detail"},
	AnyStatusKeys:  true,
}
