package services

import "github.com/SscSPs/invest_portal/internal/apperrors"

// planActivatedNotice is shown after an activation the backend did not describe.
const planActivatedNotice = "Plan Activated!"

// PagePolicy words failures to load a read-only page.
var PagePolicy = apperrors.MessagePolicy{
	SessionExpired: apperrors.DefaultPolicy.SessionExpired,
	Network:        "Failed to fetch data.",
	Unexpected:     "Failed to fetch data.",
	Fallback:       "Failed to fetch data.",
}

// ProfitPolicy words failures of the profit page.
var ProfitPolicy = apperrors.MessagePolicy{
	SessionExpired: apperrors.DefaultPolicy.SessionExpired,
	Network:        "Failed to load details.",
	Unexpected:     "Failed to load details.",
	Fallback:       "Failed to load details.",
}

// InvestPolicy words plan activation failures.
var InvestPolicy = apperrors.MessagePolicy{
	SessionExpired: apperrors.DefaultPolicy.SessionExpired,
	Network:        "Error activating plan.",
	Unexpected:     "Error activating plan.",
	Fallback:       "Error activating plan.",
	MessageKeys:    []string{"error"},
	AnyStatusKeys:  true,
}

// ProfilePolicy words profile update failures.
var ProfilePolicy = apperrors.MessagePolicy{
	SessionExpired: apperrors.DefaultPolicy.SessionExpired,
	Network:        "Update failed!",
	Unexpected:     "Update failed!",
	Fallback:       "Update failed!",
	MessageKeys:    []string{"error", "detail"},
	JoinValues:     true,
}
