package dto

// LoginForm is the portal's login request. Identifiers containing "@" are emails,
// anything else a phone number.
type LoginForm struct {
	Identifier string `json:"identifier" binding:"required" validate:"required"`
	Password   string `json:"password" binding:"required" validate:"required"`
}

// SetCurrencyRequest selects the display currency.
type SetCurrencyRequest struct {
	Code string `json:"code" binding:"required"`
}

// ConvertResponse is returned by the conversion endpoint.
type ConvertResponse struct {
	Currency   string `json:"currency"`
	Symbol     string `json:"symbol"`
	Display    string `json:"display,omitempty"`
	Base       string `json:"base,omitempty"`
	Grouped    string `json:"grouped,omitempty"`
	Loading    bool   `json:"loading"`
	RateToBase string `json:"rate_to_base"`
}

// RatesResponse describes the shared rate table.
type RatesResponse struct {
	Base      string            `json:"base"`
	Source    string            `json:"source"`
	Loading   bool              `json:"loading"`
	UpdatedAt string            `json:"updated_at,omitempty"`
	Rates     map[string]string `json:"rates"`
}

// ErrorResponse is the body of failed portal requests.
type ErrorResponse struct {
	Error           string `json:"error"`
	RedirectToLogin bool   `json:"redirect_to_login,omitempty"`
}
