package dto

import "github.com/SscSPs/invest_portal/internal/core/domain"

// AmountView is an amount in base currency next to its rendering in the
// selected currency. Display is "..." while rates are loading.
type AmountView struct {
	Base    string `json:"base"`
	Display string `json:"display"`
}

// CurrencyResponse describes the selected display currency.
type CurrencyResponse struct {
	Code      string            `json:"code"`
	Symbol    string            `json:"symbol"`
	Name      string            `json:"name"`
	Supported []domain.Currency `json:"supported,omitempty"`
}

// PlanResponse is an investment plan rendered in the selected currency.
type PlanResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Amount       AmountView `json:"amount"`
	DailyProfit  AmountView `json:"daily_profit"`
	TotalProfit  AmountView `json:"total_profit"`
	DurationDays int        `json:"duration_days"`
	Image        string     `json:"image,omitempty"`
}

// DashboardResponse is the landing page.
type DashboardResponse struct {
	Currency CurrencyResponse `json:"currency"`
	Balance  AmountView       `json:"balance"`
	Plans    []PlanResponse   `json:"plans"`
}

// ActiveUserPlanResponse is the user's running plan on the plans page.
type ActiveUserPlanResponse struct {
	Plan          string     `json:"plan"`
	DailyProfit   AmountView `json:"daily_profit"`
	TotalEarned   AmountView `json:"total_earned"`
	RemainingDays int        `json:"remaining_days"`
}

// PlansResponse is the investment plans page.
type PlansResponse struct {
	Currency       CurrencyResponse        `json:"currency"`
	Plans          []PlanResponse          `json:"plans"`
	Active         *ActiveUserPlanResponse `json:"active_plan"`
	TodayVideo     *domain.TodayVideo      `json:"today_video,omitempty"`
	PreviousVideos []domain.PastVideo      `json:"previous_videos"`
}

// DepositEntryResponse is one deposit history row.
type DepositEntryResponse struct {
	ID            int64      `json:"id"`
	Amount        AmountView `json:"amount"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transaction_id"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"created_at"`
}

// DepositHistoryResponse is the deposit history page.
type DepositHistoryResponse struct {
	Currency     CurrencyResponse       `json:"currency"`
	Entries      []DepositEntryResponse `json:"entries"`
	Approved     AmountView             `json:"approved"`
	Pending      AmountView             `json:"pending"`
	ApprovalRate int64                  `json:"approval_rate"`
}

// WithdrawalEntryResponse is one withdrawal history row.
type WithdrawalEntryResponse struct {
	ID           int64      `json:"id"`
	Amount       AmountView `json:"amount"`
	Method       string     `json:"method"`
	BankName     string     `json:"bank_name,omitempty"`
	AccountOwner string     `json:"account_owner"`
	BankAccount  string     `json:"bank_account"`
	Status       string     `json:"status"`
	CreatedAt    string     `json:"created_at"`
}

// WithdrawalHistoryResponse is the withdrawal history page.
type WithdrawalHistoryResponse struct {
	Currency      CurrencyResponse          `json:"currency"`
	Entries       []WithdrawalEntryResponse `json:"entries"`
	NextPageToken string                    `json:"next_page_token,omitempty"`
	Total         int                       `json:"total"`
	Successful    int                       `json:"successful"`
	Pending       int                       `json:"pending"`
	TotalAmount   AmountView                `json:"total_amount"`
}

// ActivePlanResponse is a running plan on the profit page.
type ActivePlanResponse struct {
	Title         string     `json:"title"`
	Amount        AmountView `json:"amount"`
	DailyProfit   AmountView `json:"daily_profit"`
	TotalEarned   AmountView `json:"total_earned"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	RemainingDays int        `json:"remaining_days"`
	Progress      string     `json:"progress"`
}

// ProfitHistoryResponse is the profit page.
type ProfitHistoryResponse struct {
	Currency        CurrencyResponse     `json:"currency"`
	Plans           []ActivePlanResponse `json:"plans"`
	TotalProfit     AmountView           `json:"total_profit"`
	TotalInvestment AmountView           `json:"total_investment"`
}
