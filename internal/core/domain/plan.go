package domain

import "github.com/shopspring/decimal"

// PlanStatusActive marks a running investment in the plan history.
const PlanStatusActive = "Active"

// Plan is an investment plan offered by the backend. Amounts are in base currency.
type Plan struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	DailyProfit  decimal.Decimal `json:"daily_profit"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	DurationDays int             `json:"duration_days"`
	Image        string          `json:"image"`
}

// UserPlan is an entry of /transactions/dashboard/.
type UserPlan struct {
	Plan          string          `json:"plan"`
	IsActive      bool            `json:"is_active"`
	DailyProfit   decimal.Decimal `json:"daily_profit"`
	TotalEarned   decimal.Decimal `json:"total_earned"`
	RemainingDays int             `json:"remaining_days"`
}

// PlanHistoryEntry is one record of /transactions/plans/history/.
type PlanHistoryEntry struct {
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// ProfitEntry is one record of /transactions/profit/history/, keyed by plan title.
type ProfitEntry struct {
	Plan          string          `json:"plan"`
	IsActive      bool            `json:"is_active"`
	DailyProfit   decimal.Decimal `json:"daily_profit"`
	TotalEarned   decimal.Decimal `json:"total_earned"`
	RemainingDays int             `json:"remaining_days"`
}

// TodayVideo is the daily task of an active plan. VideoURL is empty when there is no task.
type TodayVideo struct {
	DayNumber int    `json:"day_number"`
	VideoURL  string `json:"today_video"`
}

// PastVideo is an already released daily task.
type PastVideo struct {
	DayNumber int    `json:"day_number"`
	VideoURL  string `json:"video_url"`
	Title     string `json:"title"`
}
