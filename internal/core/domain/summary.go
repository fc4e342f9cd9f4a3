package domain

import "github.com/shopspring/decimal"

// StatusAll disables the status filter of the withdrawal history.
const StatusAll = "All"

// DashboardSummary is the landing page data.
type DashboardSummary struct {
	Wallet Wallet
	Plans  []Plan
}

// PlansOverview is the investment plans page. Active is nil when the user has no
// running plan, in which case no videos are loaded.
type PlansOverview struct {
	Plans          []Plan
	Active         *UserPlan
	TodayVideo     *TodayVideo
	PreviousVideos []PastVideo
}

// DepositHistory is the deposit list with its totals. ApprovalRate is the whole
// percentage of approved entries.
type DepositHistory struct {
	Entries      []Deposit
	Approved     decimal.Decimal
	Pending      decimal.Decimal
	ApprovalRate int64
}

// WithdrawalFilter narrows the withdrawal list. An empty Status means StatusAll.
// A positive Limit pages the matching entries; PageToken continues a previous page.
type WithdrawalFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Limit     int    `form:"limit" binding:"omitempty,min=0,max=100"`
	PageToken string `form:"page_token"`
}

// WithdrawalHistory holds the filtered entries. The counters always cover the
// whole history.
type WithdrawalHistory struct {
	Entries       []Withdrawal
	NextPageToken string
	Total         int
	Successful    int
	Pending       int
	TotalAmount   decimal.Decimal
}

// ActivePlan is a running plan merged with its profit record.
type ActivePlan struct {
	Title         string
	Amount        decimal.Decimal
	StartDate     string
	EndDate       string
	DailyProfit   decimal.Decimal
	TotalEarned   decimal.Decimal
	RemainingDays int
	// Progress is the elapsed share of the plan in percent, two decimals.
	Progress decimal.Decimal
}

// ProfitOverview is the profit page.
type ProfitOverview struct {
	Plans           []ActivePlan
	TotalProfit     decimal.Decimal
	TotalInvestment decimal.Decimal
}
