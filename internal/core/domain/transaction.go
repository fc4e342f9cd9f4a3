package domain

import "github.com/shopspring/decimal"

// DepositStatus values as reported by the backend.
const (
	DepositApproved = "Approved"
	DepositPending  = "Pending"
	DepositRejected = "Rejected"
)

// WithdrawalStatus values as reported by the backend.
const (
	WithdrawalSuccessful = "Successful"
	WithdrawalPending    = "Pending"
	WithdrawalRejected   = "Rejected"
)

// Deposit is one entry of the deposit history.
type Deposit struct {
	ID            int64           `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transaction_id"`
	BankName      string          `json:"bank_name"`
	AccountOwner  string          `json:"account_owner"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

// Withdrawal is one entry of the withdrawal history.
type Withdrawal struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	BankName     string          `json:"bank_name"`
	AccountOwner string          `json:"account_owner"`
	BankAccount  string          `json:"bank_account"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"created_at"`
}

// ReceivingAccount is an admin account users can deposit into.
type ReceivingAccount struct {
	ID            int64  `json:"id"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	OwnerName     string `json:"owner_name"`
	AccountIcon   string `json:"account_icon"`
}

// Wallet is the user's balance summary.
type Wallet struct {
	Balance decimal.Decimal `json:"balance"`
}
