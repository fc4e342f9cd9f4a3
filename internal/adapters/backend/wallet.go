package backend

import (
	"context"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/dto"
)

func (c *Client) Wallet(ctx context.Context, token string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := c.get(ctx, token, pathWallet, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *Client) ReceivingAccounts(ctx context.Context, token string) ([]domain.ReceivingAccount, error) {
	var accounts []domain.ReceivingAccount
	if err := c.get(ctx, token, pathReceivingAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SubmitDeposit posts the deposit proof as multipart form data.
func (c *Client) SubmitDeposit(ctx context.Context, token string, req dto.DepositRequest) (*dto.MessageResponse, error) {
	r := c.request(ctx, token).SetMultipartFormData(map[string]string{
		"amount":         req.Amount.String(),
		"method":         req.Method,
		"transaction_id": req.TransactionID,
		"bank_name":      req.BankName,
		"account_owner":  req.AccountOwner,
	})
	attach(r, "screenshot", req.Screenshot)

	var res dto.MessageResponse
	if err := send(r, http.MethodPost, pathDeposit, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Deposits(ctx context.Context, token string) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	if err := c.get(ctx, token, pathDepositHistory, &deposits); err != nil {
		return nil, err
	}
	return deposits, nil
}

func (c *Client) SubmitWithdrawal(ctx context.Context, token string, req dto.WithdrawalRequest) (*dto.MessageResponse, error) {
	return c.message(ctx, token, pathWithdraw, req)
}

func (c *Client) Withdrawals(ctx context.Context, token string) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	if err := c.get(ctx, token, pathWithdrawHistory, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
