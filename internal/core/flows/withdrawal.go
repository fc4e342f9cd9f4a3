package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/shopspring/decimal"
)

// Withdrawal steps.
const (
	WithdrawalStepMethod  = "method"
	WithdrawalStepDetails = "details"
)

// Withdrawal methods.
const (
	MethodBankTransfer = "BankTransfer"
	MethodJazzCash     = "JazzCash"
	MethodEasyPaisa    = "EasyPaisa"
)

// WithdrawalMethods lists the payout channels in display order.
var WithdrawalMethods = []string{MethodBankTransfer, MethodJazzCash, MethodEasyPaisa}

// WithdrawalConfig holds the withdrawal minimum in base currency.
type WithdrawalConfig struct {
	MinAmount    decimal.Decimal
	BaseCurrency string
}

// DefaultWithdrawalConfig returns the 100 PKR minimum.
func DefaultWithdrawalConfig() WithdrawalConfig {
	return WithdrawalConfig{MinAmount: decimal.NewFromInt(100), BaseCurrency: "PKR"}
}

// WithdrawalForm holds the user's input. Amount is in the selected currency.
type WithdrawalForm struct {
	Method       string `json:"method" validate:"required,oneof=BankTransfer JazzCash EasyPaisa"`
	Amount       string `json:"amount"`
	BankName     string `json:"bank_name" validate:"required_if=Method BankTransfer"`
	AccountOwner string `json:"account_owner" validate:"required"`
	BankAccount  string `json:"bank_account" validate:"required"`
}

// WithdrawalPatch updates the fields that are set. Changing Method clears
// the account fields.
type WithdrawalPatch struct {
	Method       *string `json:"method"`
	Amount       *string `json:"amount"`
	BankName     *string `json:"bank_name"`
	AccountOwner *string `json:"account_owner"`
	BankAccount  *string `json:"bank_account"`
}

// WithdrawalView is what a client renders for the withdrawal wizard.
type WithdrawalView struct {
	State
	Form       WithdrawalForm  `json:"form"`
	Methods    []string        `json:"methods"`
	Currency   domain.Currency `json:"currency"`
	MinAmount  string          `json:"min_amount"`
	BaseAmount string          `json:"base_amount"`
}

// WithdrawalFlow is the method, details wizard that requests a payout.
type WithdrawalFlow struct {
	mu        sync.Mutex
	cfg       WithdrawalConfig
	wallet    clients.WalletAPI
	session   portssvc.SessionSvc
	converter portssvc.ConverterSvc
	wizard    *Wizard

	form WithdrawalForm
}

func initialWithdrawalForm() WithdrawalForm {
	return WithdrawalForm{Method: MethodBankTransfer}
}

// NewWithdrawalFlow creates a withdrawal wizard for one profile.
func NewWithdrawalFlow(cfg WithdrawalConfig, wallet clients.WalletAPI, session portssvc.SessionSvc, converter portssvc.ConverterSvc, logger *slog.Logger) *WithdrawalFlow {
	f := &WithdrawalFlow{
		cfg:       cfg,
		wallet:    wallet,
		session:   session,
		converter: converter,
		form:      initialWithdrawalForm(),
	}
	f.wizard = newWizard("withdrawal", []Step{
		{Name: WithdrawalStepMethod, Validate: f.validateMethod},
		{Name: WithdrawalStepDetails, Validate: f.validateDetails, Action: f.submit},
	}, session, WithdrawalPolicy, logger)
	return f
}

func (f *WithdrawalFlow) validateMethod() error {
	return checkVar(f.form.Method, "required,oneof=BankTransfer JazzCash EasyPaisa", "Please select a withdrawal method.")
}

// baseAmount converts the entered amount back to base currency.
func (f *WithdrawalFlow) baseAmount() (decimal.Decimal, bool) {
	amount, ok := domain.ParseAmount(f.form.Amount)
	if !ok {
		return decimal.Zero, false
	}
	return f.converter.BaseDecimal(amount), true
}

func (f *WithdrawalFlow) validateDetails() error {
	if err := checkStruct(f.form, "Please fill in all required fields."); err != nil {
		return err
	}
	base, ok := f.baseAmount()
	if !ok || base.LessThan(f.cfg.MinAmount) {
		return apperrors.Validationf("Minimum withdrawal amount is %s %s.", f.cfg.MinAmount.String(), f.cfg.BaseCurrency)
	}
	return nil
}

func (f *WithdrawalFlow) submit(ctx context.Context) error {
	token, err := f.session.Token(ctx)
	if err != nil {
		return err
	}

	base, _ := f.baseAmount()
	req := dto.WithdrawalRequest{
		Amount:       base,
		Method:       f.form.Method,
		AccountOwner: strings.TrimSpace(f.form.AccountOwner),
		BankAccount:  strings.TrimSpace(f.form.BankAccount),
	}
	if f.form.Method == MethodBankTransfer {
		req.BankName = strings.TrimSpace(f.form.BankName)
	}

	res, err := f.wallet.SubmitWithdrawal(ctx, token, req)
	if err != nil {
		return fmt.Errorf("submitting withdrawal: %w", err)
	}

	notice := "Withdrawal request submitted."
	if res != nil && res.Message != "" {
		notice = res.Message
	}
	f.wizard.SetNotice(notice)
	return nil
}

// Update applies patch to the form.
func (f *WithdrawalFlow) Update(patch WithdrawalPatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
}

func (f *WithdrawalFlow) apply(patch WithdrawalPatch) {
	if patch.Method != nil {
		f.form.Method = strings.TrimSpace(*patch.Method)
		f.form.BankName, f.form.AccountOwner, f.form.BankAccount = "", "", ""
	}
	if patch.Amount != nil {
		f.form.Amount = strings.TrimSpace(*patch.Amount)
	}
	if patch.BankName != nil {
		f.form.BankName = *patch.BankName
	}
	if patch.AccountOwner != nil {
		f.form.AccountOwner = *patch.AccountOwner
	}
	if patch.BankAccount != nil {
		f.form.BankAccount = *patch.BankAccount
	}
	f.wizard.ClearError()
}

// Next applies patch, validates the method and advances to the details.
func (f *WithdrawalFlow) Next(ctx context.Context, patch WithdrawalPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
	return f.wizard.Next(ctx)
}

// Back returns to the method step.
func (f *WithdrawalFlow) Back(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Back(ctx)
}

// Submit applies patch and requests the withdrawal. Failures stay on the details step.
func (f *WithdrawalFlow) Submit(ctx context.Context, patch WithdrawalPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
	return f.wizard.Submit(ctx)
}

// Reset restores the initial form and returns to the method step.
func (f *WithdrawalFlow) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = initialWithdrawalForm()
	return f.wizard.Reset(ctx)
}

// Step returns the current step name.
func (f *WithdrawalFlow) Step() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Current()
}

// View returns a snapshot for rendering.
func (f *WithdrawalFlow) View() WithdrawalView {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := WithdrawalView{
		State:     f.wizard.State(),
		Form:      f.form,
		Methods:   append([]string(nil), WithdrawalMethods...),
		Currency:  f.converter.Currency(),
		MinAmount: f.converter.FormatDisplay(f.cfg.MinAmount),
	}
	if base, ok := f.baseAmount(); ok {
		view.BaseAmount = domain.FormatAmount(base)
	}
	return view
}
