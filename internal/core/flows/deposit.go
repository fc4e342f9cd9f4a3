package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/shopspring/decimal"
)

// Deposit steps.
const (
	DepositStepAmount  = "amount"
	DepositStepMethod  = "method"
	DepositStepDetails = "details"
)

// DepositConfig holds the deposit limits, in base currency.
type DepositConfig struct {
	MinAmount      decimal.Decimal
	Presets        []decimal.Decimal
	MaxUploadBytes int64
}

// DefaultDepositConfig returns the 3000 PKR minimum and the usual presets.
func DefaultDepositConfig() DepositConfig {
	return DepositConfig{
		MinAmount:      decimal.NewFromInt(3000),
		Presets:        []decimal.Decimal{decimal.NewFromInt(3000), decimal.NewFromInt(5000), decimal.NewFromInt(10000)},
		MaxUploadBytes: 5 << 20,
	}
}

// DepositForm holds the user's input. Amount is in the selected currency.
type DepositForm struct {
	Amount        string `json:"amount"`
	MethodID      string `json:"method_id"`
	TransactionID string `json:"transaction_id" validate:"required"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountOwner  string `json:"account_owner" validate:"required"`
}

// DepositPatch updates the fields that are set.
type DepositPatch struct {
	Amount        *string `json:"amount"`
	MethodID      *string `json:"method_id"`
	TransactionID *string `json:"transaction_id"`
	BankName      *string `json:"bank_name"`
	AccountOwner  *string `json:"account_owner"`
}

// Preset is a suggested deposit amount.
type Preset struct {
	Base    string `json:"base"`
	Display string `json:"display"`
}

// DepositView is what a client renders for the deposit wizard.
type DepositView struct {
	State
	Form       DepositForm               `json:"form"`
	Currency   domain.Currency           `json:"currency"`
	MinAmount  string                    `json:"min_amount"`
	Presets    []Preset                  `json:"presets"`
	Accounts   []domain.ReceivingAccount `json:"accounts,omitempty"`
	Selected   *domain.ReceivingAccount  `json:"selected_account,omitempty"`
	Screenshot string                    `json:"screenshot,omitempty"`
	BaseAmount string                    `json:"base_amount"`
}

// DepositFlow is the amount, method, details wizard that posts a deposit proof.
type DepositFlow struct {
	mu        sync.Mutex
	cfg       DepositConfig
	wallet    clients.WalletAPI
	session   portssvc.SessionSvc
	converter portssvc.ConverterSvc
	wizard    *Wizard

	form       DepositForm
	screenshot *dto.Upload
	accounts   []domain.ReceivingAccount
	// amountCode is the currency the amount was confirmed in.
	amountCode string
}

// NewDepositFlow creates a deposit wizard for one profile.
func NewDepositFlow(cfg DepositConfig, wallet clients.WalletAPI, session portssvc.SessionSvc, converter portssvc.ConverterSvc, logger *slog.Logger) *DepositFlow {
	f := &DepositFlow{
		cfg:       cfg,
		wallet:    wallet,
		session:   session,
		converter: converter,
	}
	f.wizard = newWizard("deposit", []Step{
		{Name: DepositStepAmount, Validate: f.validateAmount, Action: f.confirmAmount, Policy: &depositAccountsPolicy},
		{Name: DepositStepMethod, Validate: f.validateMethod},
		{Name: DepositStepDetails, Validate: f.validateDetails, Action: f.submit},
	}, session, DepositPolicy, logger)
	return f
}

// minDisplay is the minimum deposit in the selected currency.
func (f *DepositFlow) minDisplay() decimal.Decimal {
	return f.converter.DisplayDecimal(f.cfg.MinAmount)
}

func (f *DepositFlow) validateAmount() error {
	amount, ok := domain.ParseAmount(f.form.Amount)
	if !ok || amount.LessThan(f.minDisplay()) {
		return apperrors.Validationf("Amount must be at least %s %s.",
			domain.FormatAmount(f.minDisplay()), f.converter.Currency().Code)
	}
	return nil
}

// confirmAmount loads the receiving accounts and remembers the currency the
// amount was entered in.
func (f *DepositFlow) confirmAmount(ctx context.Context) error {
	if err := f.loadAccounts(ctx); err != nil {
		return err
	}
	f.amountCode = f.converter.Currency().Code
	return nil
}

func (f *DepositFlow) loadAccounts(ctx context.Context) error {
	token, err := f.session.Token(ctx)
	if err != nil {
		return err
	}
	accounts, err := f.wallet.ReceivingAccounts(ctx, token)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return apperrors.Validationf("Admin account details not found.")
	}
	f.accounts = accounts
	return nil
}

func (f *DepositFlow) selectedAccount() *domain.ReceivingAccount {
	for i := range f.accounts {
		if strconv.FormatInt(f.accounts[i].ID, 10) == f.form.MethodID {
			return &f.accounts[i]
		}
	}
	return nil
}

func (f *DepositFlow) validateMethod() error {
	if f.selectedAccount() == nil {
		return apperrors.Validationf("Please select a payment method.")
	}
	return nil
}

// recheck re-runs the amount and method checks before posting. Patches may
// change those fields after their steps were left, and so may a currency
// switch. It returns the step to go back to.
func (f *DepositFlow) recheck() (string, error) {
	if f.amountCode != f.converter.Currency().Code {
		return DepositStepAmount, apperrors.Validationf("Currency changed. Please confirm the amount.")
	}
	if err := f.validateAmount(); err != nil {
		return DepositStepAmount, err
	}
	if err := f.validateMethod(); err != nil {
		return DepositStepMethod, err
	}
	return "", nil
}

func (f *DepositFlow) validateDetails() error {
	if f.screenshot == nil {
		return apperrors.Validationf("All fields are required.")
	}
	return checkStruct(f.form, "All fields are required.")
}

func (f *DepositFlow) submit(ctx context.Context) error {
	token, err := f.session.Token(ctx)
	if err != nil {
		return err
	}

	amount, _ := domain.ParseAmount(f.form.Amount)
	res, err := f.wallet.SubmitDeposit(ctx, token, dto.DepositRequest{
		Amount:        f.converter.BaseDecimal(amount),
		Method:        f.form.MethodID,
		TransactionID: strings.TrimSpace(f.form.TransactionID),
		BankName:      strings.TrimSpace(f.form.BankName),
		AccountOwner:  strings.TrimSpace(f.form.AccountOwner),
		Screenshot:    f.screenshot,
	})
	if err != nil {
		return fmt.Errorf("submitting deposit: %w", err)
	}

	notice := "Your deposit request is successfully submitted."
	if res != nil && res.Message != "" {
		notice = res.Message
	}
	f.wizard.SetNotice(notice)

	// amount and method stay for the success screen
	f.form.TransactionID, f.form.BankName, f.form.AccountOwner = "", "", ""
	f.screenshot = nil
	return nil
}

// Update applies patch to the form.
func (f *DepositFlow) Update(patch DepositPatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
}

func (f *DepositFlow) apply(patch DepositPatch) {
	if patch.Amount != nil {
		f.form.Amount = strings.TrimSpace(*patch.Amount)
	}
	if patch.MethodID != nil {
		f.form.MethodID = strings.TrimSpace(*patch.MethodID)
	}
	if patch.TransactionID != nil {
		f.form.TransactionID = *patch.TransactionID
	}
	if patch.BankName != nil {
		f.form.BankName = *patch.BankName
	}
	if patch.AccountOwner != nil {
		f.form.AccountOwner = *patch.AccountOwner
	}
	f.wizard.ClearError()
}

// AttachScreenshot stores the payment proof after checking its size and type.
func (f *DepositFlow) AttachScreenshot(ctx context.Context, upload *dto.Upload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if upload == nil || upload.Size() == 0 {
		return f.wizard.Fail(ctx, apperrors.Validationf("Please upload an image file"))
	}
	if upload.Size() > f.cfg.MaxUploadBytes {
		return f.wizard.Fail(ctx, apperrors.Validationf("Image size should be less than %dMB", f.cfg.MaxUploadBytes>>20))
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return f.wizard.Fail(ctx, apperrors.Validationf("Please upload an image file"))
	}

	f.screenshot = upload
	f.wizard.ClearError()
	return nil
}

// Next applies patch, validates the current step and advances.
func (f *DepositFlow) Next(ctx context.Context, patch DepositPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
	return f.wizard.Next(ctx)
}

// Back returns to the previous step.
func (f *DepositFlow) Back(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Back(ctx)
}

// Submit applies patch and posts the deposit. If the amount or method no
// longer pass their checks the wizard goes back to that step.
func (f *DepositFlow) Submit(ctx context.Context, patch DepositPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(patch)
	if f.wizard.Current() == DepositStepDetails {
		if step, err := f.recheck(); err != nil {
			return f.wizard.Rewind(ctx, step, err)
		}
	}
	return f.wizard.Submit(ctx)
}

// Reset restores the initial form and returns to the amount step.
func (f *DepositFlow) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = DepositForm{}
	f.screenshot = nil
	f.accounts = nil
	f.amountCode = ""
	return f.wizard.Reset(ctx)
}

// Step returns the current step name.
func (f *DepositFlow) Step() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Current()
}

// View returns a snapshot for rendering.
func (f *DepositFlow) View() DepositView {
	f.mu.Lock()
	defer f.mu.Unlock()

	presets := make([]Preset, 0, len(f.cfg.Presets))
	for _, p := range f.cfg.Presets {
		presets = append(presets, Preset{Base: domain.FormatAmount(p), Display: f.converter.FormatDisplay(p)})
	}

	view := DepositView{
		State:     f.wizard.State(),
		Form:      f.form,
		Currency:  f.converter.Currency(),
		MinAmount: f.converter.FormatDisplay(f.cfg.MinAmount),
		Presets:   presets,
		Accounts:  append([]domain.ReceivingAccount(nil), f.accounts...),
	}
	if selected := f.selectedAccount(); selected != nil {
		account := *selected
		view.Selected = &account
	}
	if f.screenshot != nil {
		view.Screenshot = f.screenshot.Filename
	}
	if f.form.Amount != "" {
		view.BaseAmount = f.converter.ToBase(f.form.Amount)
	}
	return view
}
