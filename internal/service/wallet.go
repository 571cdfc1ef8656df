package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/store"

	"github.com/google/uuid"
)

// WithdrawalInput is the payout form as submitted.
type WithdrawalInput struct {
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Account string  `json:"account"`

	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
}

// WalletService owns balance state and withdrawal-request creation.
// Status transitions (pending to paid/rejected, totalWithdrawn) belong to
// an external operator.
type WalletService struct {
	store *store.Client
	cfg   *config.Config
}

func NewWalletService(st *store.Client, cfg *config.Config) *WalletService {
	return &WalletService{store: st, cfg: cfg}
}

// GetWallet reads the owner's wallet, zero-state if absent.
func (s *WalletService) GetWallet(ctx context.Context, ownerKey string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := s.store.Get(ctx, "users/"+ownerKey+"/wallet", &w)
	if errors.Is(err, store.ErrPathNotFound) {
		return domain.NewWallet(), nil
	}
	if err != nil {
		return nil, err
	}
	if w.WithdrawalRequests == nil {
		w.WithdrawalRequests = domain.WithdrawalRequests{}
	}
	return &w, nil
}

// SubmitWithdrawal validates the form against a fresh balance read, appends
// a pending request and then moves the amount from currentBalance to
// pendingBalance in one patch. The append and the balance patch are two
// separate round trips: if the second fails after the first succeeded there
// is no rollback, and the caller must check request history before blindly
// retrying.
func (s *WalletService) SubmitWithdrawal(ctx context.Context, ownerKey string, in WithdrawalInput) (*domain.WithdrawalRequest, error) {
	amount := in.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, validationf("invalid amount")
	}
	if amount < s.cfg.MinWithdrawal {
		return nil, validationf("minimum withdrawal amount is $%.2f", s.cfg.MinWithdrawal)
	}

	account := strings.TrimSpace(in.Account)
	req := domain.WithdrawalRequest{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UnixMilli(),
		Currency:  "USD",
		Status:    domain.WithdrawalStatusPending,
		Amount:    amount,
		Method:    in.Method,
		Account:   account,
	}

	switch in.Method {
	case domain.MethodUPI, domain.MethodBinance:
		if account == "" {
			return nil, validationf("payment account identifier is required for %s", in.Method)
		}
	case domain.MethodBank:
		bankName := strings.TrimSpace(in.BankName)
		accountNumber := strings.TrimSpace(in.AccountNumber)
		ifsc := strings.TrimSpace(in.IFSCCode)
		holder := strings.TrimSpace(in.AccountHolderName)
		if bankName == "" || accountNumber == "" || ifsc == "" || holder == "" {
			return nil, validationf("bank withdrawals require bankName, accountNumber, ifscCode and accountHolderName")
		}
		req.BankName = bankName
		req.AccountNumber = accountNumber
		req.IFSCCode = ifsc
		req.AccountHolderName = holder
		req.Account = holder + " - " + bankName
	default:
		return nil, validationf("unknown withdrawal method %q", in.Method)
	}

	wallet, err := s.GetWallet(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if amount > wallet.CurrentBalance {
		return nil, capacityf("insufficient balance: available $%.2f", wallet.CurrentBalance)
	}

	walletPath := "users/" + ownerKey + "/wallet"
	if err := s.store.Set(ctx, walletPath+"/withdrawalRequests/"+req.ID, req); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, walletPath, map[string]any{
		"currentBalance": wallet.CurrentBalance - amount,
		"pendingBalance": wallet.PendingBalance + amount,
	}); err != nil {
		return nil, err
	}

	return &req, nil
}
