package service

import (
	"context"
	"math"
	"testing"

	"tshort_dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWallet(t *testing.T, svc *WalletService, ownerKey string, balance float64) {
	t.Helper()
	w := domain.NewWallet()
	w.CurrentBalance = balance
	require.NoError(t, svc.store.Set(context.Background(), "users/"+ownerKey+"/wallet", w))
}

func TestSubmitWithdrawal(t *testing.T) {
	st := newTestStore()
	svc := NewWalletService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	seedWallet(t, svc, owner, 25)

	req, err := svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
		Amount:  15,
		Method:  domain.MethodUPI,
		Account: "alice@upi",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.WithdrawalStatusPending, req.Status)
	assert.Equal(t, "USD", req.Currency)
	assert.Equal(t, 15.0, req.Amount)
	assert.Equal(t, "alice@upi", req.Account)
	assert.NotEmpty(t, req.ID)

	w, err := svc.GetWallet(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 10.0, w.CurrentBalance)
	assert.Equal(t, 15.0, w.PendingBalance)
	assert.Zero(t, w.TotalWithdrawn)
	require.Len(t, w.WithdrawalRequests, 1)
	assert.Equal(t, req.ID, w.WithdrawalRequests[req.ID].ID)
}

func TestSubmitWithdrawalBelowMinimum(t *testing.T) {
	st := newTestStore()
	svc := NewWalletService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	seedWallet(t, svc, owner, 25)

	_, err := svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
		Amount: 9.99, Method: domain.MethodUPI, Account: "alice@upi",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	w, err := svc.GetWallet(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 25.0, w.CurrentBalance, "rejected request must not touch balances")
	assert.Empty(t, w.WithdrawalRequests)
}

func TestSubmitWithdrawalInvalidAmounts(t *testing.T) {
	st := newTestStore()
	svc := NewWalletService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	seedWallet(t, svc, owner, 100)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
			Amount: amount, Method: domain.MethodUPI, Account: "alice@upi",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "amount %v", amount)
	}
}

func TestSubmitWithdrawalInsufficientBalance(t *testing.T) {
	st := newTestStore()
	svc := NewWalletService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	seedWallet(t, svc, owner, 12)

	_, err := svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
		Amount: 12.01, Method: domain.MethodUPI, Account: "alice@upi",
	})
	var cerr *CapacityError
	require.ErrorAs(t, err, &cerr)

	// Exactly the balance is allowed.
	_, err = svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
		Amount: 12, Method: domain.MethodUPI, Account: "alice@upi",
	})
	require.NoError(t, err)

	w, err := svc.GetWallet(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, w.CurrentBalance)
	assert.Equal(t, 12.0, w.PendingBalance)
}

func TestSubmitWithdrawalMethodValidation(t *testing.T) {
	st := newTestStore()
	svc := NewWalletService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	seedWallet(t, svc, owner, 100)

	var verr *ValidationError

	_, err := svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{Amount: 20, Method: domain.MethodUPI})
	require.ErrorAs(t, err, &verr, "UPI needs an account")

	_, err = svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{Amount: 20, Method: domain.MethodBinance, Account: "   "})
	require.ErrorAs(t, err, &verr, "whitespace-only account is empty")

	_, err = svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{Amount: 20, Method: "paypal", Account: "x"})
	require.ErrorAs(t, err, &verr, "unknown method")

	_, err = svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
		Amount: 20, Method: domain.MethodBank, BankName: "HDFC", AccountNumber: "123",
	})
	require.ErrorAs(t, err, &verr, "bank needs all four detail fields")
}

func TestSubmitWithdrawalBankComposesAccount(t *testing.T) {
	st := newTestStore()
	svc := NewWalletService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	seedWallet(t, svc, owner, 100)

	req, err := svc.SubmitWithdrawal(ctx, owner, WithdrawalInput{
		Amount:            40,
		Method:            domain.MethodBank,
		BankName:          " HDFC Bank ",
		AccountNumber:     "00123456",
		IFSCCode:          "HDFC0001234",
		AccountHolderName: " Alice Kumar ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Kumar - HDFC Bank", req.Account)
	assert.Equal(t, "HDFC Bank", req.BankName)
	assert.Equal(t, "00123456", req.AccountNumber)
	assert.Equal(t, "HDFC0001234", req.IFSCCode)
	assert.Equal(t, "Alice Kumar", req.AccountHolderName)
}

func TestGetWalletZeroState(t *testing.T) {
	svc := NewWalletService(newTestStore(), testConfig())

	w, err := svc.GetWallet(context.Background(), "nobody@test,com")
	require.NoError(t, err)
	assert.Zero(t, w.CurrentBalance)
	assert.NotNil(t, w.WithdrawalRequests)
	assert.Empty(t, w.WithdrawalRequests)
}
