package domain

// Withdrawal methods accepted by the payout form.
const (
	MethodUPI     = "UPI"
	MethodBinance = "Binance"
	MethodBank    = "Bank"
)

// Withdrawal request statuses. Requests are created pending; the transition
// to paid or rejected is performed by an external operator.
const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusPaid     = "paid"
	WithdrawalStatusRejected = "rejected"
)

// WithdrawalRequest is a pending payout instruction. For Bank requests the
// Account field carries "<holder> - <bank>" and the bank-specific fields are
// set; for UPI/Binance only Account is set.
type WithdrawalRequest struct {
	ID        string  `json:"id"`
	CreatedAt int64   `json:"createdAt"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Account   string  `json:"account"`

	BankName          string `json:"bankName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
}

// WithdrawalRequests holds a wallet's requests keyed by child ID.
type WithdrawalRequests map[string]WithdrawalRequest

func (w *WithdrawalRequests) UnmarshalJSON(data []byte) error {
	m, err := unmarshalKeyed[WithdrawalRequest](data)
	if err != nil {
		return err
	}
	*w = m
	return nil
}

// Wallet is the balance state of an account. Money only ever moves between
// the three balances and the amounts of pending requests.
type Wallet struct {
	CurrentBalance     float64            `json:"currentBalance"`
	PendingBalance     float64            `json:"pendingBalance"`
	TotalWithdrawn     float64            `json:"totalWithdrawn"`
	WithdrawalRequests WithdrawalRequests `json:"withdrawalRequests"`
}

// NewWallet returns the zero-state wallet.
func NewWallet() *Wallet {
	return &Wallet{WithdrawalRequests: WithdrawalRequests{}}
}
