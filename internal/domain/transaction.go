package domain

import "time"

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnApproved  TransactionStatus = "APPROVED"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnFailed    TransactionStatus = "FAILED"
	TxnDeclined  TransactionStatus = "DECLINED"
)

// Transaction is the marketplace deal the escrow and the scoring engine
// operate on. Lifecycle beyond these fields belongs to the marketplace
// collaborator; this service only reads them as scoring facts.
type Transaction struct {
	ID        string
	BuyerID   string
	SellerID  string
	Amount    float64
	Currency  string
	Category  string
	Status    TransactionStatus
	CreatedAt time.Time
}

type TransactionRepository interface {
	SaveTransaction(txn *Transaction) error
	GetTransactionByID(transactionID string) (*Transaction, error)
	// GetUserHistory returns the buyer's prior transactions, excluding
	// the given one, newest first.
	GetUserHistory(userID string, excludeTxnID string) ([]*Transaction, error)
	CountFailedPayments(userID string) (int64, int64, error)
	// SumAmountsSince totals completed+approved amounts since the cutoff,
	// for daily/monthly limit enforcement.
	SumAmountsSince(userID string, since time.Time) (float64, error)
}
