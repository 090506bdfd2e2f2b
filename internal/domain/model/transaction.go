package model

import (
	"strings"
	"time"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
)

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is one ledger entry for a caller-chosen user identifier.
// UserID is an opaque external key: no referential integrity to any user
// entity is enforced, by design.
type Transaction struct {
	ID          string            `json:"id"` // ULID
	UserID      string            `json:"userId"`
	Type        TransactionType   `json:"type"`
	Amount      int64             `json:"amount"` // minor currency units
	Category    string            `json:"category"`
	Description string            `json:"description,omitempty"`
	Date        time.Time         `json:"date"`
	Recipient   string            `json:"recipient,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func NewTransaction(id, userID string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:        id,
		UserID:    userID,
		Date:      now,
		Status:    TransactionStatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *Transaction) Validate() error {
	v := &domain.ValidationError{}
	if strings.TrimSpace(t.UserID) == "" {
		v.Add("userId is required")
	}
	switch t.Type {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
	default:
		v.Add("type must be one of income, expense or transfer")
	}
	if t.Amount <= 0 {
		v.Add("amount must be a positive number")
	}
	if strings.TrimSpace(t.Category) == "" {
		v.Add("category is required")
	}
	switch t.Status {
	case TransactionStatusCompleted, TransactionStatusPending, TransactionStatusFailed:
	default:
		v.Add("status must be one of completed, pending or failed")
	}
	return v.OrNil()
}

// TransactionSummary aggregates one user's ledger. ByCategory blends income
// and expense amounts without sign distinction; preserved as-is until
// product intent says otherwise.
type TransactionSummary struct {
	TotalIncome  int64            `json:"totalIncome"`
	TotalExpense int64            `json:"totalExpense"`
	NetBalance   int64            `json:"netBalance"`
	ByCategory   map[string]int64 `json:"byCategory"`
}

// SummarizeTransactions folds a user's ledger in a single pass.
func SummarizeTransactions(txs []*Transaction) TransactionSummary {
	s := TransactionSummary{ByCategory: make(map[string]int64)}
	for _, t := range txs {
		switch t.Type {
		case TransactionTypeIncome:
			s.TotalIncome += t.Amount
		case TransactionTypeExpense:
			s.TotalExpense += t.Amount
		}
		s.ByCategory[t.Category] += t.Amount
	}
	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s
}
