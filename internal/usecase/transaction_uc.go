package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/metrics"
)

// Compile-time check
var _ TransactionUseCase = (*transactionUC)(nil)

// TransactionInput carries the full field set for create and update; an
// update is a full field replacement, re-validated against the schema.
type TransactionInput struct {
	UserID      string
	Type        string
	Amount      int64
	Category    string
	Description string
	Date        *time.Time
	Recipient   string
	Status      string
}

type TransactionUseCase interface {
	// Create accepts any non-empty userId string; no existence check is
	// performed against a user entity, by design.
	Create(ctx context.Context, in TransactionInput) (*model.Transaction, error)
	ListAll(ctx context.Context) ([]*model.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Transaction, error)
	GetByID(ctx context.Context, id string) (*model.Transaction, error)
	Update(ctx context.Context, id string, in TransactionInput) (*model.Transaction, error)
	// Delete removes the row permanently.
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, userID string) (model.TransactionSummary, error)
}

type transactionUC struct {
	transactions repository.TransactionRepository
	tm           repository.TransactionManager
	log          *zerolog.Logger
}

func NewTransactionUseCase(transactions repository.TransactionRepository, tm repository.TransactionManager, logger *zerolog.Logger) *transactionUC {
	return &transactionUC{transactions: transactions, tm: tm, log: logger}
}

func (u *transactionUC) Create(ctx context.Context, in TransactionInput) (*model.Transaction, error) {
	t := model.NewTransaction(ulid.Make().String(), in.UserID)
	applyInput(t, in)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := u.transactions.Save(ctx, repository.NoTX, t); err != nil {
		return nil, err
	}
	metrics.IncTransaction(string(t.Type))
	u.log.Info().Str("transaction_id", t.ID).Str("user_id", t.UserID).
		Str("type", string(t.Type)).Int64("amount", t.Amount).Msg("transaction recorded")
	return t, nil
}

func (u *transactionUC) ListAll(ctx context.Context) ([]*model.Transaction, error) {
	return u.transactions.ListAll(ctx, repository.NoTX)
}

func (u *transactionUC) ListByUser(ctx context.Context, userID string) ([]*model.Transaction, error) {
	return u.transactions.ListByUser(ctx, repository.NoTX, userID)
}

func (u *transactionUC) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	return u.transactions.FindByID(ctx, repository.NoTX, id)
}

func (u *transactionUC) Update(ctx context.Context, id string, in TransactionInput) (*model.Transaction, error) {
	var updated *model.Transaction
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		t, err := u.transactions.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		t.UserID = in.UserID
		applyInput(t, in)
		t.UpdatedAt = time.Now().UTC()
		if err := t.Validate(); err != nil {
			return err
		}
		if err := u.transactions.Save(ctx, tx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *transactionUC) Delete(ctx context.Context, id string) error {
	if err := u.transactions.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	u.log.Info().Str("transaction_id", id).Msg("transaction deleted")
	return nil
}

// Summary scans the user's ledger once; the fold itself lives in the model
// so it stays a pure, separately testable function.
func (u *transactionUC) Summary(ctx context.Context, userID string) (model.TransactionSummary, error) {
	txs, err := u.transactions.ListByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return model.TransactionSummary{}, err
	}
	return model.SummarizeTransactions(txs), nil
}

func applyInput(t *model.Transaction, in TransactionInput) {
	t.Type = model.TransactionType(in.Type)
	t.Amount = in.Amount
	t.Category = in.Category
	t.Description = in.Description
	t.Recipient = in.Recipient
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.Status != "" {
		t.Status = model.TransactionStatus(in.Status)
	}
}
