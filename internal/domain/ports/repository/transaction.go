package repository

import (
	"context"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
)

// TransactionRepository is the port for ledger-entry persistence.
// Save upserts by ID. Delete is a hard delete and returns
// domain.ErrNotFound when no row matched.
type TransactionRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Transaction) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Transaction, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Transaction, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Transaction, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
