package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle passed through repository calls.
// The concrete type is infra-defined (pgx.Tx for Postgres). Repositories
// must accept nil (NoTX) for the non-transactional path.
type Tx interface{}

var NoTX Tx

// TransactionManager executes a function within a database transaction,
// passing the handle via tx so repository methods can run
// SELECT ... FOR UPDATE / tx-bound Exec as needed without leaking
// transaction types into the use-case interfaces.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
