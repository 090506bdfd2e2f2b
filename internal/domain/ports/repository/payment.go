package repository

import (
	"context"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
)

// PaymentRepository is the port for payment persistence.
//
// Save is an upsert keyed by ID. Inserting a row whose receipt or
// transaction id collides with an existing one returns
// domain.ErrAlreadyExists so the caller can regenerate and retry.
type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	FindByReceiptID(ctx context.Context, tx Tx, receiptID string) (*model.Payment, error)
	// ListByEmail matches exactly, newest paymentDate first. An unknown
	// email yields an empty slice, not ErrNotFound.
	ListByEmail(ctx context.Context, tx Tx, email string) ([]*model.Payment, error)
	// List returns a page ordered by paymentDate descending. The CVV column
	// is excluded from the query projection as defense in depth.
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Payment, error)
	Count(ctx context.Context, tx Tx) (int, error)
	// PackageStats groups by package type, sorted by total revenue descending.
	PackageStats(ctx context.Context, tx Tx) ([]model.PackageStat, error)
	// MonthlyStats returns up to months calendar-month buckets, newest first.
	MonthlyStats(ctx context.Context, tx Tx, months int) ([]model.MonthlyStat, error)
}
