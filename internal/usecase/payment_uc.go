package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// idAttempts bounds the regenerate-and-retry loop when the store's unique
// index rejects a generated receipt/transaction id.
const idAttempts = 3

// Pagination is the metadata block returned alongside paginated lists.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// CreatePaymentInput carries the already-present request fields; the API
// layer rejects absent required fields before constructing one.
type CreatePaymentInput struct {
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	PackageType   string
	Amount        int64
	PaymentMethod string
	Card          *model.CardDetails
	Notes         string
}

type PaymentUseCase interface {
	// Create validates the declared amount against the package catalog,
	// persists a masked record and returns the masked projection.
	Create(ctx context.Context, in CreatePaymentInput) (*model.Payment, error)
	// List returns one page, newest paymentDate first (page>=1, default limit 10).
	List(ctx context.Context, page, limit int) ([]model.Payment, Pagination, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	GetByReceiptID(ctx context.Context, receiptID string) (*model.Payment, error)
	// ListByEmail returns an empty slice (not ErrNotFound) for unknown emails.
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	// UpdateStatus accepts only the pending/completed/failed/refunded whitelist.
	UpdateStatus(ctx context.Context, id string, status string, notes *string) (*model.Payment, error)
	// Cancel soft-deletes: status becomes cancelled with a fixed audit note.
	Cancel(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.PaymentStats, error)
}

type paymentUC struct {
	payments repository.PaymentRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewPaymentUseCase(payments repository.PaymentRepository, tm repository.TransactionManager, logger *zerolog.Logger) *paymentUC {
	return &paymentUC{payments: payments, tm: tm, log: logger}
}

func (u *paymentUC) Create(ctx context.Context, in CreatePaymentInput) (*model.Payment, error) {
	pkg, ok := model.PackageByType(model.PackageType(in.PackageType))
	if !ok {
		return nil, fmt.Errorf("%w: unknown package type %q", domain.ErrInvalidArgument, in.PackageType)
	}
	if in.Amount != pkg.Price {
		return nil, fmt.Errorf("%w: amount %d does not match the %s package price %d",
			domain.ErrInvalidArgument, in.Amount, pkg.Type, pkg.Price)
	}

	method := model.PaymentMethod(in.PaymentMethod)
	if method == model.PaymentMethodCreditCard {
		if in.Card == nil || in.Card.CardNumber == "" || in.Card.ExpiryDate == "" || in.Card.CVV == "" || in.Card.NameOnCard == "" {
			return nil, fmt.Errorf("%w: cardNumber, expiryDate, cvv and nameOnCard are required for credit-card payments",
				domain.ErrInvalidArgument)
		}
	}

	p := model.NewPayment(uuid.NewString(), pkg, method)
	p.CustomerName = in.CustomerName
	p.Email = in.Email
	p.Phone = in.Phone
	p.Address = in.Address
	p.Amount = in.Amount
	p.Notes = in.Notes
	if method == model.PaymentMethodCreditCard {
		card := *in.Card
		p.Card = &card
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Masking happens exactly once, at the write boundary. The raw card
	// number and CVV never reach the store.
	p.MaskForStorage()

	var saveErr error
	for attempt := 0; attempt < idAttempts; attempt++ {
		p.AssignIdentifiers()
		saveErr = u.payments.Save(ctx, repository.NoTX, p)
		if saveErr == nil {
			break
		}
		if !errors.Is(saveErr, domain.ErrAlreadyExists) {
			return nil, saveErr
		}
		u.log.Warn().Str("receipt_id", p.ReceiptID).Msg("generated id collided, regenerating")
	}
	if saveErr != nil {
		return nil, saveErr
	}

	metrics.IncPayment(string(p.Status))
	metrics.AddPaymentRevenue(string(p.Package.Type), p.Amount)
	u.log.Info().Str("payment_id", p.ID).Str("receipt_id", p.ReceiptID).
		Str("package", string(p.Package.Type)).Int64("amount", p.Amount).Msg("payment created")

	masked := p.Masked()
	return &masked, nil
}

func (u *paymentUC) List(ctx context.Context, page, limit int) ([]model.Payment, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	items, err := u.payments.List(ctx, repository.NoTX, offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := u.payments.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, Pagination{}, err
	}
	pages := (total + limit - 1) / limit

	out := make([]model.Payment, 0, len(items))
	for _, p := range items {
		out = append(out, p.Masked())
	}
	return out, Pagination{Current: page, Pages: pages, Total: total}, nil
}

func (u *paymentUC) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	p, err := u.payments.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	masked := p.Masked()
	return &masked, nil
}

func (u *paymentUC) GetByReceiptID(ctx context.Context, receiptID string) (*model.Payment, error) {
	p, err := u.payments.FindByReceiptID(ctx, repository.NoTX, receiptID)
	if err != nil {
		return nil, err
	}
	masked := p.Masked()
	return &masked, nil
}

func (u *paymentUC) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	items, err := u.payments.ListByEmail(ctx, repository.NoTX, email)
	if err != nil {
		return nil, err
	}
	out := make([]model.Payment, 0, len(items))
	for _, p := range items {
		out = append(out, p.Masked())
	}
	return out, nil
}

func (u *paymentUC) UpdateStatus(ctx context.Context, id string, status string, notes *string) (*model.Payment, error) {
	next := model.PaymentStatus(status)
	if !model.IsUpdatableStatus(next) {
		return nil, fmt.Errorf("%w: status must be one of pending, completed, failed or refunded",
			domain.ErrInvalidArgument)
	}
	return u.updateLocked(ctx, id, func(p *model.Payment) {
		p.Status = next
		if notes != nil {
			p.Notes = *notes
		}
	})
}

func (u *paymentUC) Cancel(ctx context.Context, id string) error {
	p, err := u.updateLocked(ctx, id, func(p *model.Payment) {
		p.Status = model.PaymentStatusCancelled
		p.Notes = model.CancelledNote
	})
	if err != nil {
		return err
	}
	u.log.Info().Str("payment_id", p.ID).Msg("payment cancelled")
	return nil
}

// updateLocked applies mutate to the row under SELECT ... FOR UPDATE,
// re-running field validation before writing back.
func (u *paymentUC) updateLocked(ctx context.Context, id string, mutate func(*model.Payment)) (*model.Payment, error) {
	var updated *model.Payment
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.payments.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		mutate(p)
		p.Touch()
		if err := p.Validate(); err != nil {
			return err
		}
		if err := u.payments.Save(ctx, tx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.IncPayment(string(updated.Status))
	masked := updated.Masked()
	return &masked, nil
}

func (u *paymentUC) Stats(ctx context.Context) (*model.PaymentStats, error) {
	byPackage, err := u.payments.PackageStats(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	monthly, err := u.payments.MonthlyStats(ctx, repository.NoTX, 12)
	if err != nil {
		return nil, err
	}

	stats := &model.PaymentStats{ByPackage: byPackage, Monthly: monthly}
	for _, s := range byPackage {
		stats.TotalCount += s.Count
		stats.TotalRevenue += s.Revenue
	}
	return stats, nil
}
