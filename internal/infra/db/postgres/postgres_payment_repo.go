package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentCols = `
id, receipt_id, transaction_id, customer_name, email, phone, address,
package_type, package_name, package_price, package_features,
amount, payment_method, card_number, card_expiry, card_cvv, card_name,
payment_date, status, subscription_start_date, subscription_end_date,
notes, created_at, updated_at`

// List selects NULL in place of card_cvv: the stored value never leaves
// the database on the list path, as defense in depth on top of masking.
const paymentColsNoCVV = `
id, receipt_id, transaction_id, customer_name, email, phone, address,
package_type, package_name, package_price, package_features,
amount, payment_method, card_number, card_expiry, NULL::text AS card_cvv, card_name,
payment_date, status, subscription_start_date, subscription_end_date,
notes, created_at, updated_at`

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (
  id, receipt_id, transaction_id, customer_name, email, phone, address,
  package_type, package_name, package_price, package_features,
  amount, payment_method, card_number, card_expiry, card_cvv, card_name,
  payment_date, status, subscription_start_date, subscription_end_date,
  notes, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24
) ON CONFLICT (id) DO UPDATE SET
  status=$19, notes=$22, updated_at=$24;`

	var cardNumber, cardExpiry, cardCVV, cardName *string
	if p.Card != nil {
		cardNumber, cardExpiry, cardCVV, cardName = &p.Card.CardNumber, &p.Card.ExpiryDate, &p.Card.CVV, &p.Card.NameOnCard
	}

	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.ReceiptID, p.TransactionID, p.CustomerName, p.Email, p.Phone, p.Address,
		p.Package.Type, p.Package.Name, p.Package.Price, p.Package.Features,
		p.Amount, p.PaymentMethod, cardNumber, cardExpiry, cardCVV, cardName,
		p.PaymentDate, p.Status, p.SubscriptionStartDate, p.SubscriptionEndDate,
		p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// receipt_id / transaction_id unique index rejected the row;
			// the caller regenerates identifiers and retries.
			return domain.ErrAlreadyExists
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	q := `SELECT ` + paymentCols + ` FROM payments WHERE id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	row, err := pickRow(ctx, r.pool, tx, q+";", id)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) FindByReceiptID(ctx context.Context, tx repository.Tx, receiptID string) (*model.Payment, error) {
	q := `SELECT ` + paymentCols + ` FROM payments WHERE receipt_id=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, receiptID)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) ListByEmail(ctx context.Context, tx repository.Tx, email string) ([]*model.Payment, error) {
	q := `SELECT ` + paymentCols + ` FROM payments WHERE email=$1 ORDER BY payment_date DESC;`
	return r.listPayments(ctx, tx, q, email)
}

func (r *paymentRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	q := `SELECT ` + paymentColsNoCVV + ` FROM payments ORDER BY payment_date DESC OFFSET $1 LIMIT $2;`
	return r.listPayments(ctx, tx, q, offset, limit)
}

func (r *paymentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM payments;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *paymentRepo) PackageStats(ctx context.Context, tx repository.Tx) ([]model.PackageStat, error) {
	const q = `
SELECT package_type, COUNT(*), COALESCE(SUM(amount),0), COALESCE(AVG(amount),0)::FLOAT8
  FROM payments
 GROUP BY package_type
 ORDER BY COALESCE(SUM(amount),0) DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, mapQueryErr(err)
	}
	defer rows.Close()

	var out []model.PackageStat
	for rows.Next() {
		var s model.PackageStat
		if err := rows.Scan(&s.Type, &s.Count, &s.Revenue, &s.Average); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *paymentRepo) MonthlyStats(ctx context.Context, tx repository.Tx, months int) ([]model.MonthlyStat, error) {
	if months <= 0 {
		months = 12
	}
	const q = `
SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month,
       COUNT(*), COALESCE(SUM(amount),0)
  FROM payments
 WHERE payment_date >= date_trunc('month', NOW()) - make_interval(months => $1 - 1)
 GROUP BY 1
 ORDER BY 1 DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, months)
	if err != nil {
		return nil, mapQueryErr(err)
	}
	defer rows.Close()

	var out []model.MonthlyStat
	for rows.Next() {
		var s model.MonthlyStat
		if err := rows.Scan(&s.Month, &s.Count, &s.Revenue); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *paymentRepo) listPayments(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Payment, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, mapQueryErr(err)
	}
	defer rows.Close()

	out := []*model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	var cardNumber, cardExpiry, cardCVV, cardName *string
	err := row.Scan(
		&p.ID, &p.ReceiptID, &p.TransactionID, &p.CustomerName, &p.Email, &p.Phone, &p.Address,
		&p.Package.Type, &p.Package.Name, &p.Package.Price, &p.Package.Features,
		&p.Amount, &p.PaymentMethod, &cardNumber, &cardExpiry, &cardCVV, &cardName,
		&p.PaymentDate, &p.Status, &p.SubscriptionStartDate, &p.SubscriptionEndDate,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if cardNumber != nil {
		p.Card = &model.CardDetails{CardNumber: *cardNumber}
		if cardExpiry != nil {
			p.Card.ExpiryDate = *cardExpiry
		}
		if cardCVV != nil {
			p.Card.CVV = *cardCVV
		}
		if cardName != nil {
			p.Card.NameOnCard = *cardName
		}
	}
	return p, nil
}

func mapQueryErr(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrInvalidExecContext):
		return err
	default:
		return domain.ErrOperationFailed
	}
}
