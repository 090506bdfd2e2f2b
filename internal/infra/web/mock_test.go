//go:build !integration

package web

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v4"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
)

// --- Mock repositories backing the handler tests ---

type mockPaymentRepo struct {
	mu        sync.Mutex
	payments  map[string]*model.Payment
	SaveError error
	ListError error
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[string]*model.Payment)}
}

func (m *mockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := clonePayment(p)
	m.payments[p.ID] = cp
	return nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePayment(p), nil
}

func (m *mockPaymentRepo) FindByReceiptID(ctx context.Context, tx repository.Tx, receiptID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.ReceiptID == receiptID {
			return clonePayment(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaymentRepo) ListByEmail(ctx context.Context, tx repository.Tx, email string) ([]*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Payment, 0)
	for _, p := range m.payments {
		if p.Email == email {
			out = append(out, clonePayment(p))
		}
	}
	sortPaymentsByDateDesc(out)
	return out, nil
}

func (m *mockPaymentRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*model.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		all = append(all, clonePayment(p))
	}
	sortPaymentsByDateDesc(all)
	if offset >= len(all) {
		return []*model.Payment{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *mockPaymentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments), nil
}

func (m *mockPaymentRepo) PackageStats(ctx context.Context, tx repository.Tx) ([]model.PackageStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg := map[model.PackageType]*model.PackageStat{}
	for _, p := range m.payments {
		s, ok := agg[p.Package.Type]
		if !ok {
			s = &model.PackageStat{Type: p.Package.Type}
			agg[p.Package.Type] = s
		}
		s.Count++
		s.Revenue += p.Amount
	}
	out := make([]model.PackageStat, 0, len(agg))
	for _, s := range agg {
		s.Average = float64(s.Revenue) / float64(s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out, nil
}

func (m *mockPaymentRepo) MonthlyStats(ctx context.Context, tx repository.Tx, months int) ([]model.MonthlyStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg := map[string]*model.MonthlyStat{}
	for _, p := range m.payments {
		key := p.PaymentDate.Format("2006-01")
		s, ok := agg[key]
		if !ok {
			s = &model.MonthlyStat{Month: key}
			agg[key] = s
		}
		s.Count++
		s.Revenue += p.Amount
	}
	out := make([]model.MonthlyStat, 0, len(agg))
	for _, s := range agg {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	if len(out) > months {
		out = out[:months]
	}
	return out, nil
}

func clonePayment(p *model.Payment) *model.Payment {
	cp := *p
	if p.Card != nil {
		card := *p.Card
		cp.Card = &card
	}
	return &cp
}

func sortPaymentsByDateDesc(ps []*model.Payment) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].PaymentDate.After(ps[j].PaymentDate) })
}

type mockTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*model.Transaction
	SaveError    error
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{transactions: make(map[string]*model.Transaction)}
}

func (m *mockTransactionRepo) Save(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTransactionRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *mockTransactionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Transaction, 0)
	for _, t := range m.transactions {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *mockTransactionRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

// mockTxManager executes the callback without a real transaction.
type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

var (
	_ repository.PaymentRepository     = (*mockPaymentRepo)(nil)
	_ repository.TransactionRepository = (*mockTransactionRepo)(nil)
	_ repository.TransactionManager    = mockTxManager{}
)
