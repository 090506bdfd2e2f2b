package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v4"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
)

// memPaymentRepo is a small in-memory implementation used by unit tests.
type memPaymentRepo struct {
	mu       sync.RWMutex
	store    map[string]*model.Payment // by Payment.ID
	saveHook func(p *model.Payment) error
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[string]*model.Payment)}
}

func (m *memPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if m.saveHook != nil {
		if err := m.saveHook(p); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.store {
		if id == p.ID {
			continue
		}
		if other.ReceiptID == p.ReceiptID || other.TransactionID == p.TransactionID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *p
	if p.Card != nil {
		card := *p.Card
		cp.Card = &card
	}
	m.store[p.ID] = &cp
	return nil
}

func (m *memPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	if p.Card != nil {
		card := *p.Card
		cp.Card = &card
	}
	return &cp, nil
}

func (m *memPaymentRepo) FindByReceiptID(ctx context.Context, tx repository.Tx, receiptID string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if p.ReceiptID == receiptID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPaymentRepo) ListByEmail(ctx context.Context, tx repository.Tx, email string) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Payment, 0)
	for _, p := range m.store {
		if p.Email == email {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (m *memPaymentRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*model.Payment, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		all = append(all, &cp)
	}
	sortByDateDesc(all)
	if offset >= len(all) {
		return []*model.Payment{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memPaymentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *memPaymentRepo) PackageStats(ctx context.Context, tx repository.Tx) ([]model.PackageStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	agg := map[model.PackageType]*model.PackageStat{}
	for _, p := range m.store {
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

func (m *memPaymentRepo) MonthlyStats(ctx context.Context, tx repository.Tx, months int) ([]model.MonthlyStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	agg := map[string]*model.MonthlyStat{}
	for _, p := range m.store {
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

func sortByDateDesc(ps []*model.Payment) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].PaymentDate.After(ps[j].PaymentDate) })
}

// memTransactionRepo provides in-memory ledger entries for tests.
type memTransactionRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Transaction
	saveErr error
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{store: make(map[string]*model.Transaction)}
}

func (m *memTransactionRepo) Save(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTransactionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTransactionRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Transaction, 0, len(m.store))
	for _, t := range m.store {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memTransactionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Transaction, 0)
	for _, t := range m.store {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memTransactionRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// mockTxManager runs the function directly; unit tests exercise the
// read-modify-write logic, not transaction semantics.
type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

var (
	_ repository.PaymentRepository     = (*memPaymentRepo)(nil)
	_ repository.TransactionRepository = (*memTransactionRepo)(nil)
	_ repository.TransactionManager    = mockTxManager{}
)
