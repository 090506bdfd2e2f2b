//go:build !integration

package postgres

import (
	"context"
	"time"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
	red "github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/redis"
)

// --- Mocks for Cache Decorator Tests ---

// mockInnerPaymentRepo mocks the database repository that the decorator wraps.
type mockInnerPaymentRepo struct {
	SaveFunc            func(ctx context.Context, tx repository.Tx, p *model.Payment) error
	FindByIDFunc        func(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error)
	FindByReceiptIDFunc func(ctx context.Context, tx repository.Tx, receiptID string) (*model.Payment, error)
	ListByEmailFunc     func(ctx context.Context, tx repository.Tx, email string) ([]*model.Payment, error)
	ListFunc            func(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error)
	CountFunc           func(ctx context.Context, tx repository.Tx) (int, error)
	PackageStatsFunc    func(ctx context.Context, tx repository.Tx) ([]model.PackageStat, error)
	MonthlyStatsFunc    func(ctx context.Context, tx repository.Tx, months int) ([]model.MonthlyStat, error)
}

var _ repository.PaymentRepository = (*mockInnerPaymentRepo)(nil)

func (m *mockInnerPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	return m.SaveFunc(ctx, tx, p)
}
func (m *mockInnerPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *mockInnerPaymentRepo) FindByReceiptID(ctx context.Context, tx repository.Tx, receiptID string) (*model.Payment, error) {
	return m.FindByReceiptIDFunc(ctx, tx, receiptID)
}
func (m *mockInnerPaymentRepo) ListByEmail(ctx context.Context, tx repository.Tx, email string) ([]*model.Payment, error) {
	return m.ListByEmailFunc(ctx, tx, email)
}
func (m *mockInnerPaymentRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	return m.ListFunc(ctx, tx, offset, limit)
}
func (m *mockInnerPaymentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return m.CountFunc(ctx, tx)
}
func (m *mockInnerPaymentRepo) PackageStats(ctx context.Context, tx repository.Tx) ([]model.PackageStat, error) {
	return m.PackageStatsFunc(ctx, tx)
}
func (m *mockInnerPaymentRepo) MonthlyStats(ctx context.Context, tx repository.Tx, months int) ([]model.MonthlyStat, error) {
	return m.MonthlyStatsFunc(ctx, tx, months)
}

// mockRedisClient mocks our Redis client wrapper.
type mockRedisClient struct {
	GetFunc   func(ctx context.Context, key string) (string, error)
	SetFunc   func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc   func(ctx context.Context, keys ...string) error
	PingFunc  func(ctx context.Context) error
	CloseFunc func() error
}

var _ red.RedisClient = (*mockRedisClient)(nil)

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error { return m.PingFunc(ctx) }
func (m *mockRedisClient) Close() error                   { return m.CloseFunc() }
