package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/metrics"
	red "github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/redis"
)

var _ repository.PaymentRepository = (*paymentRepoCacheDecorator)(nil)

const (
	packageStatsKey = "payments:stats:packages"
	monthlyStatsKey = "payments:stats:monthly:%d"
)

// paymentRepoCacheDecorator caches the aggregate stats queries in Redis.
// Every write invalidates both keys; reads within the TTL skip the
// GROUP BY scans entirely.
type paymentRepoCacheDecorator struct {
	inner repository.PaymentRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewPaymentRepoCacheDecorator(inner repository.PaymentRepository, cache red.RedisClient, ttl time.Duration) repository.PaymentRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &paymentRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *paymentRepoCacheDecorator) PackageStats(ctx context.Context, tx repository.Tx) ([]model.PackageStat, error) {
	if val, err := d.cache.Get(ctx, packageStatsKey); err == nil {
		var stats []model.PackageStat
		if json.Unmarshal([]byte(val), &stats) == nil {
			metrics.IncCacheRequest("payment_stats", "hit")
			return stats, nil
		}
	} else if !errors.Is(err, red.Nil) {
		metrics.IncCacheRequest("payment_stats", "error")
	}

	metrics.IncCacheRequest("payment_stats", "miss")
	stats, err := d.inner.PackageStats(ctx, tx)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(stats); err == nil {
		_ = d.cache.Set(ctx, packageStatsKey, bytes, d.ttl)
	}
	return stats, nil
}

func (d *paymentRepoCacheDecorator) MonthlyStats(ctx context.Context, tx repository.Tx, months int) ([]model.MonthlyStat, error) {
	key := fmt.Sprintf(monthlyStatsKey, months)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var stats []model.MonthlyStat
		if json.Unmarshal([]byte(val), &stats) == nil {
			metrics.IncCacheRequest("payment_stats", "hit")
			return stats, nil
		}
	} else if !errors.Is(err, red.Nil) {
		metrics.IncCacheRequest("payment_stats", "error")
	}

	metrics.IncCacheRequest("payment_stats", "miss")
	stats, err := d.inner.MonthlyStats(ctx, tx, months)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(stats); err == nil {
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return stats, nil
}

// Save invalidates the cached aggregates.
func (d *paymentRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	_ = d.cache.Del(ctx, packageStatsKey, fmt.Sprintf(monthlyStatsKey, 12))
	return d.inner.Save(ctx, tx, p)
}

// Reads pass straight through.

func (d *paymentRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	return d.inner.FindByID(ctx, tx, id)
}

func (d *paymentRepoCacheDecorator) FindByReceiptID(ctx context.Context, tx repository.Tx, receiptID string) (*model.Payment, error) {
	return d.inner.FindByReceiptID(ctx, tx, receiptID)
}

func (d *paymentRepoCacheDecorator) ListByEmail(ctx context.Context, tx repository.Tx, email string) ([]*model.Payment, error) {
	return d.inner.ListByEmail(ctx, tx, email)
}

func (d *paymentRepoCacheDecorator) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	return d.inner.List(ctx, tx, offset, limit)
}

func (d *paymentRepoCacheDecorator) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.Count(ctx, tx)
}
