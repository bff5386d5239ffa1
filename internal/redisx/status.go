package redisx

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-course-payments/internal/payments"
)

// StatusCache keeps the last known status per gateway order id.
type StatusCache struct {
	rdb *redis.Client
}

func NewStatusCache(rdb *redis.Client) *StatusCache {
	return &StatusCache{rdb: rdb}
}

// SetStatus refuses moves payments.CanTransition does not allow, e.g. a late
// CREATED overwriting PAID.
func (c *StatusCache) SetStatus(ctx context.Context, orderID string, s payments.Status) error {
	key := fmt.Sprintf(KeyOrderStatus, orderID)
	return c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if !payments.CanTransition(payments.Status(cur), s) {
			return fmt.Errorf("%w: %q -> %q", payments.ErrInvalidTransition, cur, s)
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, string(s), TTLStatusCache)
			return nil
		})
		return err
	}, key)
}

// GetStatus returns payments.ErrOrderNotFound on a cache miss.
func (c *StatusCache) GetStatus(ctx context.Context, orderID string) (payments.Status, error) {
	s, err := c.rdb.Get(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", payments.ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return payments.Status(s), nil
}
