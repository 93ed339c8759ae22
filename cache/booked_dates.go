// Package cache keeps per-property booked date ranges in Redis for calendar views.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"conciergerie-backend/availability"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "booked-dates:"

// store is the part of the redis client BookedDates uses.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// BookedDates stores each property's ranges under a versioned key. Invalidate
// bumps the version instead of deleting, so a reader that loaded the ranges before
// a booking change writes them under a version nobody reads any more.
type BookedDates struct {
	rdb store
	ttl time.Duration
}

func NewBookedDates(rdb *redis.Client, ttl time.Duration) *BookedDates {
	return &BookedDates{rdb: rdb, ttl: ttl}
}

func versionKey(propertyID string) string {
	return keyPrefix + propertyID + ":version"
}

func dataKey(propertyID string, version int64) string {
	return fmt.Sprintf("%s%s:v%d", keyPrefix, propertyID, version)
}

// Version returns the current version of propertyID's entry, 0 until the first
// invalidation. Read it before loading the ranges that will be passed to Set.
func (c *BookedDates) Version(ctx context.Context, propertyID string) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(propertyID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read booked dates version of %s: %w", propertyID, err)
	}
	return v, nil
}

// Get returns the ranges cached for version; ok is false on a miss.
func (c *BookedDates) Get(ctx context.Context, propertyID string, version int64) ([]availability.Interval, bool, error) {
	raw, err := c.rdb.Get(ctx, dataKey(propertyID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read booked dates of %s: %w", propertyID, err)
	}

	var ranges []availability.Interval
	if err := json.Unmarshal(raw, &ranges); err != nil {
		return nil, false, fmt.Errorf("decode booked dates of %s: %w", propertyID, err)
	}
	return ranges, true, nil
}

func (c *BookedDates) Set(ctx context.Context, propertyID string, version int64, ranges []availability.Interval) error {
	if ranges == nil {
		ranges = []availability.Interval{}
	}
	raw, err := json.Marshal(ranges)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, dataKey(propertyID, version), raw, c.ttl).Err()
}

func (c *BookedDates) Invalidate(ctx context.Context, propertyID string) error {
	return c.rdb.Incr(ctx, versionKey(propertyID)).Err()
}
