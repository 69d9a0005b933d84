package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const defaultLeaseTTL = 45 * time.Second

// Lease elects the replica allowed to run exclusive tasks.
type Lease interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type leaseStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	RenewOwned(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	ReleaseOwned(ctx context.Context, key, owner string) (bool, error)
}

// RedisLease holds a renewable SETNX lease owned by this instance.
type RedisLease struct {
	client leaseStore
	key    string
	owner  string
	ttl    time.Duration
}

// NewRedisLease constructs a Redis-backed lease for the given owner.
func NewRedisLease(client leaseStore, key, owner string, ttl time.Duration) (*RedisLease, error) {
	if client == nil {
		return nil, errors.New("redis client required for lease")
	}
	if key == "" {
		return nil, errors.New("lease key is required")
	}
	if owner == "" {
		return nil, errors.New("lease owner is required")
	}
	if ttl <= 0 {
		ttl = defaultLeaseTTL
	}
	return &RedisLease{client: client, key: key, owner: owner, ttl: ttl}, nil
}

// Acquire takes the lease when free and extends it when this instance already holds it.
func (l *RedisLease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if ok {
		return true, nil
	}
	renewed, err := l.client.RenewOwned(ctx, l.key, l.owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("renew lease: %w", err)
	}
	return renewed, nil
}

// Release frees the lease only if this instance still owns it.
func (l *RedisLease) Release(ctx context.Context) error {
	if _, err := l.client.ReleaseOwned(ctx, l.key, l.owner); err != nil {
		return fmt.Errorf("release lease: %w", err)
	}
	return nil
}
