// Package store keeps the most recent calculation so that it can be served
// again after the request that produced it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GiftinTech/Loan-Calculator/internal/config"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("store: not found")

// Store persists opaque records by key.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Close() error
}

// Open builds the store selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", constants.StoreBackendMemory:
		return NewMemoryStore(), nil
	case constants.StoreBackendRedis:
		var ttl time.Duration
		if cfg.TTL != "" {
			parsed, err := time.ParseDuration(cfg.TTL)
			if err != nil {
				return nil, fmt.Errorf("invalid store ttl %q: %w", cfg.TTL, err)
			}
			if parsed < 0 {
				return nil, fmt.Errorf("store ttl %s must not be negative", cfg.TTL)
			}
			ttl = parsed
		}
		address := cfg.Address
		if address == "" {
			address = constants.DefaultRedisAddress
		}
		return NewRedisStore(address, cfg.Password, cfg.DB, ttl), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
