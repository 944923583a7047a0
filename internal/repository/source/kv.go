package source

import (
	"context"
	"errors"

	"github.com/kailas-cloud/designkb/internal/db"
	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/row"
)

// DefaultKeyPrefix namespaces data-source blobs in a shared Redis.
const DefaultKeyPrefix = "designkb:source:"

// KVGetter is the consumer interface of the KV provider (ISP).
type KVGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Ping(ctx context.Context) error
}

// KV reads CSV blobs stored under prefix+locator.
type KV struct {
	store  KVGetter
	prefix string
}

// NewKV creates a provider over a key-value store. An empty prefix uses DefaultKeyPrefix.
func NewKV(store KVGetter, prefix string) *KV {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KV{store: store, prefix: prefix}
}

// Key returns the storage key for a locator.
func (p *KV) Key(locator string) string {
	return p.prefix + locator
}

// Load fetches and parses the CSV blob of locator.
func (p *KV) Load(ctx context.Context, locator string) ([]row.Row, error) {
	data, err := p.store.Get(ctx, p.Key(locator))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.NewSourceError(locator, domain.ErrDataSourceMissing)
		}
		return nil, domain.NewSourceError(locator, err)
	}

	rows, err := Parse(data)
	if err != nil {
		return nil, domain.NewSourceError(locator, err)
	}
	return rows, nil
}

// Ping checks store connectivity.
func (p *KV) Ping(ctx context.Context) error {
	return p.store.Ping(ctx)
}
