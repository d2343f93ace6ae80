package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoStore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog/log"
)

const DefaultMaxCost = 1 << 30

// PageCache keeps rendered pages in process memory for a bounded time.
// Entries are never invalidated by writes, they only expire or get cleared.
type PageCache struct {
	client  *ristretto.Cache
	manager *cache.Cache[[]byte]
}

func NewPageCache(maxCost int64) (*PageCache, error) {
	if maxCost <= 0 {
		maxCost = DefaultMaxCost
	}

	ris, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &PageCache{
		client:  ris,
		manager: cache.New[[]byte](ristrettoStore.NewRistretto(ris)),
	}, nil
}

// Get returns the cached body for key, ok is false on a miss or an expired entry.
func (v *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := v.manager.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.NotFound{}) {
			log.Warn().Err(err).Str("key", key).Msg("Unable to read page cache...")
		}
		return nil, false
	}
	return body, body != nil
}

func (v *PageCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	err := v.manager.Set(
		ctx,
		key,
		body,
		store.WithExpiration(ttl),
		store.WithCost(int64(len(body))),
	)
	if err != nil {
		return err
	}

	// Ristretto applies writes asynchronously.
	v.client.Wait()
	return nil
}

func (v *PageCache) Clear(ctx context.Context) error {
	return v.manager.Clear(ctx)
}

func (v *PageCache) Close() {
	v.client.Close()
}
