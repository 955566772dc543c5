package storage

import (
	"paywall/internal/providers"
	"time"
)

// CachedStore layers a write-through byte cache over a durable store.
// Every Set updates both layers, so in-process reads never observe
// stale bytes; a cache miss falls through to the durable store and
// back-fills the cache.
type CachedStore struct {
	inner   StoreInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewCachedStore(inner *FileStore, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) StoreInterface {
	return &CachedStore{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

func (cs *CachedStore) Get(key string) ([]byte, bool, error) {
	if val, ok := cs.cache.Get(key); ok {
		return val, true, nil
	}
	val, ok, err := cs.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	cs.cache.Set(key, val)
	return val, true, nil
}

func (cs *CachedStore) Set(key string, value []byte) error {
	start := time.Now()
	if err := cs.inner.Set(key, value); err != nil {
		return err
	}
	cs.metrics.ObserveStoreWriteDuration(time.Since(start))
	cs.cache.Set(key, value)
	return nil
}

func (cs *CachedStore) Remove(key string) error {
	if err := cs.inner.Remove(key); err != nil {
		return err
	}
	cs.cache.Del(key)
	return nil
}
