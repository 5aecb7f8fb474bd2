package report

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheConfig contains configuration options for the definition cache
type CacheConfig struct {
	// MaxSize is the maximum number of templates to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached templates. 0 means no expiration.
	TTL time.Duration
}

// DefinitionCache keeps report templates and hands out independent
// derived copies. Callers never see the cached instance, so concurrent
// report runs cannot disturb each other or the template.
type DefinitionCache struct {
	mu     sync.Mutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
	now    func() time.Time
	flight singleflight.Group
}

type cacheEntry struct {
	key     string
	report  *MasterReport
	expiry  time.Time
	element *list.Element
}

// NewDefinitionCache creates a cache configured from the global configuration.
func NewDefinitionCache() *DefinitionCache {
	config := GetGlobalConfig()
	return NewDefinitionCacheWithConfig(CacheConfig{
		MaxSize: config.DefinitionCacheSize,
		TTL:     config.DefinitionCacheTTL,
	})
}

// NewDefinitionCacheWithConfig creates a cache with the given configuration.
func NewDefinitionCacheWithConfig(config CacheConfig) *DefinitionCache {
	return &DefinitionCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
		now:    time.Now,
	}
}

// Put stores a template under key. The cache keeps its own derived copy
// with identities preserved, so later edits to report do not leak in.
func (dc *DefinitionCache) Put(key string, report *MasterReport) {
	if dc.config.MaxSize == 0 || report == nil {
		return
	}
	dc.mu.Lock()
	defer dc.mu.Unlock()

	template := report.DeriveReport(true)
	if existing, ok := dc.cache[key]; ok {
		dc.logCloseFailure(existing, dc.closeTemplate(existing))
		existing.report = template
		existing.expiry = dc.expiry()
		dc.lru.MoveToFront(existing.element)
		return
	}

	if dc.lru.Len() >= dc.config.MaxSize {
		if oldest := dc.lru.Back(); oldest != nil {
			evicted := oldest.Value.(*cacheEntry)
			dc.removeEntry(evicted)
			definitionCacheTotal.WithLabelValues("evict").Inc()
			WithField("key", evicted.key).Debug("evicted least recently used template")
		}
	}

	entry := &cacheEntry{key: key, report: template, expiry: dc.expiry()}
	entry.element = dc.lru.PushFront(entry)
	dc.cache[key] = entry
}

// Acquire returns a fresh derived copy of the template stored under key.
func (dc *DefinitionCache) Acquire(key string) (*MasterReport, bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	entry, ok := dc.cache[key]
	if !ok {
		definitionCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	if dc.expired(entry) {
		dc.removeEntry(entry)
		definitionCacheTotal.WithLabelValues("expire").Inc()
		WithField("key", key).Debug("cached template expired")
		return nil, false
	}
	dc.lru.MoveToFront(entry.element)
	definitionCacheTotal.WithLabelValues("hit").Inc()
	// Deriving marks the template's attribute storage as shared, so it runs
	// under the exclusive lock.
	return entry.report.DeriveReport(false), true
}

// AcquireOrLoad returns a derived copy of the template under key, loading
// and storing the template first when it is missing. Concurrent misses on
// the same key share one load. With caching disabled every miss loads.
func (dc *DefinitionCache) AcquireOrLoad(key string, load func() (*MasterReport, error)) (*MasterReport, error) {
	if r, ok := dc.Acquire(key); ok {
		return r, nil
	}
	if load == nil {
		return nil, errors.New("definition not in cache and no loader provided")
	}
	result, err, shared := dc.flight.Do(key, func() (interface{}, error) {
		// A load that finished between the miss above and this call has
		// already stored the template.
		if template := dc.template(key); template != nil {
			return template, nil
		}
		report, err := load()
		if err != nil {
			return nil, WithContext(err, "load report definition", map[string]interface{}{"key": key})
		}
		if report == nil {
			return nil, errors.New("loader returned no report")
		}
		dc.Put(key, report)
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		WithField("key", key).Debug("joined in-flight template load")
	}
	// Every caller of a shared load derives from the same loaded report.
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return result.(*MasterReport).DeriveReport(false), nil
}

// template returns the live cached template under key without touching
// the LRU order or the metrics.
func (dc *DefinitionCache) template(key string) *MasterReport {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	entry, ok := dc.cache[key]
	if !ok || dc.expired(entry) {
		return nil
	}
	return entry.report
}

// Remove drops the template stored under key.
func (dc *DefinitionCache) Remove(key string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if entry, ok := dc.cache[key]; ok {
		dc.removeEntry(entry)
	}
}

// Clear drops every template and returns the failures of closing their
// data factories.
func (dc *DefinitionCache) Clear() error {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	errs := NewMultiError()
	for e := dc.lru.Back(); e != nil; e = e.Prev() {
		entry := e.Value.(*cacheEntry)
		if err := dc.closeTemplate(entry); err != nil {
			errs.Add(WithContext(err, "close cached data factory", map[string]interface{}{"key": entry.key}))
		}
	}
	dc.cache = make(map[string]*cacheEntry)
	dc.lru = list.New()
	return errs.Err()
}

// Size returns the current number of cached templates.
func (dc *DefinitionCache) Size() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return len(dc.cache)
}

// Close clears the cache.
func (dc *DefinitionCache) Close() error {
	return dc.Clear()
}

func (dc *DefinitionCache) expiry() time.Time {
	if dc.config.TTL > 0 {
		return dc.now().Add(dc.config.TTL)
	}
	return time.Time{}
}

func (dc *DefinitionCache) expired(entry *cacheEntry) bool {
	return dc.config.TTL > 0 && dc.now().After(entry.expiry)
}

// removeEntry must be called with mu held.
func (dc *DefinitionCache) removeEntry(entry *cacheEntry) {
	dc.logCloseFailure(entry, dc.closeTemplate(entry))
	delete(dc.cache, entry.key)
	dc.lru.Remove(entry.element)
}

func (dc *DefinitionCache) closeTemplate(entry *cacheEntry) error {
	if entry.report == nil {
		return nil
	}
	return entry.report.dataFactory.Close()
}

func (dc *DefinitionCache) logCloseFailure(entry *cacheEntry, err error) {
	if err != nil {
		WithField("key", entry.key).Warn("closing cached data factory: %v", err)
	}
}
