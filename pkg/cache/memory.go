package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	defaultTTL time.Duration
	sweepEvery time.Duration
	maxEntries int
	onEvict    func(key string, value any)
}

// WithDefaultTTL sets the expiration applied when Set receives a zero ttl.
// Pass NoExpiration to keep such entries forever. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are swept.
// Zero disables the background sweeper; expired entries are then dropped
// lazily on access. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.sweepEvery = d }
}

// WithMaxEntries bounds the cache size. The least recently used entry is
// evicted when the bound is exceeded. Zero means unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) { c.maxEntries = max(n, 0) }
}

// WithEvictCallback registers fn to observe every removed entry.
func WithEvictCallback(fn func(key string, value any)) MemoryOption {
	return func(c *memoryConfig) { c.onEvict = fn }
}

type item[V any] struct {
	key     string
	value   V
	expires time.Time
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// Memory is an in-process LRU cache with per-entry expiration.
// The front of the recency list holds the most recently used entry.
type Memory[V any] struct {
	mu      sync.Mutex
	cfg     memoryConfig
	index   map[string]*list.Element
	recency *list.List
	stop    chan struct{}
	closed  bool
}

// NewMemory creates an in-memory cache.
//
//	c := cache.NewMemory[Page](cache.WithMaxEntries(1000))
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{
		defaultTTL: time.Hour,
		sweepEvery: time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		cfg:     cfg,
		index:   make(map[string]*list.Element),
		recency: list.New(),
		stop:    make(chan struct{}),
	}
	if cfg.sweepEvery > 0 {
		go m.sweeper(cfg.sweepEvery)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return zero, ErrClosed
	}
	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.recency.MoveToFront(el)
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.cfg.defaultTTL
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expires = value, expires
		m.recency.MoveToFront(el)
		return nil
	}

	m.index[key] = m.recency.PushFront(&item[V]{key: key, value: value, expires: expires})
	if m.cfg.maxEntries > 0 {
		for m.recency.Len() > m.cfg.maxEntries {
			m.remove(m.recency.Back())
		}
	}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.index[key]; ok {
		m.remove(el)
	}
	return nil
}

// Has does not refresh the entry's recency.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}
	el, ok := m.index[key]
	if !ok {
		return false, nil
	}
	return !el.Value.(*item[V]).expired(time.Now()), nil
}

// Len returns the number of stored entries, expired ones included until
// they are swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recency.Len()
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for el := m.recency.Back(); el != nil; {
		prev := el.Prev()
		m.remove(el)
		el = prev
	}
	return nil
}

// Close stops the sweeper. Subsequent calls return ErrClosed; Close itself
// is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweeper(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-t.C:
			m.sweep(now)
		}
	}
}

func (m *Memory[V]) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for el := m.recency.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*item[V]).expired(now) {
			m.remove(el)
		}
		el = prev
	}
}

// remove must be called with mu held.
func (m *Memory[V]) remove(el *list.Element) {
	it := m.recency.Remove(el).(*item[V])
	delete(m.index, it.key)
	if m.cfg.onEvict != nil {
		m.cfg.onEvict(it.key, it.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
