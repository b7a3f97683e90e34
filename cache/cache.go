// Package cache memoizes vectorization output on a hash of the input pixels
// and the serialized option set. Entries expire after a TTL and are swept by
// a cron schedule; Get also checks expiry so a stopped sweeper never serves
// stale data.
package cache

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
)

type entry struct {
	value   string
	expires time.Time
}

// Cache is a TTL-bounded in-memory result cache. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]entry
	ttl     time.Duration
	cron    *cron.Cron
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[uint64]entry),
		ttl:     ttl,
		cron:    cron.New(),
	}
}

// Start schedules the expiry sweep every minute and starts the scheduler.
func (c *Cache) Start() error {
	if _, err := c.cron.AddFunc("@every 1m", c.Sweep); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

// Stop halts the sweep scheduler.
func (c *Cache) Stop() {
	c.cron.Stop()
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache) Get(key uint64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Put stores value under key for the configured TTL.
func (c *Cache) Put(key uint64, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep drops every expired entry.
func (c *Cache) Sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
}

// Key hashes a buffer and a serialized config into a cache key (FNV-1a).
func Key(buf *pixel.Buffer, config string) uint64 {
	h := fnv.New64a()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(buf.Width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(buf.Height))
	_, _ = h.Write(dims[:])
	_, _ = h.Write(buf.Pix)
	_, _ = h.Write([]byte(config))
	return h.Sum64()
}
