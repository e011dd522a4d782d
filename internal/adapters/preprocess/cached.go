package preprocess

import (
	"sync"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/cespare/xxhash/v2"
)

// DefaultCacheShards is the shard count used by NewCached when shards <= 0.
const DefaultCacheShards = 16

// DefaultCacheShardSize bounds the number of entries kept per shard.
const DefaultCacheShardSize = 4096

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]string
}

// Cached memoizes an inner preprocessor. Results are keyed by the full input,
// xxhash only picks the shard. A full shard is reset rather than evicted piecemeal.
type Cached struct {
	inner     ports.Preprocessor
	shards    []*cacheShard
	shardSize int
}

// NewCached wraps inner with a sharded memo table. A nil inner is treated as NoOp.
func NewCached(inner ports.Preprocessor, shards int) *Cached {
	if inner == nil {
		inner = NoOp
	}
	if shards <= 0 {
		shards = DefaultCacheShards
	}
	c := &Cached{
		inner:     inner,
		shards:    make([]*cacheShard, shards),
		shardSize: DefaultCacheShardSize,
	}
	for i := range c.shards {
		c.shards[i] = &cacheShard{entries: make(map[string]string)}
	}
	return c
}

// Preprocess returns the memoized result of the inner preprocessor.
func (c *Cached) Preprocess(text string) string {
	shard := c.shards[xxhash.Sum64String(text)%uint64(len(c.shards))]

	shard.mu.RLock()
	out, ok := shard.entries[text]
	shard.mu.RUnlock()
	if ok {
		return out
	}

	out = c.inner.Preprocess(text)

	shard.mu.Lock()
	if len(shard.entries) >= c.shardSize {
		shard.entries = make(map[string]string)
	}
	shard.entries[text] = out
	shard.mu.Unlock()

	return out
}

// Len returns the number of cached entries across all shards.
func (c *Cached) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Inner returns the wrapped preprocessor.
func (c *Cached) Inner() ports.Preprocessor {
	return c.inner
}

func (c *Cached) String() string { return "cached(" + Describe(c.inner) + ")" }
