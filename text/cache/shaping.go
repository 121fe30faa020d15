// Package cache memoizes shaping engine output.
//
// The cache is keyed by the shaped characters and everything else that
// affects the glyphs: font, size, script, direction and the engine. Values are stored
// as-is; callers must not modify a value after caching it.
package cache

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

const (
	// DefaultShardCount is the number of shards. It must be a power of 2.
	DefaultShardCount = 16

	// DefaultCapacity is the default number of entries per shard.
	DefaultCapacity = 256

	shardMask = DefaultShardCount - 1
)

// ShapingKey identifies one shaped run.
type ShapingKey struct {
	// TextHash is the FNV-1a hash of the run's characters.
	TextHash uint64

	// Length is the number of characters, to make collisions between runs
	// of different lengths impossible.
	Length uint32

	FontID uint32

	// SizeBits is the IEEE 754 bit pattern of the pixel size.
	SizeBits uint32

	Script uint8

	RightToLeft bool

	// Engine is the hash of the engine name set by WithEngine. Zero means
	// no engine was named.
	Engine uint64
}

// NewShapingKey creates the key of a run of characters.
func NewShapingKey(text []rune, fontID uint32, size float32, script uint8, rightToLeft bool) ShapingKey {
	return ShapingKey{
		TextHash:    hashRunes(text),
		Length:      uint32(len(text)), //nolint:gosec // runs are bounded by the text length
		FontID:      fontID,
		SizeBits:    math.Float32bits(size),
		Script:      script,
		RightToLeft: rightToLeft,
	}
}

// WithEngine returns k bound to the engine identified by name, so that
// engines with different output never share entries.
func (k ShapingKey) WithEngine(name string) ShapingKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	k.Engine = h.Sum64()
	return k
}

func hashRunes(text []rune) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, r := range text {
		binary.LittleEndian.PutUint32(buf[:], uint32(r)) //nolint:gosec // runes are non-negative
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func (k *ShapingKey) shard() uint64 {
	h := k.TextHash
	h ^= uint64(k.FontID)<<32 | uint64(k.SizeBits)
	h ^= uint64(k.Length) << 7
	h ^= uint64(k.Script) << 17
	h ^= k.Engine
	if k.RightToLeft {
		h = ^h
	}
	// fmix64 from MurmurHash3 spreads the bits before masking.
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

// ShapingCache is a sharded LRU cache of shaped runs. It is safe for
// concurrent use.
type ShapingCache[V any] struct {
	shards   [DefaultShardCount]*shard[V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[ShapingKey]*entry[V]
	recent  ring[V]
}

// NewShapingCache creates a cache holding up to capacity entries per shard.
// A capacity <= 0 selects DefaultCapacity.
func NewShapingCache[V any](capacity int) *ShapingCache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &ShapingCache[V]{capacity: capacity}
	for i := range c.shards {
		s := &shard[V]{entries: make(map[ShapingKey]*entry[V])}
		s.recent.init()
		c.shards[i] = s
	}
	return c
}

func (c *ShapingCache[V]) shardFor(key *ShapingKey) *shard[V] {
	return c.shards[key.shard()&shardMask]
}

// Get returns the value cached under key and marks it recently used.
func (c *ShapingCache[V]) Get(key ShapingKey) (V, bool) {
	s := c.shardFor(&key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.recent.touch(e)
	value := e.value
	s.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores value under key, evicting the least recently used entries of
// the shard when it is full.
func (c *ShapingCache[V]) Set(key ShapingKey, value V) {
	s := c.shardFor(&key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.setLocked(s, key, value)
}

// GetOrCreate returns the cached value of key, calling create on a miss.
// create runs with the shard locked.
func (c *ShapingCache[V]) GetOrCreate(key ShapingKey, create func() V) V {
	s := c.shardFor(&key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.recent.touch(e)
		c.hits.Add(1)
		return e.value
	}
	c.misses.Add(1)
	value := create()
	c.setLocked(s, key, value)
	return value
}

func (c *ShapingCache[V]) setLocked(s *shard[V], key ShapingKey, value V) {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.recent.touch(e)
		return
	}
	for s.recent.n >= c.capacity {
		oldest := s.recent.oldest()
		if oldest == nil {
			break
		}
		s.recent.drop(oldest)
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}
	s.entries[key] = s.recent.insert(key, value)
}

// Delete removes key and reports whether it was present.
func (c *ShapingCache[V]) Delete(key ShapingKey) bool {
	s := c.shardFor(&key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.recent.drop(e)
	delete(s.entries, key)
	return true
}

// Clear removes every entry.
func (c *ShapingCache[V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[ShapingKey]*entry[V])
		s.recent.init()
		s.mu.Unlock()
	}
}

// Len returns the number of entries.
func (c *ShapingCache[V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *ShapingCache[V]) Capacity() int {
	return c.capacity
}

// Stats holds cache statistics.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns the current statistics.
func (c *ShapingCache[V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   rate,
	}
}

// ResetStats zeroes the counters.
func (c *ShapingCache[V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
