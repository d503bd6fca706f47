package memo

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Store is a sealed interface for memo caches.
// Only stores built via NewCasStore or NewSetStore can implement it.
type Store interface {
	// store is a marker method to prevent accidental implementation of Store directly.
	store()
}

// CasStore is a cache with an atomic insert. LoadOrStore must guarantee that
// for a given key the first stored value wins and is the one every caller
// observes afterwards. Keys are the slot identities produced by CacheKey:
// comparable input values, or strings for Stringer-keyed inputs.
type CasStore interface {
	Load(key any) (value any, ok bool)
	LoadOrStore(key any, value any) (actual any, loaded bool)
}

type casStore interface {
	CasStore
	store()
}

type casImpl struct {
	CasStore
}

func (casImpl) store() {}

func NewCasStore(s CasStore) Store {
	return casImpl{CasStore: s}
}

// SetStore is a cache with plain get/set semantics, for backends that offer
// no atomic insert (most external caches). Under concurrent callers a
// SetStore alone cannot guarantee first-insert-wins; the memo aspect layers
// in-flight deduplication on top so compute-at-most-once still holds.
// Backends addressed by string can flatten keys with StringKey.
type SetStore interface {
	Get(key any) (value any, ok bool)
	Set(key any, value any)
}

type setStore interface {
	SetStore
	store()
}

type setImpl struct {
	SetStore
}

func (setImpl) store() {}

func NewSetStore(s SetStore) Store {
	return setImpl{SetStore: s}
}

func matchStore[T any](
	s Store,
	casCallback func(casStore) T,
	setCallback func(setStore) T,
) T {
	if cas, ok := s.(casStore); ok {
		return casCallback(cas)
	}
	if set, ok := s.(setStore); ok {
		return setCallback(set)
	}
	panic(fmt.Sprintf("exhaustive match fallback, store type: %T", s))
}

func storeLoad(s Store, key any) (any, bool) {
	type res struct {
		v  any
		ok bool
	}
	r := matchStore(s,
		func(cas casStore) res {
			v, ok := cas.Load(key)
			return res{v: v, ok: ok}
		},
		func(set setStore) res {
			v, ok := set.Get(key)
			return res{v: v, ok: ok}
		},
	)
	return r.v, r.ok
}

// storeInsert records a computed value. The first insert wins on a CasStore;
// a SetStore overwrites, which is harmless because every insert for a key
// carries the same computed value.
func storeInsert(s Store, key any, value any) any {
	return matchStore(s,
		func(cas casStore) any {
			actual, _ := cas.LoadOrStore(key, value)
			return actual
		},
		func(set setStore) any {
			set.Set(key, value)
			return value
		},
	)
}

const defaultNumShards = 8

// shardedStore is the default cache: sync.Map shards selected by key hash.
// Slots are keyed by the slot identity itself; the %v rendering feeds only
// shard placement, where a colliding rendering is harmless.
type shardedStore struct {
	shards []*sync.Map
}

// NewShardedStore returns a CasStore backed by numShards sync.Map shards,
// with shard selection hashed from the cache key. A non-positive shard count
// is clamped to 1.
func NewShardedStore(numShards int) Store {
	if numShards <= 0 {
		numShards = 1
	}
	shards := make([]*sync.Map, numShards)
	for i := range shards {
		shards[i] = &sync.Map{}
	}
	return NewCasStore(shardedStore{shards: shards})
}

func (s shardedStore) Load(key any) (any, bool) {
	return s.shardOf(key).Load(key)
}

func (s shardedStore) LoadOrStore(key any, value any) (any, bool) {
	return s.shardOf(key).LoadOrStore(key, value)
}

func (s shardedStore) shardOf(key any) *sync.Map {
	return s.shards[getIndexByHash(fmt.Sprintf("%v", key), len(s.shards))]
}

func getIndexByHash(rendered string, numShards int) int {
	return int(xxhash.Sum64String(rendered) % uint64(numShards))
}
