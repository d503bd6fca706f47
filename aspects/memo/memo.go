package memo

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/open-rec/untie_go/untie"
)

// Wrap returns a memoizing aspect over a fresh, privately owned sharded
// cache. Each application of the aspect creates its own cache; unrelated
// pipelines never share one.
//
// Per call: a cache hit returns the stored value immediately — the wrapped
// function and any recursion below it are not invoked. A miss computes,
// stores only on success, and returns. For any input, the wrapped
// computation runs at most once per aspect instance; failed computations
// insert nothing, so a later call with the same input re-attempts.
//
// Where the aspect sits in the pipeline decides what a cache hit skips:
// applied after a logger it suppresses the logger on hits, applied before
// one it leaves every call visible. Preserve order deliberately.
func Wrap[In, Out any]() untie.Aspect[In, Out] {
	return wrap[In, Out](func() Store { return NewShardedStore(defaultNumShards) }, nil)
}

// WrapWith is Wrap over a caller-supplied store (see NewCasStore,
// NewSetStore). Unlike Wrap, applying the aspect to several pipelines shares
// the one store; mutating it from outside those pipelines' call paths is a
// contract violation.
func WrapWith[In, Out any](store Store) untie.Aspect[In, Out] {
	return wrap[In, Out](func() Store { return store }, nil)
}

// WrapObserved is WrapWith with hit/miss counters recorded into stats.
func WrapObserved[In, Out any](store Store, stats *Stats) untie.Aspect[In, Out] {
	return wrap[In, Out](func() Store { return store }, stats)
}

func wrap[In, Out any](newStore func() Store, stats *Stats) untie.Aspect[In, Out] {
	return func(u untie.Func[In, Out]) untie.Func[In, Out] {
		// The cache exists from pipeline construction, not per call.
		store := newStore()

		// In-flight dedup: concurrent callers racing on a cold key share one
		// computation, keeping compute-at-most-once even for stores without
		// an atomic insert. A computation must not recursively re-enter
		// itself with an equal input; such a call has no fixed point and
		// will not return.
		var group singleflight.Group
		var flights flightIds

		return func(recur untie.Recur[In, Out], in In) (Out, error) {
			key := CacheKey(in)
			if v, ok := storeLoad(store, key); ok {
				stats.hit()
				return mustTypedValue[Out](v), nil
			}

			entered := false
			v, err, _ := group.Do(flights.acquire(key), func() (any, error) {
				entered = true
				// A concurrent flight may have stored the value between the
				// lookup above and entering the group.
				if v, ok := storeLoad(store, key); ok {
					stats.hit()
					return v, nil
				}
				stats.miss()
				out, err := u(recur, in)
				if err != nil {
					return nil, err
				}
				return storeInsert(store, key, out), nil
			})
			flights.release(key)
			if !entered && err == nil {
				// Served by a flight another caller started.
				stats.hit()
			}
			if err != nil {
				var zero Out
				return zero, err
			}
			return mustTypedValue[Out](v), nil
		}
	}
}

// flightIds names in-flight computations for the dedup group, which is
// addressed by string. Distinct slot keys never share an id, so joining a
// flight means racing on an equal input. Ids are released once the flight
// lands, keeping the table bounded by live concurrency, not cache size.
type flightIds struct {
	ids sync.Map
	seq atomic.Int64
}

func (f *flightIds) acquire(key any) string {
	if id, ok := f.ids.Load(key); ok {
		return id.(string)
	}
	id, _ := f.ids.LoadOrStore(key, strconv.FormatInt(f.seq.Add(1), 10))
	return id.(string)
}

func (f *flightIds) release(key any) {
	f.ids.Delete(key)
}

// Stats exposes read-only hit/miss counters for one memo aspect instance.
// A hit is a call served without running the computation, whether from the
// cache or from a concurrent caller's in-flight computation.
type Stats struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (s *Stats) Hits() int64 {
	return s.hits.Load()
}

func (s *Stats) Misses() int64 {
	return s.misses.Load()
}

func (s *Stats) hit() {
	if s != nil {
		s.hits.Add(1)
	}
}

func (s *Stats) miss() {
	if s != nil {
		s.misses.Add(1)
	}
}

// mustTypedValue asserts a cached value back to the computation's output
// type. A mismatch means two pipelines with colliding keys shared one store,
// which the key contract forbids.
func mustTypedValue[T any](raw any) T {
	val, ok := raw.(T)
	if !ok {
		panic(fmt.Errorf("memo: unexpected cached value type: %T", raw))
	}
	return val
}
