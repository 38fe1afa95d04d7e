// Package resource implements keyed, deduplicated remote reads and the
// display slots that render them.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/pkg/log"
)

// Loader performs the underlying remote read for one key.
type Loader[T any] func(ctx context.Context) (T, error)

type options struct {
	store     Store
	storeTTL  time.Duration
	summarize func(error) string
}

// Option configures a Resource.
type Option func(*options)

// WithStore adds a second-level store consulted before loading and filled
// after every successful load. A zero ttl means the store keeps entries
// until it evicts them itself.
func WithStore(store Store, ttl time.Duration) Option {
	return func(o *options) {
		o.store = store
		o.storeTTL = ttl
	}
}

// WithSummary sets how load errors are turned into Error messages.
func WithSummary(fn func(error) string) Option {
	return func(o *options) {
		o.summarize = fn
	}
}

// Resource caches the state of a kind of remote read per key. Concurrent
// fetches of one key share a single load; fetches of different keys never
// wait on each other. Ready values stay cached until invalidated.
type Resource[T any] struct {
	kind string
	opts options
	sf   singleflight.Group

	mu     sync.RWMutex
	states map[query.Key]State[T]
	// gens counts invalidations per key; loads started under an older
	// generation never settle.
	gens map[query.Key]uint64

	pending sync.WaitGroup
}

// New creates a resource for the given kind.
func New[T any](kind string, opts ...Option) *Resource[T] {
	o := options{
		summarize: func(err error) string { return err.Error() },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Resource[T]{
		kind:   kind,
		opts:   o,
		states: make(map[query.Key]State[T]),
		gens:   make(map[query.Key]uint64),
	}
}

// Fetch resolves key to Ready or Error. A key that is already Ready returns
// without calling load.
//
// The shared load runs detached from the cancellation of whichever caller
// started it, so one caller giving up does not fail the others; the
// transport timeout bounds it instead.
func (r *Resource[T]) Fetch(ctx context.Context, key query.Key, load Loader[T]) State[T] {
	if st, ok := r.Peek(key); ok && st.IsReady() {
		cacheHits.WithLabelValues(r.kind).Inc()
		return st
	}

	gen := r.markLoading(key)
	loadCtx := context.WithoutCancel(ctx)

	v, err, shared := r.sf.Do(flightKey(key, gen), func() (interface{}, error) {
		return r.load(loadCtx, key, gen, load)
	})
	if shared {
		sharedFetches.WithLabelValues(r.kind).Inc()
	}

	if err != nil {
		l := log.Ctx(ctx)
		l.Debug().Err(err).Str(log.FieldResource, r.kind).Str(log.FieldKey, string(key)).Msg("load failed")

		st := Failed[T](r.opts.summarize(err))
		r.settle(key, gen, st)
		return st
	}

	value, _ := v.(T)
	st := Ready(value)
	r.settle(key, gen, st)
	return st
}

// Peek returns the current state of key without fetching.
func (r *Resource[T]) Peek(key query.Key) (State[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.states[key]
	return st, ok
}

// Invalidate drops key from memory and from the store so the next fetch
// reloads it. A load already in flight for key is neither joined by later
// fetches nor allowed to settle.
func (r *Resource[T]) Invalidate(ctx context.Context, key query.Key) error {
	r.mu.Lock()
	delete(r.states, key)
	r.gens[key]++
	r.mu.Unlock()

	if r.opts.store != nil {
		return r.opts.store.Delete(ctx, key)
	}
	return nil
}

// Wait blocks until pending store writes have finished.
func (r *Resource[T]) Wait() {
	r.pending.Wait()
}

// markLoading records Loading for key and returns its current generation.
func (r *Resource[T]) markLoading(key query.Key) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.states[key]; !ok || st.IsError() {
		r.states[key] = Loading[T]()
	}
	return r.gens[key]
}

// settle records st unless key was invalidated after the load began.
func (r *Resource[T]) settle(key query.Key, gen uint64, st State[T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gens[key] != gen {
		invalidatedLoads.WithLabelValues(r.kind).Inc()
		return false
	}
	r.states[key] = st
	return true
}

func (r *Resource[T]) current(key query.Key, gen uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.gens[key] == gen
}

func flightKey(key query.Key, gen uint64) string {
	return string(key) + "#" + strconv.FormatUint(gen, 10)
}

func (r *Resource[T]) load(ctx context.Context, key query.Key, gen uint64, load Loader[T]) (T, error) {
	if r.opts.store != nil {
		if v, ok := r.fromStore(ctx, key); ok {
			storeHits.WithLabelValues(r.kind).Inc()
			return v, nil
		}
	}

	loads.WithLabelValues(r.kind).Inc()
	v, err := load(ctx)
	if err != nil {
		loadErrors.WithLabelValues(r.kind).Inc()
		return v, err
	}

	if r.opts.store != nil && r.current(key, gen) {
		r.asyncStoreSet(key, v)
	}

	return v, nil
}

func (r *Resource[T]) fromStore(ctx context.Context, key query.Key) (T, bool) {
	var v T

	data, err := r.opts.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldKey, string(key)).Msg("store get error")
		}
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldKey, string(key)).Msg("store entry undecodable")
		return v, false
	}

	return v, true
}

func (r *Resource[T]) asyncStoreSet(key query.Key, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		l := log.L()
		l.Warn().Err(err).Str(log.FieldKey, string(key)).Msg("store encode error")
		return
	}

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := r.opts.store.Set(ctx, key, data, r.opts.storeTTL); err != nil {
			l := log.L()
			l.Warn().Err(err).Str(log.FieldKey, string(key)).Msg("store set error")
		}
	}()
}
