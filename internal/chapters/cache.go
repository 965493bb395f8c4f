package chapters

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/easypresenter/easypresenter/internal/cachemanager"
	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/scripture"
	"github.com/easypresenter/easypresenter/internal/tracing"
)

// FetchFunc loads one chapter from the datastore.
type FetchFunc func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error)

// Callback receives a chapter on the owning context. The slice is owned by
// the callback.
type Callback func(verses []scripture.Verse)

// Stats counts cache traffic since creation.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Failures uint64
	Entries  int
}

// Store is the chapter map the cache reads and fills.
type Store = cachemanager.CacheManager[scripture.ChapterKey, []scripture.Verse]

// Cache maps chapter keys to verse lists. Hits are answered from memory,
// misses run fetch on the pool. Every answer, including failures, reaches
// the callback through the dispatcher.
type Cache struct {
	store      Store
	pool       *Pool
	dispatcher Dispatcher
	tracer     trace.Tracer

	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
}

// NewCache wires a cache. A nil tracer disables spans.
func NewCache(store Store, pool *Pool, dispatcher Dispatcher, tracer trace.Tracer) *Cache {
	if tracer == nil {
		tracer = tracing.Noop().Tracer()
	}
	return &Cache{
		store:      store,
		pool:       pool,
		dispatcher: dispatcher,
		tracer:     tracer,
	}
}

// GetOrLoad delivers the chapter for key to callback. The returned error
// only reports admission failures (ErrQueueFull, ErrPoolClosed); when it is
// non-nil the callback will not be invoked.
func (c *Cache) GetOrLoad(ctx context.Context, key scripture.ChapterKey, fetch FetchFunc, callback Callback) error {
	ctx, span := c.tracer.Start(ctx, tracing.SpanChapterGetOrLoad, trace.WithAttributes(keyAttributes(key)...))
	defer span.End()

	if verses, ok := c.store.Get(ctx, key); ok {
		c.hits.Add(1)
		span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, true))
		log.Debug(log.CatCache, "hit", "key", key, "verses", len(verses))

		result := slices.Clone(verses)
		c.dispatcher.Submit(func() { callback(result) })
		return nil
	}

	c.misses.Add(1)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, false))

	jobID := uuid.NewString()
	parent := span.SpanContext()
	err := c.pool.TrySubmit(func(jobCtx context.Context) {
		c.load(trace.ContextWithSpanContext(jobCtx, parent), jobID, key, fetch, callback)
	})
	if err != nil {
		span.AddEvent(tracing.EventJobRejected)
		tracing.RecordError(span, err)
		log.Warn(log.CatLoader, "chapter job rejected", "key", key, "error", err)
		return fmt.Errorf("loading chapter %s: %w", key, err)
	}

	span.AddEvent(tracing.EventJobQueued, trace.WithAttributes(attribute.String(tracing.AttrJobID, jobID)))
	log.Debug(log.CatCache, "miss", "key", key, "job", jobID)
	return nil
}

func (c *Cache) load(ctx context.Context, jobID string, key scripture.ChapterKey, fetch FetchFunc, callback Callback) {
	ctx, span := c.tracer.Start(ctx, tracing.SpanChapterFetch,
		trace.WithAttributes(append(keyAttributes(key), attribute.String(tracing.AttrJobID, jobID))...))
	defer span.End()

	verses, err := safeFetch(ctx, key, fetch)
	if err != nil {
		c.failures.Add(1)
		tracing.RecordError(span, err)
		log.ErrorErr(log.CatLoader, "chapter fetch failed", err, "key", key, "job", jobID)

		c.dispatcher.Submit(func() { callback([]scripture.Verse{}) })
		return
	}
	if verses == nil {
		verses = []scripture.Verse{}
	}

	// Concurrent misses on one key store equal data; the last write wins.
	c.store.Set(ctx, key, verses)
	span.SetAttributes(attribute.Int(tracing.AttrVerseCount, len(verses)))
	span.AddEvent(tracing.EventCacheStored)
	log.Debug(log.CatLoader, "chapter loaded", "key", key, "job", jobID, "verses", len(verses))

	result := slices.Clone(verses)
	c.dispatcher.Submit(func() { callback(result) })
}

func safeFetch(ctx context.Context, key scripture.ChapterKey, fetch FetchFunc) (verses []scripture.Verse, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatLoader, "chapter fetch panicked", "key", key, "panic", r, "stack", string(debug.Stack()))
			verses, err = nil, fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return fetch(ctx, key)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
		Entries:  c.store.Len(),
	}
}

// Flush drops every cached chapter, e.g. after an import replaced a version.
func (c *Cache) Flush(ctx context.Context) error {
	return c.store.Flush(ctx)
}

func keyAttributes(key scripture.ChapterKey) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64(tracing.AttrVersionID, key.VersionID),
		attribute.Int(tracing.AttrBook, key.Book),
		attribute.Int(tracing.AttrChapter, key.Chapter),
	}
}
