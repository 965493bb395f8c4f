package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanChapterGetOrLoad = "chapter.get_or_load"
	SpanChapterFetch     = "chapter.fetch"
	SpanScriptureImport  = "scripture.import"
)

// Span attribute keys.
const (
	AttrJobID      = "job.id"
	AttrVersionID  = "scripture.version_id"
	AttrBook       = "scripture.book"
	AttrChapter    = "scripture.chapter"
	AttrCacheHit   = "cache.hit"
	AttrVerseCount = "scripture.verse_count"
	AttrVersion    = "scripture.version"
	AttrBookCount  = "scripture.book_count"

	AttrErrorMessage = "error.message"
)

// Event names.
const (
	EventJobQueued   = "job.queued"
	EventJobRejected = "job.rejected"
	EventCacheStored = "cache.stored"
)

// RecordError marks span as failed with err.
func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
}
