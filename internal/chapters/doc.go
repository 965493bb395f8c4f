// Package chapters serves chapter text to the owning context without
// blocking it. Misses are fetched on a bounded worker pool and every result
// is handed back through a Dispatcher, so callbacks only ever run on the
// goroutine that owns interactive state.
package chapters
