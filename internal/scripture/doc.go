// Package scripture resolves operator queries into scripture passages.
//
// It holds the canonical book list and its prefix index, the classification of
// raw version names into aliases and priorities, the reference grammar
// ("<book> <chapter>[ <verse>]"), and the Selection state object that the
// owning context threads through chapter loads.
package scripture
