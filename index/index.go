// Package index implements the per-column auxiliary structures backing
// table search: a hash index for exact match, an ordered index for
// range/prefix, an inverted token index for full text, and a raw scan
// for substring containment. Which kind a column gets is fixed by its
// ColumnType; Table owns exactly one Index per column.
//
// Indexes are addressed by RowId rather than by a separate internal
// slot number. Table's column vectors are append-only and never
// shift (tombstones are retained, slots are never reused), and RowId
// assignment is the same monotonic sequence offset by one from the
// underlying slot — so a slot-based index and a RowId-based index are
// the same structure up to that fixed offset. Using RowId directly
// throughout the index package avoids a redundant translation layer
// while preserving ordering and liveness guarantees.
package index

import "github.com/NoahCxrest/quickset/valuetype"

// Index is the per-column auxiliary structure a Table consults to turn
// a predicate into a set of surviving row ids. Not every Index kind
// supports every predicate family; Table dispatches by ColumnType, and
// an Index that can't answer a given query shape returns an empty
// result rather than an error.
type Index interface {
	// Insert records that row id now holds value v. Null values are
	// never indexed.
	Insert(id uint64, v valuetype.Value)
	// Remove forgets that row id holds value v.
	Remove(id uint64, v valuetype.Value)
}
