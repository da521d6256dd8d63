// Package predicate defines the tagged search predicate passed to a
// table's search dispatcher.
package predicate

import "github.com/NoahCxrest/quickset/valuetype"

// Kind tags which variant a Predicate carries.
type Kind uint8

const (
	Exact Kind = iota
	Prefix
	FullText
	Range
	Contains
)

// Predicate is the tagged variant {Exact, Prefix, FullText, Range,
// Contains}. Only the fields relevant to Kind are meaningful.
type Predicate struct {
	Kind  Kind
	Value valuetype.Value // Exact
	Text  string          // Prefix / FullText / Contains
	Min   int64           // Range
	Max   int64           // Range
}

// NewExact builds an Exact predicate.
func NewExact(v valuetype.Value) Predicate { return Predicate{Kind: Exact, Value: v} }

// NewPrefix builds a Prefix predicate.
func NewPrefix(p string) Predicate { return Predicate{Kind: Prefix, Text: p} }

// NewFullText builds a FullText predicate.
func NewFullText(q string) Predicate { return Predicate{Kind: FullText, Text: q} }

// NewContains builds a Contains predicate.
func NewContains(q string) Predicate { return Predicate{Kind: Contains, Text: q} }

// NewRange builds a Range predicate over [min, max] inclusive. Omitted
// bounds on the wire default to the smallest/largest int64.
func NewRange(min, max int64) Predicate { return Predicate{Kind: Range, Min: min, Max: max} }

// Page bundles the offset/limit pagination applied by the caller to a
// search's result list, as a single typed carrier so HTTP-facing code
// doesn't reimplement it per endpoint.
type Page struct {
	Offset int
	Limit  int // 0 means "no limit"
}

// Apply drops the first Offset ids and truncates to the next Limit,
// returning an empty slice (never nil-past-bounds) when Offset exceeds
// the list length.
func (p Page) Apply(ids []uint64) []uint64 {
	if p.Offset > 0 {
		if p.Offset >= len(ids) {
			return []uint64{}
		}
		ids = ids[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(ids) {
		ids = ids[:p.Limit]
	}
	return ids
}
