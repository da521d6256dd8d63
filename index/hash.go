package index

import (
	"math"
	"sort"
	"sync"

	"github.com/NoahCxrest/quickset/valuetype"
)

func sortedIDs(set map[uint64]struct{}) []uint64 {
	if len(set) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// floatKey maps a float to a hashable key using its bit pattern, so
// exact-match comparison is bit-exact rather than IEEE-754 equality.
// NaN is never indexed: it never matches anything, including itself.
func floatKey(f float64) (uint64, bool) {
	if math.IsNaN(f) {
		return 0, false
	}
	return math.Float64bits(f), true
}

// FloatIndex is the hash-by-bit-pattern exact index backing Float
// columns.
type FloatIndex struct {
	mu   sync.RWMutex
	data map[uint64]map[uint64]struct{}
}

// NewFloatIndex builds an empty FloatIndex.
func NewFloatIndex() *FloatIndex {
	return &FloatIndex{data: make(map[uint64]map[uint64]struct{})}
}

// Insert implements Index.
func (idx *FloatIndex) Insert(id uint64, v valuetype.Value) {
	f, ok := v.Float()
	if !ok {
		return
	}
	key, ok := floatKey(f)
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	set := idx.data[key]
	if set == nil {
		set = make(map[uint64]struct{})
		idx.data[key] = set
	}
	set[id] = struct{}{}
}

// Remove implements Index.
func (idx *FloatIndex) Remove(id uint64, v valuetype.Value) {
	f, ok := v.Float()
	if !ok {
		return
	}
	key, ok := floatKey(f)
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	set, ok := idx.data[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx.data, key)
	}
}

// FindExact returns the ascending-RowId list of rows holding f.
func (idx *FloatIndex) FindExact(f float64) []uint64 {
	key, ok := floatKey(f)
	if !ok {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return sortedIDs(idx.data[key])
}

// BytesIndex is the hash exact index backing Bytes columns.
type BytesIndex struct {
	mu   sync.RWMutex
	data map[string]map[uint64]struct{}
}

// NewBytesIndex builds an empty BytesIndex.
func NewBytesIndex() *BytesIndex {
	return &BytesIndex{data: make(map[string]map[uint64]struct{})}
}

// Insert implements Index.
func (idx *BytesIndex) Insert(id uint64, v valuetype.Value) {
	b, ok := v.BytesVal()
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := string(b)
	set := idx.data[key]
	if set == nil {
		set = make(map[uint64]struct{})
		idx.data[key] = set
	}
	set[id] = struct{}{}
}

// Remove implements Index.
func (idx *BytesIndex) Remove(id uint64, v valuetype.Value) {
	b, ok := v.BytesVal()
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := string(b)
	set, ok := idx.data[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx.data, key)
	}
}

// FindExact returns the ascending-RowId list of rows holding b.
func (idx *BytesIndex) FindExact(b []byte) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return sortedIDs(idx.data[string(b)])
}
