package index

import (
	"sort"
	"sync"

	"github.com/NoahCxrest/quickset/valuetype"
)

// IntIndex backs Int columns with both a hash exact lookup and an
// ordered structure supporting inclusive range queries. The ordered
// structure is a sorted key slice rebuilt incrementally on
// insert/remove rather than a balanced tree.
type IntIndex struct {
	mu      sync.RWMutex
	byKey   map[int64]map[uint64]struct{}
	sortedK []int64
}

// NewIntIndex builds an empty IntIndex.
func NewIntIndex() *IntIndex {
	return &IntIndex{byKey: make(map[int64]map[uint64]struct{})}
}

// Insert implements Index.
func (idx *IntIndex) Insert(id uint64, v valuetype.Value) {
	n, ok := v.Int()
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	set, exists := idx.byKey[n]
	if !exists {
		set = make(map[uint64]struct{})
		idx.byKey[n] = set
		idx.insertKey(n)
	}
	set[id] = struct{}{}
}

// Remove implements Index.
func (idx *IntIndex) Remove(id uint64, v valuetype.Value) {
	n, ok := v.Int()
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	set, exists := idx.byKey[n]
	if !exists {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx.byKey, n)
		idx.removeKey(n)
	}
}

func (idx *IntIndex) insertKey(n int64) {
	pos := sort.Search(len(idx.sortedK), func(i int) bool { return idx.sortedK[i] >= n })
	idx.sortedK = append(idx.sortedK, 0)
	copy(idx.sortedK[pos+1:], idx.sortedK[pos:])
	idx.sortedK[pos] = n
}

func (idx *IntIndex) removeKey(n int64) {
	pos := sort.Search(len(idx.sortedK), func(i int) bool { return idx.sortedK[i] >= n })
	if pos < len(idx.sortedK) && idx.sortedK[pos] == n {
		idx.sortedK = append(idx.sortedK[:pos], idx.sortedK[pos+1:]...)
	}
}

// FindExact returns the ascending-RowId list of rows holding n.
func (idx *IntIndex) FindExact(n int64) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return sortedIDs(idx.byKey[n])
}

// FindRange returns rows whose value v satisfies min <= v <= max,
// ordered ascending by value then ascending RowId within ties.
func (idx *IntIndex) FindRange(min, max int64) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	lo := sort.Search(len(idx.sortedK), func(i int) bool { return idx.sortedK[i] >= min })
	var result []uint64
	for i := lo; i < len(idx.sortedK) && idx.sortedK[i] <= max; i++ {
		result = append(result, sortedIDs(idx.byKey[idx.sortedK[i]])...)
	}
	return result
}
