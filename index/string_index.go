package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/NoahCxrest/quickset/fulltext"
	"github.com/NoahCxrest/quickset/valuetype"
)

// StringIndex backs String columns with all four capabilities the
// column type demands: a hash exact index, a lexicographically ordered index
// for prefix queries, an inverted token index for full-text queries,
// and a raw linear scan for substring containment.
type StringIndex struct {
	mu sync.RWMutex

	byKey   map[string]map[uint64]struct{}
	sortedK []string

	tokenizer fulltext.Tokenizer
	postings  map[string]map[uint64]struct{}

	live map[uint64]string // for Contains' linear scan
}

// NewStringIndex builds an empty StringIndex using the given
// tokenizer for full-text indexing (nil selects the standard
// alphanumeric tokenizer).
func NewStringIndex(tokenizer fulltext.Tokenizer) *StringIndex {
	if tokenizer == nil {
		tokenizer = fulltext.NewStandardTokenizer()
	}
	return &StringIndex{
		byKey:     make(map[string]map[uint64]struct{}),
		tokenizer: tokenizer,
		postings:  make(map[string]map[uint64]struct{}),
		live:      make(map[uint64]string),
	}
}

// Insert implements Index.
func (idx *StringIndex) Insert(id uint64, v valuetype.Value) {
	s, ok := v.Str()
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	set, exists := idx.byKey[s]
	if !exists {
		set = make(map[uint64]struct{})
		idx.byKey[s] = set
		idx.insertKey(s)
	}
	set[id] = struct{}{}

	for _, tok := range idx.tokenizer.Tokenize(s) {
		tset := idx.postings[tok]
		if tset == nil {
			tset = make(map[uint64]struct{})
			idx.postings[tok] = tset
		}
		tset[id] = struct{}{}
	}

	idx.live[id] = s
}

// Remove implements Index.
func (idx *StringIndex) Remove(id uint64, v valuetype.Value) {
	s, ok := v.Str()
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if set, exists := idx.byKey[s]; exists {
		delete(set, id)
		if len(set) == 0 {
			delete(idx.byKey, s)
			idx.removeKey(s)
		}
	}

	for _, tok := range idx.tokenizer.Tokenize(s) {
		if tset, exists := idx.postings[tok]; exists {
			delete(tset, id)
			if len(tset) == 0 {
				delete(idx.postings, tok)
			}
		}
	}

	delete(idx.live, id)
}

func (idx *StringIndex) insertKey(s string) {
	pos := sort.Search(len(idx.sortedK), func(i int) bool { return idx.sortedK[i] >= s })
	idx.sortedK = append(idx.sortedK, "")
	copy(idx.sortedK[pos+1:], idx.sortedK[pos:])
	idx.sortedK[pos] = s
}

func (idx *StringIndex) removeKey(s string) {
	pos := sort.Search(len(idx.sortedK), func(i int) bool { return idx.sortedK[i] >= s })
	if pos < len(idx.sortedK) && idx.sortedK[pos] == s {
		idx.sortedK = append(idx.sortedK[:pos], idx.sortedK[pos+1:]...)
	}
}

// FindExact returns the ascending-RowId list of rows holding s.
func (idx *StringIndex) FindExact(s string) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return sortedIDs(idx.byKey[s])
}

// FindPrefix returns rows whose value starts with prefix, ordered
// ascending lexicographically by value then ascending RowId within
// ties.
func (idx *StringIndex) FindPrefix(prefix string) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	lo := sort.Search(len(idx.sortedK), func(i int) bool { return idx.sortedK[i] >= prefix })
	var result []uint64
	for i := lo; i < len(idx.sortedK) && strings.HasPrefix(idx.sortedK[i], prefix); i++ {
		result = append(result, sortedIDs(idx.byKey[idx.sortedK[i]])...)
	}
	return result
}

// FindFullText tokenizes query with the same tokenizer used at index
// time and returns rows whose token set is a superset of the query's
// tokens (set intersection across per-token posting lists), ordered
// ascending by RowId.
func (idx *StringIndex) FindFullText(query string) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokens := idx.tokenizer.Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	result := make(map[uint64]struct{})
	for id := range idx.postings[tokens[0]] {
		result[id] = struct{}{}
	}
	for _, tok := range tokens[1:] {
		if len(result) == 0 {
			break
		}
		next := idx.postings[tok]
		for id := range result {
			if _, ok := next[id]; !ok {
				delete(result, id)
			}
		}
	}
	return sortedIDs(result)
}

// FindContains performs a Unicode case-folded linear scan of live
// string values for substring q, ordered ascending by RowId.
func (idx *StringIndex) FindContains(q string) []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	needle := fulltext.Fold(q)
	var matches []uint64
	for id, s := range idx.live {
		if strings.Contains(fulltext.Fold(s), needle) {
			matches = append(matches, id)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches
}
