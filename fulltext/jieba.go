//go:build cgo

package fulltext

import (
	"strings"
	"sync"

	"github.com/yanyiwu/gojieba"
)

// JiebaTokenizer segments text with gojieba's CJK-aware word
// segmentation. Segments are case-folded and trimmed but not split any
// further, so punctuation segments are kept as tokens. It requires CGO;
// see jieba_stub.go for the !cgo build.
type JiebaTokenizer struct {
	mu  sync.Mutex
	seg *gojieba.Jieba
}

// NewJiebaTokenizer builds a tokenizer backed by gojieba's default
// dictionary.
func NewJiebaTokenizer() (*JiebaTokenizer, error) {
	return &JiebaTokenizer{seg: gojieba.NewJieba()}, nil
}

// Tokenize cuts text into words via gojieba's precise mode, then
// lowercases and drops empty/whitespace-only segments.
func (t *JiebaTokenizer) Tokenize(text string) []string {
	t.mu.Lock()
	words := t.seg.Cut(text, true)
	t.mu.Unlock()

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		folded := strings.TrimSpace(caseFolder.String(w))
		if folded == "" {
			continue
		}
		tokens = append(tokens, folded)
	}
	return tokens
}

// Close releases the underlying gojieba segmenter's native resources.
func (t *JiebaTokenizer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seg != nil {
		t.seg.Free()
		t.seg = nil
	}
}
