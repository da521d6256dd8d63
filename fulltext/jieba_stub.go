//go:build !cgo

package fulltext

import "fmt"

// JiebaTokenizer is unavailable without CGO; gojieba wraps a C++
// library. Build with CGO_ENABLED=1 to get the real implementation in
// jieba.go.
type JiebaTokenizer struct{}

// NewJiebaTokenizer always returns an error in a non-CGO build.
func NewJiebaTokenizer() (*JiebaTokenizer, error) {
	return nil, fmt.Errorf("jieba tokenizer requires CGO; build with CGO_ENABLED=1")
}

// Tokenize is never called; NewJiebaTokenizer fails first.
func (*JiebaTokenizer) Tokenize(text string) []string { return nil }
