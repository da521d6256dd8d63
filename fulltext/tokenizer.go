// Package fulltext provides the tokenizer used by the inverted
// (full-text) string index. The default StandardTokenizer lowercases
// and splits on non-alphanumeric characters. An optional CGO-gated
// gojieba-backed tokenizer (jieba.go) offers CJK-aware segmentation as
// an alternative; cmd/quickset uses it whenever NewJiebaTokenizer
// succeeds.
package fulltext

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var caseFolder = cases.Fold()

// Tokenizer segments text into the token set used for full-text
// indexing and querying. Both sides of a FullText query must use the
// same Tokenizer for the "superset of tokens" contract to hold.
type Tokenizer interface {
	Tokenize(text string) []string
}

// StandardTokenizer case-folds text with Unicode rules, then splits
// on runs of non-alphanumeric characters.
type StandardTokenizer struct{}

// NewStandardTokenizer builds the default tokenizer.
func NewStandardTokenizer() *StandardTokenizer { return &StandardTokenizer{} }

// Tokenize lowercases text and splits it into maximal alphanumeric
// runs, per the Token definition in the glossary.
func (StandardTokenizer) Tokenize(text string) []string {
	folded := caseFolder.String(text)
	return splitAlphanumeric(folded)
}

func splitAlphanumeric(s string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Fold applies the same Unicode case-folding the tokenizer uses, for
// callers (the string index's Contains scan) that need a canonical
// form for case-insensitive, locale-correct comparisons. Exact/Prefix
// matching on String is byte-exact and case-sensitive; Fold is not
// applied to that dispatch.
func Fold(s string) string {
	return caseFolder.String(s)
}
