package fulltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardTokenizerFoldsCaseAndSplits(t *testing.T) {
	tok := NewStandardTokenizer()
	assert.Equal(t, []string{"dave", "davidson"}, tok.Tokenize("Dave Davidson"))
	assert.Equal(t, []string{"hello", "world"}, tok.Tokenize("hello, world!"))
}

func TestStandardTokenizerEmptyInput(t *testing.T) {
	tok := NewStandardTokenizer()
	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize("   "))
}
