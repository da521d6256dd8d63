package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageApplyOffsetAndLimit(t *testing.T) {
	ids := []uint64{1, 2, 3, 4, 5}

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, Page{}.Apply(ids))
	assert.Equal(t, []uint64{3, 4, 5}, Page{Offset: 2}.Apply(ids))
	assert.Equal(t, []uint64{1, 2}, Page{Limit: 2}.Apply(ids))
	assert.Equal(t, []uint64{3, 4}, Page{Offset: 2, Limit: 2}.Apply(ids))
}

func TestPageApplyOffsetPastEndReturnsEmpty(t *testing.T) {
	ids := []uint64{1, 2, 3}
	assert.Equal(t, []uint64{}, Page{Offset: 10}.Apply(ids))
}
