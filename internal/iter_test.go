package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"b": 2, "c": 3}

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestBitField(t *testing.T) {
	assert := assert.New(t)

	assert.True(Bit(010, 3))
	assert.False(Bit(010, 2))
	assert.Equal(uint32(04), Field(0700406, 6, 6))
	assert.Equal(uint32(06), Field(0700406, 0, 3))
	assert.Equal(uint32(2), Field(0700144, 4, 2))
}
