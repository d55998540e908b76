package bitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetClearIsSet(t *testing.T) {
	var b uint32
	b = Set(b, 3)
	require.True(t, IsSet(b, 3))
	b = Set(b, 0)
	assert.True(t, IsSet(b, 0))
	b = Clear(b, 3)
	assert.False(t, IsSet(b, 3))
	assert.True(t, IsSet(b, 0))
}

func TestLow(t *testing.T) {
	b := uint32(0b1111_0000)
	assert.Equal(t, uint32(0), Low(b, 4))
	assert.Equal(t, uint32(0b0000), Low(b, 0))
	assert.Equal(t, uint32(0b1_0000), Low(b, 5))
	assert.Equal(t, b, Low(b, 32))
}

func TestPopCount(t *testing.T) {
	assert.Equal(t, 0, PopCount(0))
	assert.Equal(t, 1, PopCount(1))
	assert.Equal(t, 4, PopCount(0b1111))
	assert.Equal(t, 32, PopCount(0xFFFFFFFF))
}
