package rhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrDeterministic(t *testing.T) {
	a := AttrString("hello")
	b := AttrString("hello")
	assert.Equal(t, a, b)
}

func TestAttrDiffers(t *testing.T) {
	assert.NotEqual(t, AttrString("abc"), AttrString("abd"))
}

func TestAttrEmpty(t *testing.T) {
	// must not panic on an empty attribute value
	_ = AttrString("")
}
