package tuple

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	vals, err := Parse("1,a,x", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "a", "x"}, vals)
	assert.Equal(t, "1,a,x", Serialize(vals))
}

func TestParseArityMismatch(t *testing.T) {
	_, err := Parse("1,a", 3)
	require.ErrorIs(t, err, ErrBadTuple)
}

func TestMatchUnknown(t *testing.T) {
	ok, err := Match([]string{"?", "?", "?"}, []string{"1", "a", "x"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match([]string{"1", "?", "?"}, []string{"1", "a", "x"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match([]string{"2", "?", "?"}, []string{"1", "a", "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchWildcard(t *testing.T) {
	cases := []struct {
		q, v string
		want bool
	}{
		{"ab%", "abc", true},
		{"ab%", "abd", true},
		{"ab%", "xabc", false},
		{"%c", "abc", true},
		{"%c", "abd", false},
		{"ab%d", "abcd", true},
		{"ab%d", "abc", false},
		{"%", "anything", true},
	}
	for _, c := range cases {
		ok, err := Match([]string{c.q, "x", "x"}, []string{c.v, "x", "x"})
		require.NoError(t, err)
		assert.Equalf(t, c.want, ok, "q=%q v=%q", c.q, c.v)
	}
}

func TestMatchLiteral(t *testing.T) {
	ok, err := Match([]string{"1", "a", "x"}, []string{"1", "a", "x"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match([]string{"1", "a", "x"}, []string{"1", "a", "y"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadNext(t *testing.T) {
	r := strings.NewReader("1,a,x\n2,b,y\n")
	sc := bufio.NewScanner(r)

	line, vals, ok, err := ReadNext(sc, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1,a,x", line)
	assert.Equal(t, []string{"1", "a", "x"}, vals)

	_, _, ok, err = ReadNext(sc, 3)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, ok, err = ReadNext(sc, 3)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadNextBadArity(t *testing.T) {
	r := strings.NewReader("1,a\n")
	sc := bufio.NewScanner(r)
	_, _, ok, err := ReadNext(sc, 3)
	require.True(t, ok)
	require.ErrorIs(t, err, ErrBadTuple)
}
