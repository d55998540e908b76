package choicevec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExplicitPrefix(t *testing.T) {
	cv, err := Parse("0:0,1:0,2:0,0:1,1:1,2:1,0:2,1:2", 3)
	require.NoError(t, err)
	require.Equal(t, Item{Att: 0, Bit: 0}, cv[0])
	require.Equal(t, Item{Att: 2, Bit: 1}, cv[5])
	require.Equal(t, Item{Att: 0, Bit: 2}, cv[6])
	require.Equal(t, Item{Att: 1, Bit: 2}, cv[7])
}

func TestParseRoundRobinFill(t *testing.T) {
	cv, err := Parse("0:0", 2)
	require.NoError(t, err)
	require.Equal(t, Item{Att: 0, Bit: 0}, cv[0])
	// position 1 -> att 1, bit 0 (fresh counter for attribute 1)
	require.Equal(t, Item{Att: 1, Bit: 0}, cv[1])
	// position 2 -> att 0, bit 1 (bit 0 already consumed explicitly)
	require.Equal(t, Item{Att: 0, Bit: 1}, cv[2])
}

func TestParseEmptyIsAllRoundRobin(t *testing.T) {
	cv, err := Parse("", 2)
	require.NoError(t, err)
	require.Equal(t, Item{Att: 0, Bit: 0}, cv[0])
	require.Equal(t, Item{Att: 1, Bit: 0}, cv[1])
	require.Equal(t, Item{Att: 0, Bit: 1}, cv[2])
	require.Equal(t, Item{Att: 1, Bit: 1}, cv[3])
}

func TestParseRoundTrip(t *testing.T) {
	text := "0:0,1:0,2:0,0:1,1:1,2:1,0:2,1:2"
	cv, err := Parse(text, 3)
	require.NoError(t, err)
	// String emits all MaxChVec positions: the given prefix verbatim, then
	// the round-robin fill (attribute i mod 3, next unused bit of each).
	want := text + ",2:2,0:3,1:3,2:3,0:4,1:4,2:4,0:5,1:5,2:5,0:6,1:6,2:6" +
		",0:7,1:7,2:7,0:8,1:8,2:8,0:9,1:9,2:9,0:10,1:10"
	require.Equal(t, want, cv.String())
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := Parse("x:0", 3)
	require.Error(t, err)
	_, err = Parse("5:0", 3)
	require.Error(t, err)
	_, err = Parse("0:99", 3)
	require.Error(t, err)
}
