package correlator

import (
	"testing"

	"github.com/dvdesolve/mlrpt/viterbi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEncodeFunc() func(byte) (byte, byte) {
	enc := viterbi.NewEncoder()
	return enc.EncodeBit
}

func TestSearchFindsExactPatternAtOrientationZero(t *testing.T) {
	c := New(newEncodeFunc())

	hard := make([]byte, 0, patternBits+40)
	for i := 0; i < 20; i++ {
		hard = append(hard, 0)
	}
	for _, by := range c.patterns[0] {
		for bi := 7; bi >= 0; bi-- {
			hard = append(hard, (by>>uint(bi))&1)
		}
	}
	for i := 0; i < 20; i++ {
		hard = append(hard, 1)
	}

	hit, ok := c.Search(hard)
	require.True(t, ok)
	assert.Equal(t, 0, hit.Orientation)
	assert.Equal(t, patternBits, hit.Matches)
	assert.Equal(t, 20, hit.Position)
}

func TestSearchAcrossEachRotation(t *testing.T) {
	for rot := 0; rot < 4; rot++ {
		k := rot * 2
		c := New(newEncodeFunc())

		hard := make([]byte, 0, patternBits)
		for _, by := range c.patterns[k] {
			for bi := 7; bi >= 0; bi-- {
				hard = append(hard, (by>>uint(bi))&1)
			}
		}

		hit, ok := c.Search(hard)
		require.True(t, ok, "rotation %d should produce a lock", rot)
		assert.Equal(t, k, hit.Orientation)
	}
}

func TestSearchAllZerosNeverLocks(t *testing.T) {
	c := New(newEncodeFunc())
	hard := make([]byte, 4096)
	_, ok := c.Search(hard)
	assert.False(t, ok)
}

func TestDerotateRoundTrip(t *testing.T) {
	c := New(newEncodeFunc())
	orig := []byte{1, 0, 0, 1, 1, 1, 0, 0}

	rotated := make([]byte, len(orig))
	for i := 0; i+1 < len(orig); i += 2 {
		v := orig[i]<<1 | orig[i+1]
		rv := orientFwd[3][v]
		rotated[i] = (rv >> 1) & 1
		rotated[i+1] = rv & 1
	}

	back := Derotate(3, rotated)
	assert.Equal(t, orig, back)
	_ = c
}
