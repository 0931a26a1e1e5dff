package oqpsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSignedSqrtSign(t *testing.T) {
	assert.True(t, signedSqrt(100) >= 0)
	assert.True(t, signedSqrt(-100) <= 0)
	assert.Equal(t, int8(0), signedSqrt(0))
}

func TestDifferentialDecodeShortBufferNoPanic(t *testing.T) {
	d := &Differential{}
	d.Decode(nil)
	d.Decode([]int8{5})
}

func TestDifferentialDecodeDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n") * 2
		buf1 := make([]int8, n)
		buf2 := make([]int8, n)
		for i := range buf1 {
			v := rapid.Int8().Draw(t, "v")
			buf1[i] = v
			buf2[i] = v
		}

		d1 := &Differential{}
		d2 := &Differential{}
		d1.Decode(buf1)
		d2.Decode(buf2)
		require.Equal(t, buf1, buf2)
	})
}

func TestByteAtOffsetThreshold(t *testing.T) {
	data := []byte{0, 200, 0, 200, 0, 200, 0, 200}
	b := byteAtOffset(data)
	assert.Equal(t, byte(0b01010101), b)
}

func TestFindSyncLocatesRepeatingByte(t *testing.T) {
	data := make([]byte, 400)
	for block := 0; block < 5; block++ {
		base := block * 80
		for i := 0; i < 8; i++ {
			if (0b00100111>>uint(i))&1 == 1 {
				data[base+i] = 0
			} else {
				data[base+i] = 255
			}
		}
	}
	offset, sync, found := findSync(data, 400, 80, 4)
	assert.True(t, found)
	assert.Equal(t, 0, offset)
	assert.Equal(t, byte(0b00100111), sync)
}

func TestDeinterleaveEmptyInput(t *testing.T) {
	out := Deinterleave(nil)
	assert.Empty(t, out)
}
