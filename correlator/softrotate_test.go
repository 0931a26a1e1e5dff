package correlator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerotateSoftIdentityOrientation(t *testing.T) {
	soft := []int8{10, -20, 30, -40}
	out := DerotateSoft(0, soft)
	assert.Equal(t, soft, out)
}

func TestDerotateSoftRoundTripsWithForwardRotation(t *testing.T) {
	// Rotating then derotating by the same orientation must return to
	// the original soft values, since DerotateSoft models the inverse
	// of the bit-level forward map baked into orientFwd.
	for k := 0; k < numOrientations; k++ {
		i, q := int8(50), int8(-77)
		rotatedI, rotatedQ := forwardRotateSoft(k, i, q)
		back := DerotateSoft(k, []int8{rotatedI, rotatedQ})
		assert.Equal(t, i, back[0], "orientation %d", k)
		assert.Equal(t, q, back[1], "orientation %d", k)
	}
}

// forwardRotateSoft mirrors orientFwd's bit-level transform in the
// soft domain, for testing DerotateSoft's correctness as its inverse.
func forwardRotateSoft(orientation int, i, q int8) (int8, int8) {
	rot := orientation / 2
	sign := orientation % 2

	var oi, oq int8
	switch rot {
	case 0:
		oi, oq = i, q
	case 1:
		oi, oq = q, -i
	case 2:
		oi, oq = -i, -q
	case 3:
		oi, oq = -q, i
	}
	if sign == 1 {
		oi, oq = -oi, -oq
	}
	return oi, oq
}
