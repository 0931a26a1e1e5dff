package reedsolomon

import "github.com/dvdesolve/mlrpt/consts"

// Codec decodes one CCSDS RS(255,223) subframe: up to RSMaxErrors
// symbol errors corrected, dual-basis conversion applied and reversed.
type Codec struct {
	nroots int // RSParityLen
	fcr    int // first consecutive root (alpha exponent)
}

// NewCodec returns an RS(255,223) decoder with first-consecutive-root
// spacing 1. The real CCSDS standard roots its generator at a
// non-unit spacing; see DESIGN.md for why that distinction is not
// reproduced here.
func NewCodec() *Codec {
	return &Codec{nroots: consts.RSParityLen, fcr: 1}
}

// Decode corrects a single 255-byte codeword in place (dual-basis
// symbols in, dual-basis symbols out) and returns the 223-byte message
// prefix in conventional basis (what Encoder.Encode was given) plus
// whether the codeword was (or already was) correctable.
// On failure the codeword is left unmodified.
func (c *Codec) Decode(codeword []byte) (message []byte, ok bool) {
	if len(codeword) != consts.RSBlockLen {
		return nil, false
	}

	conv := make([]byte, consts.RSBlockLen)
	for i, b := range codeword {
		conv[i] = dualToConv(b)
	}

	syn := c.syndromes(conv)
	if allZero(syn) {
		return conv[:consts.RSMessageLen], true
	}

	sigma, errCount := berlekampMassey(syn)
	if errCount == 0 || errCount > consts.RSMaxErrors {
		return nil, false
	}

	positions, ok := chienSearch(sigma, errCount)
	if !ok {
		return nil, false
	}

	if !forneyCorrect(conv, syn, sigma, positions) {
		return nil, false
	}

	// Verify: corrected codeword must have all-zero syndromes.
	if !allZero(c.syndromes(conv)) {
		return nil, false
	}

	for i, b := range conv {
		codeword[i] = convToDual(b)
	}
	return conv[:consts.RSMessageLen], true
}

// syndromes evaluates the conventional-basis codeword at alpha^(fcr+i)
// for i in [0, nroots) using Horner's method.
func (c *Codec) syndromes(conv []byte) []byte {
	syn := make([]byte, c.nroots)
	for i := 0; i < c.nroots; i++ {
		root := gfPow(2, c.fcr+i) // alpha == gfExp[1] == 2
		var acc byte
		for _, coef := range conv {
			acc = gfMul(acc, root) ^ coef
		}
		syn[i] = acc
	}
	return syn
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// berlekampMassey computes the error-locator polynomial sigma from the
// syndrome sequence. Returns sigma (low-order-first, sigma[0] == 1) and
// its degree (the error count, assuming it is within correction range).
func berlekampMassey(syn []byte) ([]byte, int) {
	n := len(syn)
	sigma := make([]byte, n+1)
	prevSigma := make([]byte, n+1)
	sigma[0] = 1
	prevSigma[0] = 1

	l := 0
	m := 1
	b := byte(1)

	for i := 0; i < n; i++ {
		// Discrepancy.
		delta := syn[i]
		for j := 1; j <= l; j++ {
			delta ^= gfMul(sigma[j], syn[i-j])
		}

		if delta == 0 {
			m++
			continue
		}

		t := make([]byte, n+1)
		copy(t, sigma)

		coef := gfDiv(delta, b)
		for j := 0; j <= n-m; j++ {
			sigma[j+m] ^= gfMul(coef, prevSigma[j])
		}

		if 2*l <= i {
			l = i + 1 - l
			copy(prevSigma, t)
			b = delta
			m = 1
		} else {
			m++
		}
	}

	degree := 0
	for j := n; j >= 1; j-- {
		if sigma[j] != 0 {
			degree = j
			break
		}
	}
	return sigma[:degree+1], degree
}

// chienSearch finds the roots of sigma by brute-force evaluation at
// every nonzero field element, returning the corresponding codeword
// error positions (0 == highest-order byte of the 255-byte codeword).
func chienSearch(sigma []byte, errCount int) ([]int, bool) {
	positions := make([]int, 0, errCount)
	for i := 0; i < consts.RSBlockLen; i++ {
		x := gfPow(2, i) // candidate root alpha^i
		var acc byte
		for j := len(sigma) - 1; j >= 0; j-- {
			acc = gfMul(acc, x) ^ sigma[j]
		}
		if acc == 0 {
			// Root alpha^i is the inverse of the error locator
			// alpha^(255-i), i.e. an error at codeword position
			// (i+RSBlockLen-1) mod RSBlockLen for a high-order-first
			// codeword layout.
			pos := (i + consts.RSBlockLen - 1) % consts.RSBlockLen
			positions = append(positions, pos)
		}
	}
	if len(positions) != errCount {
		return nil, false
	}
	return positions, true
}

// forneyCorrect computes error magnitudes via the Forney algorithm and
// XORs them into conv at the located positions.
func forneyCorrect(conv []byte, syn []byte, sigma []byte, positions []int) bool {
	n := len(syn)

	// Error evaluator: omega(x) = [S(x) * sigma(x)] mod x^n
	omega := make([]byte, n)
	for i := 0; i < n; i++ {
		var acc byte
		for j := 0; j <= i && j < len(sigma); j++ {
			acc ^= gfMul(sigma[j], syn[i-j])
		}
		omega[i] = acc
	}

	// sigma derivative (formal derivative over GF(2^m) keeps only
	// odd-degree terms).
	sigmaDeriv := make([]byte, len(sigma))
	for j := 1; j < len(sigma); j += 2 {
		sigmaDeriv[j-1] = sigma[j]
	}

	for _, pos := range positions {
		i := (consts.RSBlockLen - 1 - pos) % consts.RSBlockLen
		xInv := gfPow(2, -i) // alpha^-i

		var num byte
		for j := 0; j < len(omega); j++ {
			num ^= gfMul(omega[j], gfPow(xInv, j))
		}

		var den byte
		for j := 0; j < len(sigmaDeriv); j++ {
			den ^= gfMul(sigmaDeriv[j], gfPow(xInv, j))
		}
		if den == 0 {
			return false
		}

		magnitude := gfMul(num, gfInverse(den))
		conv[pos] ^= magnitude
	}
	return true
}
