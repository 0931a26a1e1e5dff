// Package consts holds the protocol and pipeline constants fixed by the
// Meteor-M2 LRPT downlink, independent of any single receive session.
package consts

const (
	// CCSDS attached sync marker, transmitted MSB-first.
	ASM uint64 = 0x1ACFFC1D

	// Convolutional code: rate 1/2, constraint length 7, generator
	// polynomials in octal.
	ConvG1           = 0o171
	ConvG2           = 0o133
	ConstraintLength = 7
	// The decoder keeps the full 7-bit shift register as its state (not
	// the usual 6 bits dropping the oldest tap) so each state's two
	// predecessors are a simple shift-and-append; the top (oldest) bit
	// drops out of the next state, while the full 7 bits fix the output
	// symbol of the transition into the state, so this costs memory but
	// no correctness.
	TrellisStates = 1 << ConstraintLength // 128

	// Viterbi traceback depth and frame sizing.
	MinTraceback     = 35
	TracebackLength  = 105
	SoftFrameSymbols = 16384 // soft symbols consumed per Viterbi call
	HardFrameBytes   = 1024 // bytes produced per Viterbi call

	// Reed-Solomon (255,223), CCSDS conventional basis, depth-4 interleave.
	RSBlockLen        = 255
	RSMessageLen      = 223
	RSParityLen       = RSBlockLen - RSMessageLen // 32 parity symbols/codeword
	RSInterleaveDepth = 4
	RSMaxErrors       = RSParityLen / 2 // 16
	SyncFieldBytes = 4
	// HardFrameBytes - SyncFieldBytes == RSInterleaveDepth * RSBlockLen
	// (1020 == 4*255): four interleaved RS(255,223) codewords. Stripping
	// their parity leaves RSInterleaveDepth*RSMessageLen == 892 data bytes,
	// the VCDU.
	VCDULen = RSInterleaveDepth * RSMessageLen // 892

	// Correlator.
	SyncBits           = 64
	SyncMatchThreshold = 55 // out of 64 bits

	// OQPSK convolutional de-interleaver and frame re-sync.
	InterBranches = 36
	InterDelay    = 2048
	InterBaseLen  = InterBranches * InterDelay // 73728
	InterDataLen  = 72                         // interleaved symbols per sync block
	InterSyncData = 80                         // InterDataLen + 8-symbol sync byte

	SyncDepth     = 4                              // repeats of the first sync word (5 in a row) required to declare lock
	SyncBufMargin = SyncDepth * InterSyncData      // 320
	SyncBlockSize = (SyncDepth + 1) * InterSyncData // 400
	SyncBufStep   = (SyncDepth - 1) * InterSyncData // 240

	// De-differential lookup domain: buff[n]*buff[n-1] ranges over
	// [-16384,16384], so the signed-square-root table needs 16385 entries.
	DeDiffTableSize = 16385

	// VCDU / M-PDU.
	VCDUVersion     = 0x1
	MeteorM2SCID    = 0x54
	NoPacketPointer = 2047

	// CP_PDU sequence-flag values (2-bit field, CCSDS order).
	SeqContinuation = 0
	SeqFirst        = 1
	SeqLast         = 2
	SeqStandalone   = 3

	// Meteor-JPEG image geometry.
	MCUSize           = 8
	MCUsPerRow        = 196
	MeteorImageWidth  = MCUsPerRow * MCUSize // 1568
	ChannelImageCount = 3
	MaxWhite          = 255

	// Image post-processing.
	BlackCutOff = 0.01
	WhiteCutOff = 0.01
	MinBlack    = 2

	// CLAHE.
	CLAHEGridSize = 8
	CLAHEBins     = 128

	// Minimum acceptable front-end filter bandwidth, enforced uniformly
	// by config validation rather than left to each call site.
	MinBandwidthHz = 100_000

	// Costas loop.
	CostasDamping      = 0.7
	PLLUnlockedFactor  = 1.03 // pll_unlocked = pll_locked * this

	// Soft symbol range.
	SoftSymbolMin = -128
	SoftSymbolMax = 127
)
