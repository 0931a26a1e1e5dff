// Package vcdu parses CCSDS Virtual Channel Data Units into completed
// CP_PDUs (CCSDS source packets), reassembling packets that span
// multiple VCDUs on the same virtual channel.
package vcdu

import (
	"errors"

	"github.com/dvdesolve/mlrpt/consts"
)

var (
	ErrBadHeader = errors.New("vcdu: unexpected version or spacecraft id")
	ErrFrameSize = errors.New("vcdu: unexpected frame length")
)

// PrimaryHeader is the fixed 6-byte VCDU header.
type PrimaryHeader struct {
	Version      byte
	SpacecraftID byte
	VCID         byte
	Counter      uint32
	ReplayFlag   bool
}

func parsePrimaryHeader(b []byte) PrimaryHeader {
	return PrimaryHeader{
		Version:      b[0] >> 6,
		SpacecraftID: (b[0]&0x3F)<<2 | b[1]>>6,
		VCID:         b[1] & 0x3F,
		Counter:      uint32(b[2])<<16 | uint32(b[3])<<8 | uint32(b[4]),
		ReplayFlag:   b[5]&0x80 != 0,
	}
}

// firstHeaderPointer reads the 11-bit M-PDU first-header pointer;
// NoPacketPointer means the packet zone is entirely continuation data.
func firstHeaderPointer(b []byte) uint16 {
	return (uint16(b[0])<<8 | uint16(b[1])) & 0x07FF
}

// CPPDUHeader is one CCSDS source-packet primary header.
type CPPDUHeader struct {
	Version             byte
	Type                byte
	SecondaryHeaderFlag bool
	APID                uint16
	SequenceFlag        byte
	SequenceCount       uint16
	PacketLength        uint16 // CCSDS-encoded: body length minus one
}

// DataLength is the number of body bytes following this header.
func (h CPPDUHeader) DataLength() int { return int(h.PacketLength) + 1 }

func parseCPPDUHeader(b []byte) CPPDUHeader {
	return CPPDUHeader{
		Version:             b[0] >> 5,
		Type:                (b[0] >> 4) & 1,
		SecondaryHeaderFlag: (b[0]>>3)&1 != 0,
		APID:                uint16(b[0]&0x07)<<8 | uint16(b[1]),
		SequenceFlag:        b[2] >> 6,
		SequenceCount:       uint16(b[2]&0x3F)<<8 | uint16(b[3]),
		PacketLength:        uint16(b[4])<<8 | uint16(b[5]),
	}
}

// CompletedPacket is one fully reassembled CP_PDU, header stripped.
type CompletedPacket struct {
	APID uint16
	Data []byte
}

type reassemblyStage int

const (
	awaitingStart reassemblyStage = iota
	inProgress
	completed
)

// vcState is the per-APID reassembly buffer: awaiting_start until a
// packet header is seen, in_progress while accumulating body bytes
// across VCDU boundaries, completed once the declared packet length is
// reached. One VCID can multiplex several APIDs, so state lives per
// APID, not per VCID - otherwise a second APID's header arriving while
// the first APID's packet is still in progress would clobber it.
type vcState struct {
	stage   reassemblyStage
	apid    uint16
	seq     uint16
	haveSeq bool
	buf     []byte
	wantLen int
}

func (s *vcState) reset() {
	s.stage = awaitingStart
	s.buf = nil
	s.wantLen = 0
}

func (s *vcState) startPacket(h CPPDUHeader) {
	s.apid = h.APID
	s.buf = make([]byte, 0, h.DataLength())
	s.wantLen = h.DataLength()
	s.stage = inProgress
	s.seq = h.SequenceCount
	s.haveSeq = true
}

// append adds continuation bytes to the in-progress packet, marking it
// completed once wantLen bytes have accumulated.
func (s *vcState) append(data []byte) {
	if s.stage != inProgress {
		return
	}
	need := s.wantLen - len(s.buf)
	if need <= 0 {
		return
	}
	if len(data) > need {
		data = data[:need]
	}
	s.buf = append(s.buf, data...)
	if len(s.buf) >= s.wantLen {
		s.stage = completed
	}
}

// checkSequence reports whether seq/flag continues this state's
// in-progress packet without a gap. A first or standalone flag always
// starts a fresh packet, so it never counts as a gap.
func (s *vcState) checkSequence(seq uint16, flag byte) bool {
	if flag == consts.SeqFirst || flag == consts.SeqStandalone {
		return true
	}
	if !s.haveSeq {
		return false
	}
	want := (s.seq + 1) & 0x3FFF
	return seq == want
}

// Parser reassembles CP_PDUs from a stream of VCDUs, tracking one
// reassembly state per APID and, per VCID, which APID's packet is
// currently accumulating continuation bytes on that virtual channel.
type Parser struct {
	validVCIDs map[byte]bool
	states     map[uint16]*vcState
	current    map[byte]*vcState

	// Gaps counts sequence breaks that forced an in-progress packet to
	// be discarded (a dropped image fragment), across every APID.
	Gaps int
}

// NewParser accepts VCDUs only on the given VCIDs; frames on any other
// VCID are skipped without error. Per-APID reassembly state is created
// lazily, the first time that APID's header is seen.
func NewParser(vcids []byte) *Parser {
	p := &Parser{
		validVCIDs: make(map[byte]bool, len(vcids)),
		states:     make(map[uint16]*vcState),
		current:    make(map[byte]*vcState, len(vcids)),
	}
	for _, v := range vcids {
		p.validVCIDs[v] = true
	}
	return p
}

func (p *Parser) stateFor(apid uint16) *vcState {
	st, ok := p.states[apid]
	if !ok {
		st = &vcState{apid: apid}
		p.states[apid] = st
	}
	return st
}

// ProcessVCDU parses one VCDULen-byte VCDU and returns any CP_PDUs
// that completed as a result, in the order their last byte arrived.
// A non-zero Gaps delta (see the Gaps field) signals that a sequence
// break forced an in-progress packet - and the image data it carried -
// to be dropped.
func (p *Parser) ProcessVCDU(frame []byte) ([]CompletedPacket, error) {
	if len(frame) != consts.VCDULen {
		return nil, ErrFrameSize
	}

	hdr := parsePrimaryHeader(frame[:6])
	if hdr.Version != consts.VCDUVersion || hdr.SpacecraftID != consts.MeteorM2SCID {
		return nil, ErrBadHeader
	}
	if !p.validVCIDs[hdr.VCID] {
		return nil, nil
	}

	fhp := firstHeaderPointer(frame[6:8])
	zone := frame[8:]

	var out []CompletedPacket
	emit := func(st *vcState) {
		if st.stage == completed {
			out = append(out, CompletedPacket{APID: st.apid, Data: st.buf})
			st.reset()
		}
	}

	if fhp == consts.NoPacketPointer {
		if st := p.current[hdr.VCID]; st != nil {
			st.append(zone)
			emit(st)
		}
		return out, nil
	}

	if int(fhp) > len(zone) {
		fhp = uint16(len(zone))
	}
	if fhp > 0 {
		if st := p.current[hdr.VCID]; st != nil {
			st.append(zone[:fhp])
			emit(st)
		}
	}

	pos := int(fhp)
	for pos+6 <= len(zone) {
		h := parseCPPDUHeader(zone[pos : pos+6])
		pos += 6

		st := p.stateFor(h.APID)
		// A header arriving while the previous packet on this APID is
		// still in_progress means it was truncated before reaching its
		// declared length - abandoned data, counted as a gap regardless
		// of this header's own sequence flag. Otherwise fall back to the
		// sequence-count continuity check.
		if st.stage == inProgress || !st.checkSequence(h.SequenceCount, h.SequenceFlag) {
			p.Gaps++
		}
		st.startPacket(h)
		p.current[hdr.VCID] = st

		remaining := zone[pos:]
		take := st.wantLen
		if take > len(remaining) {
			take = len(remaining)
		}
		st.append(remaining[:take])
		pos += take

		if st.stage != completed {
			break
		}
		emit(st)
	}
	return out, nil
}
