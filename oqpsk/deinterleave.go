package oqpsk

import "github.com/dvdesolve/mlrpt/consts"

// byteAtOffset assembles one byte by thresholding 8 consecutive soft
// symbols (unsigned, <128 or >=128), LSB first -- a cheap hard-decision
// view of the soft stream used only to hunt for the repeating sync
// byte, never to recover data.
func byteAtOffset(data []byte) byte {
	var result byte
	for idx := 0; idx < 8; idx++ {
		if data[idx] < 128 {
			result |= 1 << uint(idx)
		}
	}
	return result
}

// findSync looks within the first blockSize bytes of data for a byte
// value that repeats identically every step bytes, depth times in a
// row -- the signature of the fixed sync byte recurring every
// InterSyncData symbols in the raw OQPSK stream. It returns the offset
// of the first symbol of the match and the matched byte.
func findSync(data []byte, blockSize, step, depth int) (offset int, sync byte, found bool) {
	limit := blockSize - step*depth
	for idx := 0; idx < limit; idx++ {
		candidate := byteAtOffset(data[idx:])
		ok := true
		for jdx := 1; jdx <= depth; jdx++ {
			if byteAtOffset(data[idx+jdx*step:]) != candidate {
				ok = false
				break
			}
		}
		if ok {
			return idx, candidate, true
		}
	}
	return 0, 0, false
}

// resyncStream strips the sync byte out of raw and concatenates the
// InterDataLen-symbol payloads between consecutive sync bytes,
// re-acquiring sync (scanning ahead SyncBufStep bytes at a time)
// whenever SyncDepth consecutive matches are not found, and tolerating
// brief sync loss on a weak signal by looking up to 128 sync periods
// ahead before giving up on the current lock.
func resyncStream(raw []byte) []byte {
	if len(raw) <= consts.SyncBufMargin {
		return nil
	}
	limit1 := len(raw) - consts.SyncBufMargin
	limit2 := len(raw) - consts.InterSyncData
	out := make([]byte, 0, len(raw))

	pos := 0
	for pos < limit1 {
		blockEnd := pos + consts.SyncBlockSize
		if blockEnd > len(raw) {
			blockEnd = len(raw)
		}
		offset, sync, found := findSync(raw[pos:blockEnd], consts.SyncBlockSize, consts.InterSyncData, consts.SyncDepth)
		if !found {
			pos += consts.SyncBufStep
			continue
		}
		pos += offset

		for pos < limit2 {
			ok := false
			for idx := 0; idx < 128; idx++ {
				temp := pos + idx*consts.InterSyncData
				if temp >= limit2 {
					break
				}
				if byteAtOffset(raw[temp:]) == sync {
					ok = true
					break
				}
			}
			if !ok {
				break
			}

			out = append(out, raw[pos+8:pos+8+consts.InterDataLen]...)
			pos += consts.InterSyncData
		}
	}
	return out
}

// Deinterleave re-synchronizes raw OQPSK soft-symbol bytes and undoes
// the depth-36 convolutional interleave applied at the transmitter,
// returning the recovered symbol stream. It is the exact inverse of
// the transmitter's branch-delay interleave: resync_buf_idx maps back
// to raw_buf_idx = resync_buf_idx + (resync_buf_idx % InterBranches) *
// InterBaseLen.
func Deinterleave(raw []byte) []byte {
	resynced := resyncStream(raw)
	out := make([]byte, len(resynced))
	for i := range resynced {
		src := i + (i%consts.InterBranches)*consts.InterBaseLen
		if src < len(resynced) {
			out[i] = resynced[src]
		}
	}
	return out
}
