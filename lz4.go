package usdmesh

import "encoding/binary"

// LZ4 block compression. This is not a generic LZ4 encoder: it implements
// one fixed, deterministic match-finder (a 4096-entry hash table, no
// chaining) so that identical input always produces identical output — the
// property the Crate writer's byte-exact tests depend on. No library in
// the retrieved example pack reproduces this specific match finder, so it
// is hand-written rather than borrowed (see DESIGN.md).
const (
	lz4HashBits  = 12
	lz4HashSize  = 1 << lz4HashBits
	lz4MinMatch  = 4
	lz4MaxOffset = 65535
	lz4MFLimit   = 12
	lz4MaxBlockInputSize = 0x7E000000
)

func lz4Hash(v uint32) uint32 {
	return (v * 2654435761) & (lz4HashSize - 1)
}

func readU32LE(b []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(b[i:])
}

// lz4CompressBlock compresses src as a single LZ4 block (no frame header)
// and returns the compressed bytes.
func lz4CompressBlock(src []byte) ([]byte, error) {
	if len(src) > lz4MaxBlockInputSize {
		return nil, fatalf(ErrInputTooLarge, "lz4 input %d exceeds max block size %d", len(src), lz4MaxBlockInputSize)
	}

	out := newByteSinkCap(len(src) + len(src)/255 + 16)

	if len(src) == 0 {
		return out.bytes(), nil
	}

	hashTable := make([]int32, lz4HashSize)
	for i := range hashTable {
		hashTable[i] = -1
	}

	n := len(src)
	anchor := 0
	i := 0
	limit := n - lz4MFLimit

	for i < limit {
		h := lz4Hash(readU32LE(src, i))
		ref := int(hashTable[h])
		hashTable[h] = int32(i)

		if ref < 0 || i-ref > lz4MaxOffset || readU32LE(src, ref) != readU32LE(src, i) {
			i++
			continue
		}

		// Found a match at i against ref. Extend backward is not needed
		// since we always match forward from the current anchor.
		litLen := i - anchor
		matchStart := i
		matchOff := i - ref

		i += lz4MinMatch
		ref += lz4MinMatch
		for i < n && src[i] == src[ref] {
			i++
			ref++
		}
		matchLen := i - matchStart - lz4MinMatch

		writeLZ4Sequence(out, src[anchor:matchStart], litLen, matchOff, matchLen)
		anchor = i
	}

	// Trailing literal: everything from anchor to end, matchLen = 0.
	litLen := n - anchor
	writeLZ4LastLiteral(out, src[anchor:], litLen)

	return out.bytes(), nil
}

// writeLZ4Sequence emits one token + literals + offset + match-length
// continuation, following the LZ4 block sequence encoding.
func writeLZ4Sequence(out *byteSink, literals []byte, litLen, matchOff, matchLen int) {
	var tokLit, tokMat int
	if litLen > 15 {
		tokLit = 15
	} else {
		tokLit = litLen
	}
	if matchLen > 15 {
		tokMat = 15
	} else {
		tokMat = matchLen
	}
	out.writeU8(byte(tokLit<<4 | tokMat))

	if litLen >= 15 {
		writeLZ4Overflow(out, litLen-15)
	}
	out.writeBytes(literals)

	out.writeU8(byte(matchOff))
	out.writeU8(byte(matchOff >> 8))

	if matchLen >= 15 {
		writeLZ4Overflow(out, matchLen-15)
	}
}

// writeLZ4LastLiteral emits the final trailing-literal sequence with zero
// match length (no offset field at all — there is no match).
func writeLZ4LastLiteral(out *byteSink, literals []byte, litLen int) {
	var tokLit int
	if litLen > 15 {
		tokLit = 15
	} else {
		tokLit = litLen
	}
	out.writeU8(byte(tokLit << 4))
	if litLen >= 15 {
		writeLZ4Overflow(out, litLen-15)
	}
	out.writeBytes(literals)
}

func writeLZ4Overflow(out *byteSink, remaining int) {
	for remaining >= 255 {
		out.writeU8(255)
		remaining -= 255
	}
	out.writeU8(byte(remaining))
}

// lz4DecompressBlock reverses lz4CompressBlock's output; used only by tests
// to verify the round-trip is self-consistent.
func lz4DecompressBlock(src []byte, dstLen int) ([]byte, error) {
	dst := make([]byte, 0, dstLen)
	i := 0
	for i < len(src) {
		token := src[i]
		i++
		litLen := int(token >> 4)
		if litLen == 15 {
			for {
				b := src[i]
				i++
				litLen += int(b)
				if b != 255 {
					break
				}
			}
		}
		dst = append(dst, src[i:i+litLen]...)
		i += litLen

		if i >= len(src) {
			break
		}

		matchLen := int(token & 0x0F)
		offset := int(src[i]) | int(src[i+1])<<8
		i += 2
		if matchLen == 15 {
			for {
				b := src[i]
				i++
				matchLen += int(b)
				if b != 255 {
					break
				}
			}
		}
		matchLen += lz4MinMatch

		start := len(dst) - offset
		for k := 0; k < matchLen; k++ {
			dst = append(dst, dst[start+k])
		}
	}
	return dst, nil
}
