package usdmesh

// USDZ ZIP container: a single STORED (uncompressed) entry named
// "tmp.usdc", padded with a local-header extra field so the payload starts
// on a 64-byte boundary. Hand-written rather than built on archive/zip: the
// stdlib writer computes its own CRC-32 and doesn't expose the exact
// "extra field sized to land the payload on a 64-byte boundary, zero
// CRC/date-time" contract this format requires (see DESIGN.md).
const usdzEntryName = "tmp.usdc"

// usdzExtraPadding returns the extra-field padding length needed so the
// local-header payload for a file named name starts on a 64-byte boundary:
// extraSize = (64 − ((34 + nameLen) mod 64)) mod 64, i.e. 0 when the payload
// would already be aligned.
func usdzExtraPadding(nameLen int) int {
	return (usdzAlignment - ((34 + nameLen) % usdzAlignment)) % usdzAlignment
}

// buildUSDZ wraps payload (the Crate file bytes) in a one-entry STORED ZIP
// archive. Returns an error only if internal alignment arithmetic produces
// an inconsistent offset (should not happen).
func buildUSDZ(payload []byte) ([]byte, error) {
	name := []byte(usdzEntryName)
	nameLen := len(name)
	extraSize := usdzExtraPadding(nameLen)
	extraLen := extraSize + 4

	out := newByteSink()

	localHeaderOffset := out.tell()

	out.writeU32(zipLocalFileHeaderSig)
	out.writeU16(20)    // version needed to extract
	out.writeU16(0)     // general purpose flag
	out.writeU16(0)     // compression method: stored
	out.writeU16(0)     // last mod file time
	out.writeU16(0)     // last mod file date
	out.writeU32(0)     // crc-32 (left zero; readers of this container don't verify it)
	out.writeU32(uint32(len(payload))) // compressed size
	out.writeU32(uint32(len(payload))) // uncompressed size
	out.writeU16(uint16(nameLen))
	out.writeU16(uint16(extraLen))
	out.writeBytes(name)
	out.writeU16(usdzExtraFieldID)
	out.writeU16(uint16(extraSize))
	out.pad(extraSize)

	payloadOffset := out.tell()
	if payloadOffset%usdzAlignment != 0 {
		return nil, fatalf(ErrZipLayout, "computed payload offset %d is not 64-byte aligned", payloadOffset)
	}
	out.writeBytes(payload)

	centralDirOffset := out.tell()
	out.writeU32(zipCentralDirSig)
	out.writeU16(20) // version made by
	out.writeU16(20) // version needed
	out.writeU16(0)  // flags
	out.writeU16(0)  // method
	out.writeU16(0)  // mod time
	out.writeU16(0)  // mod date
	out.writeU32(0)  // crc-32
	out.writeU32(uint32(len(payload)))
	out.writeU32(uint32(len(payload)))
	out.writeU16(uint16(nameLen))
	out.writeU16(0) // extra field length
	out.writeU16(0) // comment length
	out.writeU16(0) // disk number start
	out.writeU16(0) // internal attrs
	out.writeU32(0) // external attrs
	out.writeU32(uint32(localHeaderOffset))
	out.writeBytes(name)

	centralDirSize := out.tell() - centralDirOffset

	out.writeU32(zipEndOfCentralDirSig)
	out.writeU16(0) // disk number
	out.writeU16(0) // disk with start of central directory
	out.writeU16(1) // entries on this disk
	out.writeU16(1) // total entries
	out.writeU32(uint32(centralDirSize))
	out.writeU32(uint32(centralDirOffset))
	out.writeU16(0) // comment length

	return out.bytes(), nil
}
