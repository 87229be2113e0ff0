package usdmesh

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// TestUSDZAlignment verifies the payload of tmp.usdc begins at a file
// offset divisible by 64.
func TestUSDZAlignment(t *testing.T) {
	payload := []byte("fake crate bytes for alignment test")
	archive, err := buildUSDZ(payload)
	if err != nil {
		t.Fatal(err)
	}

	nameLen := len(usdzEntryName)
	fixedHeader := 30
	payloadOffset := fixedHeader + nameLen + (usdzExtraPadding(nameLen) + 4)
	if payloadOffset%usdzAlignment != 0 {
		t.Fatalf("computed payload offset %d is not aligned", payloadOffset)
	}

	got := archive[payloadOffset : payloadOffset+len(payload)]
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload not found at computed offset %d", payloadOffset)
	}
}

func TestUSDZStructure(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	archive, err := buildUSDZ(payload)
	if err != nil {
		t.Fatal(err)
	}
	if binary.LittleEndian.Uint32(archive[0:4]) != zipLocalFileHeaderSig {
		t.Fatal("missing local file header signature")
	}

	// End of central directory is the last 22 bytes (no comment).
	eocd := archive[len(archive)-22:]
	if binary.LittleEndian.Uint32(eocd[0:4]) != zipEndOfCentralDirSig {
		t.Fatal("missing end-of-central-directory signature")
	}
	entries := binary.LittleEndian.Uint16(eocd[10:12])
	if entries != 1 {
		t.Fatalf("expected 1 entry, got %d", entries)
	}
	cdSize := binary.LittleEndian.Uint32(eocd[12:16])
	cdOffset := binary.LittleEndian.Uint32(eocd[16:20])
	cd := archive[cdOffset : cdOffset+cdSize]
	if binary.LittleEndian.Uint32(cd[0:4]) != zipCentralDirSig {
		t.Fatal("missing central directory signature")
	}
}

func TestUSDZPaddingFormula(t *testing.T) {
	for nameLen := 0; nameLen < 200; nameLen++ {
		extra := usdzExtraPadding(nameLen)
		if (34+nameLen+extra)%usdzAlignment != 0 {
			t.Fatalf("nameLen=%d: padding %d does not align", nameLen, extra)
		}
		if extra < 0 || extra >= usdzAlignment {
			t.Fatalf("nameLen=%d: padding %d out of range", nameLen, extra)
		}
	}
}
