package usdmesh

import (
	"bytes"
	"testing"
)

// TestInternTokenDedup verifies that interning the same token twice returns
// the same index.
func TestInternTokenDedup(t *testing.T) {
	cw := newCrateWriter()
	a := cw.internToken("Mesh")
	b := cw.internToken("Xform")
	c := cw.internToken("Mesh")
	if a != c {
		t.Fatalf("interning the same token twice gave different indices: %d vs %d", a, c)
	}
	if a == b {
		t.Fatalf("distinct tokens got the same index")
	}
	if len(cw.tokens) != 2 {
		t.Fatalf("expected 2 unique tokens, got %d", len(cw.tokens))
	}
}

// TestInternFieldDedup verifies that interning the same (token,rep) pair
// twice returns the same field index.
func TestInternFieldDedup(t *testing.T) {
	cw := newCrateWriter()
	tok := cw.internToken("typeName")
	rep := makeRep64(ValueToken, 5, true, false, false)

	i1 := cw.internField(tok, rep)
	i2 := cw.internField(tok, rep)
	if i1 != i2 {
		t.Fatalf("interning the identical (token,rep) pair twice gave different field indices")
	}
	if len(cw.fieldTokens) != 1 {
		t.Fatalf("expected 1 field, got %d", len(cw.fieldTokens))
	}
}

// TestWriteDedupedBlobByteIdentity verifies large immutable data blobs are
// deduplicated on exact byte-identity.
func TestWriteDedupedBlobByteIdentity(t *testing.T) {
	cw := newCrateWriter()
	off1 := cw.writeDedupedBlob([]byte("hello"))
	off2 := cw.writeDedupedBlob([]byte("hello"))
	off3 := cw.writeDedupedBlob([]byte("world"))

	if off1 != off2 {
		t.Fatalf("identical byte content got different offsets: %d vs %d", off1, off2)
	}
	if off1 == off3 {
		t.Fatalf("different byte content got the same offset")
	}
}

// TestFieldSetDedup verifies field-set groups dedup by exact content.
func TestFieldSetDedup(t *testing.T) {
	cw := newCrateWriter()
	i1 := cw.internFieldSet([]int32{1, 2, 3})
	i2 := cw.internFieldSet([]int32{1, 2, 3})
	i3 := cw.internFieldSet([]int32{1, 2})
	if i1 != i2 {
		t.Fatalf("identical field-set groups got different start offsets")
	}
	if i1 == i3 {
		t.Fatalf("different field-set groups got the same start offset")
	}
}

// TestMakeRep64Roundtrip verifies the rep64 flag bits are placed and read
// back independently of the payload and value type.
func TestMakeRep64Roundtrip(t *testing.T) {
	rep := makeRep64(ValueInt32Array, 0x1234, false, true, true)

	if ValueType((rep>>48)&0xFF) != ValueInt32Array {
		t.Fatalf("value type bits corrupted")
	}
	if rep&0xFFFFFFFFFFFF != 0x1234 {
		t.Fatalf("payload bits corrupted: %x", rep&0xFFFFFFFFFFFF)
	}
	if rep&(1<<61) == 0 {
		t.Fatalf("compressed bit not set")
	}
	if rep&(1<<62) != 0 {
		t.Fatalf("inline bit unexpectedly set")
	}
	if rep&(1<<63) == 0 {
		t.Fatalf("array bit not set")
	}
}

// TestWriteCrateEmptyTreeStructure sanity-checks an empty-root Crate file's
// bootstrap and table of contents.
func TestWriteCrateEmptyTreeStructure(t *testing.T) {
	root := NewRoot()
	data, err := writeCrate(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(data) < crateBootstrapSize {
		t.Fatalf("crate file shorter than bootstrap: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], []byte(crateMagic)) {
		t.Fatalf("bad magic: %q", data[:8])
	}
	if data[8] != crateVersionMaj || data[9] != crateVersionMin || data[10] != crateVersionPatch {
		t.Fatalf("bad version bytes: %v", data[8:11])
	}

	tocOffset := int64(0)
	for i := 0; i < 8; i++ {
		tocOffset |= int64(data[16+i]) << (8 * uint(i))
	}
	if tocOffset < crateBootstrapSize || tocOffset >= int64(len(data)) {
		t.Fatalf("TOC offset %d out of range for file of length %d", tocOffset, len(data))
	}

	entryCount := int64(0)
	for i := 0; i < 8; i++ {
		entryCount |= int64(data[tocOffset+int64(i)]) << (8 * uint(i))
	}
	if entryCount != 6 {
		t.Fatalf("expected 6 TOC sections, got %d", entryCount)
	}
}

// TestWriteCrateWithPrims exercises the recursive prim/attribute writer end
// to end via buildSampleTree, checking it does not error and emits a body
// past the bootstrap.
func TestWriteCrateWithPrims(t *testing.T) {
	root, _, _, _, _ := buildSampleTree()
	data, err := writeCrate(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) <= crateBootstrapSize {
		t.Fatalf("expected a non-trivial crate body, got %d bytes", len(data))
	}
}
