package usdmesh

import (
	"bytes"
	"math/rand"
	"testing"
)

// TestLZ4SingleLiteral verifies a short, match-free input compresses to a
// single literal-only sequence.
func TestLZ4SingleLiteral(t *testing.T) {
	src := []byte("ABCDEFGHIJ")
	got, err := lz4CompressBlock(src)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xA0}, src...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
}

// TestLZ4RoundTrip verifies compress/decompress round-trip across a spread
// of inputs.
func TestLZ4RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		bytes.Repeat([]byte("abcabcabc"), 100),
		bytes.Repeat([]byte{0}, 5000),
	}
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		n := rnd.Intn(4000)
		buf := make([]byte, n)
		rnd.Read(buf)
		cases = append(cases, buf)
	}

	for idx, src := range cases {
		compressed, err := lz4CompressBlock(src)
		if err != nil {
			t.Fatalf("case %d: %v", idx, err)
		}
		decoded, err := lz4DecompressBlock(compressed, len(src))
		if err != nil {
			t.Fatalf("case %d decode: %v", idx, err)
		}
		if !bytes.Equal(decoded, src) {
			t.Fatalf("case %d: round trip mismatch, len(src)=%d len(decoded)=%d", idx, len(src), len(decoded))
		}
	}
}

func TestLZ4Deterministic(t *testing.T) {
	src := bytes.Repeat([]byte("moleculemesh"), 50)
	a, _ := lz4CompressBlock(src)
	b, _ := lz4CompressBlock(src)
	if !bytes.Equal(a, b) {
		t.Fatal("lz4 compression is not deterministic")
	}
}

func TestLZ4InputTooLarge(t *testing.T) {
	// Cannot allocate a real 0x7E000000+ buffer in a test, so this only
	// checks the limit constant's value; the guard itself is not exercised.
	if lz4MaxBlockInputSize != 0x7E000000 {
		t.Fatalf("unexpected max block size constant: %#x", lz4MaxBlockInputSize)
	}
}
