package crypto

import (
	"encoding/hex"
	"strings"
	"testing"
)

func incBytes(n int) []byte {
	b := make([]byte, n)
	for i := 0; i < len(b); i++ {
		b[i] = byte(i)
	}
	return b
}

func mustHashFromHex(t *testing.T, s string) Hash {
	t.Helper()
	hash, err := HashFromHex(s)
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func TestValidHashFromHex(t *testing.T) {
	b := incBytes(HashSize)
	s := hex.EncodeToString(b)
	for _, in := range []string{s, strings.ToUpper(s)} {
		hash, err := HashFromHex(in)
		if err != nil {
			t.Errorf("error on input %q: %v", in, err)
		}
		if hash.Hex() != strings.ToLower(s) {
			t.Errorf("fail on input %q, wanted %s, got %s", in, s, hash.Hex())
		}
	}
}

func TestInvalidHashFromHex(t *testing.T) {
	b := incBytes(HashSize + 1)
	s := hex.EncodeToString(b)
	for _, in := range []string{"", "0x11", "123z", s[:len(s)-4], s, s + "00"} {
		if hash, err := HashFromHex(in); err == nil {
			t.Errorf("no error on invalid input %q, got %x", in, hash)
		}
	}
}

func TestHashHexRoundTrip(t *testing.T) {
	d, err := NewDigester(SHA256())
	if err != nil {
		t.Fatal(err)
	}
	h := d.DigestOf([]byte("round trip"))
	got, err := HashFromHex(h.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Errorf("round trip mismatch: got %x, want %x", got, h)
	}
}

// Basic sanity check, not intended as a thorough SHA-256 regression test.
func TestDigestOf(t *testing.T) {
	d, err := NewDigester(SHA256())
	if err != nil {
		t.Fatal(err)
	}
	for _, table := range []struct {
		in  string
		out string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	} {
		if got, want := d.DigestOf([]byte(table.in)), mustHashFromHex(t, table.out); got != want {
			t.Errorf("incorrect hash of %q: got %x, want %x", table.in, got, want)
		}
	}
}

func TestCompose(t *testing.T) {
	d, err := NewDigester(SHA256())
	if err != nil {
		t.Fatal(err)
	}
	left := d.DigestOf([]byte("left"))
	right := d.DigestOf([]byte("right"))

	var want [2 * HashSize]byte
	copy(want[:HashSize], left[:])
	copy(want[HashSize:], right[:])
	wantHash := d.DigestOf(want[:])

	if got := d.Compose(left, right); got != wantHash {
		t.Errorf("Compose doesn't match concat-then-hash: got %x, want %x", got, wantHash)
	}
	if d.Compose(left, right) == d.Compose(right, left) {
		t.Errorf("Compose is order-independent, it must not be")
	}
}

type fakeAlgorithm struct {
	name string
	size int
}

func (a fakeAlgorithm) Name() string { return a.name }
func (a fakeAlgorithm) Sum(data []byte) []byte {
	return make([]byte, a.size)
}

func TestNewDigesterRejectsWrongLength(t *testing.T) {
	if _, err := NewDigester(fakeAlgorithm{name: "fake", size: HashSize + 1}); err == nil {
		t.Errorf("expected error for wrong-length hash algorithm")
	}
	if _, err := NewDigester(nil); err == nil {
		t.Errorf("expected error for nil hash algorithm")
	}
}
