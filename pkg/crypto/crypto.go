// Package crypto implements the hash primitive the merkle tree core
// depends on: a fixed-width digest type, hex interchange, and the
// binding of two child digests into one parent digest. See spec.md
// §4.1 ("Hash primitive (C1)") for the contract this package
// implements to the bit.
package crypto

import (
	"crypto/sha256"

	"merklelog.dev/merkletree/pkg/errs"
	"merklelog.dev/merkletree/pkg/hex"
)

// HashSize is HASH_LEN: the fixed digest width every HashAlgorithm in
// this module must produce, in bytes. Choosing SHA-256 fixes this at
// 32, per spec.md §4.1.
const HashSize = sha256.Size

// Hash is an opaque, fixed-width digest.
type Hash [HashSize]byte

// Hex encodes h as lower-case hex.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// HashFromHex parses a HASH_LEN*2 character hex string, of either
// case, into a Hash. Odd length, non-hex characters, or wrong decoded
// length all fail with InvalidHexFormat.
func HashFromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, errs.New(errs.InvalidHexFormat, err)
	}
	if len(b) != HashSize {
		return Hash{}, errs.Newf(errs.InvalidHexFormat,
			"invalid hash length: got %d bytes, want %d", len(b), HashSize)
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// HashAlgorithm is the polymorphism boundary of spec.md §9
// ("Hash-algorithm polymorphism"): any fixed-width cryptographic hash
// can stand in here, as long as Sum always returns the same number of
// bytes. That length is checked once, by NewDigester, never on the
// DigestOf/Compose hot path.
type HashAlgorithm interface {
	// Name identifies the algorithm for the envelope's
	// treeMetadata.hashAlgorithm field, e.g. "SHA-256".
	Name() string
	// Sum returns the digest of data. Must be deterministic and
	// always return the same length for a given HashAlgorithm value.
	Sum(data []byte) []byte
}

type sha256Algorithm struct{}

func (sha256Algorithm) Name() string { return "SHA-256" }

func (sha256Algorithm) Sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// SHA256 is the reference HashAlgorithm; it fixes HASH_LEN = 32.
func SHA256() HashAlgorithm { return sha256Algorithm{} }

// Digester binds a HashAlgorithm whose output width has already been
// validated against HashSize. All digest computation in the tree
// core goes through a Digester, never through a raw HashAlgorithm.
type Digester struct {
	alg HashAlgorithm
}

// NewDigester validates alg's output width once and returns a
// Digester that can be used on the hot path without re-checking.
// Fails with InvalidHashLength if alg's digests aren't HashSize bytes.
func NewDigester(alg HashAlgorithm) (*Digester, error) {
	if alg == nil {
		return nil, errs.Newf(errs.InvalidHashLength, "nil hash algorithm")
	}
	probe := alg.Sum(nil)
	if len(probe) != HashSize {
		return nil, errs.Newf(errs.InvalidHashLength,
			"hash algorithm %q produces %d-byte digests, want %d",
			alg.Name(), len(probe), HashSize)
	}
	return &Digester{alg: alg}, nil
}

// Name returns the bound algorithm's name.
func (d *Digester) Name() string {
	return d.alg.Name()
}

// DigestOf computes H(data).
func (d *Digester) DigestOf(data []byte) Hash {
	var h Hash
	copy(h[:], d.alg.Sum(data))
	return h
}

// Compose computes H(L || R) over a single contiguous 2*HashSize
// buffer: no streaming, no separators, no length prefix. This is the
// single point of algorithmic truth every proof depends on, per
// spec.md §3 ("Composition").
func (d *Digester) Compose(left, right Hash) Hash {
	var buf [2 * HashSize]byte
	copy(buf[:HashSize], left[:])
	copy(buf[HashSize:], right[:])
	var h Hash
	copy(h[:], d.alg.Sum(buf[:]))
	return h
}
