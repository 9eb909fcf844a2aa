package checkpoint

import (
	"strings"
	"testing"

	"merklelog.dev/merkletree/pkg/crypto"
)

func testRootHash() crypto.Hash {
	d, _ := crypto.NewDigester(crypto.SHA256())
	return d.DigestOf([]byte("root"))
}

func TestSignAndOpenRoundTrip(t *testing.T) {
	origin, err := NormalizeOrigin("example.com/log")
	if err != nil {
		t.Fatal(err)
	}
	signingKey, verifierKey, err := GenerateKeyPair(origin)
	if err != nil {
		t.Fatal(err)
	}

	c := &Checkpoint{Origin: origin, Size: 42, RootHash: testRootHash()}
	signed, err := Sign(c, signingKey)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Open(signed, verifierKey)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Origin != c.Origin || got.Size != c.Size || got.RootHash != c.RootHash {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	origin := "example.com/log"
	signingKey, _, err := GenerateKeyPair(origin)
	if err != nil {
		t.Fatal(err)
	}
	_, otherVerifierKey, err := GenerateKeyPair(origin)
	if err != nil {
		t.Fatal(err)
	}

	c := &Checkpoint{Origin: origin, Size: 1, RootHash: testRootHash()}
	signed, err := Sign(c, signingKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(signed, otherVerifierKey); err == nil {
		t.Error("expected Open to reject a signature from a different key")
	}
}

func TestOpenRejectsTamperedBody(t *testing.T) {
	origin := "example.com/log"
	signingKey, verifierKey, err := GenerateKeyPair(origin)
	if err != nil {
		t.Fatal(err)
	}
	c := &Checkpoint{Origin: origin, Size: 1, RootHash: testRootHash()}
	signed, err := Sign(c, signingKey)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(signed, "1\n", "2\n", 1)
	if tampered == signed {
		t.Fatal("test fixture did not actually change the body")
	}
	if _, err := Open(tampered, verifierKey); err == nil {
		t.Error("expected Open to reject a tampered body")
	}
}

func TestParseBodyRejectsWrongLineCount(t *testing.T) {
	if _, err := parseBody("only one line\n"); err == nil {
		t.Error("expected error for a body with too few lines")
	}
	if _, err := parseBody("a\nb\nc\nd\n"); err == nil {
		t.Error("expected error for a body with too many lines")
	}
}
