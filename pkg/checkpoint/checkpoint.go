// Package checkpoint implements signed, append-only size commitments
// over a tree's root, in the tlog-checkpoint text format: a three-line
// body (origin, tree size, base64 root hash) wrapped and signed as a
// golang.org/x/mod/sumdb/note. See spec.md's checkpoint extension
// (C9): this is the durable artifact a log publishes so that clients
// can later request and verify a consistency proof against it.
//
// Cosigning (multiple witnesses signing the same checkpoint) is out
// of scope; a Checkpoint carries exactly the log's own signature.
package checkpoint

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/sumdb/note"

	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/errs"
)

// Checkpoint is a commitment to a tree's size and root hash under a
// given origin (the log's identity, normalized per NormalizeOrigin).
type Checkpoint struct {
	Origin   string
	Size     uint64
	RootHash crypto.Hash
}

// body renders the three-line tlog-checkpoint text body: origin,
// decimal size, base64 root hash, each newline-terminated.
func (c *Checkpoint) body() string {
	return fmt.Sprintf("%s\n%d\n%s\n", c.Origin, c.Size, base64.StdEncoding.EncodeToString(c.RootHash[:]))
}

func parseBody(text string) (*Checkpoint, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		return nil, errs.Newf(errs.MalformedProofEnvelope, "checkpoint body must end with a blank line")
	}
	lines = lines[:len(lines)-1]
	if len(lines) != 3 {
		return nil, errs.Newf(errs.MalformedProofEnvelope, "checkpoint body must have exactly 3 lines, got %d", len(lines))
	}
	origin, sizeLine, hashLine := lines[0], lines[1], lines[2]
	if origin == "" {
		return nil, errs.Newf(errs.MalformedProofEnvelope, "checkpoint origin line is empty")
	}
	size, err := strconv.ParseUint(sizeLine, 10, 64)
	if err != nil {
		return nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	raw, err := base64.StdEncoding.DecodeString(hashLine)
	if err != nil {
		return nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	if len(raw) != crypto.HashSize {
		return nil, errs.Newf(errs.MalformedProofEnvelope,
			"checkpoint root hash is %d bytes, want %d", len(raw), crypto.HashSize)
	}
	var h crypto.Hash
	copy(h[:], raw)
	return &Checkpoint{Origin: origin, Size: size, RootHash: h}, nil
}

// GenerateKeyPair creates a fresh Ed25519 signing key and its
// corresponding verifier key, in note's own key text format,
// identified by name (conventionally the log's origin).
func GenerateKeyPair(name string) (signingKey, verifierKey string, err error) {
	signingKey, verifierKey, err = note.GenerateKey(rand.Reader, name)
	if err != nil {
		return "", "", errs.New(errs.MalformedProofEnvelope, err)
	}
	return signingKey, verifierKey, nil
}

// Sign produces the signed note text for c using signingKey (as
// returned by GenerateKeyPair).
func Sign(c *Checkpoint, signingKey string) (string, error) {
	signer, err := note.NewSigner(signingKey)
	if err != nil {
		return "", errs.New(errs.MalformedProofEnvelope, err)
	}
	signed, err := note.Sign(&note.Note{Text: c.body()}, signer)
	if err != nil {
		return "", errs.New(errs.MalformedProofEnvelope, err)
	}
	return string(signed), nil
}

// Open verifies signed against verifierKey and parses its body.
// Fails with MalformedProofEnvelope on a bad signature, bad key, or
// a body that isn't exactly the three expected lines.
func Open(signed string, verifierKey string) (*Checkpoint, error) {
	verifier, err := note.NewVerifier(verifierKey)
	if err != nil {
		return nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	n, err := note.Open([]byte(signed), note.VerifierList(verifier))
	if err != nil {
		return nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	return parseBody(n.Text)
}
