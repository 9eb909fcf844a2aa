// Package envelope implements the deterministic JSON proof
// serialization envelope (C6, spec.md §4.6): the only wire artifact
// the core produces. Two shapes share a version/timestamp/type
// header: an audit envelope and a consistency envelope.
package envelope

import (
	"encoding/json"
	"strings"
	"time"

	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/errs"
	"merklelog.dev/merkletree/pkg/merkle"
)

const version = "1.0"

const (
	typeAudit       = "merkle_audit_proof"
	typeConsistency = "merkle_consistency_proof"
)

// pathElement is the wire shape of one merkle.ProofElement.
type pathElement struct {
	Direction string `json:"direction"`
	Hash      string `json:"hash"`
}

func encodeTag(tag merkle.Tag) string { return tag.String() }

func decodeTag(s string) (merkle.Tag, error) {
	switch s {
	case "Left":
		return merkle.Left, nil
	case "Right":
		return merkle.Right, nil
	case "OldRoot":
		return merkle.OldRoot, nil
	default:
		return 0, errs.Newf(errs.MalformedProofEnvelope, "unrecognized proof direction %q", s)
	}
}

func encodePath(path []merkle.ProofElement) []pathElement {
	out := make([]pathElement, len(path))
	for i, e := range path {
		out[i] = pathElement{Direction: encodeTag(e.Tag), Hash: e.Digest.Hex()}
	}
	return out
}

func decodePath(in []pathElement) ([]merkle.ProofElement, error) {
	out := make([]merkle.ProofElement, len(in))
	for i, e := range in {
		tag, err := decodeTag(e.Direction)
		if err != nil {
			return nil, err
		}
		h, err := crypto.HashFromHex(e.Hash)
		if err != nil {
			return nil, errs.New(errs.MalformedProofEnvelope, err)
		}
		out[i] = merkle.ProofElement{Digest: h, Tag: tag}
	}
	return out, nil
}

// AuditTreeMetadata is treeMetadata in an audit envelope.
type AuditTreeMetadata struct {
	RootHash      string `json:"rootHash"`
	LeafCount     int    `json:"leafCount"`
	TreeDepth     int    `json:"treeDepth"`
	HashAlgorithm string `json:"hashAlgorithm"`
}

// AuditProofBody is the proof field of an audit envelope.
type AuditProofBody struct {
	LeafHash  string        `json:"leafHash"`
	ProofPath []pathElement `json:"proofPath"`
}

// Audit is the deserialized form of a "merkle_audit_proof" envelope.
type Audit struct {
	Version      string            `json:"version"`
	Type         string            `json:"type"`
	Timestamp    time.Time         `json:"timestamp"`
	TreeMetadata AuditTreeMetadata `json:"treeMetadata"`
	Proof        AuditProofBody    `json:"proof"`
}

// SerializeAudit packages a proof for leaf at leafIndex into the
// audit envelope, per spec.md §4.6. now is stamped into the
// timestamp field; callers typically pass time.Now().UTC().
func SerializeAudit(d *crypto.Digester, root crypto.Hash, leaf crypto.Hash, proof *merkle.AuditProof, now time.Time) (string, error) {
	if proof == nil {
		return "", errs.New(errs.EmptyProof, nil)
	}
	depth := 0
	for (1 << depth) < proof.TreeSize {
		depth++
	}
	env := Audit{
		Version:   version,
		Type:      typeAudit,
		Timestamp: now.UTC(),
		TreeMetadata: AuditTreeMetadata{
			RootHash:      root.Hex(),
			LeafCount:     proof.TreeSize,
			TreeDepth:     depth,
			HashAlgorithm: d.Name(),
		},
		Proof: AuditProofBody{
			LeafHash:  leaf.Hex(),
			ProofPath: encodePath(proof.Path),
		},
	}
	buf, err := json.Marshal(env)
	if err != nil {
		return "", errs.New(errs.MalformedProofEnvelope, err)
	}
	return string(buf), nil
}

// DeserializeAudit parses an audit envelope, returning the leaf
// digest, the proof, and the claimed root so the caller can feed them
// to merkle.VerifyAudit. Ill-formed JSON, an unknown field, a wrong
// version or type, a missing or malformed rootHash or leafHash, a
// malformed proofPath entry, or a leafCount below 1 fails with
// MalformedProofEnvelope. Absent timestamp, treeDepth, hashAlgorithm
// and proofPath fields are not detected: they decode as zero values.
// This function must never panic, including on adversarial input.
func DeserializeAudit(s string) (leaf crypto.Hash, root crypto.Hash, proof *merkle.AuditProof, err error) {
	defer func() {
		if r := recover(); r != nil {
			leaf, root, proof = crypto.Hash{}, crypto.Hash{}, nil
			err = errs.Newf(errs.MalformedProofEnvelope, "panic decoding audit envelope: %v", r)
		}
	}()

	var env Audit
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if decErr := dec.Decode(&env); decErr != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.New(errs.MalformedProofEnvelope, decErr)
	}
	if env.Version != version {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.Newf(errs.MalformedProofEnvelope, "unsupported version %q", env.Version)
	}
	if env.Type != typeAudit {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.Newf(errs.MalformedProofEnvelope, "unexpected type %q", env.Type)
	}

	root, err = crypto.HashFromHex(env.TreeMetadata.RootHash)
	if err != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	leaf, err = crypto.HashFromHex(env.Proof.LeafHash)
	if err != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	path, err := decodePath(env.Proof.ProofPath)
	if err != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, err
	}
	if env.TreeMetadata.LeafCount <= 0 {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.Newf(errs.MalformedProofEnvelope,
			"invalid leafCount %d", env.TreeMetadata.LeafCount)
	}

	return leaf, root, &merkle.AuditProof{TreeSize: env.TreeMetadata.LeafCount, Path: path}, nil
}

// ConsistencyTreeMetadata is treeMetadata in a consistency envelope.
type ConsistencyTreeMetadata struct {
	OldRootHash   string `json:"oldRootHash"`
	NewRootHash   string `json:"newRootHash"`
	OldLeafCount  int    `json:"oldLeafCount"`
	NewLeafCount  int    `json:"newLeafCount"`
	HashAlgorithm string `json:"hashAlgorithm"`
}

// ConsistencyProofBody is the proof field of a consistency envelope.
type ConsistencyProofBody struct {
	ProofPath []pathElement `json:"proofPath"`
}

// Consistency is the deserialized form of a "merkle_consistency_proof"
// envelope.
type Consistency struct {
	Version      string                  `json:"version"`
	Type         string                  `json:"type"`
	Timestamp    time.Time               `json:"timestamp"`
	TreeMetadata ConsistencyTreeMetadata `json:"treeMetadata"`
	Proof        ConsistencyProofBody    `json:"proof"`
}

// SerializeConsistency packages proof into the consistency envelope.
func SerializeConsistency(d *crypto.Digester, oldRoot, newRoot crypto.Hash, proof *merkle.ConsistencyProof, now time.Time) (string, error) {
	if proof == nil {
		return "", errs.New(errs.EmptyProof, nil)
	}
	env := Consistency{
		Version:   version,
		Type:      typeConsistency,
		Timestamp: now.UTC(),
		TreeMetadata: ConsistencyTreeMetadata{
			OldRootHash:   oldRoot.Hex(),
			NewRootHash:   newRoot.Hex(),
			OldLeafCount:  proof.OldSize,
			NewLeafCount:  proof.NewSize,
			HashAlgorithm: d.Name(),
		},
		Proof: ConsistencyProofBody{
			ProofPath: encodePath(proof.Path),
		},
	}
	buf, err := json.Marshal(env)
	if err != nil {
		return "", errs.New(errs.MalformedProofEnvelope, err)
	}
	return string(buf), nil
}

// DeserializeConsistency parses a consistency envelope, returning the
// claimed old and new roots and the proof so the caller can feed them
// to merkle.VerifyConsistency.
func DeserializeConsistency(s string) (oldRoot, newRoot crypto.Hash, proof *merkle.ConsistencyProof, err error) {
	defer func() {
		if r := recover(); r != nil {
			oldRoot, newRoot, proof = crypto.Hash{}, crypto.Hash{}, nil
			err = errs.Newf(errs.MalformedProofEnvelope, "panic decoding consistency envelope: %v", r)
		}
	}()

	var env Consistency
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if decErr := dec.Decode(&env); decErr != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.New(errs.MalformedProofEnvelope, decErr)
	}
	if env.Version != version {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.Newf(errs.MalformedProofEnvelope, "unsupported version %q", env.Version)
	}
	if env.Type != typeConsistency {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.Newf(errs.MalformedProofEnvelope, "unexpected type %q", env.Type)
	}

	oldRoot, err = crypto.HashFromHex(env.TreeMetadata.OldRootHash)
	if err != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	newRoot, err = crypto.HashFromHex(env.TreeMetadata.NewRootHash)
	if err != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.New(errs.MalformedProofEnvelope, err)
	}
	path, err := decodePath(env.Proof.ProofPath)
	if err != nil {
		return crypto.Hash{}, crypto.Hash{}, nil, err
	}
	if env.TreeMetadata.OldLeafCount <= 0 || env.TreeMetadata.OldLeafCount > env.TreeMetadata.NewLeafCount {
		return crypto.Hash{}, crypto.Hash{}, nil, errs.Newf(errs.MalformedProofEnvelope,
			"invalid leaf counts old=%d new=%d", env.TreeMetadata.OldLeafCount, env.TreeMetadata.NewLeafCount)
	}

	return oldRoot, newRoot, &merkle.ConsistencyProof{
		OldSize: env.TreeMetadata.OldLeafCount,
		NewSize: env.TreeMetadata.NewLeafCount,
		Path:    path,
	}, nil
}
