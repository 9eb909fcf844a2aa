package main

import (
	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/log"
	"merklelog.dev/merkletree/pkg/merkle"
)

// cliDigester is the fixed algorithm every merkletree subcommand
// operates with; the CLI has no flag for choosing a different one.
func cliDigester() *crypto.Digester {
	d, err := crypto.NewDigester(crypto.SHA256())
	if err != nil {
		panic(err)
	}
	return d
}

func mustHashFromHex(s string) crypto.Hash {
	h, err := crypto.HashFromHex(s)
	if err != nil {
		log.Fatal("invalid hash %q: %v", s, err)
	}
	return h
}

func verifyAudit(leaf crypto.Hash, proof *merkle.AuditProof, root crypto.Hash) error {
	return merkle.VerifyAudit(cliDigester(), leaf, proof, root)
}

// verifyConsistency checks the proof's cryptographic reconstruction
// of oldRoot only, per spec.md §4.5's verify_consistency(old_root,
// proof) signature; newRoot is not part of the algorithm and is
// checked separately against the envelope's own metadata by the
// caller.
func verifyConsistency(proof *merkle.ConsistencyProof, oldRoot crypto.Hash) error {
	return merkle.VerifyConsistency(cliDigester(), proof, oldRoot)
}
