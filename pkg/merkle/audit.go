package merkle

import (
	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/errs"
)

// AuditProof is the path from one leaf up to the root: the sequence
// of sibling digests (and their sides) a verifier folds the leaf
// digest through to reproduce the root. See spec.md §4.4.
type AuditProof struct {
	LeafIndex int
	TreeSize  int
	Path      []ProofElement
}

// AuditProof builds the inclusion proof for the leaf at index,
// against the tree's current built state. The tree must have been
// built since its last append. Fails with TreeTooSmall if index is
// out of range.
func (t *Tree) AuditProof(index int) (*AuditProof, error) {
	if !t.built {
		return nil, errs.New(errs.EmptyTree, nil)
	}
	if index < 0 || index >= len(t.leaves) {
		return nil, errs.Newf(errs.TreeTooSmall,
			"leaf index %d out of range for tree of size %d", index, len(t.leaves))
	}

	var path []ProofElement
	cur := leafRef(index)
	for cur != t.root {
		parent := t.parentOf(cur)
		left, right := t.leftOf(parent), t.rightOf(parent)
		switch {
		case right == noRef:
			// Carry-up parent: cur is promoted unchanged, no sibling
			// to record.
		case cur == left:
			path = append(path, ProofElement{Digest: t.digestOf(right), Tag: Right})
		default:
			path = append(path, ProofElement{Digest: t.digestOf(left), Tag: Left})
		}
		cur = parent
	}
	return &AuditProof{LeafIndex: index, TreeSize: len(t.leaves), Path: path}, nil
}

// VerifyAudit checks that folding leaf through proof's path, in
// order, reproduces root. The folding rule (spec.md §4.4, resolved
// against its own worked examples in §8): a Right-tagged sibling
// composes after the running digest (running is the left operand), a
// Left-tagged sibling composes before it (running is the right
// operand).
func VerifyAudit(d *crypto.Digester, leaf crypto.Hash, proof *AuditProof, root crypto.Hash) error {
	if proof == nil {
		return errs.New(errs.EmptyProof, nil)
	}
	if proof.LeafIndex < 0 || proof.LeafIndex >= proof.TreeSize {
		return errs.Newf(errs.InvalidProofStructure,
			"leaf index %d out of range for tree size %d", proof.LeafIndex, proof.TreeSize)
	}

	running := leaf
	for _, elem := range proof.Path {
		switch elem.Tag {
		case Right:
			running = d.Compose(running, elem.Digest)
		case Left:
			running = d.Compose(elem.Digest, running)
		default:
			return errs.Newf(errs.InvalidProofStructure,
				"unexpected proof element tag %s in audit proof", elem.Tag)
		}
	}
	if running != root {
		return errs.New(errs.InvalidProofStructure, nil)
	}
	return nil
}
