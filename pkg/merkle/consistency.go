package merkle

import (
	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/errs"
)

// ConsistencyProof lets a verifier who already trusts an old root of
// OldSize leaves confirm that a new root of NewSize leaves is an
// append-only extension of it, without retaining the leaves
// themselves. Every element is tagged OldRoot: the tag is a
// generation-time annotation only, see spec.md §4.5. OldSize/NewSize
// are carried for envelope metadata; verification needs only OldSize
// against the old root.
type ConsistencyProof struct {
	OldSize int
	NewSize int
	Path    []ProofElement
}

// ConsistencyProof builds the proof that the first oldSize leaves of
// the tree's current built state are consistent with its full leaf
// set, by the node-walk algorithm of spec.md §4.5: walk up
// floor(log2(oldSize)) parent hops from leaves[0] to reach a node N,
// then advance along N's ancestor's right spine (descending into a
// sibling when it overshoots oldSize) until the old tree's leaf
// count is fully accounted for.
func (t *Tree) ConsistencyProof(oldSize int) (*ConsistencyProof, error) {
	if !t.built {
		return nil, errs.New(errs.EmptyTree, nil)
	}
	n := len(t.leaves)
	if oldSize <= 0 || oldSize > n {
		return nil, errs.Newf(errs.InvalidArgument,
			"old size %d out of range for tree size %d", oldSize, n)
	}
	path, err := t.consistencyPath(oldSize)
	if err != nil {
		return nil, err
	}
	return &ConsistencyProof{OldSize: oldSize, NewSize: n, Path: path}, nil
}

func (t *Tree) consistencyPath(m int) ([]ProofElement, error) {
	depth := 0
	for (1 << (depth + 1)) <= m {
		depth++
	}

	cur := leafRef(0)
	for i := 0; i < depth; i++ {
		parent := t.parentOf(cur)
		if parent == noRef {
			return nil, errs.New(errs.TreeTooSmall, nil)
		}
		cur = parent
	}
	n := cur
	k := t.leafCount(n)
	path := []ProofElement{{Digest: t.digestOf(n), Tag: OldRoot}}
	if m == k {
		return path, nil
	}

	parent := t.parentOf(n)
	if parent == noRef {
		return nil, errs.New(errs.InvalidProofStructure, nil)
	}
	sibling := t.rightOf(parent)
	if sibling == noRef {
		return nil, errs.New(errs.InvalidProofStructure, nil)
	}

	for {
		sn := t.leafCount(sibling)
		switch {
		case m-k == sn:
			path = append(path, ProofElement{Digest: t.digestOf(sibling), Tag: OldRoot})
			return path, nil
		case m-k > sn:
			path = append(path, ProofElement{Digest: t.digestOf(sibling), Tag: OldRoot})
			k += sn
			p := t.parentOf(sibling)
			if p == noRef {
				return nil, errs.New(errs.InvalidProofStructure, nil)
			}
			next := t.rightOf(p)
			if next == noRef {
				return nil, errs.New(errs.InvalidProofStructure, nil)
			}
			sibling = next
		default: // m-k < sn: descend into sibling's left child
			left := t.leftOf(sibling)
			if left == noRef {
				return nil, errs.New(errs.InvalidProofStructure, nil)
			}
			sibling = left
		}
	}
}

// VerifyConsistency checks proof against oldRoot only, per spec.md
// §4.5's verification procedure: a single-element proof is accepted
// iff its digest equals oldRoot; otherwise the elements are folded
// right-to-left, tag-agnostic, compose(proof[i], running) working
// leftward from a running value seeded by composing the last two
// elements. The OldRoot tag carried by every element is purely a
// generation-time annotation and plays no role here.
func VerifyConsistency(d *crypto.Digester, proof *ConsistencyProof, oldRoot crypto.Hash) error {
	if proof == nil || len(proof.Path) == 0 {
		return errs.New(errs.EmptyProof, nil)
	}
	if proof.OldSize <= 0 || proof.OldSize > proof.NewSize {
		return errs.Newf(errs.InvalidArgument,
			"old size %d invalid for new size %d", proof.OldSize, proof.NewSize)
	}

	path := proof.Path
	running := path[len(path)-1].Digest
	if len(path) > 1 {
		running = d.Compose(path[len(path)-2].Digest, path[len(path)-1].Digest)
		for i := len(path) - 3; i >= 0; i-- {
			running = d.Compose(path[i].Digest, running)
		}
	}
	if running != oldRoot {
		return errs.New(errs.InvalidProofStructure, nil)
	}
	return nil
}
