// Package merkle implements the tamper-evident tree core: leaf
// storage, the carry-up builder, and audit/consistency proof
// generation and verification. See spec.md §2–§5 for the contract.
//
// A Tree is not safe for concurrent use; per spec.md §5, any
// thread-safety is the embedder's responsibility. Two distinct trees
// may be built concurrently without interference.
package merkle

import (
	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/errs"
)

// Tree owns an ordered leaf sequence and the interior structure built
// over it. Lifecycle: New → AppendLeaf(s) any number of times → Build
// → AuditProof/ConsistencyProof → discard. Build may be called again
// after further appends; it always recomputes the interior structure
// from the current leaves.
type Tree struct {
	digester *crypto.Digester

	leaves     []crypto.Hash
	leafParent []nodeRef
	interior   []interiorNode

	root  nodeRef
	built bool
}

// New creates an empty tree bound to alg. Fails with InvalidHashLength
// if alg's digests are not HashSize bytes.
func New(alg crypto.HashAlgorithm) (*Tree, error) {
	d, err := crypto.NewDigester(alg)
	if err != nil {
		return nil, err
	}
	return &Tree{digester: d}, nil
}

// NewSHA256 creates an empty tree using the reference SHA-256
// algorithm. SHA-256 always satisfies HashSize, so this cannot fail.
func NewSHA256() *Tree {
	t, err := New(crypto.SHA256())
	if err != nil {
		panic(err)
	}
	return t
}

// Digester returns the tree's bound digester, for callers composing
// or verifying digests outside of Tree's own methods.
func (t *Tree) Digester() *crypto.Digester {
	return t.digester
}

// Size returns the current number of leaves.
func (t *Tree) Size() int {
	return len(t.leaves)
}

// AppendLeaf appends one leaf digest. The tree must be rebuilt with
// Build before the new leaf is reflected in the root or in proofs.
func (t *Tree) AppendLeaf(h crypto.Hash) {
	t.leaves = append(t.leaves, h)
	t.leafParent = append(t.leafParent, noRef)
	t.built = false
}

// AppendLeaves appends every leaf digest in hs, in order.
func (t *Tree) AppendLeaves(hs []crypto.Hash) {
	for _, h := range hs {
		t.AppendLeaf(h)
	}
}

func (t *Tree) digestOf(r nodeRef) crypto.Hash {
	if r.isLeaf() {
		return t.leaves[r.leafIndex()]
	}
	return t.interior[r.interiorIndex()].digest
}

func (t *Tree) parentOf(r nodeRef) nodeRef {
	if r.isLeaf() {
		return t.leafParent[r.leafIndex()]
	}
	return t.interior[r.interiorIndex()].parent
}

func (t *Tree) leftOf(r nodeRef) nodeRef {
	if r.isLeaf() {
		return noRef
	}
	return t.interior[r.interiorIndex()].left
}

func (t *Tree) rightOf(r nodeRef) nodeRef {
	if r.isLeaf() {
		return noRef
	}
	return t.interior[r.interiorIndex()].right
}

func (t *Tree) setParent(r, parent nodeRef) {
	if r.isLeaf() {
		t.leafParent[r.leafIndex()] = parent
		return
	}
	t.interior[r.interiorIndex()].parent = parent
}

// leafCount returns |leaves_under(r)|. The reference implementation
// in spec.md §4.2 walks and counts on demand; this does the same.
func (t *Tree) leafCount(r nodeRef) int {
	if r.isLeaf() {
		return 1
	}
	n := t.interior[r.interiorIndex()]
	if n.right == noRef {
		return t.leafCount(n.left)
	}
	return t.leafCount(n.left) + t.leafCount(n.right)
}

func (t *Tree) newInterior(left, right nodeRef) nodeRef {
	var digest crypto.Hash
	if right != noRef {
		digest = t.digester.Compose(t.digestOf(left), t.digestOf(right))
	} else {
		// Carry-up: the unpaired right edge is promoted unchanged.
		digest = t.digestOf(left)
	}
	id := interiorRef(len(t.interior))
	t.interior = append(t.interior, interiorNode{digest: digest, left: left, right: right})
	t.setParent(left, id)
	if right != noRef {
		t.setParent(right, id)
	}
	return id
}

// Build folds the current leaves into a balanced binary tree,
// bottom-up, promoting any unpaired right edge at each level
// (carry-up, spec.md §4.3) instead of duplicating it. It is a full
// recomputation: no state from a previous Build is reused, and it may
// be called again after further AppendLeaf(s) calls. Fails with
// EmptyTree if no leaves have been appended.
func (t *Tree) Build() (crypto.Hash, error) {
	if len(t.leaves) == 0 {
		return crypto.Hash{}, errs.New(errs.EmptyTree, nil)
	}

	t.interior = t.interior[:0]
	for i := range t.leafParent {
		t.leafParent[i] = noRef
	}

	level := make([]nodeRef, len(t.leaves))
	for i := range t.leaves {
		level[i] = leafRef(i)
	}
	for len(level) > 1 {
		next := make([]nodeRef, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, t.newInterior(level[i], level[i+1]))
			} else {
				next = append(next, t.newInterior(level[i], noRef))
			}
		}
		level = next
	}
	t.root = level[0]
	t.built = true
	return t.digestOf(t.root), nil
}

// Root returns the current root digest and true, or the zero Hash and
// false if the tree has not been built (or not built since the last
// append).
func (t *Tree) Root() (crypto.Hash, bool) {
	if !t.built {
		return crypto.Hash{}, false
	}
	return t.digestOf(t.root), true
}

// Depth returns the number of levels between the root and its
// shallowest leaf, i.e. ceil(log2(Size())), or 0 for an empty or
// single-leaf tree. This is the same value pkg/envelope records as
// treeMetadata.treeDepth, which it computes from the proof's tree size.
func (t *Tree) Depth() int {
	n := len(t.leaves)
	depth := 0
	for (1 << depth) < n {
		depth++
	}
	return depth
}
