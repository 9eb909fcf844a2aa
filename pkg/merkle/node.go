package merkle

import "merklelog.dev/merkletree/pkg/crypto"

// nodeRef addresses a node in one of the tree's two storage arenas,
// per the "arena of indices" design in spec.md §9 ("Parent
// back-references and cycles"): positive values (1-based) index the
// leaf arena, negative values (1-based, negated) index the interior
// arena. The zero value, noRef, means "absent".
//
// Leaves are append-only and never relocated, so a leaf's nodeRef
// stays valid for the lifetime of the tree. Interior nodeRefs are
// only valid for the build that created them: Build rebuilds the
// interior arena from scratch every call, per spec.md §4.3's rebuild
// policy.
type nodeRef int

const noRef nodeRef = 0

func leafRef(i int) nodeRef     { return nodeRef(i + 1) }
func interiorRef(i int) nodeRef { return nodeRef(-(i + 1)) }

func (r nodeRef) isLeaf() bool       { return r > 0 }
func (r nodeRef) leafIndex() int     { return int(r) - 1 }
func (r nodeRef) interiorIndex() int { return int(-r) - 1 }

// interiorNode is a non-leaf node: its digest and its children. right
// is noRef for a carry-up node (spec.md §4.3), in which case digest
// equals left's digest alone.
type interiorNode struct {
	digest crypto.Hash
	left   nodeRef
	right  nodeRef
	parent nodeRef
}
