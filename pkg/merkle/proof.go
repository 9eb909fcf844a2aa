package merkle

import "merklelog.dev/merkletree/pkg/crypto"

// Tag identifies the role of a ProofElement's digest relative to the
// verifier's running digest. See spec.md §3 ("Proof element").
type Tag int

const (
	// Left means this sibling digest sits to the left of the running
	// digest when composing.
	Left Tag = iota
	// Right means this sibling digest sits to the right of the
	// running digest when composing.
	Right
	// OldRoot marks the subtree whose composition yields the old
	// root in a consistency proof; it never appears in audit proofs.
	OldRoot
)

func (t Tag) String() string {
	switch t {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case OldRoot:
		return "OldRoot"
	default:
		return "Unknown"
	}
}

// ProofElement is one step of an audit or consistency proof: a
// sibling digest and the tag describing how the verifier should fold
// it into the running digest.
type ProofElement struct {
	Digest crypto.Hash
	Tag    Tag
}
