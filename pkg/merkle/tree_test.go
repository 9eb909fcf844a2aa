package merkle

import (
	"fmt"
	"testing"

	"merklelog.dev/merkletree/pkg/crypto"
)

func leafHash(t *testing.T, d *crypto.Digester, s string) crypto.Hash {
	t.Helper()
	return d.DigestOf([]byte(s))
}

func buildTree(t *testing.T, n int) (*Tree, []crypto.Hash) {
	t.Helper()
	tree := NewSHA256()
	var leaves []crypto.Hash
	for i := 1; i <= n; i++ {
		h := leafHash(t, tree.Digester(), fmt.Sprintf("%d", i))
		leaves = append(leaves, h)
		tree.AppendLeaf(h)
	}
	if _, err := tree.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree, leaves
}

func TestBuildEmptyTreeFails(t *testing.T) {
	tree := NewSHA256()
	if _, err := tree.Build(); err == nil {
		t.Fatal("expected error building an empty tree")
	}
}

// S1: single leaf.
func TestSingleLeafRootIsTheLeaf(t *testing.T) {
	tree := NewSHA256()
	h := leafHash(t, tree.Digester(), "leaf1")
	tree.AppendLeaf(h)
	root, err := tree.Build()
	if err != nil {
		t.Fatal(err)
	}
	if root != h {
		t.Errorf("root = %x, want leaf digest %x", root, h)
	}
	proof, err := tree.AuditProof(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof.Path) != 0 {
		t.Errorf("expected empty audit path for single-leaf tree, got %d elements", len(proof.Path))
	}
}

// S2: two leaves.
func TestTwoLeavesRootIsCompose(t *testing.T) {
	tree, leaves := buildTree(t, 2)
	root, _ := tree.Root()
	want := tree.Digester().Compose(leaves[0], leaves[1])
	if root != want {
		t.Errorf("root = %x, want %x", root, want)
	}
	proof, err := tree.AuditProof(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof.Path) != 1 || proof.Path[0].Digest != leaves[1] || proof.Path[0].Tag != Right {
		t.Errorf("unexpected proof for leaf 0: %+v", proof.Path)
	}
}

// S3: odd width of 3, carry-up.
func TestOddWidthThreeCarriesUp(t *testing.T) {
	tree, leaves := buildTree(t, 3)
	root, _ := tree.Root()
	p12 := tree.Digester().Compose(leaves[0], leaves[1])
	want := tree.Digester().Compose(p12, leaves[2])
	if root != want {
		t.Errorf("root = %x, want %x", root, want)
	}
	proof, err := tree.AuditProof(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof.Path) != 1 || proof.Path[0].Digest != p12 || proof.Path[0].Tag != Left {
		t.Errorf("unexpected proof for leaf 2: %+v", proof.Path)
	}
}

// S4: 8 leaves, full balanced tree, check the audit path shape for leaf index 4 ("5").
func TestEightLeavesAuditPathShape(t *testing.T) {
	tree, _ := buildTree(t, 8)
	proof, err := tree.AuditProof(4)
	if err != nil {
		t.Fatal(err)
	}
	wantTags := []Tag{Right, Right, Left}
	if len(proof.Path) != len(wantTags) {
		t.Fatalf("path length = %d, want %d", len(proof.Path), len(wantTags))
	}
	for i, tag := range wantTags {
		if proof.Path[i].Tag != tag {
			t.Errorf("path[%d].Tag = %s, want %s", i, proof.Path[i].Tag, tag)
		}
	}
}

func TestDigestStabilityAcrossRebuilds(t *testing.T) {
	tree1, _ := buildTree(t, 7)
	tree2, _ := buildTree(t, 7)
	r1, _ := tree1.Root()
	r2, _ := tree2.Root()
	if r1 != r2 {
		t.Errorf("two independently built trees over identical leaves disagree: %x vs %x", r1, r2)
	}
}

func TestRebuildAfterAppendChangesRoot(t *testing.T) {
	tree, leaves := buildTree(t, 3)
	before, _ := tree.Root()
	tree.AppendLeaf(leafHash(t, tree.Digester(), "4"))
	if _, ok := tree.Root(); ok {
		t.Error("Root should report not-built after an append")
	}
	after, err := tree.Build()
	if err != nil {
		t.Fatal(err)
	}
	if after == before {
		t.Error("root did not change after appending a new leaf and rebuilding")
	}
	_ = leaves
}

func TestRootBeforeBuildIsNotOK(t *testing.T) {
	tree := NewSHA256()
	tree.AppendLeaf(leafHash(t, tree.Digester(), "x"))
	if _, ok := tree.Root(); ok {
		t.Error("expected Root to report not-ok before Build is called")
	}
}

func TestAuditProofIndexOutOfRange(t *testing.T) {
	tree, _ := buildTree(t, 3)
	if _, err := tree.AuditProof(3); err == nil {
		t.Error("expected error for out-of-range leaf index")
	}
	if _, err := tree.AuditProof(-1); err == nil {
		t.Error("expected error for negative leaf index")
	}
}
