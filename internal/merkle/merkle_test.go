package merkle

import (
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func TestBuildEmptyLeavesHasEmptyRoot(t *testing.T) {
	tree := Build(nil)
	if tree.Root() != "" {
		t.Fatalf("empty tree should have empty root, got %q", tree.Root())
	}
}

func TestBuildSingleLeafRootIsLeaf(t *testing.T) {
	tree := Build([]string{"only-leaf"})
	if tree.Root() != "only-leaf" {
		t.Fatalf("single-leaf root = %q, want %q", tree.Root(), "only-leaf")
	}
}

func TestBuildOddCountDuplicatesLastNode(t *testing.T) {
	odd := Build([]string{"a", "b", "c"})
	dup := Build([]string{"a", "b", "c", "c"})
	if odd.Root() != dup.Root() {
		t.Fatalf("odd-node duplication should match an explicit duplicate leaf: %s != %s", odd.Root(), dup.Root())
	}
}

func TestBuildDeterministic(t *testing.T) {
	leaves := []string{"a", "b", "c", "d", "e"}
	r1 := Build(leaves).Root()
	r2 := Build(leaves).Root()
	if r1 != r2 {
		t.Fatal("Build should be deterministic for the same leaves")
	}
}

func TestPathForVerifiesAgainstRoot(t *testing.T) {
	leaves := []string{"a", "b", "c", "d", "e"}
	tree := Build(leaves)
	root := tree.Root()
	for i, leaf := range leaves {
		path := tree.PathFor(i)
		if !Verify(leaf, path, root) {
			t.Fatalf("leaf %d (%s) failed to verify against root %s", i, leaf, root)
		}
	}
}

func TestVerifyRejectsTamperedLeaf(t *testing.T) {
	leaves := []string{"a", "b", "c", "d"}
	tree := Build(leaves)
	root := tree.Root()
	path := tree.PathFor(0)
	if Verify("tampered", path, root) {
		t.Fatal("Verify should reject a leaf that doesn't match the path's root")
	}
}

func TestLeafHashDeterministic(t *testing.T) {
	proof := models.AuthenticityProof{QuestID: "q1", ProofDigest: "pd1"}
	h1 := LeafHash(proof, 950_000)
	h2 := LeafHash(proof, 950_000)
	if h1 != h2 {
		t.Fatal("LeafHash should be deterministic")
	}
	if LeafHash(proof, 900_000) == h1 {
		t.Fatal("LeafHash should be sensitive to authenticity_score")
	}
}
