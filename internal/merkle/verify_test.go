package merkle

import (
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func sampleProofs() []models.AuthenticityProof {
	return []models.AuthenticityProof{
		{QuestID: "q1", ProofDigest: "pd1"},
		{QuestID: "q2", ProofDigest: "pd2"},
		{QuestID: "q3", ProofDigest: "pd3"},
	}
}

func TestBuildBatchPopulatesMerklePathAndBatchID(t *testing.T) {
	scores := map[string]int64{"q1": 960_000, "q2": 900_000, "q3": 955_000}
	batch := BuildBatch("batch-1", 7, sampleProofs(), scores, 1)

	if batch.BatchID != "batch-1" || batch.GovernorID != 7 {
		t.Fatalf("unexpected batch identity: %+v", batch)
	}
	if batch.MerkleRoot == "" {
		t.Fatal("merkle root should be populated")
	}
	for _, p := range batch.Proofs {
		if p.BatchID != "batch-1" {
			t.Fatalf("proof %s missing batch_id stamp", p.QuestID)
		}
		if len(p.MerklePath) == 0 {
			t.Fatalf("proof %s missing merkle_path", p.QuestID)
		}
		if !Verify(LeafHash(p, scores[p.QuestID]), p.MerklePath, batch.MerkleRoot) {
			t.Fatalf("proof %s failed to verify against batch root", p.QuestID)
		}
	}
}

func TestBuildBatchHighAuthCountAndAverage(t *testing.T) {
	scores := map[string]int64{"q1": 960_000, "q2": 900_000, "q3": 955_000}
	batch := BuildBatch("batch-1", 7, sampleProofs(), scores, 1)
	if batch.HighAuthCount != 2 {
		t.Fatalf("expected 2 proofs >= 0.95, got %d", batch.HighAuthCount)
	}
	wantAvg := (960_000 + 900_000 + 955_000) / 3
	if batch.AvgAuthenticity != int64(wantAvg) {
		t.Fatalf("avg authenticity = %d, want %d", batch.AvgAuthenticity, wantAvg)
	}
}

func TestBuildBatchEmptyProofs(t *testing.T) {
	batch := BuildBatch("batch-empty", 1, nil, nil, 0)
	if batch.AvgAuthenticity != 0 || batch.HighAuthCount != 0 {
		t.Fatalf("empty batch should have zero averages, got %+v", batch)
	}
}
