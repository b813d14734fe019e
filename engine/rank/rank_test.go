package rank

import (
	"testing"

	"github.com/clipseek/clipseek/engine/chunk"
	"github.com/clipseek/clipseek/engine/tfidf"
)

// chunksWithScores builds chunks whose cosine against query {0: 1} equals
// the given values.
func chunksWithScores(scores ...float64) []chunk.Chunk {
	out := make([]chunk.Chunk, len(scores))
	for i, s := range scores {
		out[i] = chunk.Chunk{
			Text:   "chunk",
			Start:  float64(i * 10),
			Vector: tfidf.Vector{0: s},
		}
	}
	return out
}

var query = tfidf.Vector{0: 1}

func TestRankOrdersDescending(t *testing.T) {
	got := Rank(chunksWithScores(0.2, 0.9, 0.5), query, 0.1, 1, 5)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].Score != 0.9 || got[1].Score != 0.5 || got[2].Score != 0.2 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRankThresholdFilters(t *testing.T) {
	got := Rank(chunksWithScores(0.8, 0.6, 0.05), query, 0.3, 1, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Score != 0.8 || got[1].Score != 0.6 {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestRankBackfillBelowThreshold(t *testing.T) {
	// Everything scores below the threshold, but minResults forces the two
	// best through anyway.
	got := Rank(chunksWithScores(0.05, 0.02, 0.08), query, 0.5, 2, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 backfilled results, got %d", len(got))
	}
	if got[0].Score != 0.08 || got[1].Score != 0.05 {
		t.Fatalf("unexpected backfill: %+v", got)
	}
}

func TestRankStrictThresholdCombinations(t *testing.T) {
	cases := []struct {
		name       string
		threshold  float64
		minResults int
		want       []float64
	}{
		{"moderate threshold keeps two", 0.5, 1, []float64{0.8, 0.6}},
		{"strict threshold backfills one", 0.9, 1, []float64{0.8}},
		{"strict threshold no minimum", 0.9, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rank(chunksWithScores(0.8, 0.6, 0.05), query, tc.threshold, tc.minResults, 5)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d results, got %+v", len(tc.want), got)
			}
			for i, w := range tc.want {
				if got[i].Score != w {
					t.Fatalf("position %d: expected %v, got %v", i, w, got[i].Score)
				}
			}
		})
	}
}

func TestRankBackfillCappedByAvailable(t *testing.T) {
	got := Rank(chunksWithScores(0.01), query, 0.5, 3, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
}

func TestRankTopKTrims(t *testing.T) {
	got := Rank(chunksWithScores(0.9, 0.8, 0.7, 0.6), query, 0.1, 1, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[1].Score != 0.8 {
		t.Fatalf("unexpected second result: %+v", got)
	}
}

func TestRankEmptyChunks(t *testing.T) {
	if got := Rank(nil, query, 0.1, 5, 5); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	chunks := chunksWithScores(0.5, 0.5, 0.5)
	got := Rank(chunks, query, 0.1, 1, 5)
	if got[0].Chunk.Start != 0 || got[1].Chunk.Start != 10 || got[2].Chunk.Start != 20 {
		t.Fatalf("equal scores should keep chunk order: %+v", got)
	}
}

func TestRankThresholdBoundaryInclusive(t *testing.T) {
	got := Rank(chunksWithScores(0.3, 0.29), query, 0.3, 0, 5)
	if len(got) != 1 || got[0].Score != 0.3 {
		t.Fatalf("score equal to threshold should pass: %+v", got)
	}
}
