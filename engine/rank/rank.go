// Package rank scores chunks against a query vector and applies threshold,
// backfill and top-k trimming.
package rank

import (
	"sort"

	"github.com/clipseek/clipseek/engine/chunk"
	"github.com/clipseek/clipseek/engine/tfidf"
)

// Scored pairs a chunk with its cosine similarity to the query.
type Scored struct {
	Score float64
	Chunk chunk.Chunk
}

// Rank scores every chunk against the query vector and returns up to topK
// results ordered by descending score. Chunks below threshold are dropped,
// but if fewer than minResults survive and any chunks exist at all, the top
// minResults are returned regardless of threshold. Equal scores keep their
// original chunk order.
func Rank(chunks []chunk.Chunk, query tfidf.Vector, threshold float64, minResults, topK int) []Scored {
	if len(chunks) == 0 {
		return nil
	}

	scored := make([]Scored, len(chunks))
	for i, c := range chunks {
		scored[i] = Scored{Score: tfidf.Cosine(query, c.Vector), Chunk: c}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	kept := scored
	for i, s := range scored {
		if s.Score < threshold {
			kept = scored[:i]
			break
		}
	}

	// Backfill: guarantee minResults when the threshold filtered too much.
	if len(kept) < minResults {
		n := minResults
		if n > len(scored) {
			n = len(scored)
		}
		kept = scored[:n]
	}

	if len(kept) > topK {
		kept = kept[:topK]
	}
	return kept
}
