// Package tfidf builds a TF-IDF vector space over transcript chunks and
// scores cosine similarity between query and chunk vectors. Vectors are
// sparse and L2-normalized, so cosine similarity reduces to a dot product.
package tfidf

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// MaxFeatures caps the vocabulary at the most frequent terms across the
// corpus, ties broken lexicographically.
const MaxFeatures = 1000

// ErrEmptyVocabulary means no usable terms survived tokenization, e.g. a
// corpus made entirely of stopwords.
var ErrEmptyVocabulary = errors.New("vocabulary is empty after tokenization")

// Vector is a sparse L2-normalized term-weight vector keyed by vocabulary
// index.
type Vector map[int]float64

// Model is a fitted vector space: vocabulary indices plus inverse document
// frequencies. Fit once per corpus, then Transform any text into it.
type Model struct {
	vocab map[string]int
	idf   []float64
}

// Fit learns the vocabulary and IDF weights from the corpus. Terms are
// lowercased unigrams and bigrams with stopwords removed.
func Fit(docs []string) (*Model, error) {
	df := make(map[string]int)
	total := make(map[string]int)
	for _, doc := range docs {
		terms := tokenize(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			total[t]++
			seen[t] = struct{}{}
		}
		for t := range seen {
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	// Keep the most frequent terms; lexicographic order breaks ties so the
	// vocabulary is deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxFeatures {
		terms = terms[:MaxFeatures]
	}
	sort.Strings(terms)

	m := &Model{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		m.vocab[t] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return m, nil
}

// VocabSize returns the number of terms in the fitted vocabulary.
func (m *Model) VocabSize() int { return len(m.vocab) }

// Transform projects text into the fitted space. Out-of-vocabulary terms
// are dropped; a text with no known terms yields an empty vector.
func (m *Model) Transform(text string) Vector {
	counts := make(map[int]int)
	for _, t := range tokenize(text) {
		if idx, ok := m.vocab[t]; ok {
			counts[idx]++
		}
	}

	v := make(Vector, len(counts))
	var norm float64
	for idx, c := range counts {
		w := float64(c) * m.idf[idx]
		v[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for idx := range v {
		v[idx] /= norm
	}
	return v
}

// Cosine returns the cosine similarity of two normalized vectors. Either
// vector being empty yields 0.
func Cosine(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	return dot
}

// tokenize lowercases, splits on non-alphanumerics, drops stopwords and
// single-character tokens, then appends bigrams over the surviving tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := englishStopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}

	terms := make([]string, len(tokens), len(tokens)*2)
	copy(terms, tokens)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
