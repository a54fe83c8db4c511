package retriever

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern keeps single-character tokens: short names and initials in a
// personal corpus carry signal.
var tokenPattern = regexp.MustCompile(`\w+`)

// tfidfIndex is a term-weighted vector index over a fixed chunk set.
// It is built once per (re)load and never mutated afterwards.
type tfidfIndex struct {
	idf     map[string]float64
	vectors []map[string]float64 // one L2-normalized sparse vector per chunk
}

// terms tokenizes text case-insensitively, strips English stop words, and
// emits unigrams plus bigrams over the surviving token sequence.
func terms(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	tokens := raw[:0:0]
	for _, tok := range raw {
		if !englishStopWords[tok] {
			tokens = append(tokens, tok)
		}
	}

	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// buildIndex computes smoothed IDF weights over the chunk set and a
// normalized TF-IDF vector per chunk. No vocabulary cap is applied: the
// corpus is small and pruning would only reduce recall.
func buildIndex(chunks []Chunk) *tfidfIndex {
	n := len(chunks)
	counts := make([]map[string]float64, n)
	df := make(map[string]int)

	for i, chunk := range chunks {
		tf := make(map[string]float64)
		for _, term := range terms(chunk.Text) {
			tf[term]++
		}
		counts[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vectors := make([]map[string]float64, n)
	for i, tf := range counts {
		vec := make(map[string]float64, len(tf))
		for term, count := range tf {
			vec[term] = count * idf[term]
		}
		normalize(vec)
		vectors[i] = vec
	}

	return &tfidfIndex{idf: idf, vectors: vectors}
}

// vectorize maps query text onto the index vocabulary. Terms unseen during
// indexing are dropped, matching a fixed-vocabulary transform.
func (ix *tfidfIndex) vectorize(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, term := range terms(text) {
		if _, ok := ix.idf[term]; ok {
			vec[term]++
		}
	}
	for term := range vec {
		vec[term] *= ix.idf[term]
	}
	normalize(vec)
	return vec
}

// similarity returns the cosine similarity between the query vector and the
// chunk at index i. Both vectors are L2-normalized, so this is a dot product.
func (ix *tfidfIndex) similarity(query map[string]float64, i int) float64 {
	chunk := ix.vectors[i]
	// Iterate the smaller map.
	if len(chunk) < len(query) {
		query, chunk = chunk, query
	}
	var dot float64
	for term, w := range query {
		if cw, ok := chunk[term]; ok {
			dot += w * cw
		}
	}
	return dot
}

func normalize(vec map[string]float64) {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for term := range vec {
		vec[term] /= norm
	}
}
