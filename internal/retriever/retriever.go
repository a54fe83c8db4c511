// Package retriever loads the knowledge corpus, chunks it, and serves
// TF-IDF similarity retrieval over it.
package retriever

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Result is one retrieved chunk with its similarity score.
type Result struct {
	Chunk Chunk
	Score float64
}

// snapshot bundles the corpus with the index built over it. A snapshot is
// immutable after construction; reload publishes a fresh one.
type snapshot struct {
	docs   []Document
	chunks []Chunk
	index  *tfidfIndex
}

// Retriever owns the corpus index. Reads are lock-free against an atomic
// snapshot pointer; Reload swaps the snapshot in one step, so in-flight
// retrievals always see a complete, consistent index.
type Retriever struct {
	dataDir string
	opts    Options
	logger  *zap.Logger

	reloadMu sync.Mutex
	snap     atomic.Pointer[snapshot]
}

// New creates a Retriever and performs the initial corpus load. Load
// problems are logged and degrade to an empty corpus, never an error.
func New(dataDir string, opts Options, logger *zap.Logger) *Retriever {
	r := &Retriever{dataDir: dataDir, opts: opts, logger: logger}
	r.Reload()
	return r
}

// Reload re-reads the corpus and rebuilds the index, then publishes the new
// snapshot atomically. Concurrent reloads are serialized; readers never block.
func (r *Retriever) Reload() {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	docs, errs := loadDocuments(r.dataDir, r.opts)
	for _, err := range errs {
		r.logger.Warn("corpus load", zap.Error(err))
	}

	var chunks []Chunk
	for _, doc := range docs {
		chunks = append(chunks, splitIntoChunks(doc.Text, doc.Name, r.opts)...)
	}

	snap := &snapshot{docs: docs, chunks: chunks, index: buildIndex(chunks)}
	r.snap.Store(snap)

	if len(chunks) == 0 {
		r.logger.Warn("no knowledge chunks loaded", zap.String("dir", r.dataDir))
		return
	}
	r.logger.Info("corpus loaded",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)))
}

// ExpandQuery appends each matched keyword's related terms to the query.
// The original query text is always preserved.
func ExpandQuery(query string) string {
	lower := strings.ToLower(query)
	expanded := []string{query}
	for _, e := range queryExpansions {
		if strings.Contains(lower, e.keyword) {
			expanded = append(expanded, e.terms...)
		}
	}
	return strings.Join(expanded, " ")
}

// Retrieve returns up to topK chunks whose similarity to the expanded query
// is strictly above the relevance floor, ordered by descending score. Ties
// keep original chunk order. An empty corpus yields an empty result.
func (r *Retriever) Retrieve(query string, topK int) []Result {
	snap := r.snap.Load()
	if snap == nil || len(snap.chunks) == 0 {
		return nil
	}

	queryVec := snap.index.vectorize(ExpandQuery(query))

	order := make([]int, len(snap.chunks))
	scores := make([]float64, len(snap.chunks))
	for i := range snap.chunks {
		order[i] = i
		scores[i] = snap.index.similarity(queryVec, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var results []Result
	for _, i := range order {
		if len(results) == topK {
			break
		}
		if scores[i] <= r.opts.MinSimilarity {
			break
		}
		results = append(results, Result{Chunk: snap.chunks[i], Score: scores[i]})
	}
	return results
}

// Context renders the top matches as a prompt context block. An empty
// string means no usable context was found, not an error.
func (r *Retriever) Context(query string, topK int) string {
	results := r.Retrieve(query, topK)
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, len(results))
	for i, res := range results {
		parts[i] = fmt.Sprintf("[From %s]:\n%s", res.Chunk.Source, res.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Documents returns the currently loaded corpus snapshot.
func (r *Retriever) Documents() []Document {
	snap := r.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.docs
}

// Chunks returns the currently indexed chunks.
func (r *Retriever) Chunks() []Chunk {
	snap := r.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.chunks
}

// ChunkCount reports how many chunks the current snapshot holds.
func (r *Retriever) ChunkCount() int {
	snap := r.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.chunks)
}
