package retriever

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func testCorpus(t *testing.T) *Retriever {
	t.Helper()
	dir := writeCorpus(t, map[string]string{
		"work.txt": "## Work Experience\n\nSpent five years as a software engineer focused on test automation, Python tooling, and CI reliability for a large fintech platform.\n\n## Biggest Weakness\n\nTends to over-polish projects before shipping; has been working on timeboxing and asking for feedback earlier in the process.",
		"life.txt": "## Hobbies\n\nSnowboarding every winter weekend, homebrewing questionable IPAs, and a long-running Dungeons and Dragons campaign with college friends.\n\n## Food Opinions\n\nPineapple belongs on pizza and any hot take to the contrary is simply wrong. Breakfast burritos are the superior breakfast format.",
		"skip.json": `{"ignored": true}`,
	})
	return New(dir, DefaultOptions(), zap.NewNop())
}

func TestRetrieveRanksRelevantChunksFirst(t *testing.T) {
	r := testCorpus(t)

	results := r.Retrieve("what is your biggest weakness?", 3)
	if len(results) == 0 {
		t.Fatal("expected results for a query with corpus overlap")
	}
	if !strings.Contains(results[0].Chunk.Text, "Weakness") {
		t.Errorf("expected the weakness section first, got %q", results[0].Chunk.Text)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("results not sorted by descending score")
		}
	}
}

func TestRetrieveRespectsTopKAndFloor(t *testing.T) {
	r := testCorpus(t)

	results := r.Retrieve("software engineer experience with python", 2)
	if len(results) > 2 {
		t.Fatalf("expected at most 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Score <= DefaultOptions().MinSimilarity {
			t.Errorf("result at or below relevance floor: %f", res.Score)
		}
	}
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	r := New(t.TempDir(), DefaultOptions(), zap.NewNop())
	if results := r.Retrieve("anything at all", 3); results != nil {
		t.Errorf("expected no results on empty corpus, got %d", len(results))
	}
	if ctx := r.Context("anything", 3); ctx != "" {
		t.Errorf("expected empty context string, got %q", ctx)
	}
}

func TestRetrieveMissingDirectory(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "does-not-exist"), DefaultOptions(), zap.NewNop())
	if results := r.Retrieve("hello", 3); len(results) != 0 {
		t.Error("missing corpus directory should behave as empty, not fail")
	}
}

func TestIncludePatternsFilterFiles(t *testing.T) {
	r := testCorpus(t)
	for _, doc := range r.Documents() {
		if strings.HasSuffix(doc.Name, ".json") {
			t.Errorf("non-matching file %s was loaded", doc.Name)
		}
	}
	if len(r.Documents()) != 2 {
		t.Errorf("expected 2 documents, got %d", len(r.Documents()))
	}
}

func TestContextFormat(t *testing.T) {
	r := testCorpus(t)

	ctx := r.Context("snowboarding hobbies", 3)
	if ctx == "" {
		t.Fatal("expected context for an on-corpus query")
	}
	if !strings.Contains(ctx, "[From life.txt]:\n") {
		t.Errorf("context missing source attribution block:\n%s", ctx)
	}
}

func TestExpandQueryIsAdditive(t *testing.T) {
	query := "What's your biggest weakness?"
	expanded := ExpandQuery(query)

	if !strings.HasPrefix(expanded, query) {
		t.Error("expansion must preserve the original query")
	}
	if !strings.Contains(expanded, "flaw") {
		t.Errorf("expected weakness expansion terms, got %q", expanded)
	}
}

// Keyword matching is a substring test over the raw lowered query, so a
// keyword can fire inside a longer word. That looseness is intentional and
// pinned here.
func TestExpandQuerySubstringQuirk(t *testing.T) {
	expanded := ExpandQuery("tell me about the cleft chin")
	if !strings.Contains(expanded, "resigned") {
		t.Errorf(`expected "left" to match inside "cleft", got %q`, expanded)
	}
}

func TestExpandQueryNoMatchPassesThrough(t *testing.T) {
	query := "do you like dogs?"
	if got := ExpandQuery(query); got != query {
		t.Errorf("unmatched query should be unchanged, got %q", got)
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	r := testCorpus(t)

	before := r.Retrieve("biggest weakness at work", 3)
	r.Reload()
	after := r.Retrieve("biggest weakness at work", 3)

	if len(before) != len(after) {
		t.Fatalf("result count changed across reload: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Chunk != after[i].Chunk {
			t.Errorf("result %d chunk changed across reload", i)
		}
		if before[i].Score != after[i].Score {
			t.Errorf("result %d score changed across reload: %f vs %f", i, before[i].Score, after[i].Score)
		}
	}
}

func TestReloadPicksUpNewFiles(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "## Travel\n\nBackpacked through Patagonia for a month after finishing university, mostly living out of a tent.",
	})
	r := New(dir, DefaultOptions(), zap.NewNop())
	initial := r.ChunkCount()

	err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("## Music\n\nPlays bass in a garage band that exclusively covers songs from 2009 and refuses to modernize."), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	r.Reload()

	if r.ChunkCount() <= initial {
		t.Errorf("expected more chunks after reload, had %d now %d", initial, r.ChunkCount())
	}
}
