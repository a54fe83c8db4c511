package retriever

import (
	"math"
	"testing"
)

func TestTermsStripStopWordsAndKeepShortTokens(t *testing.T) {
	got := terms("I am a QA engineer")
	want := map[string]bool{"qa": true, "engineer": true, "qa engineer": true}

	if len(got) != len(want) {
		t.Fatalf("expected %d terms, got %v", len(want), got)
	}
	for _, term := range got {
		if !want[term] {
			t.Errorf("unexpected term %q", term)
		}
	}
}

func TestTermsIncludeBigrams(t *testing.T) {
	got := terms("test automation frameworks")
	found := false
	for _, term := range got {
		if term == "test automation" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected bigram 'test automation' in %v", got)
	}
}

func TestTermsKeepSingleCharacterTokens(t *testing.T) {
	for _, term := range terms("plan b worked") {
		if term == "b" {
			return
		}
	}
	t.Error("single-character token was dropped")
}

func TestIdenticalTextScoresOne(t *testing.T) {
	chunks := []Chunk{
		{Text: "snowboarding in colorado every winter", Source: "a"},
		{Text: "favorite breakfast burrito spots downtown", Source: "b"},
	}
	ix := buildIndex(chunks)

	vec := ix.vectorize("snowboarding in colorado every winter")
	score := ix.similarity(vec, 0)
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("self-similarity should be 1.0, got %f", score)
	}
}

func TestDisjointTextScoresZero(t *testing.T) {
	chunks := []Chunk{
		{Text: "snowboarding in colorado every winter", Source: "a"},
	}
	ix := buildIndex(chunks)

	vec := ix.vectorize("quarterly tax paperwork")
	if score := ix.similarity(vec, 0); score != 0 {
		t.Errorf("disjoint vocabulary should score 0, got %f", score)
	}
}

func TestVectorizeDropsUnknownTerms(t *testing.T) {
	ix := buildIndex([]Chunk{{Text: "homebrewing hoppy beers on weekends", Source: "a"}})

	vec := ix.vectorize("zyzzyva homebrewing")
	if _, ok := vec["zyzzyva"]; ok {
		t.Error("out-of-vocabulary term should not appear in the query vector")
	}
	if _, ok := vec["homebrewing"]; !ok {
		t.Error("in-vocabulary term missing from the query vector")
	}
}

func TestRareTermsOutweighCommonOnes(t *testing.T) {
	chunks := []Chunk{
		{Text: "engineer works on engineer tasks with engineer tools", Source: "a"},
		{Text: "engineer who loves snowboarding trips", Source: "b"},
		{Text: "engineer giving conference presentations", Source: "c"},
	}
	ix := buildIndex(chunks)

	if ix.idf["snowboarding"] <= ix.idf["engineer"] {
		t.Errorf("rare term idf (%f) should exceed common term idf (%f)",
			ix.idf["snowboarding"], ix.idf["engineer"])
	}
}
