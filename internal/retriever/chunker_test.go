package retriever

import (
	"strings"
	"testing"
)

func TestHeadedSectionsStayWhole(t *testing.T) {
	content := "## Work History\n\nSpent three years building test automation frameworks.\n\nBefore that, did QA for a fintech startup in Denver.\n\n## Hobbies\n\nSnowboarding, climbing, and way too much espresso on weekends here."

	chunks := splitIntoChunks(content, "about.txt", DefaultOptions())

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0].Text, "## Work History") {
		t.Errorf("first chunk should start with its heading, got %q", chunks[0].Text)
	}
	if !strings.Contains(chunks[0].Text, "fintech startup") {
		t.Error("heading was separated from its paragraphs")
	}
	if !strings.HasPrefix(chunks[1].Text, "## Hobbies") {
		t.Errorf("second chunk should start with its heading, got %q", chunks[1].Text)
	}
}

func TestShortParagraphsMerge(t *testing.T) {
	paras := []string{
		"Likes early mornings and long bike rides around town.",
		"Strong preference for quiet focus time before standup.",
		"Keeps a running list of restaurant recommendations nearby.",
	}
	content := strings.Join(paras, "\n\n")

	chunks := splitIntoChunks(content, "notes.txt", DefaultOptions())

	if len(chunks) != 1 {
		t.Fatalf("expected short paragraphs to merge into 1 chunk, got %d", len(chunks))
	}
	for _, p := range paras {
		if !strings.Contains(chunks[0].Text, p) {
			t.Errorf("merged chunk missing paragraph %q", p)
		}
	}
}

func TestMergeFlushesAtCap(t *testing.T) {
	long := strings.Repeat("Writes thorough design docs before starting anything. ", 9) // ~490 chars
	content := long + "\n\n" + "Another paragraph that is comfortably over the discard floor for chunks."

	chunks := splitIntoChunks(content, "style.txt", DefaultOptions())

	if len(chunks) != 2 {
		t.Fatalf("expected flush at merge cap to produce 2 chunks, got %d", len(chunks))
	}
}

func TestTinyChunksDiscarded(t *testing.T) {
	opts := DefaultOptions()
	content := "## Hi\n\nShort.\n\nAlso tiny."

	chunks := splitIntoChunks(content, "tiny.txt", opts)

	for _, c := range chunks {
		if len(c.Text) <= opts.MinChunkChars {
			t.Errorf("chunk below minimum length was emitted: %q", c.Text)
		}
	}
	if len(chunks) != 0 {
		t.Errorf("expected all chunks discarded, got %d", len(chunks))
	}
}

func TestEveryChunkAboveFloor(t *testing.T) {
	opts := DefaultOptions()
	content := "# Title\n\nshort\n\n" +
		"A real paragraph with enough characters to clear the minimum chunk threshold easily.\n\n" +
		"## Section\ntoo small\n\n" +
		strings.Repeat("Filler sentence about favorite projects and accomplishments. ", 12)

	chunks := splitIntoChunks(content, "mixed.txt", opts)
	if len(chunks) == 0 {
		t.Fatal("expected some chunks")
	}
	for _, c := range chunks {
		if len(c.Text) <= opts.MinChunkChars {
			t.Errorf("chunk violates length floor: %d chars", len(c.Text))
		}
		if c.Source != "mixed.txt" {
			t.Errorf("chunk lost its source, got %q", c.Source)
		}
	}
}
