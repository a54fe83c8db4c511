package retriever

import (
	"regexp"
	"strings"
)

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// splitIntoChunks splits document text into retrievable chunks.
//
// Two-level strategy: sections introduced by a "## " heading line are kept
// whole, so a heading and its paragraphs stay together and the topic
// identity is never fragmented. Spans without a heading are split on blank
// lines and consecutive short paragraphs are merged greedily until the next
// paragraph would push the chunk past the merge cap. Anything at or below
// the minimum length is discarded.
func splitIntoChunks(content, source string, opts Options) []Chunk {
	var chunks []Chunk

	for _, section := range splitSections(content) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		if strings.HasPrefix(section, "## ") || strings.HasPrefix(section, "# ") {
			if len(section) > opts.MinChunkChars {
				chunks = append(chunks, Chunk{Text: section, Source: source})
			}
			continue
		}

		var current string
		for _, para := range paragraphSplit.Split(section, -1) {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}

			if len(current)+len(para) < opts.MergeCapChars {
				current = strings.TrimSpace(current + "\n\n" + para)
			} else {
				if len(current) > opts.MinChunkChars {
					chunks = append(chunks, Chunk{Text: current, Source: source})
				}
				current = para
			}
		}
		if len(current) > opts.MinChunkChars {
			chunks = append(chunks, Chunk{Text: current, Source: source})
		}
	}

	return chunks
}

// splitSections splits content at every line that starts a "## " heading,
// keeping the heading with the text that follows it.
func splitSections(content string) []string {
	lines := strings.Split(content, "\n")
	var sections []string
	var current []string

	for _, line := range lines {
		if strings.HasPrefix(line, "## ") && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}
	return sections
}
