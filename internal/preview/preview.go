// Package preview serves the corpus documents as rendered HTML so the
// owner can proofread what the twin knows.
package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/twinchat/twinchat/internal/retriever"
)

// DocumentInfo summarizes one corpus file for the listing endpoint.
type DocumentInfo struct {
	Name   string `json:"name"`
	Chunks int    `json:"chunks"`
	Bytes  int    `json:"bytes"`
}

// Renderer converts corpus documents to HTML.
type Renderer struct {
	dataDir   string
	retriever *retriever.Retriever
	md        goldmark.Markdown
}

// NewRenderer creates a Renderer over the corpus directory. The retriever
// supplies per-document chunk counts for the listing.
func NewRenderer(dataDir string, r *retriever.Retriever) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{dataDir: dataDir, retriever: r, md: md}
}

// List returns a summary of every document in the loaded corpus, sorted by
// name.
func (rd *Renderer) List() []DocumentInfo {
	docs := rd.retriever.Documents()
	chunkCounts := make(map[string]int)
	for _, chunk := range rd.retriever.Chunks() {
		chunkCounts[chunk.Source]++
	}

	infos := make([]DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, DocumentInfo{
			Name:   doc.Name,
			Chunks: chunkCounts[doc.Name],
			Bytes:  len(doc.Text),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Render returns one document converted to HTML. Plain-text documents are
// rendered as markdown too; the result is readable either way.
func (rd *Renderer) Render(name string) (string, error) {
	// The corpus is flat; reject anything that looks like a path.
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid document name %q", name)
	}

	content, err := os.ReadFile(filepath.Join(rd.dataDir, name))
	if err != nil {
		return "", fmt.Errorf("reading document %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := rd.md.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("rendering document %s: %w", name, err)
	}
	return buf.String(), nil
}
