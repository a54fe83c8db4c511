// Package export writes stored conversations, feedback, and statistics to
// a markdown file for offline review.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/twinchat/twinchat/internal/analytics"
	"github.com/twinchat/twinchat/internal/db"
	"github.com/twinchat/twinchat/internal/feedback"
)

const (
	maxResponseExcerpt = 500
	maxMessageExcerpt  = 1000
)

// Exporter renders the database into a single markdown document.
type Exporter struct {
	db       *db.DB
	feedback *feedback.Store
	events   *analytics.Store
	// progress output, nil for silent operation
	progressOut io.Writer
}

// New creates an Exporter. progressOut receives a progress bar while
// conversations are written; pass nil to disable it.
func New(database *db.DB, progressOut io.Writer) *Exporter {
	return &Exporter{
		db:          database,
		feedback:    feedback.NewStore(database),
		events:      analytics.NewStore(database),
		progressOut: progressOut,
	}
}

// WriteFile exports everything to path, overwriting any previous export.
func (e *Exporter) WriteFile(ctx context.Context, path string) error {
	content, err := e.Render(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Render builds the full export document.
func (e *Exporter) Render(ctx context.Context) (string, error) {
	stats, err := e.renderStats(ctx)
	if err != nil {
		return "", err
	}
	fb, err := e.renderFeedback(ctx)
	if err != nil {
		return "", err
	}
	convs, err := e.renderConversations(ctx)
	if err != nil {
		return "", err
	}

	sections := []string{
		"# Digital Twin - Data Export",
		"",
		"---",
		"",
		stats,
		"---",
		"",
		fb,
		"---",
		"",
		convs,
	}
	return strings.Join(sections, "\n"), nil
}

func (e *Exporter) renderStats(ctx context.Context) (string, error) {
	var convCount, msgCount, fbCount int
	if err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&convCount); err != nil {
		return "", fmt.Errorf("counting conversations: %w", err)
	}
	if err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&msgCount); err != nil {
		return "", fmt.Errorf("counting messages: %w", err)
	}
	if err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&fbCount); err != nil {
		return "", fmt.Errorf("counting feedback: %w", err)
	}

	var b strings.Builder
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Total conversations:** %d\n", convCount)
	fmt.Fprintf(&b, "- **Total messages:** %d\n", msgCount)
	fmt.Fprintf(&b, "- **Feedback entries:** %d\n", fbCount)

	rows, err := e.db.QueryContext(ctx, `SELECT feedback_type, COUNT(*) FROM feedback GROUP BY feedback_type`)
	if err != nil {
		return "", fmt.Errorf("feedback breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []string
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return "", err
		}
		breakdown = append(breakdown, fmt.Sprintf("  - %s: %d", t, n))
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(breakdown) > 0 {
		b.WriteString("\n**Feedback breakdown:**\n")
		b.WriteString(strings.Join(breakdown, "\n"))
		b.WriteString("\n")
	}

	counts, err := e.events.CountByType(ctx)
	if err != nil {
		return "", err
	}
	if len(counts) > 0 {
		b.WriteString("\n**Analytics:**\n")
		fmt.Fprintf(&b, "  - Page visits: %d\n", counts[analytics.EventVisit])
		fmt.Fprintf(&b, "  - Messages sent: %d\n", counts[analytics.EventMessage])
	}

	b.WriteString("\n")
	return b.String(), nil
}

func (e *Exporter) renderFeedback(ctx context.Context) (string, error) {
	entries, err := e.feedback.List(ctx)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "## Feedback\n\nNo feedback recorded yet.\n", nil
	}

	var b strings.Builder
	b.WriteString("## Feedback\n\n")
	fmt.Fprintf(&b, "*%d entries*\n\n", len(entries))

	for _, entry := range entries {
		fmt.Fprintf(&b, "### Feedback %s (%s)\n", entry.ID, entry.Type)
		fmt.Fprintf(&b, "**Date:** %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
		if entry.ConversationID != "" {
			fmt.Fprintf(&b, "**Conversation:** `%s...`\n", shorten(entry.ConversationID, 8))
		}
		fmt.Fprintf(&b, "\n**User asked:** %s\n", entry.UserMessage)
		if entry.AssistantResponse != "" {
			fmt.Fprintf(&b, "\n**Assistant said:** %s\n", excerpt(entry.AssistantResponse, maxResponseExcerpt))
		}
		if entry.Notes != "" {
			fmt.Fprintf(&b, "\n**Notes:** %s\n", entry.Notes)
		}
		b.WriteString("\n---\n\n")
	}
	return b.String(), nil
}

func (e *Exporter) renderConversations(ctx context.Context) (string, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT id, created_at, updated_at FROM conversations ORDER BY updated_at DESC`)
	if err != nil {
		return "", fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	type conv struct {
		id, created, updated string
	}
	var convs []conv
	for rows.Next() {
		var c conv
		if err := rows.Scan(&c.id, &c.created, &c.updated); err != nil {
			return "", err
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(convs) == 0 {
		return "## Conversations\n\nNo conversations recorded yet.\n", nil
	}

	var bar *progressbar.ProgressBar
	if e.progressOut != nil {
		bar = progressbar.NewOptions(len(convs),
			progressbar.OptionSetWriter(e.progressOut),
			progressbar.OptionSetDescription("exporting conversations"),
		)
	}

	var b strings.Builder
	b.WriteString("## Conversations\n\n")
	fmt.Fprintf(&b, "*%d conversations*\n\n", len(convs))

	for _, c := range convs {
		if err := e.renderConversation(ctx, &b, c.id, c.created, c.updated); err != nil {
			return "", err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return b.String(), nil
}

func (e *Exporter) renderConversation(ctx context.Context, b *strings.Builder, id, created, updated string) error {
	rows, err := e.db.QueryContext(ctx, `
		SELECT role, content FROM messages WHERE conversation_id = ? ORDER BY id`, id)
	if err != nil {
		return fmt.Errorf("loading conversation %s: %w", id, err)
	}
	defer rows.Close()

	type turn struct {
		role, content string
	}
	var turns []turn
	for rows.Next() {
		var m turn
		if err := rows.Scan(&m.role, &m.content); err != nil {
			return err
		}
		turns = append(turns, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(turns) == 0 {
		return nil
	}

	fmt.Fprintf(b, "### Conversation `%s...`\n", shorten(id, 8))
	fmt.Fprintf(b, "**Started:** %s | **Last activity:** %s\n", created, updated)
	fmt.Fprintf(b, "**Messages:** %d\n\n", len(turns))

	for _, m := range turns {
		prefix := "**Assistant:**"
		if m.role == "user" {
			prefix = "**User:**"
		}
		fmt.Fprintf(b, "%s %s\n\n", prefix, excerpt(m.content, maxMessageExcerpt))
	}
	b.WriteString("---\n\n")
	return nil
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
