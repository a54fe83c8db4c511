// Package pipeline orchestrates reply generation: identity detection,
// input filtering, retrieval, completion, and output filtering, in that
// order.
package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twinchat/twinchat/internal/identity"
	"github.com/twinchat/twinchat/internal/llm"
	"github.com/twinchat/twinchat/internal/moderation"
	"github.com/twinchat/twinchat/internal/retriever"
)

// Pipeline wires the twin's components into a single Generate call.
type Pipeline struct {
	retriever *retriever.Retriever
	provider  llm.Provider
	filter    *moderation.Filter
	detector  *identity.Detector
	opts      Options
	logger    *zap.Logger
}

// New builds a pipeline. Zero-valued Options fields get defaults matching
// the server's shipped configuration.
func New(
	r *retriever.Retriever,
	provider llm.Provider,
	filter *moderation.Filter,
	detector *identity.Detector,
	opts Options,
	logger *zap.Logger,
) *Pipeline {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = defaultSystemPrompt
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 500
	}
	if opts.HistoryLimit == 0 {
		opts.HistoryLimit = 20
	}
	if opts.TopK == 0 {
		opts.TopK = 3
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Pipeline{
		retriever: r,
		provider:  provider,
		filter:    filter,
		detector:  detector,
		opts:      opts,
		logger:    logger,
	}
}

// Generate produces a reply to userMessage given the prior conversation.
// Filters may answer without ever reaching the model; completion failures
// degrade to a polite retry message rather than an error.
func (p *Pipeline) Generate(ctx context.Context, userMessage string, history []llm.Message) *Result {
	result := &Result{}

	// Identity detection scans only what the visitor said.
	var userMessages []string
	for _, msg := range history {
		if msg.Role == llm.RoleUser {
			userMessages = append(userMessages, msg.Content)
		}
	}
	match := p.detector.Detect(userMessages, userMessage)
	var identityHint string
	if match != nil {
		result.Identity = match
		identityHint = match.PromptHint(p.opts.PersonaName)
		p.logger.Debug("recognized visitor",
			zap.String("name", match.Name),
			zap.String("relationship", string(match.Person.Relationship)))
	}

	if verdict := p.filter.CheckInput(userMessage); !verdict.Allowed {
		result.Text = verdict.Text
		result.Blocked = true
		result.DeflectionReason = string(verdict.Category)
		p.logger.Info("input deflected", zap.String("category", string(verdict.Category)))
		return result
	}

	contextText := p.retriever.Context(userMessage, p.opts.TopK)
	result.ContextUsed = contextText != ""

	isFirstMessage := len(history) == 0

	system := buildSystemPrompt(
		p.opts.SystemPrompt,
		p.filter.SystemPromptGuardrails(),
		contextText,
		identityHint,
		p.opts.ExtraInstruction,
	)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	recent := history
	if len(recent) > p.opts.HistoryLimit {
		recent = recent[len(recent)-p.opts.HistoryLimit:]
	}
	messages = append(messages, recent...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	callCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	resp, err := p.provider.Complete(callCtx, llm.CompletionRequest{
		Model:       p.opts.Model,
		Messages:    messages,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		p.logger.Warn("completion failed", zap.Error(err))
		result.Text = apologyResponse
		return result
	}

	text := resp.Content

	// The opening turn must end by asking who the visitor is. If the model
	// skipped it despite the instructions, tack the question on.
	if isFirstMessage && text != "" && !hasWhoQuestion(text) {
		text = strings.TrimRight(text, " \t\r\n") + " " + firstMessageQuestion
	}

	verdict := p.filter.CheckOutput(text)
	result.Text = verdict.Text
	if !verdict.Allowed {
		result.Blocked = true
		result.DeflectionReason = string(verdict.Category)
		p.logger.Info("output replaced", zap.String("category", string(verdict.Category)))
	}

	result.Uncertain = p.filter.DetectUncertainty(result.Text)
	return result
}

// Reload re-reads the corpus and roster from disk.
func (p *Pipeline) Reload() error {
	p.retriever.Reload()
	return p.detector.Reload()
}
