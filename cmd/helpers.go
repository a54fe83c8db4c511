package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twinchat/twinchat/internal/config"
	"github.com/twinchat/twinchat/internal/identity"
	"github.com/twinchat/twinchat/internal/llm"
	"github.com/twinchat/twinchat/internal/moderation"
	"github.com/twinchat/twinchat/internal/pipeline"
	"github.com/twinchat/twinchat/internal/retriever"
)

// components is everything a command needs to answer as the twin.
type components struct {
	retriever *retriever.Retriever
	detector  *identity.Detector
	pipe      *pipeline.Pipeline
}

// buildComponents assembles the retrieval, moderation, identity, and
// pipeline stack from configuration.
func buildComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	r := retriever.New(cfg.DataDir, retriever.Options{
		Include:       cfg.Retrieval.Include,
		Exclude:       cfg.Retrieval.Exclude,
		MinChunkChars: cfg.Retrieval.MinChunkChars,
		MergeCapChars: cfg.Retrieval.MergeCapChars,
		MinSimilarity: cfg.Retrieval.MinSimilarity,
	}, logger)

	filter, err := moderation.New(cfg.Moderation.InputOnlyPatterns)
	if err != nil {
		return nil, fmt.Errorf("building moderation filter: %w", err)
	}

	detector, err := identity.New(filepath.Join(cfg.DataDir, cfg.RosterFile), logger)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)

	systemPrompt := ""
	if cfg.Persona.SystemPromptFile != "" {
		content, err := os.ReadFile(cfg.Persona.SystemPromptFile)
		if err != nil {
			return nil, fmt.Errorf("reading system prompt: %w", err)
		}
		systemPrompt = strings.TrimSpace(string(content))
	}

	pipe := pipeline.New(r, provider, filter, detector, pipeline.Options{
		PersonaName:      cfg.Persona.Name,
		SystemPrompt:     systemPrompt,
		ExtraInstruction: cfg.Persona.ExtraInstruction,
		Model:            cfg.Model,
		Temperature:      cfg.Generation.Temperature,
		MaxTokens:        cfg.Generation.MaxTokens,
		HistoryLimit:     cfg.Generation.HistoryLimit,
		TopK:             cfg.Generation.TopK,
		Timeout:          time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
	}, logger)

	return &components{retriever: r, detector: detector, pipe: pipe}, nil
}

// chatEnabledFunc returns the kill switch, checked per request so the env
// var can flip chat off without a restart.
func chatEnabledFunc(cfg *config.Config) func() bool {
	return func() bool {
		if v := os.Getenv("TWIN_CHAT_ENABLED"); v != "" {
			return strings.EqualFold(v, "true")
		}
		return cfg.ChatEnabled
	}
}
