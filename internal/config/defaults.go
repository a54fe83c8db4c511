package config

// modelPresets maps each provider to its default chat model.
var modelPresets = map[ProviderType]string{
	ProviderGroq:   "llama-3.1-8b-instant",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3",
}

// DefaultModel returns the default model for the given provider.
func DefaultModel(provider ProviderType) string {
	return modelPresets[provider]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGroq,
		Model:          modelPresets[ProviderGroq],
		Port:           8000,
		AllowedOrigins: []string{"http://localhost:5173"},
		ChatEnabled:    true,
		RateLimitRPM:   30,
		DataDir:        "data",
		RosterFile:     "family_and_friends.txt",
		DatabasePath:   "twinchat.db",
		WatchCorpus:    false,
		Persona: PersonaConfig{
			SystemPromptFile: "system_prompt.txt",
		},
		Generation: GenerationConfig{
			Temperature:    0.7,
			MaxTokens:      500,
			HistoryLimit:   20,
			TopK:           3,
			TimeoutSeconds: 30,
		},
		Retrieval: RetrievalConfig{
			Include:       []string{"*.txt", "*.md"},
			MinChunkChars: 50,
			MergeCapChars: 500,
			MinSimilarity: 0.05,
		},
	}
}
