package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level twinchat configuration, corresponding to twinchat.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`

	Port           int      `yaml:"port" koanf:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	ChatEnabled    bool     `yaml:"chat_enabled" koanf:"chat_enabled"`
	// RateLimitRPM caps requests per minute per client IP and per
	// outbound provider; 0 disables limiting.
	RateLimitRPM int `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`

	DataDir      string `yaml:"data_dir" koanf:"data_dir"`
	RosterFile   string `yaml:"roster_file" koanf:"roster_file"`
	DatabasePath string `yaml:"database_path" koanf:"database_path"`
	WatchCorpus  bool   `yaml:"watch_corpus" koanf:"watch_corpus"`

	Persona    PersonaConfig    `yaml:"persona" koanf:"persona"`
	Generation GenerationConfig `yaml:"generation" koanf:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval" koanf:"retrieval"`
	Moderation ModerationConfig `yaml:"moderation" koanf:"moderation"`
}

// PersonaConfig describes the individual the twin represents.
type PersonaConfig struct {
	Name             string `yaml:"name" koanf:"name"`
	SystemPromptFile string `yaml:"system_prompt_file" koanf:"system_prompt_file"`
	ExtraInstruction string `yaml:"extra_instruction" koanf:"extra_instruction"`
}

// GenerationConfig controls completion-service calls.
type GenerationConfig struct {
	Temperature    float64 `yaml:"temperature" koanf:"temperature"`
	MaxTokens      int     `yaml:"max_tokens" koanf:"max_tokens"`
	HistoryLimit   int     `yaml:"history_limit" koanf:"history_limit"`
	TopK           int     `yaml:"top_k" koanf:"top_k"`
	TimeoutSeconds int     `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// RetrievalConfig controls corpus loading and chunking.
type RetrievalConfig struct {
	Include       []string `yaml:"include" koanf:"include"`
	Exclude       []string `yaml:"exclude" koanf:"exclude"`
	MinChunkChars int      `yaml:"min_chunk_chars" koanf:"min_chunk_chars"`
	MergeCapChars int      `yaml:"merge_cap_chars" koanf:"merge_cap_chars"`
	MinSimilarity float64  `yaml:"min_similarity" koanf:"min_similarity"`
}

// ModerationConfig holds operator-supplied moderation overrides.
type ModerationConfig struct {
	// InputOnlyPatterns are extra case-insensitive regexes checked against
	// user input after the built-in blocked-topic rules. May be empty.
	InputOnlyPatterns []string `yaml:"input_only_patterns" koanf:"input_only_patterns"`
}
