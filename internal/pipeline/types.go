package pipeline

import (
	"time"

	"github.com/twinchat/twinchat/internal/identity"
)

// Result carries a generated reply plus everything the caller needs to
// decide how to store and present it.
type Result struct {
	// Text is the final reply after all output filtering.
	Text string

	// Blocked reports that a filter replaced the reply entirely, either on
	// the way in or on the way out.
	Blocked bool

	// DeflectionReason names the filter category that fired when Blocked is
	// true ("jailbreak", "blocked_topic", ...). Empty otherwise.
	DeflectionReason string

	// Uncertain reports that the reply hedges, which callers use to log
	// unanswered questions for corpus improvement.
	Uncertain bool

	// ContextUsed reports whether retrieval found anything relevant for
	// this message.
	ContextUsed bool

	// Identity is the recognized speaker, if they introduced themselves as
	// someone on the roster.
	Identity *identity.Match
}

// Options tunes generation. Zero values fall back to sensible defaults in
// New.
type Options struct {
	PersonaName      string
	SystemPrompt     string
	ExtraInstruction string
	Model            string
	Temperature      float64
	MaxTokens        int
	HistoryLimit     int
	TopK             int
	Timeout          time.Duration
}
