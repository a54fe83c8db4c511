// Package moderation validates inbound user text and outbound generated
// text against ordered rule categories.
package moderation

import (
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the result of checking one piece of text.
type Verdict struct {
	// Allowed reports whether the text may proceed.
	Allowed bool
	// Text is the text to use instead: a deflection when blocked, the
	// redacted text after profanity cleanup, or the input unchanged.
	Text string
	// Category names the rule set that fired, empty when nothing matched.
	Category Category
}

// Filter checks input and output text against its rule cascade. A Filter is
// immutable after construction and safe for concurrent use.
type Filter struct {
	inputRules  []ruleSet
	outputRules []ruleSet
}

// New builds a Filter with the built-in rule sets plus any operator-supplied
// input-only patterns. The extra patterns share the generic topic deflection.
func New(extraInputPatterns []string) (*Filter, error) {
	var inputOnly []*regexp.Regexp
	for _, p := range extraInputPatterns {
		compiled, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compiling input-only pattern %q: %w", p, err)
		}
		inputOnly = append(inputOnly, compiled)
	}

	f := &Filter{
		// Strict priority order: adversarial intent first, then topic and
		// content filters. First match wins.
		inputRules: []ruleSet{
			{CategoryJailbreak, jailbreakPatterns, jailbreakDeflection},
			{CategoryManipulation, manipulationPatterns, manipulationDeflection},
			{CategoryBlockedTopic, blockedTopicPatterns, topicDeflection},
			{CategoryInputOnly, inputOnly, topicDeflection},
			{CategoryProfanity, profanityPatterns, respectDeflection},
		},
		outputRules: []ruleSet{
			{CategoryFabrication, fabricationPatterns, fabricationFallback},
			{CategoryNegativeSelf, negativeSelfPatterns, positivityFallback},
			{CategoryBlockedTopic, blockedTopicPatterns, topicDeflection},
		},
	}
	return f, nil
}

// CheckInput evaluates user text against the input cascade.
func (f *Filter) CheckInput(text string) Verdict {
	for _, rs := range f.inputRules {
		for _, pattern := range rs.patterns {
			if pattern.MatchString(text) {
				return Verdict{Allowed: false, Text: rs.response, Category: rs.category}
			}
		}
	}
	return Verdict{Allowed: true, Text: text}
}

// CheckOutput validates generated text. Fabrication, negative-self, and
// blocked-topic matches replace the text wholesale; profanity is the one
// asymmetric case: matching spans are redacted in place and the cleaned
// text stays valid.
func (f *Filter) CheckOutput(text string) Verdict {
	for _, rs := range f.outputRules {
		for _, pattern := range rs.patterns {
			if pattern.MatchString(text) {
				return Verdict{Allowed: false, Text: rs.response, Category: rs.category}
			}
		}
	}

	cleaned := text
	redacted := false
	for _, pattern := range profanityPatterns {
		if pattern.MatchString(cleaned) {
			cleaned = pattern.ReplaceAllString(cleaned, redactionMarker)
			redacted = true
		}
	}
	if redacted {
		return Verdict{Allowed: true, Text: cleaned, Category: CategoryProfanity}
	}

	return Verdict{Allowed: true, Text: text}
}

// DetectUncertainty reports whether the text hedges in a way that suggests
// the answer lacks grounding. It never blocks output; callers use it for
// feedback auto-logging.
func (f *Filter) DetectUncertainty(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range uncertaintyIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// IsControversialTopic exposes the blocked-topic set as a standalone
// predicate, so callers can decide whether an out-of-band contact
// suggestion is appropriate.
func (f *Filter) IsControversialTopic(text string) bool {
	for _, pattern := range blockedTopicPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// SystemPromptGuardrails returns boundary instructions included in the
// completion system prompt as an additional layer of protection.
func (f *Filter) SystemPromptGuardrails() string {
	return `IMPORTANT BOUNDARIES:
- Do NOT discuss politics, elections, political parties, or controversial political topics
- Do NOT share opinions on religion or religious practices
- Do NOT discuss sensitive social issues like abortion, gun control, or immigration policy
- Do NOT reveal personal information like address, phone number, or financial details
- If asked about these topics, politely decline and redirect to other topics
- Keep responses friendly, professional, and focused on sharing who you are as a person
- If you don't have information to answer a question, say so honestly`
}
