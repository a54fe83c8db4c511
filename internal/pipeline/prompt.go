package pipeline

import (
	"fmt"
	"strings"
)

// defaultSystemPrompt is used when no persona file is configured.
const defaultSystemPrompt = `You are an AI digital twin representing the owner of this website.
Be friendly, conversational, and authentic. Share information about yourself openly.`

// engagementPrompt goes last in the system prompt so the model weights it
// most heavily.
const engagementPrompt = `FIRST MESSAGE FORMAT (MANDATORY):

When this is the first message in a conversation, your response MUST end by asking who they are and what brings them here. This applies even if they ask a question first.

CORRECT EXAMPLES:
- User: "hey" → "Hey! Who am I chatting with, and what brings you by?"
- User: "what do you do?" → "I'm a software engineer focused on test automation and AI. Who am I talking to, and what brings you here?"
- User: "what languages do you know?" → "Python, JavaScript, TypeScript, and a few others. What's your name and what brings you by?"

INCORRECT (never do this on first message):
- User: "what do you do?" → "I'm a software engineer with experience in..." (missing the question!)

Keep initial answers brief (1-2 sentences) to make room for asking about them. After you learn who they are, respond naturally without asking in every message.`

// firstMessageQuestion is appended when the model ignores the engagement
// instructions on the opening turn.
const firstMessageQuestion = "Who am I talking to, and what brings you here?"

// whoQuestionPhrases mark a reply as already asking who the visitor is.
var whoQuestionPhrases = []string{
	"who am i talking to",
	"who am i chatting with",
	"who are you",
	"what's your name",
	"what brings you",
	"what brings you here",
	"what brings you by",
}

// apologyResponse is returned verbatim when the completion call fails.
const apologyResponse = "I'm having a bit of trouble responding right now. Could you try asking again?"

// buildSystemPrompt assembles the persona, boundaries, retrieved context,
// identity hint, and extra instructions into one system message. The
// engagement block always goes last.
func buildSystemPrompt(persona, guardrails, context, identityHint, extra string) string {
	parts := []string{strings.TrimSpace(persona)}

	if guardrails != "" {
		parts = append(parts, strings.TrimSpace(guardrails))
	}

	if context != "" {
		parts = append(parts, fmt.Sprintf(
			"RELEVANT INFORMATION ABOUT YOU:\n%s\n\n"+
				"Use this information to answer questions when relevant. "+
				"Don't mention that you're retrieving or looking up information - "+
				"just share it naturally as if you know it.", context))
	}

	if identityHint != "" {
		parts = append(parts, identityHint)
	}

	if extra != "" {
		parts = append(parts, extra)
	}

	parts = append(parts, engagementPrompt)

	return strings.Join(parts, "\n\n")
}

// hasWhoQuestion reports whether the reply already asks the visitor who
// they are.
func hasWhoQuestion(response string) bool {
	lower := strings.ToLower(response)
	for _, phrase := range whoQuestionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
