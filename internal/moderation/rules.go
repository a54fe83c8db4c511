package moderation

import "regexp"

// Category names the moderation rule set that fired. It is carried through
// to pipeline metadata for diagnostics and auto-logging.
type Category string

const (
	CategoryJailbreak    Category = "jailbreak"
	CategoryManipulation Category = "manipulation"
	CategoryBlockedTopic Category = "blocked_topic"
	CategoryInputOnly    Category = "input_only"
	CategoryProfanity    Category = "profanity"
	CategoryFabrication  Category = "fabrication"
	CategoryNegativeSelf Category = "negative_self"
)

// ruleSet is one named category: an ordered pattern list plus the
// substitute text returned when any pattern matches. The priority cascade
// is a plain iteration over []ruleSet, so each category stays independently
// testable.
type ruleSet struct {
	category Category
	patterns []*regexp.Regexp
	response string
}

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile("(?i)" + p)
	}
	return compiled
}

// Instruction-override attempts. These represent active adversarial intent
// and are checked before everything else: jailbreak phrasing often contains
// blocked-topic vocabulary that would otherwise produce a less targeted
// deflection.
var jailbreakPatterns = compileAll([]string{
	`ignore (all |any )?(previous|prior|above|earlier) (instructions|prompts|rules|messages)`,
	`disregard (all |any )?(previous|prior|your) (instructions|rules|guidelines)`,
	`forget (all |everything )?(you were|you've been) told`,
	`developer mode`,
	`\bjailbreak`,
	`(reveal|show|print|display|repeat|output)( me)?( your)?( the)? system prompt`,
	`reveal your (instructions|prompt|rules)`,
	`pretend (you are|you're|to be) (not )?(an ai|unrestricted|uncensored)`,
	`act as (if|though) you have no (restrictions|rules|guidelines|filters)`,
	`you (are|have) no (restrictions|filters|guidelines) now`,
	`override your (safety|instructions|programming|guidelines)`,
})

// Social-engineering and manipulation pressure.
var manipulationPatterns = compileAll([]string{
	`admit (that|it|you)\b`,
	`confess (that )?you`,
	`just between us`,
	`(your|the) (creator|developer|owner|boss) (told|said|wants|asked)`,
	`i('m| am) (actually )?your (developer|creator|owner|admin|administrator)`,
	`everyone (knows|says|agrees) (that )?you`,
	`(he|she|they) told me (that )?you`,
	`if you (really|actually|truly) (cared|were honest|knew)`,
	`prove (to me )?(that )?you('re| are)`,
	`stop (pretending|lying|acting)`,
})

// Blocked topics: politics, religion, immigration, protected classes, and
// sensitive personal details. Used for both directions plus the standalone
// controversial-topic predicate.
var blockedTopicPatterns = compileAll([]string{
	`\b(democrat|republican|liberal|conservative|trump|biden|election|vote|voting)\b`,
	`\b(left.?wing|right.?wing|socialism|capitalism|communist|fascist)\b`,
	`\b(abortion|pro.?life|pro.?choice)\b`,
	`\b(gun control|second amendment|2nd amendment)\b`,
	`\b(religion|religious|atheist|christian|muslim|jewish|hindu|buddhist)\b`,
	`\b(immigration|immigrant|illegal alien|border wall|deportation)\b`,
	`\b(racism|racist|sexism|sexist|homophob|transphob)\b`,
	`\b(salary|income|net worth|how much.*make|how much.*earn)\b`,
	`\b(address|where.*live|phone number|social security)\b`,
})

// Profanity, self-harm, and hate patterns.
var profanityPatterns = compileAll([]string{
	`\b(fuck|shit|damn|ass|bitch|bastard)\b`,
	`\b(kill|murder|suicide|self.?harm)\b`,
	`\b(hate|hatred)\s+(you|them|him|her|everyone)\b`,
})

// Fabrication markers: AI self-reference, invented precision, and
// contradictory hedge constructions that signal the model is making
// specifics up.
var fabricationPatterns = compileAll([]string{
	`as an ai( language model)?\b`,
	`as a language model`,
	`i('m| am) (an ai|a language model|an artificial intelligence|a chatbot)`,
	`my (training data|programming) (says|tells|shows)`,
	`i (was|am) (trained|programmed) (on|to|by)`,
	`at exactly \d{1,2}:\d{2}`,
	`precisely (at|on) (the )?\d`,
	`if i (had to|were to) guess,? (i('d| would) say )?(it was|he|she|they)`,
	`i don'?t (actually )?know\b.{0,60}\bbut (it|that|he|she|they) (definitely|certainly|was|did|happened)`,
})

// Negative self-statements about the represented individual, first or third
// person.
var negativeSelfPatterns = compileAll([]string{
	`i('m| am) (really |pretty |very |just |so )?(bad|terrible|awful|horrible|useless|worthless|lazy|incompetent|stupid|hopeless)\b`,
	`i (suck|fail) at`,
	`i('m| am) not (very )?good at (anything|my job|much)`,
	`(he|she|they)('s| is| are) (really |pretty |very )?(bad|terrible|awful|lazy|incompetent|hopeless) at`,
	`(he|she|they) (sucks?|fails?) at`,
})

// Hedge phrases indicating the model lacks grounding for its answer.
var uncertaintyIndicators = []string{
	"i don't know",
	"i'm not sure",
	"i cannot answer",
	"i don't have information",
	"i can't help with",
	"outside my knowledge",
	"beyond my understanding",
}

// redactionMarker replaces each profane span in otherwise valid output.
const redactionMarker = "[...]"

// Deflection and fallback texts, one per category.
const (
	jailbreakDeflection = "Nice try! I'm just here to chat about who I am: my work, " +
		"hobbies, and interests. What would you like to know?"

	manipulationDeflection = "I'd rather not play that game. I'm happy to tell you about " +
		"my background, my projects, or what I'm into these days!"

	topicDeflection = "I'd prefer to keep our conversation focused on topics I'm " +
		"comfortable discussing. Feel free to ask me about my hobbies, work, " +
		"interests, or other aspects of who I am!"

	respectDeflection = "I'd appreciate if we could keep the conversation respectful. " +
		"What else would you like to know about me?"

	fabricationFallback = "That's not a detail I can speak to accurately, so I won't " +
		"make something up. Ask me about my work, projects, or hobbies and I'll " +
		"give you the real story!"

	positivityFallback = "I'd rather focus on what I bring to the table. I'm always " +
		"learning and I'm proud of the work I do. What else would you like to know?"
)
