package identity

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Match is a recognized speaker: the name they introduced themselves with
// plus their roster entry.
type Match struct {
	Name   string
	Person KnownPerson
}

// selfIDPatterns capture a first name from common self-introductions
// ("I'm Kyle", "my name is Kaleb", "Bri here"). Order matters: earlier
// patterns win over later ones regardless of position in the conversation.
var selfIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:i'?m|i am|this is|it'?s|it is)\s+(\w+)`),
	regexp.MustCompile(`(?i)my name(?:'?s| is)\s+(\w+)`),
	regexp.MustCompile(`(?i)(\w+)\s+here`),
	regexp.MustCompile(`(?i)hey,?\s+it'?s\s+(\w+)`),
}

// Detector recognizes roster members from how they introduce themselves in
// conversation. The roster snapshot swaps atomically on Reload so lookups
// never block behind a re-read of the roster file.
type Detector struct {
	path   string
	logger *zap.Logger

	reloadMu sync.Mutex
	roster   atomic.Pointer[map[string]KnownPerson]
}

// New loads the roster at path. A missing roster file is not an error; the
// detector just never matches anyone.
func New(path string, logger *zap.Logger) (*Detector, error) {
	d := &Detector{path: path, logger: logger}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the roster file and publishes the new snapshot.
func (d *Detector) Reload() error {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	content, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			empty := map[string]KnownPerson{}
			d.roster.Store(&empty)
			d.logger.Warn("roster file missing, identity detection disabled", zap.String("path", d.path))
			return nil
		}
		return fmt.Errorf("reading roster %s: %w", d.path, err)
	}

	roster := parseRoster(string(content))
	d.roster.Store(&roster)
	d.logger.Info("roster loaded", zap.String("path", d.path), zap.Int("people", len(roster)))
	return nil
}

// Size reports how many names the current roster knows.
func (d *Detector) Size() int {
	return len(*d.roster.Load())
}

// People returns a copy of the current roster.
func (d *Detector) People() map[string]KnownPerson {
	snap := *d.roster.Load()
	out := make(map[string]KnownPerson, len(snap))
	for k, v := range snap {
		out[k] = v
	}
	return out
}

// Detect scans prior user messages plus the current one for a
// self-introduction naming someone on the roster. Returns nil when nobody
// recognizable introduced themselves.
func (d *Detector) Detect(userMessages []string, current string) *Match {
	roster := *d.roster.Load()
	if len(roster) == 0 {
		return nil
	}

	parts := make([]string, 0, len(userMessages)+1)
	parts = append(parts, userMessages...)
	if current != "" {
		parts = append(parts, current)
	}
	text := strings.Join(parts, " ")

	for _, re := range selfIDPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			lower := strings.ToLower(m[1])
			if person, ok := roster[lower]; ok {
				return &Match{Name: capitalize(lower), Person: person}
			}
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PromptHint renders a system-prompt fragment telling the persona who it is
// talking to. personaName is the represented individual's own name.
func (m *Match) PromptHint(personaName string) string {
	who := fmt.Sprintf("%s's %s", personaName, m.Person.Qualifier)
	if m.Person.Qualifier == "" {
		who = fmt.Sprintf("someone %s knows", personaName)
	}

	closeness := "a close " + string(m.Person.Relationship)
	if m.Person.Relationship == RelationshipFamily {
		closeness = "family"
	}

	return fmt.Sprintf(`IDENTITY CONTEXT: The user chatting with you has identified as %[1]s, who is %[2]s.
This means the person you're talking to right now IS %[1]s - they're not a stranger, they're someone %[3]s knows personally.

Since %[1]s is %[4]s, you can be more relaxed:
- Use more casual language and slang freely
- Be playful, joke around more
- Don't hold back on expressions like "dude", "yo", "haha"
- Share more openly, be less guarded
- Match their energy - if they're hyped, get hyped with them
- Reference shared experiences or inside jokes from %[3]s's data if relevant
- Remember: YOU are %[3]s's digital voice, THEY are %[1]s visiting`,
		m.Name, who, personaName, closeness)
}
