package identity

import (
	"regexp"
	"strings"
)

// Relationship classifies how a known person relates to the represented
// individual.
type Relationship string

const (
	RelationshipFamily  Relationship = "family"
	RelationshipPartner Relationship = "partner"
	RelationshipFriend  Relationship = "friend"
)

// KnownPerson is one roster entry: a relationship class plus a qualifier
// like "sister" or "Colorado friend".
type KnownPerson struct {
	Relationship Relationship
	Qualifier    string
}

// familyPatterns extract explicitly narrated family names, e.g.
// "my younger sister, her name is Maya" or "dad's name is Robert".
var familyPatterns = []struct {
	re        *regexp.Regexp
	qualifier string
}{
	{regexp.MustCompile(`(?i)younger sister.*?name is (\w+)`), "sister"},
	{regexp.MustCompile(`(?i)older brother.*?name is (\w+)`), "brother"},
	{regexp.MustCompile(`(?i)dad'?s? name is (\w+)`), "dad"},
	{regexp.MustCompile(`(?i)mom'?s? name is (\w+)`), "mom"},
}

// partnerPattern captures the partner's name with an optional nickname
// alias, e.g. "girlfriend's name is Brianna or Bri".
var partnerPattern = regexp.MustCompile(`(?i)(girlfriend|boyfriend|partner)'?s? name is (\w+)(?: or (\w+))?`)

// friendGroupPattern captures comma-separated name lists under labeled
// headings, e.g. "Colorado Friends: Kyle, Cam (ask about the van), Parisa".
var friendGroupPattern = regexp.MustCompile(`(?im)^([A-Z][A-Za-z ]*?) Friends?:[ \t]*(.+)$`)

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// parseRoster builds the name → KnownPerson map from roster text. Keys are
// case-folded first names; on collision the last writer wins.
func parseRoster(content string) map[string]KnownPerson {
	roster := make(map[string]KnownPerson)

	for _, fp := range familyPatterns {
		if m := fp.re.FindStringSubmatch(content); m != nil {
			roster[strings.ToLower(m[1])] = KnownPerson{RelationshipFamily, fp.qualifier}
		}
	}

	if m := partnerPattern.FindStringSubmatch(content); m != nil {
		qualifier := strings.ToLower(m[1])
		roster[strings.ToLower(m[2])] = KnownPerson{RelationshipPartner, qualifier}
		if m[3] != "" {
			roster[strings.ToLower(m[3])] = KnownPerson{RelationshipPartner, qualifier}
		}
	}

	for _, m := range friendGroupPattern.FindAllStringSubmatch(content, -1) {
		qualifier := strings.TrimSpace(m[1]) + " friend"
		names := parenthetical.ReplaceAllString(m[2], "")
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			// Multi-word names index by first name only.
			first := strings.Fields(name)[0]
			roster[strings.ToLower(first)] = KnownPerson{RelationshipFriend, qualifier}
		}
	}

	return roster
}
