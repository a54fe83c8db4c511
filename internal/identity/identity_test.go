package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleRoster = `My younger sister, her name is Maya, is studying in Boston.
My older brother, his name is Derek.
My dad's name is Robert and my mom's name is Linda.
My girlfriend's name is Brianna or Bri.

Colorado Friends: Kyle, Cam (ask him about the van), Parisa Nguyen
California Friends: Kaleb
`

func writeRoster(t *testing.T, content string) *Detector {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family_and_friends.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseRoster(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	want := map[string]KnownPerson{
		"maya":    {RelationshipFamily, "sister"},
		"derek":   {RelationshipFamily, "brother"},
		"robert":  {RelationshipFamily, "dad"},
		"linda":   {RelationshipFamily, "mom"},
		"brianna": {RelationshipPartner, "girlfriend"},
		"bri":     {RelationshipPartner, "girlfriend"},
		"kyle":    {RelationshipFriend, "Colorado friend"},
		"cam":     {RelationshipFriend, "Colorado friend"},
		"parisa":  {RelationshipFriend, "Colorado friend"},
		"kaleb":   {RelationshipFriend, "California friend"},
	}

	people := d.People()
	if len(people) != len(want) {
		t.Fatalf("got %d people, want %d: %v", len(people), len(want), people)
	}
	for name, person := range want {
		got, ok := people[name]
		if !ok {
			t.Errorf("missing %q", name)
			continue
		}
		if got != person {
			t.Errorf("%q = %+v, want %+v", name, got, person)
		}
	}
}

func TestDetectFamilyMember(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	m := d.Detect(nil, "Hey, I'm Robert. How's it going?")
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Name != "Robert" {
		t.Errorf("Name = %q, want Robert", m.Name)
	}
	if m.Person.Relationship != RelationshipFamily || m.Person.Qualifier != "dad" {
		t.Errorf("got %+v, want family/dad", m.Person)
	}
}

func TestDetectFromHistory(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	history := []string{"yo what's up", "this is kyle btw"}
	m := d.Detect(history, "what are you doing this weekend")
	if m == nil {
		t.Fatal("expected a match from earlier messages")
	}
	if m.Person.Qualifier != "Colorado friend" {
		t.Errorf("qualifier = %q, want Colorado friend", m.Person.Qualifier)
	}
}

func TestDetectPartnerNickname(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	m := d.Detect(nil, "hey, it's bri")
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Person.Relationship != RelationshipPartner {
		t.Errorf("relationship = %q, want partner", m.Person.Relationship)
	}
}

func TestDetectUnknownName(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	if m := d.Detect(nil, "Hi, I'm Gerald"); m != nil {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestDetectNoIntroduction(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	if m := d.Detect(nil, "What kind of music do you listen to?"); m != nil {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestMissingRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")
	d, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if d.Size() != 0 {
		t.Errorf("Size = %d, want 0", d.Size())
	}
	if m := d.Detect(nil, "I'm Robert"); m != nil {
		t.Fatalf("unexpected match with empty roster: %+v", m)
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family_and_friends.txt")
	if err := os.WriteFile(path, []byte("My dad's name is Robert."), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if d.Size() != 1 {
		t.Fatalf("Size = %d, want 1", d.Size())
	}

	if err := os.WriteFile(path, []byte(sampleRoster), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := d.Reload(); err != nil {
		t.Fatal(err)
	}
	if m := d.Detect(nil, "I'm Maya"); m == nil {
		t.Fatal("expected match after reload")
	}
}

func TestPromptHint(t *testing.T) {
	d := writeRoster(t, sampleRoster)

	m := d.Detect(nil, "I'm Maya")
	if m == nil {
		t.Fatal("expected a match")
	}
	hint := m.PromptHint("Cameron")
	for _, want := range []string{"Maya", "Cameron's sister", "IDENTITY CONTEXT", "family"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint missing %q:\n%s", want, hint)
		}
	}
}
