package retriever

// expansion pairs a query keyword with the related terms appended when the
// keyword appears anywhere in the lowercased query. Matching is a plain
// substring test, not tokenized, so a keyword can also fire inside a longer
// word; that looseness is intentional and kept deterministic by evaluating
// entries in table order.
type expansion struct {
	keyword string
	terms   []string
}

// queryExpansions maps common interview and personal questions to related
// terms that tend to appear in the knowledge files.
var queryExpansions = []expansion{
	{"weakness", []string{"weakness", "weaknesses", "flaw", "flaws", "struggle", "challenge"}},
	{"weaknesses", []string{"weakness", "weaknesses", "flaw", "flaws", "struggle", "challenge"}},
	{"strength", []string{"strength", "strengths", "strong", "excel", "best"}},
	{"strengths", []string{"strength", "strengths", "strong", "excel", "best"}},
	{"hire", []string{"hire", "why hire", "should hire", "hiring"}},
	{"goal", []string{"goal", "goals", "5 year", "five year", "career", "future"}},
	{"goals", []string{"goal", "goals", "5 year", "five year", "career", "future"}},
	{"left", []string{"left", "leaving", "quit", "resigned", "departure", "position", "last position"}},
	{"last job", []string{"left", "last position", "why left", "departure", "previous role"}},
	{"leave", []string{"left", "leaving", "quit", "resigned", "departure", "last position"}},
	{"failure", []string{"failure", "failed", "mistake", "learning", "lesson"}},
	{"conflict", []string{"conflict", "disagreement", "difficult", "coworker", "handling"}},
	{"stress", []string{"stress", "pressure", "deadline", "deadlines", "handle stress"}},
	{"motivate", []string{"motivate", "motivation", "motivates", "driven", "drive"}},
	{"environment", []string{"environment", "work environment", "ideal", "culture"}},
	{"project", []string{"project", "favorite project", "proud", "accomplishment"}},
	{"technical", []string{"technical", "problem", "challenge", "engineering"}},
	{"personality", []string{"personality", "communication style", "humor", "mannerisms", "phrases", "values conversation"}},
	{"opinions", []string{"opinions", "hot takes", "pet peeves", "food", "lifestyle", "technology opinions"}},
	{"opinion", []string{"opinions", "hot takes", "pet peeves", "views", "beliefs"}},
	{"how does he talk", []string{"communication style", "phrases", "mannerisms", "slang", "gen-z"}},
	{"how do you talk", []string{"communication style", "phrases", "mannerisms", "slang", "gen-z"}},
	{"talk", []string{"communication style", "phrases", "mannerisms"}},
	{"communication", []string{"communication style", "phrases", "mannerisms", "humor"}},
	{"experience", []string{"experience", "work", "job", "role", "position", "employment"}},
	{"skills", []string{"skills", "languages", "technologies", "proficient", "expertise"}},
}
