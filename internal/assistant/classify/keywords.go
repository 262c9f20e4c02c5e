// internal/assistant/classify/keywords.go
package classify

// Keyword sets drive the classifier tiers. They are data, not logic: the
// matcher in classifier.go never changes when a set is extended. All entries
// must be lowercase; matching is a case-insensitive substring test.

// searchCommandKeywords are explicit imperatives that always force the
// search type regardless of any other signal.
var searchCommandKeywords = []string{
	"najdi",
	"vyhledej",
	"hledej",
	"dohledej",
	"vygoogli",
	"na internetu",
	"z webu",
	"search for",
	"find me",
	"look up",
}

// personalDataKeywords reference the user's own wedding records: counts,
// statuses and aggregates over guests, tasks and budget.
var personalDataKeywords = []string{
	"kolik mám",
	"kolik nám",
	"kolik jsme",
	"můj",
	"moje",
	"mého",
	"naše svatba",
	"náš rozpočet",
	"potvrzen",
	"seznam hostů",
	"zbývá",
	"utratili",
	"úkol",
	"checklist",
	"hotovo",
	"my budget",
	"my guest",
	"my task",
}

// searchIntentKeywords signal a need for current external information
// (recommendations, prices, weather, trends).
var searchIntentKeywords = []string{
	"doporuč",
	"tip na",
	"tipy na",
	"trend",
	"počasí",
	"cena",
	"ceny",
	"kolik stojí",
	"recenze",
	"nejlepší",
	"kde koupit",
	"kde sehnat",
	"aktuální",
	"inspirac",
	"porovnej",
	"weather",
	"recommend",
	"best",
}

// vendorKeywords are wedding service categories. Alone they are ambiguous:
// the question may be about the user's own booked vendor or an open search.
var vendorKeywords = []string{
	"fotograf",
	"kameraman",
	"catering",
	"květin",
	"florist",
	"kapel",
	"hudb",
	"dj na svatbu",
	"svatební salon",
	"šaty",
	"oblek",
	"vizážist",
	"kadeřnic",
	"cukrář",
	"dort",
	"videograf",
	"koordinátor",
	"místo konání",
	"photographer",
	"venue",
}
