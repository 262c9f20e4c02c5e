// internal/assistant/classify/classifier.go
package classify

import "strings"

// QueryType tags the routing category of a question.
type QueryType string

const (
	QueryTypePersonal QueryType = "personal"
	QueryTypeSearch   QueryType = "search"
	QueryTypeHybrid   QueryType = "hybrid"
)

// Result is the classification of a single question. It is fully determined
// by (query, hasContext); Analyze performs no I/O and never fails.
type Result struct {
	NeedsRealTimeData    bool      `json:"needsRealTimeData"`
	NeedsExternalSources bool      `json:"needsExternalSources"`
	NeedsPersonalContext bool      `json:"needsPersonalContext"`
	QueryType            QueryType `json:"queryType"`
	Confidence           float64   `json:"confidence"`
}

// Analyze classifies a question using priority-ordered keyword tiers:
//
//  1. explicit search command            -> search, 0.99
//  2. personal-data reference, or context
//     present with no competing signal   -> personal, 0.95
//  3. search intent + vendor category    -> search, 0.9
//  4. search intent alone                -> search, 0.85
//  5. vendor category alone (ambiguous)  -> hybrid, 0.7
//  6. default                            -> personal, 0.8
//
// Unclassified chit-chat defaults to personal so it never incurs a search
// call. False positives are acceptable; downstream strategies degrade
// gracefully.
func Analyze(query string, hasContext bool) Result {
	q := strings.ToLower(query)

	command := matchesAny(q, searchCommandKeywords)
	personal := matchesAny(q, personalDataKeywords)
	intent := matchesAny(q, searchIntentKeywords)
	vendor := matchesAny(q, vendorKeywords)

	var queryType QueryType
	var confidence float64

	switch {
	case command:
		queryType, confidence = QueryTypeSearch, 0.99
	case personal || (hasContext && !intent && !vendor):
		queryType, confidence = QueryTypePersonal, 0.95
	case intent && vendor:
		queryType, confidence = QueryTypeSearch, 0.9
	case intent:
		queryType, confidence = QueryTypeSearch, 0.85
	case vendor:
		queryType, confidence = QueryTypeHybrid, 0.7
	default:
		queryType, confidence = QueryTypePersonal, 0.8
	}

	needsRealTime := command || intent

	return Result{
		NeedsRealTimeData:    needsRealTime,
		NeedsExternalSources: needsRealTime || vendor,
		NeedsPersonalContext: personal || hasContext,
		QueryType:            queryType,
		Confidence:           confidence,
	}
}

func matchesAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
