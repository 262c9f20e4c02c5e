// internal/assistant/classify/classifier_test.go
package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Tier Ordering Tests
// ==========================

func TestAnalyze_ExplicitCommandAlwaysWins(t *testing.T) {
	// A personal-data keyword is present too; tier 1 must still dominate.
	result := Analyze("Najdi mi kolik mám potvrzených hostů", true)

	assert.Equal(t, QueryTypeSearch, result.QueryType)
	assert.Equal(t, 0.99, result.Confidence)
}

func TestAnalyze_PersonalDataKeyword(t *testing.T) {
	result := Analyze("Kolik mám potvrzených hostů?", true)

	assert.Equal(t, QueryTypePersonal, result.QueryType)
	assert.Equal(t, 0.95, result.Confidence)
	assert.True(t, result.NeedsPersonalContext)
	assert.False(t, result.NeedsRealTimeData)
}

func TestAnalyze_ContextWithNoCompetingSignal(t *testing.T) {
	// No keyword matches at all; context presence forces the personal
	// branch ahead of the final default.
	result := Analyze("Jak to vidíš?", true)

	assert.Equal(t, QueryTypePersonal, result.QueryType)
	assert.Equal(t, 0.95, result.Confidence)
	assert.True(t, result.NeedsPersonalContext)
}

func TestAnalyze_VendorPlusSearchIntent(t *testing.T) {
	result := Analyze("Doporuč mi dobrého fotografa", false)

	assert.Equal(t, QueryTypeSearch, result.QueryType)
	assert.Equal(t, 0.9, result.Confidence)
	assert.True(t, result.NeedsRealTimeData)
	assert.True(t, result.NeedsExternalSources)
}

func TestAnalyze_SearchIntentAlone(t *testing.T) {
	result := Analyze("Jaké bude počasí v červnu?", false)

	assert.Equal(t, QueryTypeSearch, result.QueryType)
	assert.Equal(t, 0.85, result.Confidence)
	assert.True(t, result.NeedsRealTimeData)
}

func TestAnalyze_VendorOnlyIsAmbiguous(t *testing.T) {
	result := Analyze("fotograf", false)

	assert.Equal(t, QueryTypeHybrid, result.QueryType)
	assert.Equal(t, 0.7, result.Confidence)
	assert.False(t, result.NeedsRealTimeData)
	assert.True(t, result.NeedsExternalSources)
}

func TestAnalyze_DefaultIsPersonal(t *testing.T) {
	result := Analyze("Ahoj, jak se máš dneska?", false)

	assert.Equal(t, QueryTypePersonal, result.QueryType)
	assert.Equal(t, 0.8, result.Confidence)
	assert.False(t, result.NeedsRealTimeData)
	assert.False(t, result.NeedsExternalSources)
}

// ==========================
// Scenario Tests
// ==========================

func TestAnalyze_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		hasContext bool
		wantType   QueryType
	}{
		{"confirmed guests with context", "Kolik mám potvrzených hostů?", true, QueryTypePersonal},
		{"find photographer in Prague", "Najdi mi fotografa v Praze", false, QueryTypeSearch},
		{"explicit english command", "Find me a wedding venue", false, QueryTypeSearch},
		{"vendor with context falls through to hybrid", "fotograf", true, QueryTypeHybrid},
		{"price question", "Kolik stojí svatební dort?", false, QueryTypeSearch},
		{"case insensitive", "NAJDI KAPELU", false, QueryTypeSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.query, tt.hasContext)
			assert.Equal(t, tt.wantType, result.QueryType)
		})
	}
}

// ==========================
// Determinism
// ==========================

func TestAnalyze_Deterministic(t *testing.T) {
	queries := []string{
		"Najdi mi fotografa v Praze",
		"Kolik mám potvrzených hostů?",
		"fotograf",
		"Jak to vidíš?",
		"",
	}

	for _, query := range queries {
		for _, hasContext := range []bool{true, false} {
			first := Analyze(query, hasContext)
			for i := 0; i < 100; i++ {
				assert.Equal(t, first, Analyze(query, hasContext),
					"query %q hasContext %v must classify identically", query, hasContext)
			}
		}
	}
}

func TestAnalyze_EmptyQuery(t *testing.T) {
	result := Analyze("", false)

	assert.Equal(t, QueryTypePersonal, result.QueryType)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestKeywordSets_AllLowercase(t *testing.T) {
	sets := map[string][]string{
		"searchCommand": searchCommandKeywords,
		"personalData":  personalDataKeywords,
		"searchIntent":  searchIntentKeywords,
		"vendor":        vendorKeywords,
	}

	for name, set := range sets {
		assert.NotEmpty(t, set, name)
		for _, kw := range set {
			assert.Equal(t, kw, toLower(kw), "keyword %q in set %s must be lowercase", kw, name)
		}
	}
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + 32
		}
	}
	return string(out)
}
