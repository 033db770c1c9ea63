package impact

import (
	"testing"

	"github.com/aristath/newsradar/internal/modules/exchanges"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExchange() exchanges.Exchange {
	return exchanges.Exchange{
		ID:      "NYSE",
		Name:    "New York Stock Exchange",
		Sectors: []string{"Technology", "Finance", "Healthcare", "Energy"},
	}
}

func TestClassifyMacroIndicators(t *testing.T) {
	ex := testExchange()

	tests := []struct {
		name     string
		title    string
		snippet  string
		impact   string
		contains string
	}{
		{
			name:     "interest rate hike is negative",
			title:    "Fed announces interest rate hike",
			snippet:  "",
			impact:   ImpactNegative,
			contains: "borrowing costs",
		},
		{
			name:     "interest rate cut is positive",
			title:    "Central bank signals interest rate cut next quarter",
			snippet:  "",
			impact:   ImpactPositive,
			contains: "stimulate",
		},
		{
			name:     "economic stimulus is positive",
			title:    "Government unveils economic stimulus package",
			snippet:  "",
			impact:   ImpactPositive,
			contains: "liquidity",
		},
		{
			name:     "macro phrase found in snippet",
			title:    "Factories report slowdowns",
			snippet:  "Analysts point at an ongoing trade war between major economies",
			impact:   ImpactNegative,
			contains: "supply chains",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.title, tt.snippet, ex)
			assert.Equal(t, tt.impact, result.PredictedImpact)
			assert.Equal(t, ConfidenceHigh, result.Confidence)
			assert.Contains(t, result.Reasoning, tt.contains)
		})
	}
}

func TestClassifyMacroOrderFirstMatchWins(t *testing.T) {
	ex := testExchange()

	// "supply chain" precedes "supply chain delay" in the priority list, so
	// text containing both must resolve via the shorter phrase's reasoning.
	result := Classify("Reports warn of supply chain delay across ports", "", ex)
	assert.Equal(t, ImpactNegative, result.PredictedImpact)
	assert.Equal(t, "Supply chain disruptions increase costs and reduce profit margins", result.Reasoning)
}

func TestClassifyIndicatorCounting(t *testing.T) {
	ex := testExchange()

	tests := []struct {
		name       string
		title      string
		snippet    string
		impact     string
		confidence string
	}{
		{
			name:       "more positive than negative",
			title:      "Record profit and growth reported",
			snippet:    "Strong recovery continues",
			impact:     ImpactPositive,
			confidence: ConfidenceMedium,
		},
		{
			name:       "more negative than positive",
			title:      "Bankruptcy fears amid lawsuit",
			snippet:    "Shares fall on the news",
			impact:     ImpactNegative,
			confidence: ConfidenceMedium,
		},
		{
			name:       "no indicators is neutral low",
			title:      "Company holds annual meeting",
			snippet:    "Shareholders attended",
			impact:     ImpactNeutral,
			confidence: ConfidenceLow,
		},
		{
			name:       "balanced counts are neutral",
			title:      "Profit up despite decline elsewhere",
			snippet:    "",
			impact:     ImpactNeutral,
			confidence: ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.title, tt.snippet, ex)
			assert.Equal(t, tt.impact, result.PredictedImpact)
			assert.Equal(t, tt.confidence, result.Confidence)
		})
	}
}

func TestClassifySignalCounts(t *testing.T) {
	ex := testExchange()

	result := Classify("Growth and profit rise", "But layoff worries remain", ex)
	assert.Equal(t, 3, result.PositiveSignals)
	assert.Equal(t, 1, result.NegativeSignals)
}

func TestClassifyAffectedSectors(t *testing.T) {
	ex := testExchange()

	result := Classify("Technology and energy firms rally", "Finance stays flat", ex)
	// Order follows the exchange's sector list, not text order.
	assert.Equal(t, []string{"Technology", "Finance", "Energy"}, result.AffectedSectors)
}

func TestClassifyNoSectorMatch(t *testing.T) {
	ex := exchanges.Exchange{
		ID:      "SSE",
		Name:    "Shanghai Stock Exchange",
		Sectors: []string{"Finance", "Real Estate", "Manufacturing"},
	}

	result := Classify("Severe drought cuts global wheat yields", "", ex)
	require.NotNil(t, result.AffectedSectors)
	assert.Empty(t, result.AffectedSectors)
	// "drought" is not an indicator or macro phrase by itself; yields no
	// counted signals either way.
	assert.Equal(t, ImpactNeutral, result.PredictedImpact)
}

func TestClassifyIsPure(t *testing.T) {
	ex := testExchange()

	first := Classify("Merger deal announced", "Acquisition boosts growth", ex)
	second := Classify("Merger deal announced", "Acquisition boosts growth", ex)
	assert.Equal(t, first, second)
}
