// Package impact classifies the likely market impact of a news item using
// keyword heuristics. Classification is a pure function: no I/O, no
// randomness, identical inputs always produce identical output.
package impact

import (
	"fmt"
	"strings"

	"github.com/aristath/newsradar/internal/modules/exchanges"
)

// Impact direction values.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// Confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Assessment is the outcome of classifying one news item against one exchange.
type Assessment struct {
	PredictedImpact string   `json:"predicted_impact"`
	Reasoning       string   `json:"reasoning"`
	Confidence      string   `json:"confidence"`
	AffectedSectors []string `json:"affected_sectors"`
	PositiveSignals int      `json:"positive_signals"`
	NegativeSignals int      `json:"negative_signals"`
}

var positiveIndicators = []string{
	"growth", "profit", "increase", "rise", "gain", "success", "breakthrough",
	"recovery", "expansion", "boost", "strong earnings", "beat expectations",
	"innovation", "deal", "merger", "acquisition", "investment",
}

var negativeIndicators = []string{
	"crisis", "recession", "decline", "fall", "loss", "layoff", "bankruptcy",
	"investigation", "lawsuit", "scandal", "miss expectations", "downgrade",
	"conflict", "tension", "disruption", "shortage", "inflation",
}

type macroIndicator struct {
	phrase string
	impact string
	reason string
}

// macroIndicators is a priority list, not a set: the first matching phrase
// wins, so declaration order decides outcomes on overlapping phrases.
var macroIndicators = []macroIndicator{
	{
		phrase: "interest rate hike",
		impact: ImpactNegative,
		reason: "Higher interest rates increase borrowing costs and can slow economic growth",
	},
	{
		phrase: "interest rate cut",
		impact: ImpactPositive,
		reason: "Lower interest rates stimulate economic activity and make stocks more attractive",
	},
	{
		phrase: "inflation rise",
		impact: ImpactNegative,
		reason: "Rising inflation erodes purchasing power and may lead to tighter monetary policy",
	},
	{
		phrase: "unemployment fall",
		impact: ImpactPositive,
		reason: "Lower unemployment indicates economic strength and consumer spending power",
	},
	{
		phrase: "trade war",
		impact: ImpactNegative,
		reason: "Trade tensions disrupt supply chains and reduce international commerce",
	},
	{
		phrase: "economic stimulus",
		impact: ImpactPositive,
		reason: "Government stimulus packages inject liquidity and boost economic activity",
	},
	{
		phrase: "supply chain",
		impact: ImpactNegative,
		reason: "Supply chain disruptions increase costs and reduce profit margins",
	},
	{
		phrase: "geopolitical tension",
		impact: ImpactNegative,
		reason: "Geopolitical uncertainty increases market volatility and risk aversion",
	},
	{
		phrase: "natural disaster",
		impact: ImpactNegative,
		reason: "Disasters disrupt logistics, agriculture, and insurance sectors, which can ripple into broader markets.",
	},
	{
		phrase: "supply chain delay",
		impact: ImpactNegative,
		reason: "Delays in global shipping increase costs and reduce corporate margins.",
	},
	{
		phrase: "government regulation",
		impact: ImpactNegative,
		reason: "Regulatory tightening increases compliance costs and constrains business flexibility.",
	},
	{
		phrase: "cyber attack",
		impact: ImpactNegative,
		reason: "Cyber breaches increase operational risk and can destabilize investor confidence.",
	},
	{
		phrase: "large layoffs",
		impact: ImpactNegative,
		reason: "Mass layoffs signal corporate distress and reduce consumer spending.",
	},
	{
		phrase: "labor strike",
		impact: ImpactNegative,
		reason: "Strikes halt production and disrupt supply chains.",
	},
	{
		phrase: "heatwave",
		impact: ImpactNegative,
		reason: "Extreme heat affects agriculture, energy demand, and worker productivity.",
	},
}

// Classify scores the title and snippet of a news item against an exchange's
// sector profile and returns the predicted market impact.
func Classify(title, snippet string, ex exchanges.Exchange) Assessment {
	text := strings.ToLower(title) + " " + strings.ToLower(snippet)

	positiveCount := countMatches(text, positiveIndicators)
	negativeCount := countMatches(text, negativeIndicators)

	var predicted, reasoning, confidence string
	if macro, ok := matchMacroIndicator(text); ok {
		predicted = macro.impact
		reasoning = macro.reason
		confidence = ConfidenceHigh
	} else if positiveCount > negativeCount {
		predicted = ImpactPositive
		reasoning = fmt.Sprintf("News contains positive market indicators suggesting growth and stability for %s", ex.Name)
		confidence = ConfidenceMedium
	} else if negativeCount > positiveCount {
		predicted = ImpactNegative
		reasoning = fmt.Sprintf("News contains negative market indicators that may cause uncertainty and selling pressure in %s", ex.Name)
		confidence = ConfidenceMedium
	} else {
		predicted = ImpactNeutral
		reasoning = "News appears to have mixed or neutral impact on market sentiment"
		confidence = ConfidenceLow
	}

	affected := []string{}
	for _, sector := range ex.Sectors {
		if strings.Contains(text, strings.ToLower(sector)) {
			affected = append(affected, sector)
		}
	}

	return Assessment{
		PredictedImpact: predicted,
		Reasoning:       reasoning,
		Confidence:      confidence,
		AffectedSectors: affected,
		PositiveSignals: positiveCount,
		NegativeSignals: negativeCount,
	}
}

// countMatches counts indicator words present in the text. Matches are
// independent substring checks, not mutually exclusive.
func countMatches(text string, indicators []string) int {
	count := 0
	for _, indicator := range indicators {
		if strings.Contains(text, indicator) {
			count++
		}
	}
	return count
}

// matchMacroIndicator scans the priority list in declaration order and
// returns the first matching entry.
func matchMacroIndicator(text string) (macroIndicator, bool) {
	for _, macro := range macroIndicators {
		if strings.Contains(text, macro.phrase) {
			return macro, true
		}
	}
	return macroIndicator{}, false
}
