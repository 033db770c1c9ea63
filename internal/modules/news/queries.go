package news

// marketImpactQueries are the broader searches used for correlation-based
// analysis: news that moves markets without being market news itself.
var marketImpactQueries = []string{
	// Natural disasters / weather shocks
	"natural disaster economic disruption",
	"hurricane impact supply chains",
	"extreme weather affecting agriculture production",
	"drought effects on commodity prices",

	// Geopolitical shifts (non-financial phrasing)
	"geopolitical tensions international relations",
	"military conflict escalation analysis",
	"trade negotiations government policy update",
	"sanctions global impact industries",

	// Tech & regulation (indirect)
	"technology regulation government policy",
	"data privacy law impact on tech companies",
	"AI regulation industry response",

	// Energy & commodities (indirect)
	"energy grid outage industrial impact",
	"oil supply disruption shipping delays",
	"rare earth mineral shortage manufacturing",

	// Labor markets (indirect)
	"worker strike manufacturing delays",
	"labor shortage industry analysis",

	// Macro society events
	"public health policy update economic activity",
	"major infrastructure failure impact transportation",

	// Corporate signals (indirect)
	"large layoffs impact consumer spending",
	"major cyber attack on corporations security breach",
}

// marketBulletinKeywords flag "obvious" market bulletins by title. Items
// matching any of these get their geo weights multiplied by 0.1 so that
// routine index headlines rank below indirect market signals.
var marketBulletinKeywords = []string{
	// US
	"dow jones", "nasdaq", "s&p", "s&p500", "sp500", "nyse",

	// Europe
	"ftse", "cac 40", "cac40", "dax", "euro stoxx", "stoxx 600",

	// Asia
	"nikkei", "topix", "hang seng", "hsi", "kospi", "shanghai composite",
	"sensex", "nifty 50", "nifty50", "taipei exchange",

	// Middle East
	"tadawul", "adx", "dfm",

	// Americas
	"bovespa", "tsx", "s&p tsx", "mexbol",

	// Global "market movement" keywords
	"market close",
	"index rises",
	"index falls",
	"stocks rally",
	"stocks surge",
	"stocks tumble",
	"share price",
	"market opens",
	"pre-market trading",
	"after-hours trading",
	"closing bell",
}

// bulletinDownweightMultiplier is applied to every geo weight of an item
// whose title matches a bulletin keyword.
const bulletinDownweightMultiplier = 0.1
