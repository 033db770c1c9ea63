package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
)

// newsQueryPrefix namespaces cached news queries in the shared backend.
const newsQueryPrefix = "news_query:market_news:"

// QueryParams are the request parameters that identify a cached news result.
// Coordinates are rounded before hashing so that nearby requests share a key.
type QueryParams struct {
	Lat       float64
	Lon       float64
	RadiusKm  int
	Index     string
	Days      int
	QueryMode string
}

// cacheKeyParams is the canonical serialized form. Struct field order fixes
// the JSON key order, which keeps the digest deterministic.
type cacheKeyParams struct {
	Days     int     `json:"days"`
	Index    string  `json:"index"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Mode     string  `json:"mode"`
	RadiusKm int     `json:"radius_km"`
}

// QueryKey derives the deterministic cache key for a set of query parameters.
func QueryKey(p QueryParams) string {
	canonical := cacheKeyParams{
		Days:     p.Days,
		Index:    p.Index,
		Lat:      roundTo(p.Lat, 2),
		Lon:      roundTo(p.Lon, 2),
		Mode:     p.QueryMode,
		RadiusKm: p.RadiusKm,
	}

	// Marshal of a flat struct cannot fail.
	serialized, _ := json.Marshal(canonical)

	digest := sha256.Sum256(serialized)
	return newsQueryPrefix + hex.EncodeToString(digest[:])
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
