// Package exchanges provides the static reference table of stock exchanges
// used for proximity ranking and impact analysis.
package exchanges

import (
	"sort"

	"github.com/aristath/newsradar/internal/geo"
)

// Exchange describes a single stock exchange. Entries are static reference
// data: loaded once, never mutated at runtime.
type Exchange struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Location geo.Coordinate `json:"location"`
	City     string         `json:"city"`
	Country  string         `json:"country"`
	Indices  []string       `json:"indices"`
	Sectors  []string       `json:"-"`
}

// Ranked pairs an exchange with its distance from a query location.
type Ranked struct {
	Exchange   Exchange
	DistanceKm float64
}

// registry is an ordered list, not a map: iteration order is the tie-break
// policy for equidistant exchanges (NYSE and NASDAQ share coordinates).
var registry = []Exchange{
	{
		ID:       "NYSE",
		Name:     "New York Stock Exchange",
		Location: geo.Coordinate{Lat: 40.7128, Lon: -74.0060},
		City:     "New York",
		Country:  "USA",
		Indices:  []string{"S&P 500", "Dow Jones", "NYSE Composite"},
		Sectors:  []string{"Technology", "Finance", "Healthcare", "Energy"},
	},
	{
		ID:       "NASDAQ",
		Name:     "NASDAQ",
		Location: geo.Coordinate{Lat: 40.7128, Lon: -74.0060},
		City:     "New York",
		Country:  "USA",
		Indices:  []string{"NASDAQ Composite", "NASDAQ-100"},
		Sectors:  []string{"Technology", "Biotech", "Internet"},
	},
	{
		ID:       "LSE",
		Name:     "London Stock Exchange",
		Location: geo.Coordinate{Lat: 51.5074, Lon: -0.1278},
		City:     "London",
		Country:  "UK",
		Indices:  []string{"FTSE 100", "FTSE 250"},
		Sectors:  []string{"Finance", "Oil & Gas", "Mining", "Pharmaceuticals"},
	},
	{
		ID:       "TSE",
		Name:     "Tokyo Stock Exchange",
		Location: geo.Coordinate{Lat: 35.6762, Lon: 139.6503},
		City:     "Tokyo",
		Country:  "Japan",
		Indices:  []string{"Nikkei 225", "TOPIX"},
		Sectors:  []string{"Automotive", "Electronics", "Finance"},
	},
	{
		ID:       "SSE",
		Name:     "Shanghai Stock Exchange",
		Location: geo.Coordinate{Lat: 31.2304, Lon: 121.4737},
		City:     "Shanghai",
		Country:  "China",
		Indices:  []string{"SSE Composite", "SSE 50"},
		Sectors:  []string{"Finance", "Real Estate", "Manufacturing"},
	},
	{
		ID:       "BSE",
		Name:     "Bombay Stock Exchange",
		Location: geo.Coordinate{Lat: 18.9294, Lon: 72.8310},
		City:     "Mumbai",
		Country:  "India",
		Indices:  []string{"BSE Sensex", "BSE 500"},
		Sectors:  []string{"IT Services", "Banking", "Pharmaceuticals"},
	},
	{
		ID:       "HKEX",
		Name:     "Hong Kong Stock Exchange",
		Location: geo.Coordinate{Lat: 22.3193, Lon: 114.1694},
		City:     "Hong Kong",
		Country:  "Hong Kong",
		Indices:  []string{"Hang Seng", "Hang Seng Tech"},
		Sectors:  []string{"Finance", "Real Estate", "Technology"},
	},
	{
		ID:       "FSE",
		Name:     "Frankfurt Stock Exchange",
		Location: geo.Coordinate{Lat: 50.1109, Lon: 8.6821},
		City:     "Frankfurt",
		Country:  "Germany",
		Indices:  []string{"DAX", "MDAX"},
		Sectors:  []string{"Automotive", "Finance", "Chemicals"},
	},
}

// Registry provides read-only access to the exchange reference table.
type Registry struct{}

// NewRegistry creates a new exchange registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Get returns the exchange with the given id.
func (r *Registry) Get(id string) (Exchange, bool) {
	for _, ex := range registry {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exchange{}, false
}

// All returns every exchange in declaration order.
func (r *Registry) All() []Exchange {
	out := make([]Exchange, len(registry))
	copy(out, registry)
	return out
}

// Nearest returns the n exchanges closest to the given location, sorted
// ascending by distance. Ties keep declaration order (stable sort).
func (r *Registry) Nearest(c geo.Coordinate, n int) []Ranked {
	ranked := make([]Ranked, 0, len(registry))
	for _, ex := range registry {
		ranked = append(ranked, Ranked{
			Exchange:   ex,
			DistanceKm: geo.Distance(c, ex.Location),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
