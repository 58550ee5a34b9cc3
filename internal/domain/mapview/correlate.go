package mapview

import (
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

// MatchKind reports how an itinerary stop was tied to a marker.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchMention MatchKind = "mention"
	MatchNone    MatchKind = "none"
)

// ItineraryLink ties one itinerary stop to a map marker.
type ItineraryLink struct {
	Slot      string             `json:"slot"`
	Index     int                `json:"index"`
	PlaceName string             `json:"placeName"`
	Match     MatchKind          `json:"match"`
	Location  *types.MapLocation `json:"location,omitempty"`
}

// Correlation is the result of linking an itinerary to the map.
type Correlation struct {
	Links     []ItineraryLink `json:"links"`
	Unmatched []string        `json:"unmatched"`
}

// Correlate links itinerary stops to markers by place name. An exact match
// (after trimming) wins; otherwise the stop's name is scanned for exactly one
// known marker name. Stops naming no marker, or several, are left unmatched.
func Correlate(it *types.Itinerary, locs []types.MapLocation) Correlation {
	res := Correlation{Links: []ItineraryLink{}, Unmatched: []string{}}
	if it == nil {
		return res
	}

	byName := make(map[string]int, len(locs))
	patterns := make([]string, 0, len(locs))
	for i, loc := range locs {
		key := nameKey(loc.Name)
		if key == "" {
			continue
		}
		if _, dup := byName[key]; dup {
			continue
		}
		byName[key] = i
		patterns = append(patterns, key)
	}

	var matcher *a.AhoCorasick
	if len(patterns) > 0 {
		builder := a.NewAhoCorasickBuilder(a.Opts{
			AsciiCaseInsensitive: true,
			MatchOnlyWholeWords:  false,
			MatchKind:            a.LeftMostLongestMatch,
		})
		m := builder.Build(patterns)
		matcher = &m
	}

	for _, slot := range it.Slots() {
		for i, item := range slot.Items {
			link := ItineraryLink{Slot: slot.Name, Index: i, PlaceName: item.PlaceName, Match: MatchNone}
			key := nameKey(item.PlaceName)

			if idx, ok := byName[key]; ok {
				loc := locs[idx]
				link.Match = MatchExact
				link.Location = &loc
			} else if idx, ok := mention(matcher, key, patterns, byName); ok {
				loc := locs[idx]
				link.Match = MatchMention
				link.Location = &loc
			} else {
				res.Unmatched = append(res.Unmatched, item.PlaceName)
			}
			res.Links = append(res.Links, link)
		}
	}
	return res
}

// mention finds the single marker name contained in key.
func mention(matcher *a.AhoCorasick, key string, patterns []string, byName map[string]int) (int, bool) {
	if matcher == nil || key == "" {
		return 0, false
	}

	found := -1
	for _, m := range matcher.FindAll(key) {
		idx := byName[patterns[m.Pattern()]]
		if found >= 0 && found != idx {
			return 0, false
		}
		found = idx
	}
	return found, found >= 0
}

func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
