// Package mapview derives the map layer from a travel guide: flattened
// markers, distances from the user, nearest-place lookups and the links
// between itinerary stops and markers.
package mapview

import (
	"math"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

const earthRadius = 6371.0 // km

// Locations flattens the guide into map markers. Categories follow
// types.Categories order and guide order is kept within each category. The
// guide is not modified.
func Locations(guide *types.TravelGuide) []types.MapLocation {
	if guide == nil {
		return []types.MapLocation{}
	}

	locs := make([]types.MapLocation, 0, guide.PlaceCount())
	for _, r := range guide.Restaurants {
		locs = append(locs, newLocation(types.CategoryRestaurant, r.Name, r.Description, r.Latitude, r.Longitude, r))
	}
	for _, a := range guide.Attractions {
		locs = append(locs, newLocation(types.CategoryAttraction, a.Name, a.Description, a.Latitude, a.Longitude, a))
	}
	for _, a := range guide.Accommodations {
		locs = append(locs, newLocation(types.CategoryAccommodation, a.Name, a.Description, a.Latitude, a.Longitude, a))
	}
	for _, p := range guide.PhotoSpots {
		locs = append(locs, newLocation(types.CategoryPhotoSpot, p.Name, p.Tip, p.Latitude, p.Longitude, p))
	}
	for _, p := range guide.PopularPlaces {
		locs = append(locs, newLocation(types.CategoryPopularPlace, p.Name, p.Reason, p.Latitude, p.Longitude, p))
	}
	return locs
}

func newLocation(category types.Category, name, detail string, lat, lng float64, place any) types.MapLocation {
	return types.MapLocation{
		Name:          name,
		Latitude:      lat,
		Longitude:     lng,
		Category:      category,
		CategoryLabel: category.Label(),
		Detail:        detail,
		Place:         place,
	}
}

// WithDistances returns a copy of locs with DistanceKm set relative to from.
func WithDistances(locs []types.MapLocation, from types.Coordinates) []types.MapLocation {
	out := make([]types.MapLocation, len(locs))
	for i, loc := range locs {
		d := Distance(from, loc.Coordinates())
		loc.DistanceKm = &d
		out[i] = loc
	}
	return out
}

// Distance is the great-circle distance in kilometres.
func Distance(a, b types.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
