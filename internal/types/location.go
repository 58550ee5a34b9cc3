package types

// Coordinates is a WGS 84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinates fall inside the WGS 84 ranges.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Category identifies which guide sequence a map location came from.
type Category string

const (
	CategoryRestaurant    Category = "restaurant"
	CategoryAttraction    Category = "attraction"
	CategoryAccommodation Category = "accommodation"
	CategoryPhotoSpot     Category = "photo_spot"
	CategoryPopularPlace  Category = "popular_place"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryRestaurant,
	CategoryAttraction,
	CategoryAccommodation,
	CategoryPhotoSpot,
	CategoryPopularPlace,
}

var categoryLabels = map[Category]string{
	CategoryRestaurant:    "맛집",
	CategoryAttraction:    "즐길거리",
	CategoryAccommodation: "숙소",
	CategoryPhotoSpot:     "사진스폿",
	CategoryPopularPlace:  "인기 장소",
}

// Label returns the display label of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// MapLocation is a guide place flattened for map display. Place holds the
// original record (Restaurant, Attraction, ...) so no per-place field is lost.
type MapLocation struct {
	Name          string   `json:"name"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Category      Category `json:"categoryKey"`
	CategoryLabel string   `json:"category"`
	Detail        string   `json:"detail"`
	Place         any      `json:"place"`
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
}

// Coordinates returns the location's position.
func (m MapLocation) Coordinates() Coordinates {
	return Coordinates{Latitude: m.Latitude, Longitude: m.Longitude}
}
