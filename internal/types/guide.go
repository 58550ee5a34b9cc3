package types

// Restaurant is a dining recommendation.
type Restaurant struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	PriceRange    string  `json:"priceRange"` // ₩ .. ₩₩₩₩
	SignatureDish string  `json:"signatureDish"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

type Attraction struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Accommodation carries a price tier (Budget, Mid-range, Luxury) and a rating.
type Accommodation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceTier   string  `json:"priceTier"`
	Rating      float64 `json:"rating"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type PhotoSpot struct {
	Name      string  `json:"name"`
	Tip       string  `json:"tip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PopularPlace struct {
	Name      string  `json:"name"`
	Reason    string  `json:"reason"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TravelGuide is the aggregate of categorized recommendations for one
// destination. Any of the sequences may be empty.
type TravelGuide struct {
	Restaurants    []Restaurant    `json:"restaurants"`
	Attractions    []Attraction    `json:"attractions"`
	Accommodations []Accommodation `json:"accommodations"`
	PhotoSpots     []PhotoSpot     `json:"photoSpots"`
	PopularPlaces  []PopularPlace  `json:"popularPlaces"`
}

// PlaceCount returns the total number of places across all categories.
func (g *TravelGuide) PlaceCount() int {
	if g == nil {
		return 0
	}
	return len(g.Restaurants) + len(g.Attractions) + len(g.Accommodations) +
		len(g.PhotoSpots) + len(g.PopularPlaces)
}

// PlaceNames lists every place name in category order.
func (g *TravelGuide) PlaceNames() []string {
	if g == nil {
		return nil
	}
	names := make([]string, 0, g.PlaceCount())
	for _, r := range g.Restaurants {
		names = append(names, r.Name)
	}
	for _, a := range g.Attractions {
		names = append(names, a.Name)
	}
	for _, a := range g.Accommodations {
		names = append(names, a.Name)
	}
	for _, p := range g.PhotoSpots {
		names = append(names, p.Name)
	}
	for _, p := range g.PopularPlaces {
		names = append(names, p.Name)
	}
	return names
}

// Normalize replaces nil category slices with empty ones so the guide always
// serializes with five arrays.
func (g *TravelGuide) Normalize() {
	if g.Restaurants == nil {
		g.Restaurants = []Restaurant{}
	}
	if g.Attractions == nil {
		g.Attractions = []Attraction{}
	}
	if g.Accommodations == nil {
		g.Accommodations = []Accommodation{}
	}
	if g.PhotoSpots == nil {
		g.PhotoSpots = []PhotoSpot{}
	}
	if g.PopularPlaces == nil {
		g.PopularPlaces = []PopularPlace{}
	}
}
