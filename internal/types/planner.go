package types

// SearchPhase is the state of the main search flow.
type SearchPhase string

const (
	SearchIdle           SearchPhase = "idle"
	SearchSearching      SearchPhase = "searching"
	SearchSuccess        SearchPhase = "success"
	SearchPartialSuccess SearchPhase = "partial-success"
	SearchFailed         SearchPhase = "failed"
)

// ItineraryPhase is the state of the itinerary overlay, independent of the
// search flow.
type ItineraryPhase string

const (
	ItineraryIdle       ItineraryPhase = "itinerary-idle"
	ItineraryGenerating ItineraryPhase = "itinerary-generating"
	ItineraryReady      ItineraryPhase = "itinerary-ready"
	ItineraryFailed     ItineraryPhase = "itinerary-failed"
)

// PlannerState is a snapshot of everything a client needs to render the
// planner page. Nil pointers mean "absent".
type PlannerState struct {
	Query              string         `json:"query"`
	TravelData         *TravelGuide   `json:"travelData"`
	BlogData           *BlogData      `json:"blogData"`
	Itinerary          *Itinerary     `json:"itinerary"`
	IsLoading          bool           `json:"isLoading"`
	IsItineraryLoading bool           `json:"isItineraryLoading"`
	Error              string         `json:"error,omitempty"`
	UserLocation       *Coordinates   `json:"userLocation"`
	HoveredItemName    string         `json:"hoveredItemName,omitempty"`
	MapLocations       []MapLocation  `json:"mapLocations"`
	SearchPhase        SearchPhase    `json:"searchPhase"`
	ItineraryPhase     ItineraryPhase `json:"itineraryPhase"`
}

// CanGenerateItinerary mirrors the itinerary control: enabled once a guide
// exists and neither operation is in flight.
func (s PlannerState) CanGenerateItinerary() bool {
	return s.TravelData != nil && !s.IsLoading && !s.IsItineraryLoading
}

// SearchOutcome is recorded in the search history.
type SearchOutcome string

const (
	OutcomeSuccess        SearchOutcome = "success"
	OutcomePartialSuccess SearchOutcome = "partial_success"
	OutcomeFailed         SearchOutcome = "failed"
	OutcomeSuperseded     SearchOutcome = "superseded"
)
