package types

// ItineraryItem is one stop of a generated day plan. PlaceName is expected to
// match a place name from the guide the itinerary was generated from.
type ItineraryItem struct {
	PlaceName string `json:"placeName"`
	Activity  string `json:"activity"`
}

// Itinerary is a generated single-day schedule derived from a guide.
type Itinerary struct {
	Title     string          `json:"title"`
	Summary   string          `json:"summary"`
	Morning   []ItineraryItem `json:"morning"`
	Afternoon []ItineraryItem `json:"afternoon"`
	Evening   []ItineraryItem `json:"evening"`
}

// Slot names used when an itinerary is walked in order.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// Normalize replaces nil slots with empty slices.
func (it *Itinerary) Normalize() {
	if it.Morning == nil {
		it.Morning = []ItineraryItem{}
	}
	if it.Afternoon == nil {
		it.Afternoon = []ItineraryItem{}
	}
	if it.Evening == nil {
		it.Evening = []ItineraryItem{}
	}
}

// ItinerarySlot is one named part of the day.
type ItinerarySlot struct {
	Name  string
	Items []ItineraryItem
}

// Slots returns the three slots in chronological order.
func (it *Itinerary) Slots() []ItinerarySlot {
	return []ItinerarySlot{
		{Name: SlotMorning, Items: it.Morning},
		{Name: SlotAfternoon, Items: it.Afternoon},
		{Name: SlotEvening, Items: it.Evening},
	}
}
