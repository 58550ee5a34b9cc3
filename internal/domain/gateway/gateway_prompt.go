package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

func getTravelGuidePrompt(location string) string {
	return fmt.Sprintf(`
        You are a local travel expert. Build a travel guide for "%s".
        Write every name and text field in Korean.
        Return 3 to 5 entries per category, only real places with accurate coordinates.
        The result must be in JSON format:
        {
            "restaurants": [
                {
                    "name": "Restaurant Name",
                    "description": "Why it is worth visiting",
                    "category": "Cuisine type",
                    "priceRange": "₩|₩₩|₩₩₩|₩₩₩₩",
                    "signatureDish": "The dish to order",
                    "latitude": <float>,
                    "longitude": <float>
                }
            ],
            "attractions": [
                {"name": "Name", "description": "Description", "latitude": <float>, "longitude": <float>}
            ],
            "accommodations": [
                {
                    "name": "Name",
                    "description": "Description",
                    "priceTier": "Budget|Mid-range|Luxury",
                    "rating": <float between 1 and 5>,
                    "latitude": <float>,
                    "longitude": <float>
                }
            ],
            "photoSpots": [
                {"name": "Name", "tip": "Photography tip", "latitude": <float>, "longitude": <float>}
            ],
            "popularPlaces": [
                {"name": "Name", "reason": "Why it is popular right now", "latitude": <float>, "longitude": <float>}
            ]
        }
    `, location)
}

// getItineraryPrompt embeds the guide so the model only schedules places the
// user already sees on the map.
func getItineraryPrompt(guide *types.TravelGuide) (string, error) {
	guideJSON, err := json.Marshal(guide)
	if err != nil {
		return "", fmt.Errorf("failed to encode guide: %w", err)
	}
	return fmt.Sprintf(`
        Using only the places in the travel guide below, plan a relaxed one-day course.
        Write every text field in Korean. Use each placeName exactly as it appears in the guide.
        Travel guide:
        %s
        The result must be in JSON format:
        {
            "title": "Course title",
            "summary": "One or two sentence overview",
            "morning": [{"placeName": "Exact place name", "activity": "What to do there"}],
            "afternoon": [{"placeName": "Exact place name", "activity": "What to do there"}],
            "evening": [{"placeName": "Exact place name", "activity": "What to do there"}]
        }
    `, string(guideJSON)), nil
}

func getRecentBlogPostsPrompt(location string) string {
	return fmt.Sprintf(`
        Search the web for recent Korean travel blog posts about "%s" published within the last year.
        Pick up to 5 posts that describe first-hand visits.
        Respond with JSON only, no commentary:
        {
            "posts": [
                {"title": "Post title", "url": "https://...", "snippet": "One sentence summary in Korean"}
            ]
        }
        If nothing relevant is found respond with {"posts": []}.
    `, location)
}
