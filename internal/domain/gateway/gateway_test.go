package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/travelvibe-api/internal/llm"
	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const guideJSON = "```json\n" + `{
  "restaurants": [
    {"name": "해운대 암소갈비집", "description": "오래된 갈비 맛집", "category": "한식", "priceRange": "₩₩₩", "signatureDish": "생갈비", "latitude": 35.163, "longitude": 129.163},
  ],
  "attractions": [],
  "accommodations": [
    {"name": "파라다이스 호텔", "description": "해변 앞 호텔", "priceTier": "Luxury", "rating": 4.6, "latitude": 35.159, "longitude": 129.161}
  ],
  "popularPlaces": [
    {"name": "더베이101", "reason": "야경 명소", "latitude": 35.156, "longitude": 129.152}
  ]
}` + "\n```"

func TestGenerateTravelGuide_ParsesAndNormalizes(t *testing.T) {
	var gotConfig *genai.GenerateContentConfig
	var gotPrompt string
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(_ context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotPrompt = prompt
			gotConfig = config
			return llm.TextResponse(guideJSON), nil
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	guide, err := gw.GenerateTravelGuide(context.Background(), "해운대")
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, `"해운대"`)
	require.NotNil(t, gotConfig)
	assert.Equal(t, "application/json", gotConfig.ResponseMIMEType)

	require.Len(t, guide.Restaurants, 1)
	assert.Equal(t, "₩₩₩", guide.Restaurants[0].PriceRange)
	assert.Equal(t, "생갈비", guide.Restaurants[0].SignatureDish)
	require.Len(t, guide.Accommodations, 1)
	assert.InDelta(t, 4.6, guide.Accommodations[0].Rating, 0.0001)
	assert.NotNil(t, guide.PhotoSpots, "missing categories are normalized to empty slices")
	assert.Empty(t, guide.PhotoSpots)
	assert.Equal(t, 3, guide.PlaceCount())
}

func TestGenerateTravelGuide_BackendError(t *testing.T) {
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(context.Context, string, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	guide, err := gw.GenerateTravelGuide(context.Background(), "경주")
	require.Error(t, err)
	assert.Nil(t, guide)
	assert.ErrorIs(t, err, types.ErrGeneration)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, msgGuideFailed, types.UserMessage(err, "fallback"))
}

func TestGenerateTravelGuide_EmptyAndMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "not json", resp: llm.TextResponse("Sorry, I cannot help with that.")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &llm.TestLLMClient{
				GenerateResponseFn: func(context.Context, string, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return tt.resp, nil
				},
			}
			gw := NewGeminiGateway(client, newTestLogger())

			_, err := gw.GenerateTravelGuide(context.Background(), "제주도")
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrGeneration)
		})
	}
}

func TestGenerateItinerary_EmbedsGuideInPrompt(t *testing.T) {
	guide := &types.TravelGuide{
		Attractions: []types.Attraction{{Name: "불국사", Description: "사찰", Latitude: 35.79, Longitude: 129.33}},
	}
	var gotPrompt string
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(_ context.Context, prompt string, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotPrompt = prompt
			return llm.TextResponse(`{"title":"경주 하루","summary":"천년 고도","morning":[{"placeName":"불국사","activity":"산책"}]}`), nil
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	itinerary, err := gw.GenerateItinerary(context.Background(), guide)
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "불국사")
	assert.Equal(t, "경주 하루", itinerary.Title)
	require.Len(t, itinerary.Morning, 1)
	assert.Equal(t, "불국사", itinerary.Morning[0].PlaceName)
	assert.NotNil(t, itinerary.Afternoon)
	assert.NotNil(t, itinerary.Evening)
}

func TestGenerateItinerary_NilGuide(t *testing.T) {
	called := false
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(context.Context, string, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			called = true
			return nil, nil
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	_, err := gw.GenerateItinerary(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrGeneration)
	assert.False(t, called)
}

func TestGetRecentBlogPosts_UsesSearchToolAndGrounding(t *testing.T) {
	var gotConfig *genai.GenerateContentConfig
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(_ context.Context, _ string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotConfig = config
			resp := llm.TextResponse(`Here are the posts: {"posts":[
				{"title":"해운대 1박 2일","url":"https://blog.example/1","snippet":"바다 뷰"},
				{"title":"","url":"https://blog.example/2","snippet":"제목 없음"}
			]}`)
			resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://blog.example/1", Title: "blog.example"}},
				},
			}
			return resp, nil
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	data, err := gw.GetRecentBlogPosts(context.Background(), "해운대")
	require.NoError(t, err)

	require.NotNil(t, gotConfig)
	require.Len(t, gotConfig.Tools, 1)
	assert.NotNil(t, gotConfig.Tools[0].GoogleSearch)
	assert.Empty(t, gotConfig.ResponseMIMEType)

	require.Len(t, data.Posts, 1, "posts without a title are dropped")
	assert.Equal(t, "https://blog.example/1", data.Posts[0].URL)
	require.Len(t, data.Sources, 1)
	assert.Equal(t, types.WebSource{URI: "https://blog.example/1", Title: "blog.example"}, data.Sources[0])
}

func TestGetRecentBlogPosts_JoinsSplitTextParts(t *testing.T) {
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(context.Context, string, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{
						{Text: `{"posts": [{"title": "a", "url": "https://x/1",`},
						{Text: ` "snippet": "s"}]}`},
					}}},
				},
			}, nil
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	data, err := gw.GetRecentBlogPosts(context.Background(), "해운대")
	require.NoError(t, err)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, "https://x/1", data.Posts[0].URL)
	assert.Equal(t, "s", data.Posts[0].Snippet)
}

func TestGetRecentBlogPosts_EmptyIsSuccess(t *testing.T) {
	client := &llm.TestLLMClient{
		GenerateResponseFn: func(context.Context, string, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return llm.TextResponse(`{"posts": []}`), nil
		},
	}
	gw := NewGeminiGateway(client, newTestLogger())

	data, err := gw.GetRecentBlogPosts(context.Background(), "무명의 섬")
	require.NoError(t, err)
	assert.Empty(t, data.Posts)
	assert.NotNil(t, data.Posts)
	assert.NotNil(t, data.Sources)
}

func TestPrompts(t *testing.T) {
	assert.True(t, strings.Contains(getTravelGuidePrompt("부산"), "photoSpots"))
	assert.Contains(t, getRecentBlogPostsPrompt("부산"), `{"posts": []}`)

	prompt, err := getItineraryPrompt(&types.TravelGuide{})
	require.NoError(t, err)
	assert.Contains(t, prompt, "placeName")
}
