// Package gateway talks to the generative backend. Every operation is a
// single request: prompt in, structured travel data out.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/travelvibe-api/internal/llm"
	"github.com/FACorreiaa/travelvibe-api/internal/types"
	"github.com/FACorreiaa/travelvibe-api/pkg/observability"
)

const (
	OpGenerateTravelGuide = "GenerateTravelGuide"
	OpGenerateItinerary   = "GenerateItinerary"
	OpGetRecentBlogPosts  = "GetRecentBlogPosts"
)

// User facing failure messages.
const (
	msgGuideFailed     = "여행 정보를 생성하는 데 실패했습니다. 잠시 후 다시 시도해주세요."
	msgItineraryFailed = "AI 일정을 생성하는 데 실패했습니다. 잠시 후 다시 시도해주세요."
	msgBlogFailed      = "최신 블로그 글을 가져오는 데 실패했습니다."
)

var _ TravelGateway = (*GeminiGateway)(nil)

// TravelGateway is the contract the planner depends on.
type TravelGateway interface {
	GenerateTravelGuide(ctx context.Context, location string) (*types.TravelGuide, error)
	GenerateItinerary(ctx context.Context, guide *types.TravelGuide) (*types.Itinerary, error)
	GetRecentBlogPosts(ctx context.Context, location string) (*types.BlogData, error)
}

type GeminiGateway struct {
	aiClient llm.ChatClient
	logger   *slog.Logger
}

func NewGeminiGateway(aiClient llm.ChatClient, logger *slog.Logger) *GeminiGateway {
	return &GeminiGateway{
		aiClient: aiClient,
		logger:   logger.With(slog.String("component", "gateway")),
	}
}

func jsonConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: "application/json",
	}
}

// GenerateTravelGuide asks for the five categorized place lists of location.
func (g *GeminiGateway) GenerateTravelGuide(ctx context.Context, location string) (*types.TravelGuide, error) {
	ctx, span := otel.Tracer("TravelGateway").Start(ctx, OpGenerateTravelGuide, trace.WithAttributes(
		attribute.String("location", location),
	))
	defer span.End()

	var guide types.TravelGuide
	if err := g.generate(ctx, span, OpGenerateTravelGuide, getTravelGuidePrompt(location), jsonConfig(0.7), msgGuideFailed, &guide); err != nil {
		return nil, err
	}
	guide.Normalize()

	span.SetAttributes(
		attribute.Int("guide.restaurants", len(guide.Restaurants)),
		attribute.Int("guide.attractions", len(guide.Attractions)),
		attribute.Int("guide.accommodations", len(guide.Accommodations)),
		attribute.Int("guide.photo_spots", len(guide.PhotoSpots)),
		attribute.Int("guide.popular_places", len(guide.PopularPlaces)),
	)
	span.SetStatus(codes.Ok, "Travel guide generated")
	g.logger.InfoContext(ctx, "Travel guide generated",
		slog.String("location", location),
		slog.Int("places", guide.PlaceCount()))
	return &guide, nil
}

// GenerateItinerary plans a single day from the places of guide.
func (g *GeminiGateway) GenerateItinerary(ctx context.Context, guide *types.TravelGuide) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("TravelGateway").Start(ctx, OpGenerateItinerary, trace.WithAttributes(
		attribute.Int("guide.places", guide.PlaceCount()),
	))
	defer span.End()

	if guide == nil {
		err := types.NewGenerationError(OpGenerateItinerary, msgItineraryFailed, fmt.Errorf("travel guide is required"))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Missing guide")
		return nil, err
	}

	prompt, err := getItineraryPrompt(guide)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build prompt")
		return nil, types.NewGenerationError(OpGenerateItinerary, msgItineraryFailed, err)
	}

	var itinerary types.Itinerary
	if err := g.generate(ctx, span, OpGenerateItinerary, prompt, jsonConfig(0.8), msgItineraryFailed, &itinerary); err != nil {
		return nil, err
	}
	itinerary.Normalize()

	span.SetAttributes(attribute.String("itinerary.title", itinerary.Title))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return &itinerary, nil
}

// GetRecentBlogPosts runs a search-grounded generation. The grounding sources
// reported by the backend are returned alongside the posts.
func (g *GeminiGateway) GetRecentBlogPosts(ctx context.Context, location string) (*types.BlogData, error) {
	ctx, span := otel.Tracer("TravelGateway").Start(ctx, OpGetRecentBlogPosts, trace.WithAttributes(
		attribute.String("location", location),
	))
	defer span.End()

	// The search tool cannot be combined with a JSON response MIME type, so
	// the JSON shape is enforced by the prompt alone.
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	response, txt, err := g.call(ctx, span, OpGetRecentBlogPosts, getRecentBlogPostsPrompt(location), config, msgBlogFailed)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Posts []types.BlogPost `json:"posts"`
	}
	if err := llm.DecodeJSON(txt, &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse blog posts JSON")
		return nil, types.NewGenerationError(OpGetRecentBlogPosts, msgBlogFailed, err)
	}

	data := &types.BlogData{
		Posts:   make([]types.BlogPost, 0, len(payload.Posts)),
		Sources: []types.WebSource{},
	}
	for _, p := range payload.Posts {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.URL) == "" {
			continue
		}
		data.Posts = append(data.Posts, p)
	}
	for _, src := range llm.GroundingSources(response) {
		data.Sources = append(data.Sources, types.WebSource{URI: src.URI, Title: src.Title})
	}

	span.SetAttributes(
		attribute.Int("blog.posts", len(data.Posts)),
		attribute.Int("blog.sources", len(data.Sources)),
	)
	span.SetStatus(codes.Ok, "Blog posts fetched")
	return data, nil
}

// generate performs one call and decodes its JSON payload into out.
func (g *GeminiGateway) generate(ctx context.Context, span trace.Span, op, prompt string, config *genai.GenerateContentConfig, userMsg string, out any) error {
	_, txt, err := g.call(ctx, span, op, prompt, config, userMsg)
	if err != nil {
		return err
	}
	if err := llm.DecodeJSON(txt, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse response JSON")
		g.logger.ErrorContext(ctx, "Failed to parse generated JSON",
			slog.String("operation", op),
			slog.Any("error", err))
		return types.NewGenerationError(op, userMsg, err)
	}
	return nil
}

func (g *GeminiGateway) call(ctx context.Context, span trace.Span, op, prompt string, config *genai.GenerateContentConfig, userMsg string) (*genai.GenerateContentResponse, string, error) {
	span.SetAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("llm.model", g.aiClient.Model()),
	)

	started := time.Now()
	response, err := g.aiClient.GenerateResponse(ctx, prompt, config)
	observability.ObserveGateway(op, started, err)
	span.SetAttributes(attribute.Int64("response.latency_ms", time.Since(started).Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation request failed")
		g.logger.ErrorContext(ctx, "Generation request failed",
			slog.String("operation", op),
			slog.Any("error", err))
		return nil, "", types.NewGenerationError(op, userMsg, err)
	}

	txt := llm.ResponseText(response)
	if txt == "" {
		err := fmt.Errorf("no valid content from AI")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response from AI")
		return nil, "", types.NewGenerationError(op, userMsg, err)
	}
	span.SetAttributes(attribute.Int("response.length", len(txt)))
	return response, txt, nil
}
