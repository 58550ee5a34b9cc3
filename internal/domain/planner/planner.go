// Package planner owns the per-session travel planner: the search flow, the
// itinerary overlay and everything the page renders from them.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/travelvibe-api/internal/domain/gateway"
	"github.com/FACorreiaa/travelvibe-api/internal/domain/geolocation"
	"github.com/FACorreiaa/travelvibe-api/internal/domain/history"
	"github.com/FACorreiaa/travelvibe-api/internal/domain/mapview"
	"github.com/FACorreiaa/travelvibe-api/internal/types"
	"github.com/FACorreiaa/travelvibe-api/pkg/observability"
)

// User facing messages.
const (
	MsgEmptyQuery      = "여행지를 입력해주세요."
	MsgSearchFailed    = "여행 정보를 가져오는 데 실패했습니다."
	MsgItineraryFailed = "일정 생성에 실패했습니다."
)

// Observer receives a snapshot after every state change. It is called with
// the planner lock held, in mutation order, and must not call back into the
// Planner.
type Observer func(types.PlannerState)

type Option func(*Planner)

// WithObserver registers fn to be notified of state changes.
func WithObserver(fn Observer) Option {
	return func(p *Planner) { p.observer = fn }
}

// WithRecorder sets where finished searches are logged.
func WithRecorder(r history.Recorder) Option {
	return func(p *Planner) { p.recorder = r }
}

// WithSessionID tags history records and logs with the owning session.
func WithSessionID(id string) Option {
	return func(p *Planner) { p.sessionID = id }
}

// WithLocatorTimeout bounds each geolocation request.
func WithLocatorTimeout(d time.Duration) Option {
	return func(p *Planner) { p.locatorTimeout = d }
}

type Planner struct {
	gateway        gateway.TravelGateway
	recorder       history.Recorder
	observer       Observer
	logger         *slog.Logger
	sessionID      string
	locatorTimeout time.Duration

	mu    sync.Mutex
	state types.PlannerState
	// derived from state.TravelData
	locations []types.MapLocation
	index     *mapview.Index
	// bumped on every accepted search; work started under an older value is stale
	generation uint64
}

func New(gw gateway.TravelGateway, logger *slog.Logger, opts ...Option) *Planner {
	p := &Planner{
		gateway:   gw,
		logger:    logger,
		locations: []types.MapLocation{},
		index:     mapview.NewIndex(nil),
		state: types.PlannerState{
			SearchPhase:    types.SearchIdle,
			ItineraryPhase: types.ItineraryIdle,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("service", "planner"))
	if p.sessionID != "" {
		p.logger = p.logger.With(slog.String("session_id", p.sessionID))
	}
	return p
}

// Search runs one search for location. An empty location only sets the
// validation message and returns ErrValidation. Any other failure is
// reflected in the state and Search returns nil.
func (p *Planner) Search(ctx context.Context, location string, locator geolocation.Locator) error {
	ctx, span := otel.Tracer("Planner").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("location", location),
	))
	defer span.End()

	l := p.logger.With(slog.String("method", "Search"))

	query := strings.TrimSpace(location)
	if query == "" {
		p.mu.Lock()
		p.state.Error = MsgEmptyQuery
		p.notifyLocked()
		p.mu.Unlock()

		span.SetStatus(codes.Error, "empty location")
		return fmt.Errorf("%w: location is required", types.ErrValidation)
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.state.Query = query
	p.state.TravelData = nil
	p.state.BlogData = nil
	p.state.Itinerary = nil
	p.state.UserLocation = nil
	p.state.Error = ""
	p.state.HoveredItemName = ""
	p.state.IsLoading = true
	p.state.SearchPhase = types.SearchSearching
	p.state.IsItineraryLoading = false
	p.state.ItineraryPhase = types.ItineraryIdle
	p.setGuideLocked(nil)
	p.notifyLocked()
	p.mu.Unlock()

	l.InfoContext(ctx, "Search started", slog.String("query", query), slog.Uint64("generation", gen))

	defer func() {
		p.mu.Lock()
		if gen == p.generation {
			p.state.IsLoading = false
			p.notifyLocked()
		}
		p.mu.Unlock()
	}()

	p.locate(ctx, gen, locator)

	var (
		guide    *types.TravelGuide
		guideErr error
		blog     *types.BlogData
		blogErr  error
	)
	// each call settles on its own; neither failure cancels the other
	var g errgroup.Group
	g.Go(func() error {
		guide, guideErr = p.gateway.GenerateTravelGuide(ctx, query)
		return nil
	})
	g.Go(func() error {
		blog, blogErr = p.gateway.GetRecentBlogPosts(ctx, query)
		return nil
	})
	_ = g.Wait()

	rec := types.SearchRecord{SessionID: p.sessionID, Query: query}

	p.mu.Lock()
	switch {
	case gen != p.generation:
		rec.Outcome = types.OutcomeSuperseded
	case guideErr != nil:
		rec.Outcome = types.OutcomeFailed
		rec.ErrorText = types.UserMessage(guideErr, MsgSearchFailed)
		p.state.Error = rec.ErrorText
		p.state.SearchPhase = types.SearchFailed
		p.notifyLocked()
	default:
		if guide == nil {
			guide = &types.TravelGuide{}
		}
		guide.Normalize()
		p.state.TravelData = guide
		p.setGuideLocked(guide)
		rec.GuidePlaces = guide.PlaceCount()

		if blogErr != nil {
			rec.Outcome = types.OutcomePartialSuccess
			p.state.SearchPhase = types.SearchPartialSuccess
		} else {
			if blog == nil {
				blog = &types.BlogData{}
			}
			blog.Normalize()
			p.state.BlogData = blog
			rec.BlogPosts = len(blog.Posts)
			rec.Outcome = types.OutcomeSuccess
			p.state.SearchPhase = types.SearchSuccess
		}
		p.notifyLocked()
	}
	p.mu.Unlock()

	switch rec.Outcome {
	case types.OutcomeSuperseded:
		l.InfoContext(ctx, "Discarding results of superseded search", slog.String("query", query))
	case types.OutcomeFailed:
		l.ErrorContext(ctx, "Failed to generate travel guide", slog.Any("error", guideErr))
		span.RecordError(guideErr)
		span.SetStatus(codes.Error, "guide generation failed")
	default:
		if blogErr != nil {
			l.WarnContext(ctx, "Failed to fetch blog posts", slog.Any("error", blogErr))
		}
		l.InfoContext(ctx, "Search finished",
			slog.String("outcome", string(rec.Outcome)),
			slog.Int("places", rec.GuidePlaces),
			slog.Int("blog_posts", rec.BlogPosts))
		span.SetStatus(codes.Ok, "search finished")
	}
	span.SetAttributes(attribute.String("outcome", string(rec.Outcome)))

	observability.RecordSearch(string(rec.Outcome))
	if p.recorder != nil {
		p.recorder.Record(ctx, rec)
	}
	return nil
}

// locate asks locator for the user's position once. Failures only leave the
// position unset.
func (p *Planner) locate(ctx context.Context, gen uint64, locator geolocation.Locator) {
	if locator == nil {
		locator = geolocation.ClientLocator{}
	}
	if p.locatorTimeout > 0 {
		locator = geolocation.TimeoutLocator{Next: locator, Timeout: p.locatorTimeout}
	}

	coords, err := locator.CurrentPosition(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Could not get user location", slog.Any("error", err))
		return
	}

	p.mu.Lock()
	if gen == p.generation {
		p.state.UserLocation = &coords
		p.notifyLocked()
	}
	p.mu.Unlock()
}

// GenerateItinerary builds a day plan from the current guide. It does
// nothing when there is no guide or a generation is already running.
func (p *Planner) GenerateItinerary(ctx context.Context) error {
	ctx, span := otel.Tracer("Planner").Start(ctx, "GenerateItinerary")
	defer span.End()

	l := p.logger.With(slog.String("method", "GenerateItinerary"))

	p.mu.Lock()
	if p.state.TravelData == nil || p.state.IsItineraryLoading {
		p.mu.Unlock()
		span.SetStatus(codes.Ok, "nothing to do")
		return nil
	}
	gen := p.generation
	guide := p.state.TravelData
	p.state.IsItineraryLoading = true
	p.state.ItineraryPhase = types.ItineraryGenerating
	p.state.Itinerary = nil
	p.state.Error = ""
	p.notifyLocked()
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if gen == p.generation {
			p.state.IsItineraryLoading = false
			p.notifyLocked()
		}
		p.mu.Unlock()
	}()

	it, err := p.gateway.GenerateItinerary(ctx, guide)

	outcome := "success"
	p.mu.Lock()
	switch {
	case gen != p.generation:
		outcome = "superseded"
	case err != nil:
		outcome = "failed"
		p.state.Error = types.UserMessage(err, MsgItineraryFailed)
		p.state.ItineraryPhase = types.ItineraryFailed
		p.notifyLocked()
	default:
		if it == nil {
			it = &types.Itinerary{}
		}
		it.Normalize()
		p.state.Itinerary = it
		p.state.ItineraryPhase = types.ItineraryReady
		p.notifyLocked()
	}
	p.mu.Unlock()

	switch outcome {
	case "superseded":
		l.InfoContext(ctx, "Discarding itinerary of superseded search")
	case "failed":
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "itinerary generation failed")
	default:
		l.InfoContext(ctx, "Itinerary generated", slog.String("title", it.Title))
		span.SetStatus(codes.Ok, "itinerary generated")
	}
	observability.RecordItinerary(outcome)
	return nil
}

// SetHovered selects the place with the given name; an empty name clears
// the selection.
func (p *Planner) SetHovered(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.HoveredItemName == name {
		return
	}
	p.state.HoveredItemName = name
	p.notifyLocked()
}

// State returns a snapshot of the planner. The guide, blog data and
// itinerary are shared and must be treated as read-only.
func (p *Planner) State() types.PlannerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// MapLocations returns the map markers of the current guide.
func (p *Planner) MapLocations() []types.MapLocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mapLocationsLocked()
}

// Nearest returns up to k markers closest to the user.
func (p *Planner) Nearest(k int) ([]types.MapLocation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.UserLocation == nil {
		return nil, fmt.Errorf("user location unknown: %w", types.ErrNotFound)
	}
	return p.index.Nearest(*p.state.UserLocation, k), nil
}

// ItineraryLinks ties the current itinerary's stops to map markers.
func (p *Planner) ItineraryLinks() (mapview.Correlation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Itinerary == nil {
		return mapview.Correlation{}, fmt.Errorf("no itinerary: %w", types.ErrNotFound)
	}
	return mapview.Correlate(p.state.Itinerary, p.mapLocationsLocked()), nil
}

func (p *Planner) setGuideLocked(guide *types.TravelGuide) {
	p.locations = mapview.Locations(guide)
	p.index = mapview.NewIndex(p.locations)
}

func (p *Planner) mapLocationsLocked() []types.MapLocation {
	if p.state.UserLocation != nil {
		return mapview.WithDistances(p.locations, *p.state.UserLocation)
	}
	out := make([]types.MapLocation, len(p.locations))
	copy(out, p.locations)
	return out
}

func (p *Planner) snapshotLocked() types.PlannerState {
	s := p.state
	if p.state.UserLocation != nil {
		coords := *p.state.UserLocation
		s.UserLocation = &coords
	}
	s.MapLocations = p.mapLocationsLocked()
	return s
}

func (p *Planner) notifyLocked() {
	if p.observer != nil {
		p.observer(p.snapshotLocked())
	}
}
