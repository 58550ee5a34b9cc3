// Package geolocation adapts the client's position capability into a
// single-shot request: one call resolves to coordinates or fails with one of
// two collapsed reasons.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

var (
	ErrUnsupported = errors.New("Geolocation is not supported by your browser.")
	ErrUnavailable = errors.New("Could not get your location. Distances will not be shown.")
)

// Locator resolves the user's current position once.
type Locator interface {
	CurrentPosition(ctx context.Context) (types.Coordinates, error)
}

// ClientPosition is what the browser reported alongside a search request.
// Supported is false when the runtime has no geolocation capability; Error
// carries the platform's failure text (denial, timeout, no hardware).
type ClientPosition struct {
	Supported bool    `json:"supported"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     string  `json:"error,omitempty"`
}

// ClientLocator serves the position forwarded by the client. A nil position
// means the client sent nothing, which is treated as unsupported.
type ClientLocator struct {
	Position *ClientPosition
}

func (l ClientLocator) CurrentPosition(ctx context.Context) (types.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return types.Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if l.Position == nil || !l.Position.Supported {
		return types.Coordinates{}, ErrUnsupported
	}
	if l.Position.Error != "" {
		return types.Coordinates{}, fmt.Errorf("%w: %s", ErrUnavailable, l.Position.Error)
	}
	coords := types.Coordinates{Latitude: l.Position.Latitude, Longitude: l.Position.Longitude}
	if !coords.Valid() {
		return types.Coordinates{}, fmt.Errorf("%w: coordinates out of range", ErrUnavailable)
	}
	return coords, nil
}

// TimeoutLocator bounds another Locator. Any failure other than
// ErrUnsupported is collapsed into ErrUnavailable.
type TimeoutLocator struct {
	Next    Locator
	Timeout time.Duration
}

func (l TimeoutLocator) CurrentPosition(ctx context.Context) (types.Coordinates, error) {
	if l.Next == nil {
		return types.Coordinates{}, ErrUnsupported
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	type result struct {
		coords types.Coordinates
		err    error
	}
	done := make(chan result, 1)
	go func() {
		coords, err := l.Next.CurrentPosition(ctx)
		done <- result{coords, err}
	}()

	select {
	case res := <-done:
		if res.err == nil {
			return res.coords, nil
		}
		if errors.Is(res.err, ErrUnsupported) || errors.Is(res.err, ErrUnavailable) {
			return types.Coordinates{}, res.err
		}
		return types.Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, res.err)
	case <-ctx.Done():
		return types.Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	}
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (types.Coordinates, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (types.Coordinates, error) {
	return f(ctx)
}
