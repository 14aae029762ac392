package routeplanner

import (
	"context"
	"log"

	"github.com/dhanu742005-ai/pothole-app/types"
)

// CompositeProvider routes plain requests through the primary provider and
// avoidance-biased requests through the avoidance provider, falling back to
// an unbiased primary route when the avoidance provider is unconfigured or
// fails.
//
// This mirrors the deployment reality: the free primary router knows nothing
// about exclusion zones, while the avoidance-capable provider needs an API
// key that may be absent. Absence disables the biased path, it is not a
// failure.
type CompositeProvider struct {
	Primary   RouteProvider
	Avoidance RouteProvider // may be nil when no key is configured
}

func NewCompositeProvider(primary, avoidance RouteProvider) *CompositeProvider {
	return &CompositeProvider{Primary: primary, Avoidance: avoidance}
}

func (p *CompositeProvider) FetchRoute(ctx context.Context, start, end types.Coordinate, avoid []types.Coordinate) (*types.Route, error) {
	if len(avoid) == 0 {
		return p.Primary.FetchRoute(ctx, start, end, nil)
	}

	if p.Avoidance != nil {
		route, err := p.Avoidance.FetchRoute(ctx, start, end, avoid)
		if err == nil && route != nil && len(route.Geometry) > 0 {
			return route, nil
		}
		if err != nil {
			log.Printf("CompositeProvider: avoidance provider failed, falling back to unbiased route: %v", err)
		}
	}

	// Unbiased fallback. The caller still gets a route, just not one biased
	// away from the exclusion zones.
	return p.Primary.FetchRoute(ctx, start, end, nil)
}
