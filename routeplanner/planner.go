package routeplanner

import (
	"context"
	"fmt"
	"log"

	"github.com/dhanu742005-ai/pothole-app/geo"
	"github.com/dhanu742005-ai/pothole-app/types"
)

const (
	// DefaultIntersectionThresholdMeters is how close a route vertex must pass
	// to a bad segment's centroid for the segment to count as intersected.
	DefaultIntersectionThresholdMeters = 50.0

	// AvoidanceRadiusMeters is the exclusion-zone radius applied around each
	// avoid point when requesting an alternative route.
	AvoidanceRadiusMeters = 150.0
)

// Geocoder resolves a free-text address to a coordinate. Implementations
// return an error both for transport failures and for no-match results.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Coordinate, error)
}

// RouteProvider fetches a driving route. avoid points are a best-effort bias:
// providers without avoidance support may ignore them. Any failure is an
// error; the planner converts it into a no-route outcome.
type RouteProvider interface {
	FetchRoute(ctx context.Context, start, end types.Coordinate, avoid []types.Coordinate) (*types.Route, error)
}

// Planner decides whether a candidate route is acceptable given the known bad
// segments and proposes a scored alternative when it is not. The planner holds
// no state beyond its collaborators; all computations are pure functions of
// the call inputs.
type Planner struct {
	geocoder Geocoder
	provider RouteProvider
}

func New(geocoder Geocoder, provider RouteProvider) *Planner {
	return &Planner{geocoder: geocoder, provider: provider}
}

// EndpointInput is either a free-text address or an already-resolved
// coordinate pair. Coords wins when both are set.
type EndpointInput struct {
	Address string
	Coords  *types.Coordinate
}

// PlanRoute resolves both endpoints and plans a route between them. A
// geocoding failure aborts the whole operation with an error naming the
// endpoint; every later failure degrades into the returned result instead.
func (p *Planner) PlanRoute(ctx context.Context, start, end EndpointInput, badSegments []types.BadSegment) (types.RouteResult, error) {
	startCoords, err := p.ResolveEndpoint(ctx, start, "start")
	if err != nil {
		return types.RouteResult{}, err
	}
	endCoords, err := p.ResolveEndpoint(ctx, end, "end")
	if err != nil {
		return types.RouteResult{}, err
	}

	return p.PlanWithAvoidance(ctx, startCoords, endCoords, badSegments), nil
}

// ResolveEndpoint passes coordinates through unchanged and geocodes free text.
// which is "start" or "end" and appears in the failure message.
func (p *Planner) ResolveEndpoint(ctx context.Context, input EndpointInput, which string) (types.Coordinate, error) {
	if input.Coords != nil {
		return *input.Coords, nil
	}
	coords, err := p.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("could not resolve %s location %q: %w", which, input.Address, err)
	}
	return coords, nil
}

// PlanWithAvoidance fetches the primary route, tests it against the bad
// segments, and when intersections exist requests an alternative biased away
// from the intersected centroids. It always returns a structured result; no
// provider failure escapes as an error.
func (p *Planner) PlanWithAvoidance(ctx context.Context, start, end types.Coordinate, badSegments []types.BadSegment) types.RouteResult {
	original := p.fetchRoute(ctx, start, end, nil)
	if original == nil {
		return types.RouteResult{
			Error:               "Could not calculate route",
			StartCoords:         &start,
			EndCoords:           &end,
			BadSegmentsDetected: []types.BadSegment{},
		}
	}

	intersected := CheckIntersections(original.Geometry, badSegments, DefaultIntersectionThresholdMeters)

	result := types.RouteResult{
		StartCoords:         &start,
		EndCoords:           &end,
		OriginalRoute:       toRouteLeg(original),
		BadSegmentsDetected: intersected,
	}

	if len(intersected) == 0 {
		result.Recommendation = &types.Recommendation{
			Message:  "Route is clear! No pothole series detected along this route.",
			Severity: types.RecommendationSafe,
		}
		return result
	}

	avoidPoints := make([]types.Coordinate, 0, len(intersected))
	for _, seg := range intersected {
		avoidPoints = append(avoidPoints, types.Coordinate{Lat: seg.CenterLat, Lon: seg.CenterLon})
	}

	alternative := p.fetchRoute(ctx, start, end, avoidPoints)
	if alternative == nil {
		result.Recommendation = noAlternativeRecommendation(intersected)
		return result
	}

	result.AlternativeRoute = toRouteLeg(alternative)

	distanceDiffKM := (alternative.DistanceMeters - original.DistanceMeters) / 1000
	timeDiffMin := (alternative.DurationSeconds - original.DurationSeconds) / 60
	result.Recommendation = buildRecommendation(intersected, distanceDiffKM, timeDiffMin)

	return result
}

// fetchRoute wraps the provider call; every failure mode collapses to nil so
// callers deal with exactly one "no route" outcome.
func (p *Planner) fetchRoute(ctx context.Context, start, end types.Coordinate, avoid []types.Coordinate) *types.Route {
	route, err := p.provider.FetchRoute(ctx, start, end, avoid)
	if err != nil {
		log.Printf("Planner: route fetch failed (%d avoid points): %v", len(avoid), err)
		return nil
	}
	if route == nil || len(route.Geometry) == 0 {
		log.Printf("Planner: provider returned empty route (%d avoid points)", len(avoid))
		return nil
	}
	return route
}

// CheckIntersections returns the subset of segments whose centroid lies within
// thresholdMeters of any vertex of the route geometry. Each segment
// short-circuits on its first matching vertex.
func CheckIntersections(geometry []types.Coordinate, segments []types.BadSegment, thresholdMeters float64) []types.BadSegment {
	intersected := []types.BadSegment{}

	for _, seg := range segments {
		for _, vertex := range geometry {
			if geo.Distance(vertex.Lat, vertex.Lon, seg.CenterLat, seg.CenterLon) <= thresholdMeters {
				intersected = append(intersected, seg)
				break
			}
		}
	}

	return intersected
}

func toRouteLeg(route *types.Route) *types.RouteLeg {
	coords := make([][]float64, 0, len(route.Geometry))
	for _, point := range route.Geometry {
		coords = append(coords, []float64{point.Lon, point.Lat})
	}
	return &types.RouteLeg{
		DistanceKM:      route.DistanceMeters / 1000,
		DurationMinutes: route.DurationSeconds / 60,
		Coordinates:     coords,
	}
}
