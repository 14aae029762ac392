package routeplanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanu742005-ai/pothole-app/geo"
	"github.com/dhanu742005-ai/pothole-app/types"
)

type fakeGeocoder struct {
	coords map[string]types.Coordinate
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (types.Coordinate, error) {
	c, ok := g.coords[address]
	if !ok {
		return types.Coordinate{}, errors.New("no results")
	}
	return c, nil
}

type fakeProvider struct {
	plain       *types.Route
	alternative *types.Route
	plainErr    error
	altErr      error
	avoidSeen   []types.Coordinate
	avoidCalled bool
	plainCalled bool
}

func (p *fakeProvider) FetchRoute(_ context.Context, start, end types.Coordinate, avoid []types.Coordinate) (*types.Route, error) {
	if len(avoid) > 0 {
		p.avoidCalled = true
		p.avoidSeen = avoid
		return p.alternative, p.altErr
	}
	p.plainCalled = true
	return p.plain, p.plainErr
}

func straightRoute(distanceMeters, durationSeconds float64, points ...types.Coordinate) *types.Route {
	return &types.Route{
		DistanceMeters:  distanceMeters,
		DurationSeconds: durationSeconds,
		Geometry:        points,
	}
}

func segmentAt(road string, lat, lon float64, count int, severity types.Severity) types.BadSegment {
	return types.BadSegment{
		SegmentID:    road,
		RoadName:     road,
		CenterLat:    lat,
		CenterLon:    lon,
		PotholeCount: count,
		MaxSeverity:  severity,
	}
}

var (
	testStart = types.Coordinate{Lat: 12.9716, Lon: 77.5946}
	testEnd   = types.Coordinate{Lat: 12.9900, Lon: 77.5946}
)

func TestCheckIntersections(t *testing.T) {
	geometry := []types.Coordinate{
		{Lat: 12.9716, Lon: 77.5946},
		{Lat: 12.9800, Lon: 77.5946},
		{Lat: 12.9900, Lon: 77.5946},
	}
	segments := []types.BadSegment{
		segmentAt("Near Rd", 12.98003, 77.5946, 3, types.SeverityHigh),  // ~3 m from a vertex
		segmentAt("Far Rd", 12.98500, 77.5946, 4, types.SeverityMedium), // ~550 m from nearest vertex
	}

	intersected := CheckIntersections(geometry, segments, DefaultIntersectionThresholdMeters)
	require.Len(t, intersected, 1)
	assert.Equal(t, "Near Rd", intersected[0].RoadName)
}

func TestCheckIntersectionsThresholdBoundary(t *testing.T) {
	geometry := []types.Coordinate{{Lat: 12.9716, Lon: 77.5946}}

	// ~49 m north of the vertex: inside. ~56 m: outside.
	inside := segmentAt("Inside", 12.97204, 77.5946, 3, types.SeverityLow)
	outside := segmentAt("Outside", 12.97210, 77.5946, 3, types.SeverityLow)

	assert.Len(t, CheckIntersections(geometry, []types.BadSegment{inside}, DefaultIntersectionThresholdMeters), 1)
	assert.Empty(t, CheckIntersections(geometry, []types.BadSegment{outside}, DefaultIntersectionThresholdMeters))
}

func TestCheckIntersectionsBoundaryInclusive(t *testing.T) {
	// Intersection is <= threshold: a centroid at exactly the threshold
	// distance from a vertex counts, a hair past it does not.
	vertex := types.Coordinate{Lat: 12.9716, Lon: 77.5946}
	seg := segmentAt("Main St", 12.9720, 77.5946, 3, types.SeverityHigh)
	d := geo.Distance(vertex.Lat, vertex.Lon, seg.CenterLat, seg.CenterLon)

	geometry := []types.Coordinate{vertex}
	segments := []types.BadSegment{seg}

	assert.Len(t, CheckIntersections(geometry, segments, d), 1)
	assert.Empty(t, CheckIntersections(geometry, segments, d-1e-9))
}

func TestPlanRouteClear(t *testing.T) {
	provider := &fakeProvider{plain: straightRoute(5000, 600, testStart, testEnd)}
	planner := New(&fakeGeocoder{}, provider)

	result := planner.PlanWithAvoidance(context.Background(), testStart, testEnd, nil)

	assert.Empty(t, result.Error)
	assert.Empty(t, result.BadSegmentsDetected)
	require.NotNil(t, result.Recommendation)
	assert.Equal(t, types.RecommendationSafe, result.Recommendation.Severity)
	assert.Contains(t, result.Recommendation.Message, "Route is clear")
	assert.Nil(t, result.AlternativeRoute)
	assert.False(t, provider.avoidCalled)

	require.NotNil(t, result.OriginalRoute)
	assert.Equal(t, 5.0, result.OriginalRoute.DistanceKM)
	assert.Equal(t, 10.0, result.OriginalRoute.DurationMinutes)
	// GeoJSON-style [lon, lat] pairs.
	require.NotEmpty(t, result.OriginalRoute.Coordinates)
	assert.Equal(t, []float64{77.5946, 12.9716}, result.OriginalRoute.Coordinates[0])
}

func TestPlanRouteGeocodeFailureNamesEndpoint(t *testing.T) {
	geocoder := &fakeGeocoder{coords: map[string]types.Coordinate{"MG Road": testEnd}}
	planner := New(geocoder, &fakeProvider{plain: straightRoute(5000, 600, testStart, testEnd)})

	_, err := planner.PlanRoute(context.Background(),
		EndpointInput{Address: "Nowhere"},
		EndpointInput{Address: "MG Road"},
		nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start")
	assert.Contains(t, err.Error(), "Nowhere")

	_, err = planner.PlanRoute(context.Background(),
		EndpointInput{Address: "MG Road"},
		EndpointInput{Address: "Nowhere"},
		nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end")
}

func TestPlanRouteCoordinatesBypassGeocoder(t *testing.T) {
	provider := &fakeProvider{plain: straightRoute(5000, 600, testStart, testEnd)}
	planner := New(&fakeGeocoder{}, provider) // geocoder would fail any lookup

	result, err := planner.PlanRoute(context.Background(),
		EndpointInput{Coords: &testStart},
		EndpointInput{Coords: &testEnd},
		nil)
	require.NoError(t, err)
	assert.Empty(t, result.Error)
	assert.Equal(t, testStart, *result.StartCoords)
	assert.Equal(t, testEnd, *result.EndCoords)
}

func TestPlanRoutePrimaryFailure(t *testing.T) {
	provider := &fakeProvider{plainErr: errors.New("router down")}
	planner := New(&fakeGeocoder{}, provider)

	result := planner.PlanWithAvoidance(context.Background(), testStart, testEnd, nil)
	assert.Equal(t, "Could not calculate route", result.Error)
	assert.Nil(t, result.OriginalRoute)
	assert.Nil(t, result.Recommendation)
}

func TestPlanRouteIntersectionTriggersAvoidance(t *testing.T) {
	blocked := segmentAt("Main St", 12.9800, 77.5946, 4, types.SeverityHigh)
	provider := &fakeProvider{
		plain: straightRoute(5000, 600, testStart,
			types.Coordinate{Lat: 12.9800, Lon: 77.5946}, testEnd),
		alternative: straightRoute(6500, 780, testStart,
			types.Coordinate{Lat: 12.9800, Lon: 77.6100}, testEnd),
	}
	planner := New(&fakeGeocoder{}, provider)

	result := planner.PlanWithAvoidance(context.Background(), testStart, testEnd, []types.BadSegment{blocked})

	require.Len(t, result.BadSegmentsDetected, 1)
	assert.True(t, provider.avoidCalled)
	require.Len(t, provider.avoidSeen, 1)
	assert.Equal(t, 12.9800, provider.avoidSeen[0].Lat)

	require.NotNil(t, result.AlternativeRoute)
	assert.InDelta(t, 6.5, result.AlternativeRoute.DistanceKM, 1e-9)

	rec := result.Recommendation
	require.NotNil(t, rec)
	// +1.5 km with High severity lands in the recommended tier.
	assert.Equal(t, types.RecommendationRecommended, rec.Severity)
	assert.Equal(t, []string{"Main St"}, rec.AffectedRoads)
	assert.Equal(t, 4, rec.TotalPotholes)
	assert.Equal(t, types.SeverityHigh, rec.WorstSeverity)
	assert.InDelta(t, 1.5, rec.DetourDistanceKM, 1e-9)
}

func TestPlanRouteAlternativeFailureDegradesToCaution(t *testing.T) {
	blocked := segmentAt("Main St", 12.9800, 77.5946, 4, types.SeverityHigh)
	provider := &fakeProvider{
		plain: straightRoute(5000, 600, testStart,
			types.Coordinate{Lat: 12.9800, Lon: 77.5946}, testEnd),
		altErr: errors.New("no avoidance provider"),
	}
	planner := New(&fakeGeocoder{}, provider)

	result := planner.PlanWithAvoidance(context.Background(), testStart, testEnd, []types.BadSegment{blocked})

	assert.Empty(t, result.Error)
	assert.Nil(t, result.AlternativeRoute)
	require.NotNil(t, result.Recommendation)
	assert.Equal(t, types.RecommendationCaution, result.Recommendation.Severity)
	assert.Contains(t, result.Recommendation.Message, "No alternative route could be found")
}

func TestRecommendationTiers(t *testing.T) {
	highSeg := []types.BadSegment{segmentAt("Main St", 12.98, 77.59, 5, types.SeverityHigh)}
	lowSeg := []types.BadSegment{segmentAt("Main St", 12.98, 77.59, 3, types.SeverityLow)}

	// Short detour around High severity: recommended.
	rec := buildRecommendation(highSeg, 1.5, 4)
	assert.Equal(t, types.RecommendationRecommended, rec.Severity)

	// Short detour around Low severity: only consider.
	rec = buildRecommendation(lowSeg, 1.5, 4)
	assert.Equal(t, types.RecommendationConsider, rec.Severity)

	// Mid-range detour regardless of severity: consider.
	rec = buildRecommendation(highSeg, 3.0, 8)
	assert.Equal(t, types.RecommendationConsider, rec.Severity)

	// Long detour: caution.
	rec = buildRecommendation(highSeg, 10.0, 25)
	assert.Equal(t, types.RecommendationCaution, rec.Severity)

	// Boundary: exactly 2.0 km is not under 2, falls to consider.
	rec = buildRecommendation(highSeg, 2.0, 5)
	assert.Equal(t, types.RecommendationConsider, rec.Severity)

	// Boundary: exactly 5.0 km is not under 5, falls to caution.
	rec = buildRecommendation(highSeg, 5.0, 12)
	assert.Equal(t, types.RecommendationCaution, rec.Severity)
}

func TestWarningSentence(t *testing.T) {
	assert.Equal(t,
		"Warning: Main St has a series of 4 potholes (High severity).",
		warningSentence([]string{"Main St"}, 4, types.SeverityHigh))
	assert.Equal(t,
		"Warning: Main St and Church St have a series of 7 potholes (Medium severity).",
		warningSentence([]string{"Main St", "Church St"}, 7, types.SeverityMedium))
	assert.Equal(t,
		"Warning: 3 roads have a series of 9 potholes (Low severity).",
		warningSentence([]string{"A", "B", "C"}, 9, types.SeverityLow))
}

func TestCompositeProviderFallsBackWithoutAvoidance(t *testing.T) {
	primary := &fakeProvider{plain: straightRoute(5000, 600, testStart, testEnd)}
	composite := NewCompositeProvider(primary, nil)

	// Avoidance unconfigured: the biased request degrades to an unbiased one.
	route, err := composite.FetchRoute(context.Background(), testStart, testEnd,
		[]types.Coordinate{{Lat: 12.98, Lon: 77.59}})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, route.DistanceMeters)
	assert.True(t, primary.plainCalled)
	assert.False(t, primary.avoidCalled)
}

func TestCompositeProviderAvoidanceFailureFallsBack(t *testing.T) {
	primary := &fakeProvider{plain: straightRoute(5000, 600, testStart, testEnd)}
	broken := &fakeProvider{altErr: errors.New("quota exceeded")}
	composite := NewCompositeProvider(primary, broken)

	route, err := composite.FetchRoute(context.Background(), testStart, testEnd,
		[]types.Coordinate{{Lat: 12.98, Lon: 77.59}})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, route.DistanceMeters)
	assert.True(t, broken.avoidCalled)
	assert.True(t, primary.plainCalled)
}

func TestCompositeProviderUsesAvoidanceRoute(t *testing.T) {
	primary := &fakeProvider{plain: straightRoute(5000, 600, testStart, testEnd)}
	biased := &fakeProvider{alternative: straightRoute(6500, 780, testStart, testEnd)}
	composite := NewCompositeProvider(primary, biased)

	route, err := composite.FetchRoute(context.Background(), testStart, testEnd,
		[]types.Coordinate{{Lat: 12.98, Lon: 77.59}})
	require.NoError(t, err)
	assert.Equal(t, 6500.0, route.DistanceMeters)
	assert.False(t, primary.plainCalled)
}
