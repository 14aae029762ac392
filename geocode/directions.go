package geocode

import (
	"context"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"
	"googlemaps.github.io/maps"

	"github.com/dhanu742005-ai/pothole-app/geo"
	"github.com/dhanu742005-ai/pothole-app/routeplanner"
	"github.com/dhanu742005-ai/pothole-app/types"
)

// DirectionsProvider serves avoidance-biased route requests through the
// Google Directions API. The API has no native exclusion zones, so the
// provider requests alternatives and picks the one with the most clearance
// from the avoid points: any route keeping every vertex outside the
// avoidance radius wins outright, otherwise the route whose closest approach
// is largest.
type DirectionsProvider struct{}

func (DirectionsProvider) FetchRoute(ctx context.Context, start, end types.Coordinate, avoid []types.Coordinate) (*types.Route, error) {
	client, err := InitMapsClient()
	if err != nil {
		return nil, err
	}

	routes, _, err := client.Directions(ctx, &maps.DirectionsRequest{
		Origin:       fmt.Sprintf("%f,%f", start.Lat, start.Lon),
		Destination:  fmt.Sprintf("%f,%f", end.Lat, end.Lon),
		Mode:         maps.TravelModeDriving,
		Alternatives: true,
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("directions found no route")
	}

	var best *types.Route
	bestClearance := math.Inf(-1)

	for i := range routes {
		candidate, err := convertRoute(&routes[i])
		if err != nil {
			continue
		}

		clearance := minClearance(candidate.Geometry, avoid)
		if clearance > bestClearance {
			bestClearance = clearance
			best = candidate
		}
		if clearance > routeplanner.AvoidanceRadiusMeters {
			// Fully clear of every exclusion zone; no need to look further.
			return candidate, nil
		}
	}

	if best == nil {
		return nil, fmt.Errorf("directions returned no decodable route")
	}
	return best, nil
}

func convertRoute(route *maps.Route) (*types.Route, error) {
	coords, _, err := polyline.DecodeCoords([]byte(route.OverviewPolyline.Points))
	if err != nil {
		return nil, fmt.Errorf("overview polyline decode failed: %w", err)
	}

	geometry := make([]types.Coordinate, 0, len(coords))
	for _, c := range coords {
		geometry = append(geometry, types.Coordinate{Lat: c[0], Lon: c[1]})
	}

	var distanceMeters, durationSeconds float64
	for _, leg := range route.Legs {
		distanceMeters += float64(leg.Distance.Meters)
		durationSeconds += leg.Duration.Seconds()
	}

	return &types.Route{
		DistanceMeters:  distanceMeters,
		DurationSeconds: durationSeconds,
		Geometry:        geometry,
	}, nil
}

// minClearance is the smallest distance from any geometry vertex to any avoid
// point. With no avoid points every route is infinitely clear.
func minClearance(geometry []types.Coordinate, avoid []types.Coordinate) float64 {
	clearance := math.Inf(1)
	for _, vertex := range geometry {
		for _, point := range avoid {
			d := geo.Distance(vertex.Lat, vertex.Lon, point.Lat, point.Lon)
			if d < clearance {
				clearance = d
			}
		}
	}
	return clearance
}
