package geocode

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"googlemaps.github.io/maps"

	"github.com/dhanu742005-ai/pothole-app/types"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
// Requires MAPS_CREDENTIALS; callers treat absence as "geocoding and biased
// routing unavailable", not as a fatal condition.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Printf("Failed to create maps client: %v", err)
		}
	})
	if mapsClient == nil && err == nil {
		err = fmt.Errorf("maps client not initialized")
	}
	return mapsClient, err
}

// GeocodeAddress resolves a free-text address to coordinates. A query that
// produces no results is an error, so callers can surface "could not resolve"
// to the user.
func GeocodeAddress(ctx context.Context, address string) (types.Coordinate, error) {
	client, err := InitMapsClient()
	if err != nil {
		return types.Coordinate{}, err
	}

	results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Coordinate{}, err
	}
	if len(results) == 0 {
		return types.Coordinate{}, fmt.Errorf("no geocoding results for %q", address)
	}

	loc := results[0].Geometry.Location
	return types.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}

// Resolver adapts this package to the planner's Geocoder interface.
type Resolver struct{}

func (Resolver) Geocode(ctx context.Context, address string) (types.Coordinate, error) {
	return GeocodeAddress(ctx, address)
}
