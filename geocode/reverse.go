package geocode

import (
	"context"

	"googlemaps.github.io/maps"

	"github.com/dhanu742005-ai/pothole-app/types"
)

// ReverseGeocode resolves coordinates into a road name, an area name, and the
// full formatted address. Missing pieces fall back to the Unknown sentinels;
// the error covers transport/quota failures only.
func ReverseGeocode(ctx context.Context, lat, lon float64) (road, area, fullAddress string, err error) {
	road = types.UnknownRoad
	area = types.UnknownArea
	fullAddress = "Address not found"

	client, err := InitMapsClient()
	if err != nil {
		return road, area, fullAddress, err
	}

	results, err := client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lon},
	})
	if err != nil {
		return road, area, fullAddress, err
	}
	if len(results) == 0 {
		return road, area, fullAddress, nil
	}

	result := results[0]
	if result.FormattedAddress != "" {
		fullAddress = result.FormattedAddress
	}

	// Prefer the most specific area-like component available.
	areaTypes := []string{"sublocality", "neighborhood", "locality"}
	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			if t == "route" && road == types.UnknownRoad {
				road = component.LongName
			}
			for _, at := range areaTypes {
				if t == at && area == types.UnknownArea {
					area = component.LongName
				}
			}
		}
	}

	return road, area, fullAddress, nil
}
