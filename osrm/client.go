// Package osrm is a thin client for the public OSRM routing HTTP API. It
// serves as the primary (unbiased) route provider; OSRM has no exclusion-zone
// support, so avoid points are ignored here.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/dhanu742005-ai/pothole-app/types"
)

const defaultBaseURL = "http://router.project-osrm.org/route/v1/driving"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// routeResponse is the subset of the OSRM response the planner consumes.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry string  `json:"geometry"` // encoded polyline
	} `json:"routes"`
}

// FetchRoute requests a driving route. OSRM expects lon,lat coordinate order
// in the URL. Any transport failure, non-200 status, non-Ok code, or
// undecodable geometry is returned as an error for the planner to absorb.
func (c *Client) FetchRoute(ctx context.Context, start, end types.Coordinate, _ []types.Coordinate) (*types.Route, error) {
	url := fmt.Sprintf("%s/%f,%f;%f,%f?overview=full&geometries=polyline",
		c.BaseURL, start.Lon, start.Lat, end.Lon, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("osrm returned status: " + resp.Status)
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("osrm response decode failed: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("osrm found no route (code %q)", decoded.Code)
	}

	best := decoded.Routes[0]
	coords, _, err := polyline.DecodeCoords([]byte(best.Geometry))
	if err != nil {
		return nil, fmt.Errorf("osrm geometry decode failed: %w", err)
	}

	geometry := make([]types.Coordinate, 0, len(coords))
	for _, c := range coords {
		geometry = append(geometry, types.Coordinate{Lat: c[0], Lon: c[1]})
	}

	return &types.Route{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        geometry,
	}, nil
}
