package clustering

import (
	"fmt"
	"strings"

	"github.com/dhanu742005-ai/pothole-app/types"
)

// EnrichClusters fills in the dashboard presentation fields (friendly name
// and bounding box) for each cluster in place. Status is attached separately
// by the caller, since it lives in the store.
func EnrichClusters(clusters []types.Cluster) {
	for i := range clusters {
		c := &clusters[i]
		c.FriendlyName = friendlyName(c)
		c.Bounds = bounds(c)
	}
}

// friendlyName derives a human-readable label from the most frequent
// non-sentinel area and road among the cluster's members. Ties break toward
// the value encountered first. When both are entirely unknown, the label
// falls back to the latitude half of the cluster ID.
func friendlyName(c *types.Cluster) string {
	var areas, roads []string
	for i := range c.Reports {
		r := &c.Reports[i]
		if r.Area != "" && r.Area != types.UnknownArea {
			areas = append(areas, r.Area)
		}
		if r.Road != "" && r.Road != types.UnknownRoad {
			roads = append(roads, r.Road)
		}
	}

	domArea := mostCommon(areas, types.UnknownArea)
	domRoad := mostCommon(roads, types.UnknownRoad)

	if domArea == types.UnknownArea && domRoad == types.UnknownRoad {
		return "Cluster #" + strings.SplitN(c.ID, "_", 2)[0]
	}
	return fmt.Sprintf("%s – %s", domArea, domRoad)
}

// mostCommon returns the most frequent value, breaking ties by first
// appearance. fallback is returned for an empty slice.
func mostCommon(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}

	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

// bounds computes the min/max box over member coordinates, or a degenerate
// box at the anchor when no member carries coordinates.
func bounds(c *types.Cluster) *types.BoundingBox {
	box := types.BoundingBox{
		MinLat: c.CenterLat, MaxLat: c.CenterLat,
		MinLon: c.CenterLon, MaxLon: c.CenterLon,
	}

	found := false
	for i := range c.Reports {
		lat, lon, ok := c.Reports[i].Coordinates()
		if !ok {
			continue
		}
		if !found {
			box = types.BoundingBox{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}
			found = true
			continue
		}
		if lat < box.MinLat {
			box.MinLat = lat
		}
		if lat > box.MaxLat {
			box.MaxLat = lat
		}
		if lon < box.MinLon {
			box.MinLon = lon
		}
		if lon > box.MaxLon {
			box.MaxLon = lon
		}
	}

	return &box
}
