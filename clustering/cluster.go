package clustering

import (
	"math"
	"strconv"

	"github.com/dhanu742005-ai/pothole-app/geo"
	"github.com/dhanu742005-ai/pothole-app/types"
)

// DefaultRadiusMeters is how far a report may sit from a cluster's anchor and
// still join it.
const DefaultRadiusMeters = 100.0

// ComputeClusters groups reports into spatial clusters using the default
// radius. See ComputeClustersWithRadius.
func ComputeClusters(reports []types.Report) []types.Cluster {
	return ComputeClustersWithRadius(reports, DefaultRadiusMeters)
}

// ComputeClustersWithRadius runs a greedy single-pass clustering over the
// reports in input order. The first unassigned report with a usable severity
// and coordinates anchors a new cluster; every subsequent unassigned report
// within radiusMeters of that anchor joins it.
//
// Membership is anchor-relative, not transitive: two members may be further
// than the radius from each other, and a report just past the radius never
// joins even when it sits next to another member. The grouping also depends
// on input order. Both behaviors are intentional and must not change, since
// cluster IDs derived here key the persisted cluster status.
func ComputeClustersWithRadius(reports []types.Report, radiusMeters float64) []types.Cluster {
	clusters := []types.Cluster{}
	visited := make([]bool, len(reports))

	for i := range reports {
		report := &reports[i]

		if report.Severity == types.SeverityNone {
			continue
		}
		lat1, lon1, ok := report.Coordinates()
		if !ok {
			continue
		}
		if visited[i] {
			continue
		}

		cluster := types.Cluster{
			ID:          ClusterID(lat1, lon1),
			CenterLat:   lat1,
			CenterLon:   lon1,
			Reports:     []types.Report{*report},
			MaxSeverity: report.Severity,
		}
		visited[i] = true

		for j := i + 1; j < len(reports); j++ {
			other := &reports[j]
			if visited[j] {
				continue
			}
			if other.Severity == types.SeverityNone {
				continue
			}
			lat2, lon2, ok := other.Coordinates()
			if !ok {
				continue
			}

			// Distance to the anchor, not to other members.
			if geo.Distance(lat1, lon1, lat2, lon2) <= radiusMeters {
				cluster.Reports = append(cluster.Reports, *other)
				visited[j] = true
				cluster.MaxSeverity = types.MaxSeverity(cluster.MaxSeverity, other.Severity)
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}

// ClusterID derives the deterministic cluster identifier from the anchor
// coordinate, rounded to 5 decimal places (~1 m precision).
func ClusterID(lat, lon float64) string {
	return formatRounded(lat) + "_" + formatRounded(lon)
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e5)/1e5, 'f', -1, 64)
}
