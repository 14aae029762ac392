package export

import "github.com/dhanu742005-ai/pothole-app/types"

// Statistics summarizes the report set and the latest series-detection run
// for dashboards and export responses.
type Statistics struct {
	TotalReports        int                    `json:"total_reports"`
	PotholeDetections   int                    `json:"pothole_detections"`
	NoPotholeDetections int                    `json:"no_pothole_detections"`
	SeverityBreakdown   map[types.Severity]int `json:"severity_breakdown"`
	BadRoadSegments     int                    `json:"bad_road_segments"`
	RoadsWithSeries     int                    `json:"roads_with_series"`
	PotholesInSeries    int                    `json:"potholes_in_series"`
	IsolatedPotholes    int                    `json:"isolated_potholes"`
}

// ComputeStatistics derives counts from the full report set and the current
// bad-segment set.
func ComputeStatistics(reports []types.Report, segments []types.BadSegment) Statistics {
	breakdown := map[types.Severity]int{
		types.SeverityHigh:   0,
		types.SeverityMedium: 0,
		types.SeverityLow:    0,
		types.SeverityNone:   0,
	}
	for i := range reports {
		breakdown[reports[i].Severity]++
	}

	potholeReports := len(reports) - breakdown[types.SeverityNone]

	roads := make(map[string]bool)
	potholesInSeries := 0
	for _, seg := range segments {
		roads[seg.RoadName] = true
		potholesInSeries += seg.PotholeCount
	}

	return Statistics{
		TotalReports:        len(reports),
		PotholeDetections:   potholeReports,
		NoPotholeDetections: breakdown[types.SeverityNone],
		SeverityBreakdown:   breakdown,
		BadRoadSegments:     len(segments),
		RoadsWithSeries:     len(roads),
		PotholesInSeries:    potholesInSeries,
		IsolatedPotholes:    potholeReports - potholesInSeries,
	}
}
