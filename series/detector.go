package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dhanu742005-ai/pothole-app/geo"
	"github.com/dhanu742005-ai/pothole-app/types"
)

const (
	// DefaultDistanceThresholdMeters is the maximum gap between consecutive
	// potholes in a run.
	DefaultDistanceThresholdMeters = 200.0
	// DefaultMinPotholes is the minimum run length that constitutes a series.
	DefaultMinPotholes = 3
)

// reportPoint is a report that passed the severity and coordinate filter.
type reportPoint struct {
	report types.Report
	lat    float64
	lon    float64
}

// DetectSeries finds runs of consecutive same-road potholes using the default
// threshold and minimum count. See DetectSeriesWithParams.
func DetectSeries(reports []types.Report) []types.BadSegment {
	return DetectSeriesWithParams(reports, DefaultDistanceThresholdMeters, DefaultMinPotholes)
}

// DetectSeriesWithParams partitions valid reports by road name, sorts each
// partition by (latitude, longitude) as an approximation of along-road order,
// and walks the sorted sequence chaining reports whose distance to the
// immediately preceding run member is within the threshold. Runs of at least
// minPotholes members become BadSegments.
//
// Unlike clustering, chaining is relative to the previous member, not to a
// fixed anchor. The lat/lon sort is a deliberate stand-in for true road-graph
// order and is part of the segment-ID contract; do not replace it with a
// smarter ordering.
func DetectSeriesWithParams(reports []types.Report, distanceThresholdMeters float64, minPotholes int) []types.BadSegment {
	var valid []reportPoint
	for i := range reports {
		r := &reports[i]
		if r.Severity == types.SeverityNone {
			continue
		}
		lat, lon, ok := r.Coordinates()
		if !ok {
			continue
		}
		valid = append(valid, reportPoint{report: *r, lat: lat, lon: lon})
	}

	// Partition by road name, keeping partitions in first-appearance order so
	// repeated runs over the same input emit segments in the same order.
	groups := make(map[string][]reportPoint)
	var roadOrder []string
	for _, p := range valid {
		road := p.report.Road
		if road == "" {
			road = types.UnknownRoad
		}
		if _, seen := groups[road]; !seen {
			roadOrder = append(roadOrder, road)
		}
		groups[road] = append(groups[road], p)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)

	var segments []types.BadSegment
	for _, road := range roadOrder {
		group := groups[road]
		if len(group) < minPotholes {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			if group[i].lat != group[j].lat {
				return group[i].lat < group[j].lat
			}
			return group[i].lon < group[j].lon
		})

		run := []reportPoint{group[0]}
		for i := 1; i < len(group); i++ {
			prev := run[len(run)-1]
			curr := group[i]

			if geo.Distance(prev.lat, prev.lon, curr.lat, curr.lon) <= distanceThresholdMeters {
				run = append(run, curr)
				continue
			}

			if len(run) >= minPotholes {
				segments = append(segments, buildSegment(run, road, createdAt))
			}
			run = []reportPoint{curr}
		}

		if len(run) >= minPotholes {
			segments = append(segments, buildSegment(run, road, createdAt))
		}
	}

	return segments
}

// buildSegment aggregates a qualifying run into a BadSegment. The segment ID
// is a deterministic function of the road name and the run's centroid, so
// re-detection over unchanged reports yields the same IDs.
func buildSegment(run []reportPoint, road string, createdAt string) types.BadSegment {
	maxSeverity := run[0].report.Severity
	var sumLat, sumLon float64
	ids := make([]string, 0, len(run))

	for _, p := range run {
		maxSeverity = types.MaxSeverity(maxSeverity, p.report.Severity)
		sumLat += p.lat
		sumLon += p.lon
		ids = append(ids, p.report.ID)
	}

	centerLat := sumLat / float64(len(run))
	centerLon := sumLon / float64(len(run))

	area := run[0].report.Area
	if area == "" {
		area = types.UnknownArea
	}

	return types.BadSegment{
		SegmentID:    SegmentID(road, centerLat, centerLon),
		RoadName:     road,
		StartLat:     run[0].lat,
		StartLon:     run[0].lon,
		EndLat:       run[len(run)-1].lat,
		EndLon:       run[len(run)-1].lon,
		CenterLat:    centerLat,
		CenterLon:    centerLon,
		PotholeCount: len(run),
		MaxSeverity:  maxSeverity,
		Area:         area,
		PotholeIDs:   ids,
		CreatedAt:    createdAt,
	}
}

// SegmentID derives the deterministic segment identifier from the road name
// and the run centroid rounded to 5 decimal places.
func SegmentID(road string, centerLat, centerLon float64) string {
	return strings.ReplaceAll(road, " ", "_") + "_" +
		formatRounded(centerLat) + "_" + formatRounded(centerLon)
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e5)/1e5, 'f', -1, 64)
}
