package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanu742005-ai/pothole-app/geo"
	"github.com/dhanu742005-ai/pothole-app/types"
)

func roadReport(id string, lat, lon float64, road string, severity types.Severity) types.Report {
	return types.Report{
		ID:        id,
		Latitude:  types.Float64Ptr(lat),
		Longitude: types.Float64Ptr(lon),
		Road:      road,
		Area:      "Indiranagar",
		Severity:  severity,
	}
}

func TestDetectSeriesBasicRun(t *testing.T) {
	// Three potholes on Main St, ~155 m between consecutive members.
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityMedium),
		roadReport("c", 12.9745, 77.5946, "Main St", types.SeverityHigh),
	}

	segments := DetectSeries(reports)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, "Main St", seg.RoadName)
	assert.Equal(t, 3, seg.PotholeCount)
	assert.Equal(t, types.SeverityHigh, seg.MaxSeverity)
	assert.Equal(t, "Indiranagar", seg.Area)
	assert.Equal(t, 12.9716, seg.StartLat)
	assert.Equal(t, 12.9745, seg.EndLat)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seg.PotholeIDs)
}

func TestDetectSeriesGapBreaksRun(t *testing.T) {
	// Second gap is ~278 m, over the 200 m threshold, so no run reaches three.
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityLow),
		roadReport("c", 12.9755, 77.5946, "Main St", types.SeverityLow),
	}

	segments := DetectSeries(reports)
	assert.Empty(t, segments)
}

func TestDetectSeriesThresholdBoundaryInclusive(t *testing.T) {
	// Chaining is <= threshold: a gap of exactly the threshold continues the
	// run, a hair over breaks it.
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityLow),
		roadReport("c", 12.9744, 77.5946, "Main St", types.SeverityLow),
	}
	gap1 := geo.Distance(12.9716, 77.5946, 12.9730, 77.5946)
	gap2 := geo.Distance(12.9730, 77.5946, 12.9744, 77.5946)
	d := math.Max(gap1, gap2)

	segments := DetectSeriesWithParams(reports, d, 3)
	require.Len(t, segments, 1)
	assert.Equal(t, 3, segments[0].PotholeCount)

	// Below the wider gap at least one run breaks; no run reaches three.
	assert.Empty(t, DetectSeriesWithParams(reports, d-1e-9, 3))
}

func TestDetectSeriesChainsRelativeToPrevious(t *testing.T) {
	// Five members each ~155 m from the previous one. First to last is far
	// beyond the threshold, but chaining only looks at the previous member.
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityLow),
		roadReport("c", 12.9744, 77.5946, "Main St", types.SeverityLow),
		roadReport("d", 12.9758, 77.5946, "Main St", types.SeverityLow),
		roadReport("e", 12.9772, 77.5946, "Main St", types.SeverityLow),
	}

	segments := DetectSeries(reports)
	require.Len(t, segments, 1)
	assert.Equal(t, 5, segments[0].PotholeCount)
}

func TestDetectSeriesPartitionsByRoad(t *testing.T) {
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityLow),
		roadReport("c", 12.9745, 77.5946, "Main St", types.SeverityLow),
		// Same geometry, different road name: two reports never reach three.
		roadReport("d", 12.9716, 77.5946, "Church St", types.SeverityHigh),
		roadReport("e", 12.9730, 77.5946, "Church St", types.SeverityHigh),
	}

	segments := DetectSeries(reports)
	require.Len(t, segments, 1)
	assert.Equal(t, "Main St", segments[0].RoadName)
}

func TestDetectSeriesEmptyRoadGroupsAsUnknown(t *testing.T) {
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "", types.SeverityLow),
		roadReport("c", 12.9745, 77.5946, "", types.SeverityLow),
	}

	segments := DetectSeries(reports)
	require.Len(t, segments, 1)
	assert.Equal(t, types.UnknownRoad, segments[0].RoadName)
}

func TestDetectSeriesSkipsUnusableReports(t *testing.T) {
	noGPS := types.Report{ID: "x", Road: "Main St", Severity: types.SeverityHigh}
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityNone),
		noGPS,
		roadReport("c", 12.9745, 77.5946, "Main St", types.SeverityLow),
	}

	// Only two usable reports, and they sit ~320 m apart anyway.
	segments := DetectSeries(reports)
	assert.Empty(t, segments)
}

func TestDetectSeriesIdempotent(t *testing.T) {
	reports := []types.Report{
		roadReport("c", 12.9745, 77.5946, "Main St", types.SeverityHigh),
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityMedium),
	}

	first := DetectSeries(reports)
	second := DetectSeries(reports)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	// Everything except the detection timestamp is a pure function of input.
	first[0].CreatedAt = ""
	second[0].CreatedAt = ""
	assert.Equal(t, first[0], second[0])
}

func TestSegmentIDDeterministic(t *testing.T) {
	id := SegmentID("Main St", 12.973033333, 77.5946)
	assert.Equal(t, "Main_St_12.97303_77.5946", id)
	assert.Equal(t, id, SegmentID("Main St", 12.973033333, 77.5946))
}

func TestDetectSeriesWithParams(t *testing.T) {
	reports := []types.Report{
		roadReport("a", 12.9716, 77.5946, "Main St", types.SeverityLow),
		roadReport("b", 12.9730, 77.5946, "Main St", types.SeverityLow),
	}

	// Lowering the minimum to two finds the pair the defaults reject.
	segments := DetectSeriesWithParams(reports, DefaultDistanceThresholdMeters, 2)
	require.Len(t, segments, 1)
	assert.Equal(t, 2, segments[0].PotholeCount)
}
