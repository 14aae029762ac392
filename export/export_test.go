package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanu742005-ai/pothole-app/types"
)

func sampleReports() []types.Report {
	return []types.Report{
		{
			ID:         "r1",
			Detections: 3,
			Severity:   types.SeverityHigh,
			Latitude:   types.Float64Ptr(12.9716),
			Longitude:  types.Float64Ptr(77.5946),
			Road:       "Main St",
			Area:       "Indiranagar",
			Source:     "web",
			Timestamp:  "2026-08-01T10:00:00Z",
		},
		{
			ID:         "r2",
			Detections: 0,
			Severity:   types.SeverityNone,
			Latitude:   types.Float64Ptr(12.9730),
			Longitude:  types.Float64Ptr(77.5946),
			Source:     "whatsapp",
			Timestamp:  "2026-08-01T11:00:00Z",
		},
		{
			// No GPS: kept in JSON, dropped from CSV and OSM.
			ID:         "r3",
			Detections: 1,
			Severity:   types.SeverityLow,
			Source:     "web",
			Timestamp:  "2026-08-01T12:00:00Z",
		},
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(sampleReports())
	require.NoError(t, err)

	var out struct {
		ExportDate   string         `json:"export_date"`
		TotalReports int            `json:"total_reports"`
		Reports      []types.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotEmpty(t, out.ExportDate)
	assert.Equal(t, 3, out.TotalReports)
	assert.Len(t, out.Reports, 3)
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV(sampleReports())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Header plus the two reports that carry GPS.
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"timestamp", "latitude", "longitude", "severity",
		"detections", "road", "area", "full_address", "source",
	}, records[0])
	assert.Equal(t, "12.9716", records[1][1])
	assert.Equal(t, "High", records[1][3])
	assert.Equal(t, "Main St", records[1][5])
	assert.Equal(t, "None", records[2][3])
}

func TestExportOSMXML(t *testing.T) {
	data, err := ExportOSMXML(sampleReports())
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<?xml"))
	// Only r1 survives: r2 has severity None, r3 has no GPS.
	assert.Equal(t, 1, strings.Count(content, "<node"))
	assert.Contains(t, content, `id="-1"`)
	assert.Contains(t, content, `k="pothole" v="yes"`)
	assert.Contains(t, content, `k="severity" v="High"`)
	assert.Contains(t, content, `k="road" v="Main St"`)
}

func TestComputeStatistics(t *testing.T) {
	reports := []types.Report{
		{Severity: types.SeverityHigh},
		{Severity: types.SeverityHigh},
		{Severity: types.SeverityMedium},
		{Severity: types.SeverityLow},
		{Severity: types.SeverityLow},
		{Severity: types.SeverityLow},
		{Severity: types.SeverityLow},
		{Severity: types.SeverityNone},
		{Severity: types.SeverityNone},
	}
	segments := []types.BadSegment{
		{RoadName: "Main St", PotholeCount: 3},
		{RoadName: "Church St", PotholeCount: 3},
	}

	stats := ComputeStatistics(reports, segments)
	assert.Equal(t, 9, stats.TotalReports)
	assert.Equal(t, 7, stats.PotholeDetections)
	assert.Equal(t, 2, stats.NoPotholeDetections)
	assert.Equal(t, 2, stats.SeverityBreakdown[types.SeverityHigh])
	assert.Equal(t, 1, stats.SeverityBreakdown[types.SeverityMedium])
	assert.Equal(t, 4, stats.SeverityBreakdown[types.SeverityLow])
	assert.Equal(t, 2, stats.BadRoadSegments)
	assert.Equal(t, 2, stats.RoadsWithSeries)
	assert.Equal(t, 6, stats.PotholesInSeries)
	assert.Equal(t, 1, stats.IsolatedPotholes)
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil, nil)
	assert.Zero(t, stats.TotalReports)
	assert.Zero(t, stats.BadRoadSegments)
	assert.Zero(t, stats.IsolatedPotholes)
}
