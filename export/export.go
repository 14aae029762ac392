// Package export serializes pothole reports for download: JSON, CSV, and
// OSM XML node files suitable for map tooling.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strconv"
	"time"

	"github.com/dhanu742005-ai/pothole-app/types"
)

type jsonExport struct {
	ExportDate   string         `json:"export_date"`
	TotalReports int            `json:"total_reports"`
	Reports      []types.Report `json:"reports"`
}

// ExportJSON wraps all reports with export metadata.
func ExportJSON(reports []types.Report) ([]byte, error) {
	return json.MarshalIndent(jsonExport{
		ExportDate:   time.Now().UTC().Format(time.RFC3339),
		TotalReports: len(reports),
		Reports:      reports,
	}, "", "  ")
}

var csvHeader = []string{
	"timestamp", "latitude", "longitude", "severity",
	"detections", "road", "area", "full_address", "source",
}

// ExportCSV writes one row per report with valid GPS coordinates.
func ExportCSV(reports []types.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for i := range reports {
		r := &reports[i]
		lat, lon, ok := r.Coordinates()
		if !ok {
			continue
		}

		row := []string{
			r.Timestamp,
			strconv.FormatFloat(lat, 'f', -1, 64),
			strconv.FormatFloat(lon, 'f', -1, 64),
			string(r.Severity),
			strconv.Itoa(r.Detections),
			r.Road,
			r.Area,
			r.FullAddress,
			r.Source,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

type osmFile struct {
	XMLName   xml.Name  `xml:"osm"`
	Version   string    `xml:"version,attr"`
	Generator string    `xml:"generator,attr"`
	Nodes     []osmNode `xml:"node"`
}

type osmNode struct {
	ID      int      `xml:"id,attr"`
	Lat     float64  `xml:"lat,attr"`
	Lon     float64  `xml:"lon,attr"`
	Version int      `xml:"version,attr"`
	Tags    []osmTag `xml:"tag"`
}

type osmTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// ExportOSMXML emits reports as OSM nodes tagged as road damage. New nodes
// get negative IDs per OSM convention. Reports without coordinates or without
// an actual pothole are skipped.
func ExportOSMXML(reports []types.Report) ([]byte, error) {
	file := osmFile{
		Version:   "0.6",
		Generator: "Pothole Detection System",
	}

	nodeID := -1
	for i := range reports {
		r := &reports[i]
		if r.Severity == types.SeverityNone {
			continue
		}
		lat, lon, ok := r.Coordinates()
		if !ok {
			continue
		}

		road := r.Road
		if road == "" {
			road = types.UnknownRoad
		}

		file.Nodes = append(file.Nodes, osmNode{
			ID:      nodeID,
			Lat:     lat,
			Lon:     lon,
			Version: 1,
			Tags: []osmTag{
				{K: "highway", V: "road_damage"},
				{K: "pothole", V: "yes"},
				{K: "severity", V: string(r.Severity)},
				{K: "detections", V: strconv.Itoa(r.Detections)},
				{K: "timestamp", V: r.Timestamp},
				{K: "road", V: road},
			},
		})
		nodeID--
	}

	body, err := xml.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
