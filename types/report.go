package types

import "strconv"

// Severity classifies a report by how many potholes were detected in its image.
type Severity string

const (
	SeverityNone   Severity = "None"
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// severityRank gives the total order None < Low < Medium < High.
// Unknown values rank below None.
var severityRank = map[Severity]int{
	SeverityNone:   1,
	SeverityLow:    2,
	SeverityMedium: 3,
	SeverityHigh:   4,
}

// Rank returns the position of s in the severity order. Higher is worse.
func (s Severity) Rank() int {
	return severityRank[s]
}

// MaxSeverity returns the worse of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// SeverityFromDetections maps a detection count onto a severity:
// 0 -> None, 1 -> Low, 2 -> Medium, 3+ -> High.
func SeverityFromDetections(detections int) Severity {
	switch {
	case detections <= 0:
		return SeverityNone
	case detections == 1:
		return SeverityLow
	case detections == 2:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// Sentinel values used when reverse geocoding yields nothing usable.
const (
	UnknownRoad = "Unknown Road"
	UnknownArea = "Unknown Area"
)

// Report is a single pothole observation stored in the pothole_reports
// collection. Latitude/Longitude are pointers because a report may arrive
// without GPS; such reports are kept but excluded from spatial computations.
type Report struct {
	ID          string   `firestore:"-" json:"id"`
	ImagePath   string   `firestore:"image_path" json:"image_path"`
	Filename    string   `firestore:"filename" json:"filename"`
	Detections  int      `firestore:"detections" json:"detections"`
	Severity    Severity `firestore:"severity" json:"severity"`
	Status      string   `firestore:"status" json:"status"`
	Latitude    *float64 `firestore:"latitude" json:"latitude"`
	Longitude   *float64 `firestore:"longitude" json:"longitude"`
	Road        string   `firestore:"road" json:"road"`
	Area        string   `firestore:"area" json:"area"`
	FullAddress string   `firestore:"full_address" json:"full_address"`
	Notes       string   `firestore:"notes,omitempty" json:"notes,omitempty"`
	Source      string   `firestore:"source" json:"source"` // web / whatsapp / admin_manual
	Timestamp   string   `firestore:"timestamp" json:"timestamp"`
}

// Coordinates returns the report's GPS position. ok is false when either
// coordinate is missing.
func (r *Report) Coordinates() (lat, lon float64, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	return *r.Latitude, *r.Longitude, true
}

// Float64Ptr is a convenience for building reports from parsed form values.
func Float64Ptr(v float64) *float64 {
	return &v
}

// ParseCoordinate parses a form-submitted coordinate string. Empty or
// malformed values yield nil, which marks the coordinate as missing.
func ParseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
