package types

// BadSegment is a persisted run of consecutive same-road pothole reports,
// stored in the bad_road_segments collection with SegmentID as the document
// ID. The collection is fully recomputed and replaced on every detection run.
type BadSegment struct {
	SegmentID    string   `firestore:"segment_id" json:"segment_id"`
	RoadName     string   `firestore:"road_name" json:"road_name"`
	StartLat     float64  `firestore:"start_lat" json:"start_lat"`
	StartLon     float64  `firestore:"start_lon" json:"start_lon"`
	EndLat       float64  `firestore:"end_lat" json:"end_lat"`
	EndLon       float64  `firestore:"end_lon" json:"end_lon"`
	CenterLat    float64  `firestore:"center_lat" json:"center_lat"`
	CenterLon    float64  `firestore:"center_lon" json:"center_lon"`
	PotholeCount int      `firestore:"pothole_count" json:"pothole_count"`
	MaxSeverity  Severity `firestore:"max_severity" json:"max_severity"`
	Area         string   `firestore:"area" json:"area"`
	PotholeIDs   []string `firestore:"pothole_ids" json:"pothole_ids"`
	CreatedAt    string   `firestore:"created_at" json:"created_at"`
}
