package types

// Coordinate is a GPS position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Route is the raw outcome of one routing-provider call.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []Coordinate // ordered polyline vertices
}

// RouteLeg is the wire representation of a route in a RouteResult.
// Coordinates are [lon, lat] pairs, matching the routing provider's format.
type RouteLeg struct {
	DistanceKM      float64     `json:"distance_km"`
	DurationMinutes float64     `json:"duration_minutes"`
	Coordinates     [][]float64 `json:"coordinates"`
}

// Recommendation tiers. Safe means the primary route crosses no bad segment.
const (
	RecommendationSafe        = "safe"
	RecommendationRecommended = "recommended"
	RecommendationConsider    = "consider"
	RecommendationCaution     = "caution"
)

type Recommendation struct {
	Message          string   `json:"message"`
	Severity         string   `json:"severity"`
	AffectedRoads    []string `json:"affected_roads,omitempty"`
	TotalPotholes    int      `json:"total_potholes,omitempty"`
	WorstSeverity    Severity `json:"worst_severity,omitempty"`
	DetourDistanceKM float64  `json:"detour_distance_km,omitempty"`
	DetourTimeMin    float64  `json:"detour_time_min,omitempty"`
}

// RouteResult is the structured outcome of a route-planning request. When the
// primary route cannot be obtained, Error is the only populated field besides
// the endpoints.
type RouteResult struct {
	Error               string          `json:"error,omitempty"`
	StartCoords         *Coordinate     `json:"start_coords,omitempty"`
	EndCoords           *Coordinate     `json:"end_coords,omitempty"`
	OriginalRoute       *RouteLeg       `json:"original_route"`
	BadSegmentsDetected []BadSegment    `json:"bad_segments_detected"`
	AlternativeRoute    *RouteLeg       `json:"alternative_route"`
	Recommendation      *Recommendation `json:"recommendation"`
}
