package types

// ClusterStatus is the repair workflow state persisted per cluster in the
// cluster_status collection, keyed by the derived cluster ID.
type ClusterStatus string

const (
	StatusOpen       ClusterStatus = "Open"
	StatusInProgress ClusterStatus = "In Progress"
	StatusFixed      ClusterStatus = "Fixed"
)

// Valid reports whether s is one of the allowed workflow states.
func (s ClusterStatus) Valid() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusFixed
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Cluster is a transient, recomputed-on-demand grouping of reports within a
// fixed radius of its anchor report. It is never persisted; only its status
// (keyed by ID) survives across recomputations.
type Cluster struct {
	ID          string   `json:"id"`
	CenterLat   float64  `json:"center_lat"`
	CenterLon   float64  `json:"center_lon"`
	Reports     []Report `json:"reports"`
	MaxSeverity Severity `json:"max_severity"`

	// Dashboard enrichment, filled in after clustering.
	Status       ClusterStatus `json:"status,omitempty"`
	FriendlyName string        `json:"friendly_name,omitempty"`
	Bounds       *BoundingBox  `json:"bounds,omitempty"`
}
