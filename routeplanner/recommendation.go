package routeplanner

import (
	"fmt"
	"strings"

	"github.com/dhanu742005-ai/pothole-app/types"
)

// Detour tier boundaries in kilometers added over the original route.
const (
	recommendedDetourKM = 2.0
	considerDetourKM    = 5.0
)

// buildRecommendation scores an obtained alternative against the intersected
// segments. Tiers: "recommended" when the detour adds under 2 km and the worst
// severity is High, "consider" when it adds under 5 km, "caution" otherwise.
func buildRecommendation(intersected []types.BadSegment, distanceDiffKM, timeDiffMin float64) *types.Recommendation {
	roads, totalPotholes, worst := summarizeSegments(intersected)

	parts := []string{warningSentence(roads, totalPotholes, worst)}
	parts = append(parts, fmt.Sprintf(
		"Alternative route adds %.1f km and ~%.0f minutes but avoids damaged sections.",
		distanceDiffKM, timeDiffMin,
	))

	var tier string
	switch {
	case distanceDiffKM < recommendedDetourKM && worst == types.SeverityHigh:
		tier = types.RecommendationRecommended
		parts = append(parts, "Recommended: take the alternative route for smoother travel.")
	case distanceDiffKM < considerDetourKM:
		tier = types.RecommendationConsider
		parts = append(parts, "Consider the alternative route to avoid road damage.")
	default:
		tier = types.RecommendationCaution
		parts = append(parts, "Significant detour required. Proceed with caution on the original route.")
	}

	return &types.Recommendation{
		Message:          strings.Join(parts, " "),
		Severity:         tier,
		AffectedRoads:    roads,
		TotalPotholes:    totalPotholes,
		WorstSeverity:    worst,
		DetourDistanceKM: distanceDiffKM,
		DetourTimeMin:    timeDiffMin,
	}
}

// noAlternativeRecommendation covers the degraded path where intersections
// exist but no alternative route could be obtained.
func noAlternativeRecommendation(intersected []types.BadSegment) *types.Recommendation {
	roads, totalPotholes, worst := summarizeSegments(intersected)

	message := warningSentence(roads, totalPotholes, worst) +
		" No alternative route could be found; proceed with caution."

	return &types.Recommendation{
		Message:       message,
		Severity:      types.RecommendationCaution,
		AffectedRoads: roads,
		TotalPotholes: totalPotholes,
		WorstSeverity: worst,
	}
}

// summarizeSegments collects the distinct affected road names (in first
// appearance order), the total member count, and the worst severity.
func summarizeSegments(segments []types.BadSegment) (roads []string, totalPotholes int, worst types.Severity) {
	seen := make(map[string]bool)
	worst = types.SeverityLow

	for _, seg := range segments {
		totalPotholes += seg.PotholeCount
		worst = types.MaxSeverity(worst, seg.MaxSeverity)
		if !seen[seg.RoadName] {
			seen[seg.RoadName] = true
			roads = append(roads, seg.RoadName)
		}
	}
	return roads, totalPotholes, worst
}

// warningSentence names one or two roads individually and summarizes three or
// more by count.
func warningSentence(roads []string, totalPotholes int, worst types.Severity) string {
	var roadsText string
	switch len(roads) {
	case 1:
		roadsText = fmt.Sprintf("%s has", roads[0])
	case 2:
		roadsText = fmt.Sprintf("%s and %s have", roads[0], roads[1])
	default:
		roadsText = fmt.Sprintf("%d roads have", len(roads))
	}

	return fmt.Sprintf("Warning: %s a series of %d potholes (%s severity).",
		roadsText, totalPotholes, worst)
}
