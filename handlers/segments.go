package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/export"
	"github.com/dhanu742005-ai/pothole-app/geocode"
	"github.com/dhanu742005-ai/pothole-app/series"
	"github.com/dhanu742005-ai/pothole-app/summarization"
	"github.com/dhanu742005-ai/pothole-app/types"
)

// RefreshSegments recomputes the bad-segment set from the full report
// snapshot and replaces the persisted collection. Shared by the GET/POST
// handlers, the admin add path, and the cron job.
func RefreshSegments(firestoreClient *firestore.Client) ([]types.Report, []types.BadSegment, int, error) {
	reports, err := db.GetAllReports(firestoreClient)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to fetch reports: %w", err)
	}

	segments := series.DetectSeries(reports)
	count, err := db.ReplaceBadSegments(firestoreClient, segments)
	if err != nil {
		return reports, segments, 0, fmt.Errorf("failed to persist segments: %w", err)
	}

	MaybeSummarizeSegments(firestoreClient, segments)
	return reports, segments, count, nil
}

// MaybeSummarizeSegments generates and stores an OpenAI summary of the
// segment set. Skipped silently without an API key; a failed call only costs
// the summary.
func MaybeSummarizeSegments(firestoreClient *firestore.Client, segments []types.BadSegment) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" || len(segments) == 0 {
		return
	}

	openaiClient := openai.NewClient(apiKey)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := summarization.GenerateSegmentsSummary(ctx, segments, openaiClient)
	if err != nil {
		log.Printf("Warning: segment summary generation failed: %v", err)
		return
	}
	if summary == "" {
		return
	}
	if err := db.SaveSegmentsSummary(firestoreClient, summary); err != nil {
		log.Printf("Warning: failed to save segment summary: %v", err)
	}
}

// GetBadSegmentsHandler runs a fresh detection, persists the result, and
// returns the segments with export statistics.
func GetBadSegmentsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	reports, segments, _, err := RefreshSegments(firestoreClient)
	if err != nil {
		log.Printf("ERROR refreshing bad segments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bad_segments":   segments,
		"statistics":     export.ComputeStatistics(reports, segments),
		"total_segments": len(segments),
	})
}

// RefreshBadSegmentsHandler manually triggers a detection run.
func RefreshBadSegmentsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	_, _, count, err := RefreshSegments(firestoreClient)
	if err != nil {
		log.Printf("ERROR refreshing bad segments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("Refreshed %d bad road segments", count),
		"segments_count": count,
	})
}

type addPotholeRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Severity  string   `json:"severity"`
	Road      string   `json:"road"`
	Notes     string   `json:"notes"`
}

// AdminAddPotholeHandler manually records a pothole from the dashboard map,
// without an image. The detection count is back-derived from the chosen
// severity so downstream consumers see consistent data, and the segment set
// is refreshed immediately.
func AdminAddPotholeHandler(c *gin.Context, firestoreClient *firestore.Client) {
	var req addPotholeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	severity := types.Severity(req.Severity)
	if req.Latitude == nil || req.Longitude == nil ||
		(severity != types.SeverityLow && severity != types.SeverityMedium && severity != types.SeverityHigh) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	detections := map[types.Severity]int{
		types.SeverityLow:    1,
		types.SeverityMedium: 2,
		types.SeverityHigh:   3,
	}[severity]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	road, area, fullAddress, err := geocode.ReverseGeocode(ctx, *req.Latitude, *req.Longitude)
	cancel()
	if err != nil {
		log.Printf("Warning: reverse geocoding failed for admin pothole: %v", err)
	}
	if req.Road != "" {
		road = req.Road
	}

	report := types.Report{
		Detections:  detections,
		Severity:    severity,
		Status:      "Pothole Detected",
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Road:        road,
		Area:        area,
		FullAddress: fullAddress,
		Notes:       req.Notes,
		Source:      "admin_manual",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := db.SaveReport(firestoreClient, report); err != nil {
		log.Printf("ERROR saving admin pothole: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save report"})
		return
	}

	// A new pothole can change the segment picture; refresh right away.
	if _, _, _, err := RefreshSegments(firestoreClient); err != nil {
		log.Printf("Warning: segment refresh after admin add failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pothole added successfully!"})
}
