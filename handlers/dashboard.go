package handlers

import (
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/dhanu742005-ai/pothole-app/clustering"
	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/types"
)

// AdminDashboardHandler returns everything the admin dashboard renders: the
// raw reports, a severity summary, and the enriched cluster view. Clusters
// are recomputed on every call; only their status survives in the store.
func AdminDashboardHandler(c *gin.Context, firestoreClient *firestore.Client) {
	log.Println("Handler: Fetching dashboard data...")

	reports, err := db.GetAllReports(firestoreClient)
	if err != nil {
		log.Printf("ERROR fetching reports for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	summary := gin.H{
		"total":  len(reports),
		"high":   0,
		"medium": 0,
		"low":    0,
		"none":   0,
	}
	for i := range reports {
		switch reports[i].Severity {
		case types.SeverityHigh:
			summary["high"] = summary["high"].(int) + 1
		case types.SeverityMedium:
			summary["medium"] = summary["medium"].(int) + 1
		case types.SeverityLow:
			summary["low"] = summary["low"].(int) + 1
		default:
			summary["none"] = summary["none"].(int) + 1
		}
	}

	clusters := clustering.ComputeClusters(reports)
	clustering.EnrichClusters(clusters)

	for i := range clusters {
		status, err := db.GetClusterStatus(firestoreClient, clusters[i].ID)
		if err != nil {
			log.Printf("Warning: failed to read status for cluster %s: %v", clusters[i].ID, err)
			status = types.StatusOpen
		}
		clusters[i].Status = status
	}

	segmentsSummary, err := db.GetSegmentsSummary(firestoreClient)
	if err != nil {
		log.Printf("Warning: failed to read segments summary: %v", err)
	}

	log.Printf("Handler: Loaded %d reports, %d clusters.", len(reports), len(clusters))
	c.JSON(http.StatusOK, gin.H{
		"reports":          reports,
		"summary":          summary,
		"clusters":         clusters,
		"segments_summary": segmentsSummary,
	})
}
