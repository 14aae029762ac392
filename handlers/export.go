package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/export"
)

// ExportPotholesHandler serializes the full report set in the requested
// format: json (default), csv, or osm.
func ExportPotholesHandler(c *gin.Context, firestoreClient *firestore.Client) {
	format := strings.ToLower(c.DefaultQuery("format", "json"))

	reports, err := db.GetAllReports(firestoreClient)
	if err != nil {
		log.Printf("ERROR fetching reports for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	var (
		data        []byte
		contentType string
		extension   string
	)

	switch format {
	case "json":
		data, err = export.ExportJSON(reports)
		contentType = "application/json"
	case "csv":
		data, err = export.ExportCSV(reports)
		contentType = "text/csv"
		extension = "csv"
	case "osm":
		data, err = export.ExportOSMXML(reports)
		contentType = "application/xml"
		extension = "osm"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Use json, csv, or osm"})
		return
	}

	if err != nil {
		log.Printf("ERROR exporting reports as %s: %v", format, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if extension != "" {
		filename := fmt.Sprintf("potholes_%s.%s", time.Now().UTC().Format("20060102_150405"), extension)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	c.Data(http.StatusOK, contentType, data)
}
