package handlers

import (
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/types"
)

type potholeLocation struct {
	ID         string         `json:"id"`
	Lat        float64        `json:"lat"`
	Lon        float64        `json:"lon"`
	Severity   types.Severity `json:"severity"`
	Road       string         `json:"road"`
	Area       string         `json:"area"`
	Detections int            `json:"detections"`
	Timestamp  string         `json:"timestamp"`
}

// GetPotholeLocationsHandler returns every geotagged actual pothole for map
// display. Reports without GPS or without a detection are filtered out here,
// in memory, like every other spatial consumer.
func GetPotholeLocationsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	reports, err := db.GetAllReports(firestoreClient)
	if err != nil {
		log.Printf("ERROR fetching reports for locations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	potholes := []potholeLocation{}
	for i := range reports {
		r := &reports[i]
		if r.Severity == types.SeverityNone {
			continue
		}
		lat, lon, ok := r.Coordinates()
		if !ok {
			continue
		}

		potholes = append(potholes, potholeLocation{
			ID:         r.ID,
			Lat:        lat,
			Lon:        lon,
			Severity:   r.Severity,
			Road:       r.Road,
			Area:       r.Area,
			Detections: r.Detections,
			Timestamp:  r.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"potholes": potholes,
		"total":    len(potholes),
	})
}
