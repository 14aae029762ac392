package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/routeplanner"
	"github.com/dhanu742005-ai/pothole-app/series"
	"github.com/dhanu742005-ai/pothole-app/types"
)

type planRouteRequest struct {
	Start json.RawMessage `json:"start"`
	End   json.RawMessage `json:"end"`
}

// PlanRouteHandler plans a driving route between two endpoints, each given
// either as an address string or as a [lat, lon] pair, and reports which bad
// road segments it crosses along with an alternative when one helps.
func PlanRouteHandler(c *gin.Context, firestoreClient *firestore.Client, planner *routeplanner.Planner) {
	log.Println("Handler: plan route request received")

	var req planRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	start, ok := parseEndpoint(req.Start)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid 'start': expected an address string or [lat, lon] pair"})
		return
	}
	end, ok := parseEndpoint(req.End)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid 'end': expected an address string or [lat, lon] pair"})
		return
	}

	segments, err := db.GetAllBadSegments(firestoreClient)
	if err != nil {
		log.Printf("ERROR fetching bad segments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load road segments"})
		return
	}

	// No stored segments yet: detect from the current reports so route
	// planning works before the first refresh has run.
	if len(segments) == 0 {
		reports, err := db.GetAllReports(firestoreClient)
		if err != nil {
			log.Printf("ERROR fetching reports: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
			return
		}
		segments = series.DetectSeries(reports)
		if len(segments) > 0 {
			if _, err := db.ReplaceBadSegments(firestoreClient, segments); err != nil {
				log.Printf("Warning: failed to store detected segments: %v", err)
			}
		}
	}

	result, err := planner.PlanRoute(c.Request.Context(), start, end, segments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseEndpoint accepts either a JSON string (an address to geocode) or a
// two-element [lat, lon] array.
func parseEndpoint(raw json.RawMessage) (routeplanner.EndpointInput, bool) {
	if len(raw) == 0 {
		return routeplanner.EndpointInput{}, false
	}

	var address string
	if err := json.Unmarshal(raw, &address); err == nil {
		if strings.TrimSpace(address) == "" {
			return routeplanner.EndpointInput{}, false
		}
		return routeplanner.EndpointInput{Address: address}, true
	}

	var pair []float64
	if err := json.Unmarshal(raw, &pair); err == nil && len(pair) == 2 {
		return routeplanner.EndpointInput{Coords: &types.Coordinate{Lat: pair[0], Lon: pair[1]}}, true
	}

	return routeplanner.EndpointInput{}, false
}
